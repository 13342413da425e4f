// internal/store/store_test.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-insight/internal/common/database"
	"solar-insight/internal/common/logger"
	"solar-insight/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

const testID = "5a3c1f1e-8e1f-4a07-9f56-0d2f9a1f0001"

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, database.NewRedisFromClient(client)
}

func newTestStore(t *testing.T, db *sql.DB, cache *database.RedisClient) *Store {
	return New(db, cache, 10*time.Minute, logger.NewTestLogger(t))
}

func sampleRecommendation() *models.Recommendation {
	return &models.Recommendation{
		SelectedSheet:     "Generation",
		Confidence:        0.9,
		Category:          models.CategoryGeneration,
		Title:             "Generation Data",
		RecommendedFields: []string{"Date", "Energy_kWh"},
		Insights:          []string{},
		SuggestedFilters:  []models.SuggestedFilter{},
	}
}

// ==========================
// Save Tests
// ==========================

func TestSave_InsertsAndWarmsCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, cache := setupMiniredis(t)

	rec := sampleRecommendation()
	mock.ExpectExec("INSERT INTO recommendations").
		WithArgs(testID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	st := newTestStore(t, db, cache)
	require.NoError(t, st.Save(context.Background(), testID, rec))
	require.NoError(t, mock.ExpectationsWereMet())

	cached, err := mr.Get(cacheKeyPrefix + testID)
	require.NoError(t, err)
	var fromCache models.Recommendation
	require.NoError(t, json.Unmarshal([]byte(cached), &fromCache))
	assert.Equal(t, rec.SelectedSheet, fromCache.SelectedSheet)
	assert.Equal(t, rec.RecommendedFields, fromCache.RecommendedFields)
}

func TestSave_CacheFailureIsNotFatal(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, cache := setupMiniredis(t)
	mr.Close()

	mock.ExpectExec("INSERT INTO recommendations").
		WithArgs(testID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	st := newTestStore(t, db, cache)
	assert.NoError(t, st.Save(context.Background(), testID, sampleRecommendation()))
}

func TestSave_InsertFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, cache := setupMiniredis(t)

	mock.ExpectExec("INSERT INTO recommendations").
		WillReturnError(sql.ErrConnDone)

	st := newTestStore(t, db, cache)
	assert.Error(t, st.Save(context.Background(), testID, sampleRecommendation()))
}

// ==========================
// Get Tests
// ==========================

func TestGet_CacheHitSkipsDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, cache := setupMiniredis(t)

	payload, _ := json.Marshal(sampleRecommendation())
	require.NoError(t, mr.Set(cacheKeyPrefix+testID, string(payload)))

	st := newTestStore(t, db, cache)
	rec, err := st.Get(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, "Generation", rec.SelectedSheet)
	// No SELECT was expected; any DB touch would fail this.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CacheMissReadsAndBackfills(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	mr, cache := setupMiniredis(t)

	payload, _ := json.Marshal(sampleRecommendation())
	mock.ExpectQuery("SELECT payload FROM recommendations").
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	st := newTestStore(t, db, cache)
	rec, err := st.Get(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, "Generation", rec.SelectedSheet)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.True(t, mr.Exists(cacheKeyPrefix+testID))
}

func TestGet_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, cache := setupMiniredis(t)

	mock.ExpectQuery("SELECT payload FROM recommendations").
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))

	st := newTestStore(t, db, cache)
	_, err := st.Get(context.Background(), testID)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_WorksWithoutCache(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	payload, _ := json.Marshal(sampleRecommendation())
	mock.ExpectQuery("SELECT payload FROM recommendations").
		WithArgs(testID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	st := newTestStore(t, db, nil)
	rec, err := st.Get(context.Background(), testID)

	require.NoError(t, err)
	assert.Equal(t, "Generation", rec.SelectedSheet)
}

// ==========================
// Schema Tests
// ==========================

func TestEnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, cache := setupMiniredis(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS recommendations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	st := newTestStore(t, db, cache)
	assert.NoError(t, st.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
