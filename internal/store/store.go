// internal/store/store.go

// Package store persists assembled recommendations as small JSON blobs and
// serves reads through a redis cache in front of postgres.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solar-insight/internal/common/database"
	"solar-insight/internal/common/logger"
	"solar-insight/internal/models"
)

var ErrNotFound = errors.New("recommendation not found")

const cacheKeyPrefix = "insight:recommendation:"

type Store struct {
	db     *sql.DB
	cache  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func New(db *sql.DB, cache *database.RedisClient, ttl time.Duration, log logger.Logger) *Store {
	return &Store{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{"component": "recommendation-store"}),
	}
}

// EnsureSchema creates the blob table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS recommendations (
			id         UUID PRIMARY KEY,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Save persists a recommendation under the given id and warms the cache.
func (s *Store) Save(ctx context.Context, id string, rec *models.Recommendation) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recommendations (id, payload) VALUES ($1, $2)`,
		id, payload)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyPrefix+id, string(payload), s.ttl); err != nil {
			s.logger.Warn("cache write failed", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// Get fetches a recommendation, trying the cache before postgres.
func (s *Store) Get(ctx context.Context, id string) (*models.Recommendation, error) {
	if s.cache != nil {
		if val, err := s.cache.Get(ctx, cacheKeyPrefix+id); err == nil {
			var rec models.Recommendation
			if err := json.Unmarshal([]byte(val), &rec); err == nil {
				return &rec, nil
			}
		}
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM recommendations WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select recommendation: %w", err)
	}

	var rec models.Recommendation
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKeyPrefix+id, string(payload), s.ttl); err != nil {
			s.logger.Warn("cache backfill failed", map[string]interface{}{
				"id":    id,
				"error": err.Error(),
			})
		}
	}
	return &rec, nil
}
