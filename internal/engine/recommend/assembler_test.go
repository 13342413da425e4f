// internal/engine/recommend/assembler_test.go
package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-insight/internal/common/logger"
	"solar-insight/internal/engine/aigateway"
	"solar-insight/internal/engine/fallback"
	"solar-insight/internal/locale"
	"solar-insight/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// stubGateway returns a fixed result or error and records its calls.
type stubGateway struct {
	result *aigateway.Result
	err    error
	calls  int
	input  *aigateway.Input
}

func (s *stubGateway) Execute(ctx context.Context, input *aigateway.Input) (*aigateway.Result, error) {
	s.calls++
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestAssembler(t *testing.T, gateway Gateway) *Assembler {
	log := logger.NewTestLogger(t)
	return NewAssembler(gateway, fallback.NewGenerator(locale.English{}, log), locale.English{}, log)
}

func generationSheet() models.SheetDescriptor {
	return models.SheetDescriptor{
		Name:    "Generation",
		Headers: []string{"Date", "Energy_kWh", "Temperature", "Notes"},
		SampleRows: [][]any{
			{"Date", "Energy_kWh", "Temperature", "Notes"},
			{"2024-01-02", "1200", "21.5", "clear"},
			{"2024-01-03", "1180", "19.0", ""},
		},
		RowCount:    400,
		ColumnCount: 4,
	}
}

// ==========================
// AI Path
// ==========================

func TestAssemble_AIPathUsed(t *testing.T) {
	gateway := &stubGateway{result: &aigateway.Result{
		Title:             "Plant Output",
		Description:       "daily generation",
		Insights:          []string{"i1"},
		RecommendedFields: []string{"Energy_kWh", "Date"},
		DomainInsights: models.DomainInsights{
			PeakProductionTimes: []string{"12:00-13:00"},
		},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, "Generation", rec.SelectedSheet)
	assert.Equal(t, "Plant Output", rec.Title)
	assert.Equal(t, []string{"Energy_kWh", "Date"}, rec.RecommendedFields)
	assert.Equal(t, []string{"12:00-13:00"}, rec.DomainInsights.PeakProductionTimes)
	assert.Equal(t, models.CategoryGeneration, rec.Category)

	// The gateway receives the authoritative record count, not the sample size.
	require.NotNil(t, gateway.input)
	assert.Equal(t, 399, gateway.input.RecordCount)
}

func TestAssemble_MismatchedAIFieldsReplacedByHeaders(t *testing.T) {
	gateway := &stubGateway{result: &aigateway.Result{
		Title:             "T",
		RecommendedFields: []string{"Nonexistent", "AlsoMissing"},
	}}
	assembler := newTestAssembler(t, gateway)

	sheet := generationSheet()
	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{sheet})

	// Nothing matched, so the first headers stand in, verbatim and in order.
	assert.Equal(t, sheet.Headers, rec.RecommendedFields)
}

func TestAssemble_FieldValidationIsCaseSensitive(t *testing.T) {
	gateway := &stubGateway{result: &aigateway.Result{
		RecommendedFields: []string{"energy_kwh", "Energy_kWh", "DATE"},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	assert.Equal(t, []string{"Energy_kWh"}, rec.RecommendedFields)
}

func TestAssemble_FieldsCappedAtFive(t *testing.T) {
	headers := []string{"A", "B", "C", "D", "E", "F", "G"}
	sheet := models.SheetDescriptor{
		Name:        "Wide",
		Headers:     headers,
		SampleRows:  [][]any{{"A", "B", "C", "D", "E", "F", "G"}},
		RowCount:    1,
		ColumnCount: 7,
	}
	gateway := &stubGateway{result: &aigateway.Result{
		RecommendedFields: headers,
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{sheet})

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, rec.RecommendedFields)
}

func TestAssemble_InsightsCappedAtFour(t *testing.T) {
	gateway := &stubGateway{result: &aigateway.Result{
		Insights: []string{"1", "2", "3", "4", "5", "6"},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	assert.Equal(t, []string{"1", "2", "3", "4"}, rec.Insights)
}

// ==========================
// Fallback Path
// ==========================

func TestAssemble_FallbackOnGatewayError(t *testing.T) {
	gateway := &stubGateway{err: aigateway.ErrAnalysisFailed}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, "Generation Data", rec.Title)
	assert.Equal(t, []string{"Energy_kWh", "Date", "Temperature"}, rec.RecommendedFields)
	assert.Equal(t, models.CategoryGeneration, rec.Category)
	// 399 records with energy+time clears the time-series gate.
	assert.Contains(t, rec.Insights, "Time-series trend analysis is possible.")
}

func TestAssemble_PathsAreExclusive(t *testing.T) {
	// Even an error carrying a plausible result must contribute nothing.
	gateway := &stubGateway{
		result: &aigateway.Result{Title: "partial"},
		err:    errors.New("boom"),
	}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	assert.NotEqual(t, "partial", rec.Title)
	assert.Equal(t, "Generation Data", rec.Title)
}

func TestAssemble_ConfidenceUnaffectedByPath(t *testing.T) {
	sheets := []models.SheetDescriptor{generationSheet()}

	okGateway := &stubGateway{result: &aigateway.Result{Title: "T"}}
	failGateway := &stubGateway{err: aigateway.ErrAnalysisFailed}

	aiRec := newTestAssembler(t, okGateway).Assemble(context.Background(), sheets)
	fbRec := newTestAssembler(t, failGateway).Assemble(context.Background(), sheets)

	assert.Equal(t, aiRec.Confidence, fbRec.Confidence)
	assert.Equal(t, aiRec.SelectedSheet, fbRec.SelectedSheet)
}

// ==========================
// Empty Input
// ==========================

func TestAssemble_NoSheets(t *testing.T) {
	gateway := &stubGateway{}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), nil)

	assert.Equal(t, 0, gateway.calls)
	assert.Equal(t, "", rec.SelectedSheet)
	assert.Equal(t, 0.0, rec.Confidence)
	assert.Equal(t, models.CategoryGeneric, rec.Category)
	assert.Equal(t, []string{}, rec.RecommendedFields)
	assert.Equal(t, []string{}, rec.Insights)
	assert.Equal(t, []models.SuggestedFilter{}, rec.SuggestedFilters)
	assert.Equal(t, []string{}, rec.DomainInsights.PeakProductionTimes)
}

// ==========================
// Filter Derivation
// ==========================

func TestAssemble_SuggestedFilters(t *testing.T) {
	gateway := &stubGateway{result: &aigateway.Result{
		RecommendedFields: []string{"Temperature", "Energy_kWh", "Date"},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	// Group order is fixed regardless of field order: time, energy, weather.
	require.Len(t, rec.SuggestedFilters, 3)
	assert.Equal(t, "time_range", rec.SuggestedFilters[0].Type)
	assert.Equal(t, "Date", rec.SuggestedFilters[0].Column)
	assert.Equal(t, "energy_range", rec.SuggestedFilters[1].Type)
	assert.Equal(t, "Energy_kWh", rec.SuggestedFilters[1].Column)
	assert.Equal(t, "weather_range", rec.SuggestedFilters[2].Type)
	assert.Equal(t, "Temperature", rec.SuggestedFilters[2].Column)
}

func TestAssemble_FiltersOnlyFromFinalFields(t *testing.T) {
	// AI recommends only an energy field; the sheet's other headers must not
	// produce filters.
	gateway := &stubGateway{result: &aigateway.Result{
		RecommendedFields: []string{"Energy_kWh"},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{generationSheet()})

	require.Len(t, rec.SuggestedFilters, 1)
	assert.Equal(t, "energy_range", rec.SuggestedFilters[0].Type)
	assert.Equal(t, "Energy_kWh", rec.SuggestedFilters[0].Column)
	assert.NotEmpty(t, rec.SuggestedFilters[0].Description)
}

func TestAssemble_AtMostOneFilterPerGroup(t *testing.T) {
	sheet := models.SheetDescriptor{
		Name:        "Times",
		Headers:     []string{"Date", "Timestamp", "Hour"},
		SampleRows:  [][]any{{"Date", "Timestamp", "Hour"}},
		RowCount:    10,
		ColumnCount: 3,
	}
	gateway := &stubGateway{result: &aigateway.Result{
		RecommendedFields: []string{"Date", "Timestamp", "Hour"},
	}}
	assembler := newTestAssembler(t, gateway)

	rec := assembler.Assemble(context.Background(), []models.SheetDescriptor{sheet})

	require.Len(t, rec.SuggestedFilters, 1)
	assert.Equal(t, "time_range", rec.SuggestedFilters[0].Type)
	assert.Equal(t, "Date", rec.SuggestedFilters[0].Column)
}
