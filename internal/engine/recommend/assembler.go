// internal/engine/recommend/assembler.go

// Package recommend orchestrates the full pipeline: sheet selection,
// pattern analysis, the AI attempt with rule-based fallback, field
// validation against the real headers, and filter derivation.
package recommend

import (
	"context"
	"errors"
	"time"

	"solar-insight/internal/common/logger"
	"solar-insight/internal/common/metrics"
	"solar-insight/internal/engine/aigateway"
	"solar-insight/internal/engine/fallback"
	"solar-insight/internal/engine/patterns"
	"solar-insight/internal/engine/sheetselect"
	"solar-insight/internal/locale"
	"solar-insight/internal/models"
)

// Generation paths, used as metric labels and in logs.
const (
	pathAI       = "ai"
	pathFallback = "fallback"
	pathEmpty    = "empty"
)

const (
	maxRecommendedFields = 5
	maxInsights          = 4
)

// Gateway is the AI analysis dependency; satisfied by *aigateway.Handler.
type Gateway interface {
	Execute(ctx context.Context, input *aigateway.Input) (*aigateway.Result, error)
}

type Assembler struct {
	gateway   Gateway
	generator *fallback.Generator
	catalog   locale.Catalog
	logger    logger.Logger
}

func NewAssembler(gateway Gateway, generator *fallback.Generator, catalog locale.Catalog, log logger.Logger) *Assembler {
	return &Assembler{
		gateway:   gateway,
		generator: generator,
		catalog:   catalog,
		logger:    log.With(map[string]interface{}{"component": "recommendation-assembler"}),
	}
}

// Assemble never fails: every error along the way is absorbed into a
// fallback, and the worst case is a valid but generic Recommendation. The
// context bounds only the single AI call; once that call fails or expires,
// the rest of the pipeline runs to completion.
func (a *Assembler) Assemble(ctx context.Context, sheets []models.SheetDescriptor) *models.Recommendation {
	start := time.Now()

	selection, ok := sheetselect.Select(sheets)
	if !ok {
		a.logger.Info("no sheets supplied, returning default recommendation", nil)
		metrics.RecommendationsGenerated.WithLabelValues(pathEmpty).Inc()
		metrics.PipelineDuration.WithLabelValues(pathEmpty).Observe(time.Since(start).Seconds())
		return emptyRecommendation()
	}

	sheet := selection.Sheet
	// The descriptor's RowCount covers the full sheet including the header
	// row; it is authoritative over the sampled preview when present.
	recordCount := 0
	if sheet.RowCount > 0 {
		recordCount = sheet.RowCount - 1
	}
	profile := patterns.Analyze(sheet, recordCount)
	category := fallback.CategoryFor(profile)

	rec := &models.Recommendation{
		SelectedSheet: sheet.Name,
		Confidence:    selection.Confidence,
		Category:      category,
	}

	path := pathAI
	aiResult, err := a.gateway.Execute(ctx, &aigateway.Input{
		SheetName:   sheet.Name,
		Headers:     sheet.Headers,
		SampleRows:  sheet.SampleRows,
		RecordCount: profile.RecordCount,
		ColumnCount: sheet.ColumnCount,
		Profile:     profile,
	})

	// The two paths are exclusive: a failed AI exchange contributes nothing,
	// even if parts of it were extractable.
	if err != nil {
		if !errors.Is(err, aigateway.ErrAnalysisFailed) {
			a.logger.Warn("unexpected gateway error", map[string]interface{}{"error": err.Error()})
		}
		a.logger.Info("AI analysis unavailable, using rule-based generation", map[string]interface{}{
			"sheet": sheet.Name,
			"error": err.Error(),
		})
		path = pathFallback
		generated := a.generator.Generate(sheet.Name, sheet.Headers, profile)
		rec.Title = generated.Title
		rec.Description = generated.Description
		rec.Insights = generated.Insights
		rec.RecommendedFields = generated.RecommendedFields
		rec.DomainInsights = generated.DomainInsights
	} else {
		rec.Title = aiResult.Title
		rec.Description = aiResult.Description
		rec.Insights = aiResult.Insights
		rec.RecommendedFields = aiResult.RecommendedFields
		rec.DomainInsights = aiResult.DomainInsights
	}

	if len(rec.Insights) > maxInsights {
		rec.Insights = rec.Insights[:maxInsights]
	}
	rec.RecommendedFields = validateFields(rec.RecommendedFields, sheet.Headers)
	rec.SuggestedFilters = a.suggestFilters(rec.RecommendedFields)
	normalize(rec)

	a.logger.Info("recommendation assembled", map[string]interface{}{
		"sheet":      sheet.Name,
		"path":       path,
		"confidence": rec.Confidence,
		"fields":     rec.RecommendedFields,
	})
	metrics.RecommendationsGenerated.WithLabelValues(path).Inc()
	metrics.PipelineDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	return rec
}

// validateFields keeps only fields that match a real header verbatim
// (case-sensitive). When nothing survives, the first min(5, len(headers))
// raw headers are used instead; this absolute fallback is never skipped.
func validateFields(fields, headers []string) []string {
	known := make(map[string]bool, len(headers))
	for _, h := range headers {
		known[h] = true
	}

	var valid []string
	for _, f := range fields {
		if known[f] {
			valid = append(valid, f)
		}
		if len(valid) == maxRecommendedFields {
			break
		}
	}
	if len(valid) > 0 {
		return valid
	}

	n := len(headers)
	if n > maxRecommendedFields {
		n = maxRecommendedFields
	}
	return append([]string{}, headers[:n]...)
}

// suggestFilters derives at most one filter per group, in fixed group
// order, from the final recommended fields only.
func (a *Assembler) suggestFilters(fields []string) []models.SuggestedFilter {
	groups := []struct {
		group  locale.FilterGroup
		ftype  string
		family []string
	}{
		{locale.FilterGroupTime, "time_range", patterns.TimeKeywords},
		{locale.FilterGroupEnergy, "energy_range", patterns.EnergyProductionKeywords()},
		{locale.FilterGroupWeather, "weather_range", patterns.WeatherKeywords},
	}

	filters := []models.SuggestedFilter{}
	for _, g := range groups {
		for _, f := range fields {
			if patterns.MatchesAny(f, g.family) {
				filters = append(filters, models.SuggestedFilter{
					Type:        g.ftype,
					Column:      f,
					Description: a.catalog.FilterDescription(g.group, f),
				})
				break
			}
		}
	}
	return filters
}

// normalize replaces nil slices so the serialized JSON is stable for the UI.
func normalize(rec *models.Recommendation) {
	if rec.RecommendedFields == nil {
		rec.RecommendedFields = []string{}
	}
	if rec.Insights == nil {
		rec.Insights = []string{}
	}
	if rec.SuggestedFilters == nil {
		rec.SuggestedFilters = []models.SuggestedFilter{}
	}
	di := &rec.DomainInsights
	if di.PeakProductionTimes == nil {
		di.PeakProductionTimes = []string{}
	}
	if di.WeatherFactors == nil {
		di.WeatherFactors = []string{}
	}
	if di.MaintenancePatterns == nil {
		di.MaintenancePatterns = []string{}
	}
	if di.PerformanceMetrics == nil {
		di.PerformanceMetrics = []string{}
	}
}

func emptyRecommendation() *models.Recommendation {
	rec := &models.Recommendation{
		SelectedSheet: "",
		Confidence:    0,
		Category:      models.CategoryGeneric,
	}
	normalize(rec)
	return rec
}
