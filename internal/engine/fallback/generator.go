// internal/engine/fallback/generator.go

// Package fallback is the deterministic generation path used whenever the
// AI gateway fails or returns unusable output. Everything here is a pure
// function of the pattern profile, the sheet name, and the header list.
package fallback

import (
	"solar-insight/internal/common/logger"
	"solar-insight/internal/engine/patterns"
	"solar-insight/internal/locale"
	"solar-insight/internal/models"
)

// Record-count thresholds gating the rule-based insights.
const (
	timeSeriesMinRecords   = 100
	degradationMinRecords  = 50
	modelingMinNumericCols = 2
)

// Static candidate pools gated by profile flags. These are fixed hints, not
// values computed from the data. Maintenance patterns and performance
// metrics are reserved pools that stay empty on this path.
var (
	peakWindowsBase    = []string{"11:00-14:00"}
	peakWindowsWidened = []string{"10:00-15:00", "11:00-14:00"}
	weatherFactorsPool = []string{"temperature", "irradiance", "cloud_cover", "humidity"}
)

// Output is the rule-based counterpart of an AI analysis result.
type Output struct {
	Category          models.Category
	Title             string
	Description       string
	Insights          []string
	RecommendedFields []string
	DomainInsights    models.DomainInsights
}

type Generator struct {
	catalog locale.Catalog
	logger  logger.Logger
}

func NewGenerator(catalog locale.Catalog, log logger.Logger) *Generator {
	return &Generator{
		catalog: catalog,
		logger:  log.With(map[string]interface{}{"component": "fallback-generator"}),
	}
}

// CategoryFor maps a pattern profile onto its category tag. Priority order:
// generation (energy + time), performance, environmental, generic.
func CategoryFor(profile *patterns.Profile) models.Category {
	switch {
	case profile.HasEnergyData && profile.HasTimeData:
		return models.CategoryGeneration
	case profile.HasPerformanceData:
		return models.CategoryPerformance
	case profile.HasWeatherData:
		return models.CategoryEnvironmental
	default:
		return models.CategoryGeneric
	}
}

// Generate builds the full rule-based analysis for one sheet.
func (g *Generator) Generate(sheetName string, headers []string, profile *patterns.Profile) *Output {
	category := CategoryFor(profile)

	out := &Output{
		Category:          category,
		Title:             g.catalog.Title(category, sheetName),
		Description:       g.catalog.Description(descriptionFacts(headers, profile)),
		Insights:          g.insights(profile),
		RecommendedFields: recommendFields(headers),
		DomainInsights:    domainInsights(profile),
	}

	g.logger.Debug("rule-based analysis generated", map[string]interface{}{
		"sheet":    sheetName,
		"category": string(category),
		"fields":   len(out.RecommendedFields),
		"insights": len(out.Insights),
	})
	return out
}

func descriptionFacts(headers []string, profile *patterns.Profile) locale.DescriptionFacts {
	facts := locale.DescriptionFacts{
		RecordCount:      profile.RecordCount,
		ColumnCount:      len(headers),
		CorrelationReady: profile.HasEnergyData && profile.HasWeatherData,
	}
	if profile.HasEnergyData {
		facts.Aspects = append(facts.Aspects, locale.AspectEnergy)
	}
	if profile.HasWeatherData {
		facts.Aspects = append(facts.Aspects, locale.AspectWeather)
	}
	if profile.HasTimeData {
		facts.Aspects = append(facts.Aspects, locale.AspectTime)
	}
	if profile.HasLocationData {
		facts.Aspects = append(facts.Aspects, locale.AspectLocation)
	}
	if profile.HasPerformanceData {
		facts.Aspects = append(facts.Aspects, locale.AspectPerformance)
	}
	return facts
}

// insights emits the gated insights in fixed order, at most four.
func (g *Generator) insights(profile *patterns.Profile) []string {
	var out []string
	if profile.HasEnergyData && profile.HasTimeData && profile.RecordCount > timeSeriesMinRecords {
		out = append(out, g.catalog.Insight(locale.InsightTimeSeriesTrend))
	}
	if profile.HasEnergyData && profile.HasWeatherData {
		out = append(out, g.catalog.Insight(locale.InsightWeatherCorrelation))
	}
	if profile.HasPerformanceData && profile.RecordCount > degradationMinRecords {
		out = append(out, g.catalog.Insight(locale.InsightPerformanceDegradation))
	}
	if profile.NumericColumnCount() > modelingMinNumericCols {
		out = append(out, g.catalog.Insight(locale.InsightStatisticalModeling))
	}
	return out
}

// recommendFields builds the priority-ordered field list: up to 2 headers
// from the energy/production pool, then up to 1 each from the time, weather,
// and performance families; deduplicated keeping the first occurrence and
// capped at 5.
func recommendFields(headers []string) []string {
	pools := []struct {
		family []string
		limit  int
	}{
		{patterns.EnergyProductionKeywords(), 2},
		{patterns.TimeKeywords, 1},
		{patterns.WeatherKeywords, 1},
		{patterns.PerformanceKeywords, 1},
	}

	var candidates []string
	for _, pool := range pools {
		taken := 0
		for _, h := range headers {
			if taken >= pool.limit {
				break
			}
			if h != "" && patterns.MatchesAny(h, pool.family) {
				candidates = append(candidates, h)
				taken++
			}
		}
	}

	seen := make(map[string]bool, len(candidates))
	var fields []string
	for _, c := range candidates {
		if seen[c] {
			continue
		}
		seen[c] = true
		fields = append(fields, c)
		if len(fields) == 5 {
			break
		}
	}
	return fields
}

func domainInsights(profile *patterns.Profile) models.DomainInsights {
	insights := models.DomainInsights{
		MaintenancePatterns: []string{},
		PerformanceMetrics:  []string{},
		PeakProductionTimes: []string{},
		WeatherFactors:      []string{},
	}
	if profile.HasTimeData {
		if profile.HasEnergyData {
			insights.PeakProductionTimes = append(insights.PeakProductionTimes, peakWindowsWidened...)
		} else {
			insights.PeakProductionTimes = append(insights.PeakProductionTimes, peakWindowsBase...)
		}
	}
	if profile.HasWeatherData {
		insights.WeatherFactors = append(insights.WeatherFactors, weatherFactorsPool...)
	}
	return insights
}
