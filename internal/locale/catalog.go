// internal/locale/catalog.go

// Package locale renders category tags and structured facts produced by the
// engine into display text. The engine itself stays locale-agnostic: it
// emits models.Category values, aspect lists, and insight kinds, and the
// selected Catalog turns them into prose.
package locale

import "solar-insight/internal/models"

// Aspect names one detected data dimension for description rendering.
type Aspect string

const (
	AspectEnergy      Aspect = "energy"
	AspectWeather     Aspect = "weather"
	AspectTime        Aspect = "time"
	AspectLocation    Aspect = "location"
	AspectPerformance Aspect = "performance"
)

// InsightKind identifies one of the fixed rule-based insights.
type InsightKind string

const (
	InsightTimeSeriesTrend        InsightKind = "time_series_trend"
	InsightWeatherCorrelation     InsightKind = "weather_correlation"
	InsightPerformanceDegradation InsightKind = "performance_degradation"
	InsightStatisticalModeling    InsightKind = "statistical_modeling"
)

// FilterGroup identifies one of the fixed suggested-filter groups.
type FilterGroup string

const (
	FilterGroupTime    FilterGroup = "time"
	FilterGroupEnergy  FilterGroup = "energy"
	FilterGroupWeather FilterGroup = "weather"
)

// DescriptionFacts carries everything a catalog needs to render a dataset
// description.
type DescriptionFacts struct {
	RecordCount int
	ColumnCount int
	Aspects     []Aspect
	// CorrelationReady is set when both energy and weather data are present,
	// enabling the weather-versus-generation correlation clause.
	CorrelationReady bool
}

// Catalog renders engine output for one display language.
type Catalog interface {
	Title(category models.Category, sheetName string) string
	Description(facts DescriptionFacts) string
	Insight(kind InsightKind) string
	FilterDescription(group FilterGroup, column string) string
}

// ForTag returns the catalog for a BCP 47-ish language tag, defaulting to
// English for unknown tags.
func ForTag(tag string) Catalog {
	switch tag {
	case "ko", "ko-KR":
		return Korean{}
	default:
		return English{}
	}
}
