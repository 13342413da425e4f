// internal/locale/english.go
package locale

import (
	"fmt"
	"strings"

	"solar-insight/internal/models"
)

// English is the default catalog.
type English struct{}

var _ Catalog = English{}

func (English) Title(category models.Category, sheetName string) string {
	switch category {
	case models.CategoryGeneration:
		return "Generation Data"
	case models.CategoryPerformance:
		return "Performance Monitoring Data"
	case models.CategoryEnvironmental:
		return "Environmental Data"
	default:
		return fmt.Sprintf("%s Data", sheetName)
	}
}

var englishAspects = map[Aspect]string{
	AspectEnergy:      "energy",
	AspectWeather:     "environment",
	AspectTime:        "time",
	AspectLocation:    "location",
	AspectPerformance: "performance",
}

func (English) Description(facts DescriptionFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dataset with %d records across %d columns.", facts.RecordCount, facts.ColumnCount)
	if len(facts.Aspects) > 0 {
		names := make([]string, 0, len(facts.Aspects))
		for _, a := range facts.Aspects {
			names = append(names, englishAspects[a])
		}
		fmt.Fprintf(&b, " Contains %s data.", strings.Join(names, ", "))
	}
	if facts.CorrelationReady {
		b.WriteString(" Supports correlation analysis between weather factors and generation.")
	}
	return b.String()
}

var englishInsights = map[InsightKind]string{
	InsightTimeSeriesTrend:        "Time-series trend analysis is possible.",
	InsightWeatherCorrelation:     "Correlation analysis between weather and generation is possible.",
	InsightPerformanceDegradation: "Performance degradation analysis is possible.",
	InsightStatisticalModeling:    "Statistical and predictive modeling is possible.",
}

func (English) Insight(kind InsightKind) string {
	return englishInsights[kind]
}

func (English) FilterDescription(group FilterGroup, column string) string {
	switch group {
	case FilterGroupTime:
		return fmt.Sprintf("Narrow the analysis window by %s", column)
	case FilterGroupEnergy:
		return fmt.Sprintf("Filter by generation value range on %s", column)
	case FilterGroupWeather:
		return fmt.Sprintf("Filter by weather conditions on %s", column)
	default:
		return fmt.Sprintf("Filter by %s", column)
	}
}
