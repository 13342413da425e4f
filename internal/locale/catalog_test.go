// internal/locale/catalog_test.go
package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"solar-insight/internal/models"
)

func TestForTag(t *testing.T) {
	assert.IsType(t, Korean{}, ForTag("ko"))
	assert.IsType(t, Korean{}, ForTag("ko-KR"))
	assert.IsType(t, English{}, ForTag("en"))
	assert.IsType(t, English{}, ForTag(""))
	assert.IsType(t, English{}, ForTag("de"))
}

func TestTitles(t *testing.T) {
	tests := []struct {
		catalog  Catalog
		category models.Category
		sheet    string
		expected string
	}{
		{English{}, models.CategoryGeneration, "S", "Generation Data"},
		{English{}, models.CategoryPerformance, "S", "Performance Monitoring Data"},
		{English{}, models.CategoryEnvironmental, "S", "Environmental Data"},
		{English{}, models.CategoryGeneric, "Inventory", "Inventory Data"},
		{Korean{}, models.CategoryGeneration, "S", "발전량 데이터"},
		{Korean{}, models.CategoryGeneric, "재고", "재고 데이터"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.catalog.Title(tt.category, tt.sheet))
	}
}

func TestEnglishDescription(t *testing.T) {
	facts := DescriptionFacts{
		RecordCount:      365,
		ColumnCount:      6,
		Aspects:          []Aspect{AspectEnergy, AspectTime},
		CorrelationReady: false,
	}

	desc := English{}.Description(facts)

	assert.Contains(t, desc, "365 records across 6 columns")
	assert.Contains(t, desc, "energy, time")
	assert.NotContains(t, desc, "correlation")
}

func TestKoreanInsightsComplete(t *testing.T) {
	kinds := []InsightKind{
		InsightTimeSeriesTrend,
		InsightWeatherCorrelation,
		InsightPerformanceDegradation,
		InsightStatisticalModeling,
	}
	for _, kind := range kinds {
		assert.NotEmpty(t, Korean{}.Insight(kind))
		assert.NotEmpty(t, English{}.Insight(kind))
	}
}

func TestFilterDescriptionsMentionColumn(t *testing.T) {
	groups := []FilterGroup{FilterGroupTime, FilterGroupEnergy, FilterGroupWeather}
	for _, catalog := range []Catalog{English{}, Korean{}} {
		for _, group := range groups {
			assert.Contains(t, catalog.FilterDescription(group, "Col_X"), "Col_X")
		}
	}
}
