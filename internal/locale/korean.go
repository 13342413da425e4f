// internal/locale/korean.go
package locale

import (
	"fmt"
	"strings"

	"solar-insight/internal/models"
)

// Korean mirrors the display text of the original operator UI.
type Korean struct{}

var _ Catalog = Korean{}

func (Korean) Title(category models.Category, sheetName string) string {
	switch category {
	case models.CategoryGeneration:
		return "발전량 데이터"
	case models.CategoryPerformance:
		return "성능 모니터링 데이터"
	case models.CategoryEnvironmental:
		return "환경 데이터"
	default:
		return fmt.Sprintf("%s 데이터", sheetName)
	}
}

var koreanAspects = map[Aspect]string{
	AspectEnergy:      "에너지",
	AspectWeather:     "환경",
	AspectTime:        "시간",
	AspectLocation:    "위치",
	AspectPerformance: "성능",
}

func (Korean) Description(facts DescriptionFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d개 레코드, %d개 컬럼의 데이터셋입니다.", facts.RecordCount, facts.ColumnCount)
	if len(facts.Aspects) > 0 {
		names := make([]string, 0, len(facts.Aspects))
		for _, a := range facts.Aspects {
			names = append(names, koreanAspects[a])
		}
		fmt.Fprintf(&b, " %s 데이터를 포함합니다.", strings.Join(names, ", "))
	}
	if facts.CorrelationReady {
		b.WriteString(" 기상 요인과 발전량의 상관관계 분석이 가능합니다.")
	}
	return b.String()
}

var koreanInsights = map[InsightKind]string{
	InsightTimeSeriesTrend:        "시계열 추세 분석이 가능합니다.",
	InsightWeatherCorrelation:     "날씨와 발전량의 상관관계 분석이 가능합니다.",
	InsightPerformanceDegradation: "성능 저하 분석이 가능합니다.",
	InsightStatisticalModeling:    "통계 및 예측 모델링이 가능합니다.",
}

func (Korean) Insight(kind InsightKind) string {
	return koreanInsights[kind]
}

func (Korean) FilterDescription(group FilterGroup, column string) string {
	switch group {
	case FilterGroupTime:
		return fmt.Sprintf("%s 기준으로 분석 기간을 좁힙니다", column)
	case FilterGroupEnergy:
		return fmt.Sprintf("%s 기준으로 발전량 범위를 필터링합니다", column)
	case FilterGroupWeather:
		return fmt.Sprintf("%s 기준으로 기상 조건을 필터링합니다", column)
	default:
		return fmt.Sprintf("%s 기준으로 필터링합니다", column)
	}
}
