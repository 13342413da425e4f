// internal/engine/patterns/keywords.go
package patterns

import "strings"

// Keyword families used for header classification. Matching is lowercase
// substring containment; each family carries English and Korean terms
// because operators upload both kinds of sheets. Tests pin these lists, so
// additions here are deliberate API changes, not tuning.
var (
	EnergyKeywords      = []string{"energy", "power", "kwh", "kw", "전력", "에너지", "출력"}
	ProductionKeywords  = []string{"production", "generation", "yield", "발전", "생산", "발전량"}
	WeatherKeywords     = []string{"weather", "temperature", "irradiance", "humidity", "cloud", "날씨", "기온", "온도", "일사", "습도"}
	TimeKeywords        = []string{"time", "date", "timestamp", "hour", "month", "시간", "날짜", "일자", "시각", "월"}
	LocationKeywords    = []string{"location", "site", "region", "plant", "address", "위치", "지역", "발전소", "주소"}
	PerformanceKeywords = []string{"performance", "efficiency", "ratio", "availability", "성능", "효율", "가동률"}
)

// EnergyProductionKeywords is the combined pool used by field recommendation
// and filter derivation, where energy and production columns rank together.
func EnergyProductionKeywords() []string {
	out := make([]string, 0, len(EnergyKeywords)+len(ProductionKeywords))
	out = append(out, EnergyKeywords...)
	out = append(out, ProductionKeywords...)
	return out
}

// MatchesAny reports whether the lowercased text contains any keyword of the
// family.
func MatchesAny(text string, family []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range family {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
