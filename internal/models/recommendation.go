// internal/models/recommendation.go
package models

// Category is a locale-independent tag for the kind of dataset a sheet holds.
// Display titles are rendered from it by the locale catalogs.
type Category string

const (
	CategoryGeneration    Category = "GENERATION"
	CategoryPerformance   Category = "PERFORMANCE"
	CategoryEnvironmental Category = "ENVIRONMENTAL"
	CategoryGeneric       Category = "GENERIC"
)

// SuggestedFilter describes one UI filter derived from the recommended fields.
type SuggestedFilter struct {
	Type        string `json:"type"`
	Column      string `json:"column"`
	Description string `json:"description"`
}

// DomainInsights groups PV-specific hints attached to a recommendation.
// MaintenancePatterns and PerformanceMetrics are reserved and currently
// always empty on the rule-based path.
type DomainInsights struct {
	PeakProductionTimes []string `json:"peakProductionTimes"`
	WeatherFactors      []string `json:"weatherFactors"`
	MaintenancePatterns []string `json:"maintenancePatterns"`
	PerformanceMetrics  []string `json:"performanceMetrics"`
}

// Recommendation is the engine's final output. It is always fully formed:
// RecommendedFields holds at most 5 entries, each one verbatim equal to a
// header of the selected sheet, and is non-empty whenever the selected sheet
// has at least one header.
type Recommendation struct {
	SelectedSheet     string            `json:"selectedSheet"`
	Confidence        float64           `json:"confidence"`
	RecommendedFields []string          `json:"recommendedFields"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	Category          Category          `json:"category"`
	Insights          []string          `json:"insights"`
	DomainInsights    DomainInsights    `json:"domainInsights"`
	SuggestedFilters  []SuggestedFilter `json:"suggestedFilters"`
}
