// internal/engine/aigateway/models.go
package aigateway

import (
	"solar-insight/internal/engine/patterns"
	"solar-insight/internal/models"
)

// Input is the request-scoped material the prompt is built from.
type Input struct {
	SheetName   string
	Headers     []string
	SampleRows  [][]any
	RecordCount int
	ColumnCount int
	Profile     *patterns.Profile
}

// Result is a successfully parsed AI analysis. A Result is never partially
// populated from a failed exchange; on any failure Execute returns an error
// and no Result at all.
type Result struct {
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	Insights          []string              `json:"insights"`
	RecommendedFields []string              `json:"recommendedFields"`
	DomainInsights    models.DomainInsights `json:"pvSolarInsights"`
}
