// internal/models/sheet.go
package models

// SheetDescriptor is the ingestion-layer view of one worksheet. Row 0 of
// SampleRows is the header row; RowCount is the total number of rows in the
// sheet including the header, which may be larger than the sampled preview.
type SheetDescriptor struct {
	Name        string   `json:"name"`
	Headers     []string `json:"headers"`
	SampleRows  [][]any  `json:"sampleRows"`
	RowCount    int      `json:"rowCount"`
	ColumnCount int      `json:"columnCount"`
}

// DataRowCount returns the number of sampled data rows (header excluded).
func (s *SheetDescriptor) DataRowCount() int {
	if len(s.SampleRows) == 0 {
		return 0
	}
	return len(s.SampleRows) - 1
}
