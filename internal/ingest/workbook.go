// internal/ingest/workbook.go

// Package ingest turns raw spreadsheet bytes into the ordered sheet
// descriptors the engine consumes. Only the first rows of each sheet are
// sampled; RowCount still reflects the full sheet.
package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"solar-insight/internal/common/logger"
	"solar-insight/internal/models"
)

// previewRows is the sample size per sheet, header row included.
const previewRows = 11

type Parser struct {
	logger logger.Logger
}

func NewParser(log logger.Logger) *Parser {
	return &Parser{logger: log.With(map[string]interface{}{"component": "workbook-parser"})}
}

// ParseWorkbook reads an xlsx workbook and produces one descriptor per
// worksheet, in file order. Row 0 becomes the header list with empty cells
// kept as ""; the preview holds the first min(previewRows, rowCount) rows.
// Sheets without a single row are skipped.
func (p *Parser) ParseWorkbook(r io.Reader) ([]models.SheetDescriptor, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []models.SheetDescriptor
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			p.logger.Warn("failed to read sheet, skipping", map[string]interface{}{
				"sheet": name,
				"error": err.Error(),
			})
			continue
		}
		if len(rows) == 0 {
			p.logger.Debug("empty sheet skipped", map[string]interface{}{"sheet": name})
			continue
		}

		headers := append([]string{}, rows[0]...)
		columnCount := len(headers)

		limit := previewRows
		if len(rows) < limit {
			limit = len(rows)
		}
		preview := make([][]any, 0, limit)
		for i := 0; i < limit; i++ {
			preview = append(preview, padRow(rows[i], columnCount))
		}

		sheets = append(sheets, models.SheetDescriptor{
			Name:        name,
			Headers:     headers,
			SampleRows:  preview,
			RowCount:    len(rows),
			ColumnCount: columnCount,
		})
	}

	p.logger.Info("workbook parsed", map[string]interface{}{"sheets": len(sheets)})
	return sheets, nil
}

// padRow normalizes a possibly ragged row to the header width. Excess cells
// beyond the header width are dropped; missing ones become "".
func padRow(row []string, width int) []any {
	out := make([]any, width)
	for i := 0; i < width; i++ {
		if i < len(row) {
			out[i] = row[i]
		} else {
			out[i] = ""
		}
	}
	return out
}
