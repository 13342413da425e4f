// internal/engine/sheetselect/selector.go
package sheetselect

import (
	"strings"

	"solar-insight/internal/models"
)

// Bonus families for sheet scoring. Each family is granted at most once per
// sheet, on substring containment anywhere in the joined lowercased header
// text. Bonuses are additive across families.
var scoreBonuses = []struct {
	keywords []string
	points   int
}{
	{[]string{"energy", "power", "production"}, 30},
	{[]string{"solar", "pv", "panel"}, 25},
	{[]string{"weather", "temperature", "irradiance"}, 20},
	{[]string{"performance", "efficiency", "output"}, 15},
}

// Result identifies the chosen sheet.
type Result struct {
	Sheet      *models.SheetDescriptor
	Index      int
	Score      int
	Confidence float64
}

// Select scores every sheet and returns the best one. Ties keep the earlier
// sheet: the running best is replaced only on strict improvement, so for a
// fixed input order the selection is deterministic. ok is false when no
// sheets were supplied.
func Select(sheets []models.SheetDescriptor) (Result, bool) {
	if len(sheets) == 0 {
		return Result{}, false
	}

	best := Result{Index: -1, Score: -1}
	for i := range sheets {
		score := scoreSheet(&sheets[i], i == 0)
		if score > best.Score {
			best = Result{Sheet: &sheets[i], Index: i, Score: score}
		}
	}

	best.Confidence = float64(best.Score) / 100
	if best.Confidence > 1 {
		best.Confidence = 1
	}
	if best.Confidence < 0 {
		best.Confidence = 0
	}
	return best, true
}

func scoreSheet(sheet *models.SheetDescriptor, first bool) int {
	dataRows := sheet.DataRowCount()
	if dataRows > 10 {
		dataRows = 10
	}
	score := dataRows * 10

	var nonEmpty []string
	for _, h := range sheet.Headers {
		if h != "" {
			nonEmpty = append(nonEmpty, h)
		}
	}
	score += len(nonEmpty) * 5

	headerText := strings.ToLower(strings.Join(nonEmpty, " "))
	for _, bonus := range scoreBonuses {
		for _, kw := range bonus.keywords {
			if strings.Contains(headerText, kw) {
				score += bonus.points
				break
			}
		}
	}

	if first {
		score += 10
	}
	return score
}
