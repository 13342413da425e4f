// internal/engine/patterns/analyzer.go
package patterns

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"solar-insight/internal/models"
)

// Column types inferred from sample values.
const (
	ColumnNumeric = "numeric"
	ColumnEmail   = "email"
	ColumnDate    = "date"
	ColumnText    = "text"
)

// Canonical unit tags, keyed by the lowercase substring that detects them.
// A value like "1200 kWh" hits kw and wh independently; the union is kept.
var energyUnitTags = []struct {
	needle string
	tag    string
}{
	{"kw", "kW"},
	{"mw", "MW"},
	{"wh", "Wh"},
	{"mwh", "MWh"},
}

// Symbolic time-format tags, keyed by the separator that detects them.
// These are string heuristics, not validated parses.
var timeFormatTags = []struct {
	needle string
	tag    string
}{
	{":", "HH:mm"},
	{"-", "YYYY-MM-DD"},
	{"/", "YYYY/MM/DD"},
}

// Profile is the domain-pattern summary of one sheet. It is built once per
// selected sheet and never mutated afterwards.
type Profile struct {
	HasEnergyData      bool
	HasProductionData  bool
	HasWeatherData     bool
	HasTimeData        bool
	HasLocationData    bool
	HasPerformanceData bool

	// EnergyUnits and TimeFormats are deduplicated, in detection order.
	EnergyUnits []string
	TimeFormats []string

	// ColumnTypes maps each non-empty header to numeric/email/date/text,
	// inferred from only the first non-empty sample value of the column.
	// This single-sample heuristic is intentional; see analyzer docs.
	ColumnTypes map[string]string

	RecordCount int
}

// NumericColumnCount returns how many columns were inferred as numeric.
func (p *Profile) NumericColumnCount() int {
	n := 0
	for _, t := range p.ColumnTypes {
		if t == ColumnNumeric {
			n++
		}
	}
	return n
}

// Analyze derives a Profile from the sheet's headers and sampled rows.
// Row 0 of SampleRows is the header row and is excluded from value sampling.
// recordCount is the authoritative total when known (e.g. the full sheet's
// row count); pass 0 or less to fall back to the sampled data-row count.
//
// Column type inference deliberately looks only at the first non-empty
// sample of each column. It is a documented single-sample heuristic, not a
// majority vote.
func Analyze(sheet *models.SheetDescriptor, recordCount int) *Profile {
	profile := &Profile{
		ColumnTypes: make(map[string]string),
	}

	if recordCount > 0 {
		profile.RecordCount = recordCount
	} else {
		profile.RecordCount = sheet.DataRowCount()
	}

	seenUnits := make(map[string]bool)
	seenFormats := make(map[string]bool)

	for i, header := range sheet.Headers {
		if header == "" {
			continue
		}
		lower := strings.ToLower(header)
		samples := columnSamples(sheet.SampleRows, i)

		energyCol := false
		if MatchesAny(lower, EnergyKeywords) {
			profile.HasEnergyData = true
			energyCol = true
		}
		if MatchesAny(lower, ProductionKeywords) {
			profile.HasProductionData = true
			energyCol = true
		}
		if MatchesAny(lower, WeatherKeywords) {
			profile.HasWeatherData = true
		}
		timeCol := MatchesAny(lower, TimeKeywords)
		if timeCol {
			profile.HasTimeData = true
		}
		if MatchesAny(lower, LocationKeywords) {
			profile.HasLocationData = true
		}
		if MatchesAny(lower, PerformanceKeywords) {
			profile.HasPerformanceData = true
		}

		if energyCol {
			for _, sample := range samples {
				lowerSample := strings.ToLower(sample)
				for _, unit := range energyUnitTags {
					if strings.Contains(lowerSample, unit.needle) && !seenUnits[unit.tag] {
						seenUnits[unit.tag] = true
						profile.EnergyUnits = append(profile.EnergyUnits, unit.tag)
					}
				}
			}
		}

		if timeCol {
			for _, sample := range samples {
				for _, format := range timeFormatTags {
					if strings.Contains(sample, format.needle) && !seenFormats[format.tag] {
						seenFormats[format.tag] = true
						profile.TimeFormats = append(profile.TimeFormats, format.tag)
					}
				}
			}
		}

		if len(samples) > 0 {
			profile.ColumnTypes[header] = inferColumnType(samples[0])
		}
	}

	return profile
}

// columnSamples collects the non-empty stringified values of column i,
// skipping the header row.
func columnSamples(rows [][]any, i int) []string {
	var samples []string
	for r := 1; r < len(rows); r++ {
		if i >= len(rows[r]) {
			continue
		}
		s := cellString(rows[r][i])
		if s != "" {
			samples = append(samples, s)
		}
	}
	return samples
}

func inferColumnType(sample string) string {
	if v, err := strconv.ParseFloat(strings.TrimSpace(sample), 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return ColumnNumeric
	}
	if strings.Contains(sample, "@") {
		return ColumnEmail
	}
	if strings.Contains(sample, "-") && len(sample) >= 8 {
		return ColumnDate
	}
	return ColumnText
}

func cellString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
