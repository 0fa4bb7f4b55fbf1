// Package aggregate computes the report metrics over a participant table:
// category distributions, two-key cross tabulations, share percentages and
// before/after skill self-assessment scores.
//
// Blank categorical cells are grouped under Unknown and count toward every
// total. A blank never equals a reference value and is never part of an
// allow-list.
package aggregate

import (
	"math"
	"strings"

	"github.com/okian/cohort/internal/domain/participant"
	"github.com/samber/lo"
)

// Unknown labels rows whose categorical cell is blank.
const Unknown = "Unknown"

// ScaleMax is the top of the 1-5 self-assessment scale.
const ScaleMax = 5.0

// ErrEmptyTable is returned when a metric needs at least one row.
var ErrEmptyTable = participant.ErrEmptyTable

// Percent returns part/total as a whole percentage, truncated toward zero.
// Integer arithmetic keeps 29 of 100 at 29 rather than 28.
func Percent(part, total int) (int, error) {
	if total <= 0 {
		return 0, ErrEmptyTable
	}
	return part * 100 / total, nil
}

// ScalePercent rescales a mean on the 1-5 scale to 0-100.
func ScalePercent(mean float64) float64 {
	return mean * 100 / ScaleMax
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// categories reads a categorical column and labels blanks as Unknown.
func categories(t *participant.Table, column string) ([]string, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	return lo.Map(vals, func(v string, _ int) string {
		if strings.TrimSpace(v) == "" {
			return Unknown
		}
		return v
	}), nil
}
