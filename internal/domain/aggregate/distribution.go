package aggregate

import (
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/samber/lo"
)

// Count is the number of rows holding one category value.
type Count struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Distribution counts rows per distinct value of one column.
type Distribution struct {
	Column string  `json:"column"`
	Total  int     `json:"total"`
	Counts []Count `json:"counts"`
}

// Lookup returns the count for a category, zero when absent.
func (d Distribution) Lookup(category string) int {
	c, _ := lo.Find(d.Counts, func(c Count) bool { return c.Category == category })
	return c.Count
}

// Distribute counts rows per distinct value of column, in order of first
// appearance.
func Distribute(t *participant.Table, column string) (Distribution, error) {
	vals, err := categories(t, column)
	if err != nil {
		return Distribution{}, err
	}
	if len(vals) == 0 {
		return Distribution{}, ErrEmptyTable
	}
	groups := lo.GroupBy(vals, func(v string) string { return v })
	return Distribution{
		Column: column,
		Total:  len(vals),
		Counts: lo.Map(lo.Uniq(vals), func(v string, _ int) Count {
			return Count{Category: v, Count: len(groups[v])}
		}),
	}, nil
}

// PercentNotEqual returns the truncated percentage of rows whose value in
// column differs from reference.
func PercentNotEqual(t *participant.Table, column, reference string) (int, error) {
	vals, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	other := lo.CountBy(vals, func(v string) bool { return v != reference })
	return Percent(other, len(vals))
}

// PercentIn returns the truncated percentage of rows whose value in column
// is one of allow.
func PercentIn(t *participant.Table, column string, allow []string) (int, error) {
	vals, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	in := lo.CountBy(vals, func(v string) bool { return v != "" && lo.Contains(allow, v) })
	return Percent(in, len(vals))
}
