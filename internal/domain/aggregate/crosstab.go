package aggregate

import (
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/samber/lo"
)

// PairCount is the number of rows holding a (primary, secondary) pair.
type PairCount struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Count     int    `json:"count"`
}

// CrossTab counts rows per pair of values from two columns.
type CrossTab struct {
	PrimaryColumn   string      `json:"primary_column"`
	SecondaryColumn string      `json:"secondary_column"`
	Rows            []string    `json:"rows"`
	Columns         []string    `json:"columns"`
	Total           int         `json:"total"`
	Pairs           []PairCount `json:"pairs"`
}

// Count returns the count for a pair, zero when the pair never occurs.
func (c CrossTab) Count(primary, secondary string) int {
	p, _ := lo.Find(c.Pairs, func(p PairCount) bool {
		return p.Primary == primary && p.Secondary == secondary
	})
	return p.Count
}

type pairKey struct{ primary, secondary string }

// CrossTabulate groups rows by two columns and counts each pair that
// occurs. Pairs, row labels and column labels keep first-appearance order.
func CrossTabulate(t *participant.Table, primary, secondary string) (CrossTab, error) {
	first, err := categories(t, primary)
	if err != nil {
		return CrossTab{}, err
	}
	second, err := categories(t, secondary)
	if err != nil {
		return CrossTab{}, err
	}
	if len(first) == 0 {
		return CrossTab{}, ErrEmptyTable
	}

	keys := lo.Map(first, func(p string, i int) pairKey { return pairKey{p, second[i]} })
	groups := lo.GroupBy(keys, func(k pairKey) pairKey { return k })

	return CrossTab{
		PrimaryColumn:   primary,
		SecondaryColumn: secondary,
		Rows:            lo.Uniq(first),
		Columns:         lo.Uniq(second),
		Total:           len(first),
		Pairs: lo.Map(lo.Uniq(keys), func(k pairKey, _ int) PairCount {
			return PairCount{Primary: k.primary, Secondary: k.secondary, Count: len(groups[k])}
		}),
	}, nil
}
