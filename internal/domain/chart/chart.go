// Package chart turns aggregation results into declarative chart
// descriptions that a renderer or the dashboard can draw.
package chart

import (
	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/samber/lo"
)

// Kind selects how a chart is drawn.
type Kind string

// Supported chart kinds.
const (
	KindPie        Kind = "pie"
	KindBar        Kind = "bar"
	KindGroupedBar Kind = "grouped_bar"
)

// Palette is the fixed series color order.
var Palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Series is one named run of values aligned with Chart.Categories.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

// Chart describes one chart independent of how it is drawn.
type Chart struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title"`
	XLabel     string   `json:"x_label,omitempty"`
	YLabel     string   `json:"y_label,omitempty"`
	Categories []string `json:"categories"`
	Series     []Series `json:"series"`
	// YMax fixes the top of the value axis when non-zero.
	YMax float64 `json:"y_max,omitempty"`
}

// Max returns the largest value across all series.
func (c Chart) Max() float64 {
	return lo.Max(lo.FlatMap(c.Series, func(s Series, _ int) []float64 { return s.Values }))
}

// Color returns the palette color for index i.
func Color(i int) string { return Palette[i%len(Palette)] }

// Pie draws a distribution as slices, one per category.
func Pie(id, title string, d aggregate.Distribution) Chart {
	return Chart{
		ID:         id,
		Kind:       KindPie,
		Title:      title,
		Categories: lo.Map(d.Counts, func(c aggregate.Count, _ int) string { return c.Category }),
		Series: []Series{{
			Name:   d.Column,
			Color:  Color(0),
			Values: lo.Map(d.Counts, func(c aggregate.Count, _ int) float64 { return float64(c.Count) }),
		}},
	}
}

// GroupedBar draws a cross tabulation with one bar group per primary value
// and one series per secondary value. Pairs that never occur are zero.
func GroupedBar(id, title string, ct aggregate.CrossTab) Chart {
	series := lo.Map(ct.Columns, func(col string, i int) Series {
		return Series{
			Name:  col,
			Color: Color(i),
			Values: lo.Map(ct.Rows, func(row string, _ int) float64 {
				return float64(ct.Count(row, col))
			}),
		}
	})
	return Chart{
		ID:         id,
		Kind:       KindGroupedBar,
		Title:      title,
		XLabel:     ct.PrimaryColumn,
		YLabel:     "Participants",
		Categories: ct.Rows,
		Series:     series,
	}
}

// SkillBars draws before and after percentages side by side per area.
func SkillBars(id, title string, results []aggregate.SkillResult) Chart {
	return Chart{
		ID:         id,
		Kind:       KindBar,
		Title:      title,
		XLabel:     "Skill area",
		YLabel:     "Self-assessment (%)",
		Categories: lo.Map(results, func(r aggregate.SkillResult, _ int) string { return r.Area }),
		Series: []Series{
			{
				Name:   "Before",
				Color:  Color(0),
				Values: lo.Map(results, func(r aggregate.SkillResult, _ int) float64 { return r.Before }),
			},
			{
				Name:   "After",
				Color:  Color(1),
				Values: lo.Map(results, func(r aggregate.SkillResult, _ int) float64 { return r.After }),
			},
		},
		YMax: 100,
	}
}
