package chart_test

import (
	"testing"

	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/chart"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPie(t *testing.T) {
	Convey("Given a country distribution", t, func() {
		d := aggregate.Distribution{
			Column: "Country",
			Total:  3,
			Counts: []aggregate.Count{{Category: "UK", Count: 2}, {Category: "France", Count: 1}},
		}

		Convey("When building a pie chart", func() {
			c := chart.Pie("countries", "Participants by country", d)

			Convey("Then slices should follow the distribution order", func() {
				So(c.Kind, ShouldEqual, chart.KindPie)
				So(c.Categories, ShouldResemble, []string{"UK", "France"})
				So(c.Series, ShouldHaveLength, 1)
				So(c.Series[0].Values, ShouldResemble, []float64{2, 1})
				So(c.Max(), ShouldEqual, 2.0)
			})
		})
	})
}

func TestGroupedBar(t *testing.T) {
	Convey("Given a school by confidence cross tabulation", t, func() {
		ct := aggregate.CrossTab{
			PrimaryColumn:   "School",
			SecondaryColumn: "Confidence",
			Rows:            []string{"Northfield", "Southgate"},
			Columns:         []string{"Increased", "No change"},
			Total:           4,
			Pairs: []aggregate.PairCount{
				{Primary: "Northfield", Secondary: "Increased", Count: 2},
				{Primary: "Northfield", Secondary: "No change", Count: 1},
				{Primary: "Southgate", Secondary: "Increased", Count: 1},
			},
		}

		Convey("When building a grouped bar chart", func() {
			c := chart.GroupedBar("confidence", "Confidence by school", ct)

			Convey("Then there should be one series per confidence level", func() {
				So(c.Kind, ShouldEqual, chart.KindGroupedBar)
				So(c.Categories, ShouldResemble, []string{"Northfield", "Southgate"})
				So(c.Series, ShouldHaveLength, 2)
				So(c.Series[0].Name, ShouldEqual, "Increased")
				So(c.Series[0].Values, ShouldResemble, []float64{2, 1})
			})

			Convey("And missing pairs should be zero", func() {
				So(c.Series[1].Values, ShouldResemble, []float64{1, 0})
			})

			Convey("And series should take distinct palette colors", func() {
				So(c.Series[0].Color, ShouldNotEqual, c.Series[1].Color)
			})
		})
	})
}

func TestSkillBars(t *testing.T) {
	Convey("Given skill results", t, func() {
		res := []aggregate.SkillResult{
			{Area: "Interview", Before: 40, After: 80, Increase: 40},
			{Area: "Presentation", Before: 60, After: 50, Increase: -10},
		}

		Convey("When building the skill chart", func() {
			c := chart.SkillBars("skills", "Skills", res)

			Convey("Then before and after series should align with areas", func() {
				So(c.Categories, ShouldResemble, []string{"Interview", "Presentation"})
				So(c.Series[0].Name, ShouldEqual, "Before")
				So(c.Series[0].Values, ShouldResemble, []float64{40, 60})
				So(c.Series[1].Values, ShouldResemble, []float64{80, 50})
				So(c.YMax, ShouldEqual, 100.0)
			})
		})
	})

	Convey("Color should wrap around the palette", t, func() {
		So(chart.Color(len(chart.Palette)), ShouldEqual, chart.Palette[0])
	})
}
