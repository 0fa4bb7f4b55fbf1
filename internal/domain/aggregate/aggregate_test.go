package aggregate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/participant"
	. "github.com/smartystreets/goconvey/convey"
)

func table(t *testing.T, csv string) *participant.Table {
	t.Helper()
	tbl, err := participant.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	return tbl
}

func TestDistribute(t *testing.T) {
	Convey("Given the three-participant example", t, func() {
		tbl := table(t, "ID,Country,Ethnicity\n1,UK,White\n2,UK,Asian\n3,France,White\n")

		Convey("When distributing by country", func() {
			d, err := aggregate.Distribute(tbl, "Country")

			Convey("Then UK should count 2 and France 1", func() {
				So(err, ShouldBeNil)
				So(d.Counts, ShouldResemble, []aggregate.Count{
					{Category: "UK", Count: 2},
					{Category: "France", Count: 1},
				})
				So(d.Lookup("UK"), ShouldEqual, 2)
				So(d.Lookup("Spain"), ShouldEqual, 0)
			})
		})

		Convey("When computing the non-White percentage", func() {
			pct, err := aggregate.PercentNotEqual(tbl, "Ethnicity", "White")

			Convey("Then one of three should truncate to 33", func() {
				So(err, ShouldBeNil)
				So(pct, ShouldEqual, 33)
			})
		})
	})

	Convey("Given a column with blank cells", t, func() {
		tbl := table(t, "Country,Ethnicity\nUK,White\n,White\nUK,\n ,Black\n")

		Convey("When distributing", func() {
			d, err := aggregate.Distribute(tbl, "Country")

			Convey("Then blanks should be grouped under Unknown", func() {
				So(err, ShouldBeNil)
				So(d.Lookup(aggregate.Unknown), ShouldEqual, 2)
			})

			Convey("And counts should sum to the row count", func() {
				sum := 0
				for _, c := range d.Counts {
					sum += c.Count
				}
				So(sum, ShouldEqual, tbl.Len())
				So(d.Total, ShouldEqual, tbl.Len())
			})
		})

		Convey("When computing the non-reference percentage", func() {
			pct, err := aggregate.PercentNotEqual(tbl, "Ethnicity", "White")

			Convey("Then blanks should count as differing from the reference", func() {
				So(err, ShouldBeNil)
				So(pct, ShouldEqual, 50)
			})
		})
	})

	Convey("Given uniform ethnicity tables", t, func() {
		Convey("When every row equals the reference", func() {
			pct, err := aggregate.PercentNotEqual(table(t, "Ethnicity\nWhite\nWhite\n"), "Ethnicity", "White")
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 0)
		})

		Convey("When no row equals the reference", func() {
			pct, err := aggregate.PercentNotEqual(table(t, "Ethnicity\nAsian\nBlack\nMixed\n"), "Ethnicity", "White")
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 100)
		})
	})

	Convey("Given an empty table", t, func() {
		tbl := table(t, "Country,Ethnicity\n")

		Convey("Then every metric should fail with ErrEmptyTable", func() {
			_, err := aggregate.Distribute(tbl, "Country")
			So(errors.Is(err, aggregate.ErrEmptyTable), ShouldBeTrue)

			_, err = aggregate.PercentNotEqual(tbl, "Ethnicity", "White")
			So(errors.Is(err, aggregate.ErrEmptyTable), ShouldBeTrue)

			_, err = aggregate.PercentIn(tbl, "Ethnicity", []string{"White"})
			So(errors.Is(err, participant.ErrEmptyTable), ShouldBeTrue)
		})
	})

	Convey("Given a table without the requested column", t, func() {
		_, err := aggregate.Distribute(table(t, "Country\nUK\n"), "Ethnicity")

		Convey("Then it should fail with ErrMissingColumn", func() {
			So(errors.Is(err, participant.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestCrossTabulate(t *testing.T) {
	Convey("Given schools and confidence levels", t, func() {
		tbl := table(t, `School,Confidence
Northfield,Increased
Northfield,No change
Southgate,Increased
Northfield,Increased
Southgate,Greatly increased
`)

		Convey("When cross tabulating", func() {
			ct, err := aggregate.CrossTabulate(tbl, "School", "Confidence")

			Convey("Then each occurring pair should be counted once", func() {
				So(err, ShouldBeNil)
				So(ct.Pairs, ShouldResemble, []aggregate.PairCount{
					{Primary: "Northfield", Secondary: "Increased", Count: 2},
					{Primary: "Northfield", Secondary: "No change", Count: 1},
					{Primary: "Southgate", Secondary: "Increased", Count: 1},
					{Primary: "Southgate", Secondary: "Greatly increased", Count: 1},
				})
				So(ct.Rows, ShouldResemble, []string{"Northfield", "Southgate"})
				So(ct.Columns, ShouldResemble, []string{"Increased", "No change", "Greatly increased"})
				So(ct.Count("Southgate", "No change"), ShouldEqual, 0)
				So(ct.Total, ShouldEqual, 5)
			})
		})

		Convey("When computing the increased-confidence percentage", func() {
			pct, err := aggregate.PercentIn(tbl, "Confidence", []string{"Increased", "Greatly increased"})

			Convey("Then four of five should be 80", func() {
				So(err, ShouldBeNil)
				So(pct, ShouldEqual, 80)
			})
		})

		Convey("When no value is in the allow-list", func() {
			pct, err := aggregate.PercentIn(tbl, "Confidence", []string{"Decreased"})
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 0)
		})

		Convey("When every value is in the allow-list", func() {
			pct, err := aggregate.PercentIn(tbl, "Confidence", []string{"Increased", "No change", "Greatly increased"})
			So(err, ShouldBeNil)
			So(pct, ShouldEqual, 100)
		})
	})

	Convey("Given an empty table", t, func() {
		_, err := aggregate.CrossTabulate(table(t, "School,Confidence\n"), "School", "Confidence")
		So(errors.Is(err, aggregate.ErrEmptyTable), ShouldBeTrue)
	})

	Convey("Given a table without the confidence column", t, func() {
		_, err := aggregate.CrossTabulate(table(t, "School\nNorthfield\n"), "School", "Confidence")
		So(errors.Is(err, participant.ErrMissingColumn), ShouldBeTrue)
	})
}

func TestAssessSkills(t *testing.T) {
	areas := []aggregate.SkillArea{aggregate.NewSkillArea("Interview")}

	Convey("Given scores at the top and bottom of the scale", t, func() {
		tbl := table(t, "Interview Before,Interview After\n1,5\n1,5\n1,5\n")

		Convey("When assessing", func() {
			res, err := aggregate.AssessSkills(tbl, areas)

			Convey("Then all-1 should map to 20 and all-5 to 100", func() {
				So(err, ShouldBeNil)
				So(res, ShouldHaveLength, 1)
				So(res[0].Before, ShouldEqual, 20.0)
				So(res[0].After, ShouldEqual, 100.0)
				So(res[0].Increase, ShouldEqual, 80.0)
			})
		})
	})

	Convey("Given scores that drop after the programme", t, func() {
		tbl := table(t, "Interview Before,Interview After\n4,3\n5,3\n4,2\n")

		Convey("When assessing", func() {
			res, err := aggregate.AssessSkills(tbl, areas)

			Convey("Then the increase should be negative and equal After minus Before", func() {
				So(err, ShouldBeNil)
				So(res[0].Before, ShouldEqual, 86.7)
				So(res[0].After, ShouldEqual, 53.3)
				So(res[0].Increase, ShouldAlmostEqual, res[0].After-res[0].Before, 1e-9)
				So(res[0].Increase, ShouldBeLessThan, 0)
			})
		})
	})

	Convey("Given all four default areas", t, func() {
		tbl := table(t, `Career Awareness Before,Career Awareness After,Presentation Before,Presentation After,Interview Before,Interview After,CV Development Before,CV Development After
2,4,3,3,1,2,5,5
3,5,3,4,2,2,4,5
`)

		Convey("When assessing", func() {
			res, err := aggregate.AssessSkills(tbl, aggregate.DefaultSkillAreas())

			Convey("Then results should follow the caller's order", func() {
				So(err, ShouldBeNil)
				So(res, ShouldHaveLength, 4)
				names := []string{res[0].Area, res[1].Area, res[2].Area, res[3].Area}
				So(names, ShouldResemble, aggregate.DefaultSkillNames())
			})

			Convey("And every increase should be After minus Before", func() {
				for _, r := range res {
					So(r.Increase, ShouldAlmostEqual, r.After-r.Before, 1e-9)
				}
				So(res[0].Before, ShouldEqual, 50.0)
				So(res[0].After, ShouldEqual, 90.0)
				So(res[1].Increase, ShouldEqual, 10.0)
			})
		})
	})

	Convey("Given a score column with a non-numeric value", t, func() {
		tbl := table(t, "Interview Before,Interview After\n3,4\nn/a,4\n")
		_, err := aggregate.AssessSkills(tbl, areas)

		Convey("Then it should fail with ErrNonNumericValue", func() {
			So(errors.Is(err, participant.ErrNonNumericValue), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Interview Before")
		})
	})

	Convey("Given score columns holding non-finite values", t, func() {
		for _, cell := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity", "1e400"} {
			tbl := table(t, "Interview Before,Interview After\n3,4\n"+cell+",4\n")
			res, err := aggregate.AssessSkills(tbl, areas)

			So(res, ShouldBeNil)
			So(errors.Is(err, participant.ErrNonNumericValue), ShouldBeTrue)

			var cellErr *participant.CellError
			So(errors.As(err, &cellErr), ShouldBeTrue)
			So(cellErr.Row, ShouldEqual, 2)
			So(cellErr.Value, ShouldEqual, cell)
		}
	})

	Convey("Given finite scores whose percentage overflows", t, func() {
		tbl := table(t, "Interview Before,Interview After\n1e308,4\n1e308,4\n")
		_, err := aggregate.AssessSkills(tbl, areas)

		So(errors.Is(err, participant.ErrNonNumericValue), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "Interview Before")
	})

	Convey("Given an empty score table", t, func() {
		_, err := aggregate.AssessSkills(table(t, "Interview Before,Interview After\n"), areas)
		So(errors.Is(err, aggregate.ErrEmptyTable), ShouldBeTrue)
	})

	Convey("Given a table missing the after column", t, func() {
		_, err := aggregate.AssessSkills(table(t, "Interview Before\n3\n"), areas)
		So(errors.Is(err, participant.ErrMissingColumn), ShouldBeTrue)
	})
}

func TestPercentHelpers(t *testing.T) {
	Convey("Given the percentage helpers", t, func() {
		Convey("Percent should truncate without float drift", func() {
			p, err := aggregate.Percent(29, 100)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 29)
			p, _ = aggregate.Percent(2, 3)
			So(p, ShouldEqual, 66)
		})

		Convey("Percent of a zero total should be an empty-table error", func() {
			_, err := aggregate.Percent(0, 0)
			So(errors.Is(err, aggregate.ErrEmptyTable), ShouldBeTrue)
		})

		Convey("ScalePercent should map the scale ends exactly", func() {
			So(aggregate.ScalePercent(5), ShouldEqual, 100.0)
			So(aggregate.ScalePercent(1), ShouldEqual, 20.0)
		})

		Convey("Round1 should keep one decimal", func() {
			So(aggregate.Round1(66.66), ShouldEqual, 66.7)
			So(aggregate.Round1(-16.74), ShouldEqual, -16.7)
		})
	})
}
