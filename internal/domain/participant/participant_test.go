package participant_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/cohort/internal/domain/participant"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleCSV = `ID,First Name,Last Name,Country,Ethnicity,School,Confidence,Email,Career Awareness Before,Career Awareness After
1,Ada,Lovelace,UK,White,Northfield,Increased,ada@example.com,2,4
2,Alan,Turing,UK,Asian, Northfield ,No change,alan@example.com,3,5
3,Grace,Hopper,France,White,Southgate,Increased,grace@example.com,1,3
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	Convey("Given a participants file on disk", t, func() {
		ctx := context.Background()
		path := writeTemp(t, sampleCSV)

		Convey("When loading it", func() {
			tbl, err := participant.Load(ctx, path)

			Convey("Then every data row should be available", func() {
				So(err, ShouldBeNil)
				So(tbl.Len(), ShouldEqual, 3)
				So(tbl.HasColumn("Country"), ShouldBeTrue)
				So(tbl.Headers()[0], ShouldEqual, "ID")
			})

			Convey("And categorical values should be trimmed", func() {
				schools, err := tbl.Column(participant.ColumnSchool)
				So(err, ShouldBeNil)
				So(schools, ShouldResemble, []string{"Northfield", "Northfield", "Southgate"})
			})
		})

		Convey("When the file does not exist", func() {
			_, err := participant.Load(ctx, filepath.Join(t.TempDir(), "missing.csv"))

			Convey("Then it should fail with ErrFileNotFound", func() {
				So(errors.Is(err, participant.ErrFileNotFound), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := participant.Load(cctx, path)

			Convey("Then it should return the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestRead(t *testing.T) {
	Convey("Given raw CSV input", t, func() {
		Convey("When the input is empty", func() {
			_, err := participant.Read(strings.NewReader(""))

			Convey("Then it should fail with ErrEmptyTable", func() {
				So(errors.Is(err, participant.ErrEmptyTable), ShouldBeTrue)
			})
		})

		Convey("When the input has only a header", func() {
			tbl, err := participant.Read(strings.NewReader("Country,Ethnicity\n"))

			Convey("Then the table should have no rows", func() {
				So(err, ShouldBeNil)
				So(tbl.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a quoted field is never closed", func() {
			_, err := participant.Read(strings.NewReader("Country\n\"UK\n"))

			Convey("Then it should fail with ErrMalformedFile", func() {
				So(errors.Is(err, participant.ErrMalformedFile), ShouldBeTrue)
			})
		})

		Convey("When the header starts with a byte order mark", func() {
			tbl, err := participant.Read(strings.NewReader("\ufeffCountry\nUK\n"))

			Convey("Then the first column should still be found", func() {
				So(err, ShouldBeNil)
				So(tbl.HasColumn("Country"), ShouldBeTrue)
			})
		})

		Convey("When a row is shorter than the header", func() {
			tbl, err := participant.Read(strings.NewReader("Country,Ethnicity\nUK\n"))
			So(err, ShouldBeNil)
			eth, err := tbl.Column("Ethnicity")

			Convey("Then the missing cells should read as blank", func() {
				So(err, ShouldBeNil)
				So(eth, ShouldResemble, []string{""})
			})
		})
	})
}

func TestTableColumns(t *testing.T) {
	Convey("Given a loaded table", t, func() {
		tbl, err := participant.Read(strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("When reading an absent column", func() {
			_, err := tbl.Column("Favourite Colour")

			Convey("Then it should fail with ErrMissingColumn", func() {
				So(errors.Is(err, participant.ErrMissingColumn), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "Favourite Colour")
			})
		})

		Convey("When requiring several columns", func() {
			So(tbl.Require("Country", "School"), ShouldBeNil)
			So(errors.Is(tbl.Require("Country", "Interview Before"), participant.ErrMissingColumn), ShouldBeTrue)
		})

		Convey("When parsing a numeric column", func() {
			vals, err := tbl.Floats(participant.BeforeColumn("Career Awareness"))

			Convey("Then values should be parsed in row order", func() {
				So(err, ShouldBeNil)
				So(vals, ShouldResemble, []float64{2, 3, 1})
			})
		})

		Convey("When parsing a categorical column as numbers", func() {
			_, err := tbl.Floats("Country")

			Convey("Then it should fail with a CellError naming the row", func() {
				So(errors.Is(err, participant.ErrNonNumericValue), ShouldBeTrue)
				var cellErr *participant.CellError
				So(errors.As(err, &cellErr), ShouldBeTrue)
				So(cellErr.Row, ShouldEqual, 1)
				So(cellErr.Value, ShouldEqual, "UK")
			})
		})

		Convey("When a numeric cell is blank", func() {
			blank, err := participant.Read(strings.NewReader("Interview Before\n4\n\n \n"))
			So(err, ShouldBeNil)
			_, err = blank.Floats("Interview Before")

			Convey("Then it should fail rather than produce NaN", func() {
				So(errors.Is(err, participant.ErrNonNumericValue), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "blank")
			})
		})
	})
}

func TestRecordsAndDirectory(t *testing.T) {
	Convey("Given a loaded table", t, func() {
		tbl, err := participant.Read(strings.NewReader(sampleCSV))
		So(err, ShouldBeNil)

		Convey("When materializing records", func() {
			recs, err := tbl.Records("Career Awareness", "Interview")

			Convey("Then typed fields and present skill scores should be filled", func() {
				So(err, ShouldBeNil)
				So(recs, ShouldHaveLength, 3)
				So(recs[1].Ethnicity, ShouldEqual, "Asian")
				So(recs[1].Skills["Career Awareness"], ShouldResemble, participant.Score{Before: 3, After: 5})
				_, ok := recs[1].Skills["Interview"]
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When listing the directory", func() {
			entries, err := participant.Directory(tbl)

			Convey("Then each entry should format as a customer line", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 3)
				So(entries[0].String(), ShouldEqual, "Customer #1, Ada Lovelace, ada@example.com")
			})
		})

		Convey("When the email column is absent", func() {
			noEmail, err := participant.Read(strings.NewReader("ID,First Name,Last Name\n1,A,B\n"))
			So(err, ShouldBeNil)
			_, err = participant.Directory(noEmail)

			Convey("Then the directory should fail with ErrMissingColumn", func() {
				So(errors.Is(err, participant.ErrMissingColumn), ShouldBeTrue)
			})
		})
	})
}
