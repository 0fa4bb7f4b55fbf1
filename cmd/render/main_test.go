package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const participantsCSV = `ID,First Name,Last Name,Email,Country,Ethnicity,School,Confidence,Career Awareness Before,Career Awareness After,Presentation Before,Presentation After,Interview Before,Interview After,CV Development Before,CV Development After
1,Ada,Lovelace,ada@example.com,UK,White,North,Increased,2,4,3,4,2,3,1,4
2,Alan,Turing,alan@example.com,UK,Asian,North,No change,3,5,3,3,2,4,2,5
3,Marie,Curie,marie@example.com,France,White,South,Significantly increased,1,3,2,5,3,5,2,3
`

func TestRun(t *testing.T) {
	convey.Convey("Given a participant file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "participants.csv")
		convey.So(os.WriteFile(path, []byte(participantsCSV), 0o600), convey.ShouldBeNil)
		outDir := filepath.Join(dir, "charts")
		ctx := context.Background()

		convey.Convey("When rendering SVG charts", func() {
			var out bytes.Buffer
			err := run(ctx, &out, path, outDir, "svg", false)

			convey.Convey("Then narratives are printed and one file per chart is written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out.String(), convey.ShouldContainSubstring, "3 participants came from 2 countries.")
				convey.So(out.String(), convey.ShouldContainSubstring, "Career Awareness: 40.0% before, 80.0% after (+40.0 points).")
				for _, id := range []string{"countries", "ethnicity", "confidence", "skills"} {
					_, statErr := os.Stat(filepath.Join(outDir, id+".svg"))
					convey.So(statErr, convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When listing participants", func() {
			var out bytes.Buffer
			err := run(ctx, &out, path, outDir, "png", true)

			convey.So(err, convey.ShouldBeNil)
			convey.So(out.String(), convey.ShouldEqual,
				"Customer #1, Ada Lovelace, ada@example.com\n"+
					"Customer #2, Alan Turing, alan@example.com\n"+
					"Customer #3, Marie Curie, marie@example.com\n")
		})

		convey.Convey("When the format is unknown", func() {
			var out bytes.Buffer
			err := run(ctx, &out, path, outDir, "gif", false)
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the file is missing", func() {
			var out bytes.Buffer
			err := run(ctx, &out, filepath.Join(dir, "absent.csv"), outDir, "png", false)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "not found")
		})
	})
}
