// Package render draws declarative charts as PNG or SVG images using
// go-chart.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/okian/cohort/internal/domain/chart"
	"github.com/okian/cohort/pkg/metrics"
	"github.com/samber/lo"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, SVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the HTTP content type of the format.
func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

const (
	defaultWidth  = 960
	defaultHeight = 540
	fileMode      = 0o644
	dirMode       = 0o755
	axisHeadroom  = 1.1
)

// Renderer draws charts at a fixed size.
type Renderer struct {
	width  int
	height int
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes c to w in format f.
func (r *Renderer) Render(w io.Writer, c chart.Chart, f Format) error {
	provider, err := provider(f)
	if err != nil {
		return err
	}
	if len(c.Categories) == 0 || len(c.Series) == 0 || c.Max() <= 0 {
		return fmt.Errorf("%w: %s", ErrEmptyChart, c.ID)
	}

	start := time.Now()
	text := textFor(f)
	switch c.Kind {
	case chart.KindPie:
		err = r.pie(c, text).Render(provider, w)
	case chart.KindBar:
		err = r.bar(c, text).Render(provider, w)
	case chart.KindGroupedBar:
		err = r.stacked(c, text).Render(provider, w)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	if err != nil {
		metrics.RecordChartRenderError(string(c.Kind))
		return fmt.Errorf("%w: %s: %v", ErrRender, c.ID, err)
	}
	metrics.RecordChartRender(string(c.Kind), string(f), float64(time.Since(start).Milliseconds()))
	return nil
}

// Bytes renders c into memory.
func (r *Renderer) Bytes(c chart.Chart, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, c, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFiles renders each chart to dir/<id>.<format> and returns the paths
// written. It stops at the first failure.
func (r *Renderer) WriteFiles(ctx context.Context, dir string, f Format, charts []chart.Chart) ([]string, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		data, err := r.Bytes(c, f)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, c.ID+"."+string(f))
		if err := os.WriteFile(path, data, fileMode); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func provider(f Format) (gochart.RendererProvider, error) {
	switch f {
	case PNG:
		return gochart.PNG, nil
	case SVG:
		return gochart.SVG, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// textFor returns the transform applied to every string drawn into a chart.
// go-chart writes SVG text nodes unescaped, and labels come straight from
// the participant file.
func textFor(f Format) func(string) string {
	if f == SVG {
		return html.EscapeString
	}
	return func(s string) string { return s }
}

func (r *Renderer) pie(c chart.Chart, text func(string) string) gochart.PieChart {
	values := make([]gochart.Value, 0, len(c.Categories))
	for i, label := range c.Categories {
		v := c.Series[0].Values[i]
		if v <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: text(fmt.Sprintf("%s (%s)", label, formatValue(v))),
			Value: v,
			Style: fill(chart.Color(i)),
		})
	}
	return gochart.PieChart{
		Title:  text(c.Title),
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
}

// bar lays series out side by side within each category.
func (r *Renderer) bar(c chart.Chart, text func(string) string) gochart.BarChart {
	bars := make([]gochart.Value, 0, len(c.Categories)*len(c.Series))
	for i, label := range c.Categories {
		for _, s := range c.Series {
			bars = append(bars, gochart.Value{
				Label: text(label + " " + strings.ToLower(s.Name)),
				Value: s.Values[i],
				Style: fill(s.Color),
			})
		}
	}
	top := c.YMax
	if top <= 0 {
		top = math.Ceil(c.Max() * axisHeadroom)
	}
	return gochart.BarChart{
		Title:    text(c.Title),
		Width:    r.width,
		Height:   r.height,
		BarWidth: r.width / (2*len(bars) + 1),
		YAxis: gochart.YAxis{
			Name:  text(c.YLabel),
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
}

// stacked draws one bar per category split into its non-zero series.
func (r *Renderer) stacked(c chart.Chart, text func(string) string) gochart.StackedBarChart {
	bars := lo.Map(c.Categories, func(label string, i int) gochart.StackedBar {
		parts := make([]gochart.Value, 0, len(c.Series))
		for _, s := range c.Series {
			if s.Values[i] <= 0 {
				continue
			}
			parts = append(parts, gochart.Value{
				Label: text(fmt.Sprintf("%s: %s", s.Name, formatValue(s.Values[i]))),
				Value: s.Values[i],
				Style: fill(s.Color),
			})
		}
		return gochart.StackedBar{Name: text(label), Values: parts}
	})
	return gochart.StackedBarChart{
		Title:  text(c.Title),
		Width:  r.width,
		Height: r.height,
		Bars:   lo.Filter(bars, func(b gochart.StackedBar, _ int) bool { return len(b.Values) > 0 }),
	}
}

func fill(hex string) gochart.Style {
	col := parseHex(hex)
	return gochart.Style{FillColor: col, StrokeColor: col}
}

// parseHex reads "#RRGGBB"; anything else falls back to gray.
func parseHex(hex string) drawing.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return gochart.ColorAlternateGray
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return gochart.ColorAlternateGray
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
