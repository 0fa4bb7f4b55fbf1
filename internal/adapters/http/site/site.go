// Package site renders the HTML dashboard at /.
package site

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"

	service "github.com/okian/cohort/internal/app"
	"github.com/okian/cohort/internal/adapters/render"
	"github.com/okian/cohort/internal/domain/chart"
	"github.com/okian/cohort/pkg/logger"
	"github.com/samber/lo"
)

// Error constants
var (
	ErrTemplate = errors.New("dashboard template failed")
)

// ReportBuilder builds the report shown on the dashboard.
type ReportBuilder interface {
	Build(ctx context.Context) (*service.Report, error)
}

// ChartRenderer draws a chart into memory.
type ChartRenderer interface {
	Bytes(c chart.Chart, f render.Format) ([]byte, error)
}

// Handler serves the dashboard page.
type Handler struct {
	reports  ReportBuilder
	renderer ChartRenderer
	tmpl     *template.Template
	logger   logger.Logger
}

// NewHandler parses the embedded page template.
func NewHandler(reports ReportBuilder, renderer ChartRenderer) *Handler {
	return &Handler{
		reports:  reports,
		renderer: renderer,
		tmpl:     template.Must(template.ParseFS(staticFS, "static/dashboard.html")),
		logger:   logger.Get().Named("site"),
	}
}

// Register attaches the dashboard route to mux.
func Register(_ context.Context, mux *http.ServeMux, reports ReportBuilder, renderer ChartRenderer) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", NewHandler(reports, renderer))
}

type pageChart struct {
	ID    string
	Title string
	SVG   template.HTML
	Error string
}

type pageSection struct {
	Title     string
	Narrative []string
	Charts    []pageChart
	Error     string
	ErrorKind string
}

type page struct {
	Report   *service.Report
	Sections []pageSection
	Error    string
	Kind     string
}

// ServeHTTP renders the report. A load failure is shown on the page with
// the status the API would use for it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var p page

	report, err := h.reports.Build(r.Context())
	if err != nil {
		p.Error = err.Error()
		p.Kind = service.ErrorKind(err)
		status = service.HTTPStatus(p.Kind)
	} else {
		p.Report = report
		p.Sections = lo.Map(report.Sections, func(s service.Section, _ int) pageSection {
			return h.section(s)
		})
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, p); err != nil {
		h.logger.Error(r.Context(), "render dashboard", logger.Error(err))
		http.Error(w, ErrTemplate.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) section(s service.Section) pageSection {
	return pageSection{
		Title:     s.Title,
		Narrative: s.Narrative,
		Error:     s.Error,
		ErrorKind: s.ErrorKind,
		Charts: lo.Map(s.Charts, func(c chart.Chart, _ int) pageChart {
			pc := pageChart{ID: c.ID, Title: c.Title}
			svg, err := h.renderer.Bytes(c, render.SVG)
			if err != nil {
				pc.Error = err.Error()
				return pc
			}
			// The SVG renderer escapes every label it draws.
			pc.SVG = template.HTML(svg) //nolint:gosec
			return pc
		}),
	}
}
