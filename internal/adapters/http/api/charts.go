package api

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/okian/cohort/internal/adapters/render"
	"github.com/okian/cohort/internal/domain/chart"
	"github.com/samber/lo"
)

// ChartsHandler renders report charts as images.
type ChartsHandler struct {
	reports  Reports
	renderer ChartRenderer
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(reports Reports, renderer ChartRenderer) *ChartsHandler {
	return &ChartsHandler{reports: reports, renderer: renderer}
}

// HandleChart handles GET /charts/{id}.{png|svg}. Chart ids match section
// names, so only that section is computed.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	id := strings.TrimSuffix(file, ext)
	format, err := render.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: chart must be <id>.png or <id>.svg", ErrBadRequest))
		return
	}

	sec, err := h.reports.Section(r.Context(), id)
	if err != nil {
		writeReportError(w, err)
		return
	}
	c, ok := lo.Find(sec.Charts, func(c chart.Chart) bool { return c.ID == id })
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: %s", ErrChartNotFound, id))
		return
	}

	data, err := h.renderer.Bytes(c, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
