package api

import (
	"net/http"
)

// ReportHandler serves the full report and single sections.
type ReportHandler struct {
	reports Reports
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports Reports) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HandleReport handles GET /api/report. Failed sections are part of a 200
// response; only a failed load is an error.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Build(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleSection handles GET /api/sections/{name}.
func (h *ReportHandler) HandleSection(w http.ResponseWriter, r *http.Request) {
	sec, err := h.reports.Section(r.Context(), r.PathValue("name"))
	if err != nil {
		writeReportError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sec)
}
