// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/okian/cohort/internal/app"
	"github.com/okian/cohort/internal/adapters/render"
	"github.com/okian/cohort/internal/domain/chart"
	"github.com/okian/cohort/internal/domain/participant"
)

// Reports is the report service surface the handlers need.
type Reports interface {
	Build(ctx context.Context) (*service.Report, error)
	Section(ctx context.Context, name string) (service.Section, error)
	Participants(ctx context.Context) ([]participant.Entry, error)
}

// ChartRenderer draws a chart into memory.
type ChartRenderer interface {
	Bytes(c chart.Chart, f render.Format) ([]byte, error)
}

// Server wires HTTP routes for the report API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	reportHandler       *ReportHandler
	participantsHandler *ParticipantsHandler
	chartsHandler       *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(reports Reports, statsProvider StatsProvider, renderer ChartRenderer) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		reportHandler:       NewReportHandler(reports),
		participantsHandler: NewParticipantsHandler(reports),
		chartsHandler:       NewChartsHandler(reports, renderer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /api/report", MetricsMiddleware(s.reportHandler.HandleReport, "report"))
	mux.HandleFunc("GET /api/sections/{name}", MetricsMiddleware(s.reportHandler.HandleSection, "section"))
	mux.HandleFunc("GET /api/participants", MetricsMiddleware(s.participantsHandler.HandleParticipants, "participants"))
	mux.HandleFunc("GET /charts/{file}", MetricsMiddleware(s.chartsHandler.HandleChart, "charts"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes before writing the header so an encoding failure
// still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Code:    service.KindInternal,
			Message: fmt.Errorf("%w: %v", ErrEncode, err).Error(),
		})
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
