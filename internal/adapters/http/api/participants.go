package api

import (
	"net/http"

	"github.com/okian/cohort/internal/domain/participant"
)

// ParticipantsHandler serves the participant directory.
type ParticipantsHandler struct {
	reports Reports
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(reports Reports) *ParticipantsHandler {
	return &ParticipantsHandler{reports: reports}
}

type participantsResponse struct {
	Count        int                 `json:"count"`
	Participants []participant.Entry `json:"participants"`
	Lines        []string            `json:"lines"`
}

// HandleParticipants handles GET /api/participants.
func (h *ParticipantsHandler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	entries, err := h.reports.Participants(r.Context())
	if err != nil {
		writeReportError(w, err)
		return
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	writeJSON(w, http.StatusOK, participantsResponse{Count: len(entries), Participants: entries, Lines: lines})
}
