package api

import (
	"errors"
	"net/http"

	service "github.com/okian/cohort/internal/app"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrChartNotFound = errors.New("chart not found")
	ErrEncode        = errors.New("encode response")
)

// writeReportError writes err with the status and code of its kind.
func writeReportError(w http.ResponseWriter, err error) {
	kind := service.ErrorKind(err)
	writeError(w, service.HTTPStatus(kind), kind, err)
}
