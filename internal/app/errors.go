package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/cohort/internal/domain/participant"
)

// Error kinds reported with failed sections and API errors.
const (
	KindFileNotFound    = "file_not_found"
	KindMalformedFile   = "malformed_file"
	KindMissingColumn   = "missing_column"
	KindEmptyTable      = "empty_table"
	KindNonNumericValue = "non_numeric_value"
	KindUnknownSection  = "unknown_section"
	KindCanceled        = "canceled"
	KindInternal        = "internal"
)

// ErrUnknownSection is returned for a section name the report does not have.
var ErrUnknownSection = errors.New("unknown section")

// ErrorKind classifies err into one of the Kind* constants.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, participant.ErrFileNotFound):
		return KindFileNotFound
	case errors.Is(err, participant.ErrMalformedFile):
		return KindMalformedFile
	case errors.Is(err, participant.ErrMissingColumn):
		return KindMissingColumn
	case errors.Is(err, participant.ErrEmptyTable):
		return KindEmptyTable
	case errors.Is(err, participant.ErrNonNumericValue):
		return KindNonNumericValue
	case errors.Is(err, ErrUnknownSection):
		return KindUnknownSection
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error kind to the status the API and the dashboard
// answer with.
func HTTPStatus(kind string) int {
	switch kind {
	case "":
		return http.StatusOK
	case KindFileNotFound:
		return http.StatusServiceUnavailable
	case KindMissingColumn, KindEmptyTable, KindNonNumericValue, KindMalformedFile:
		return http.StatusUnprocessableEntity
	case KindUnknownSection:
		return http.StatusNotFound
	case KindCanceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
