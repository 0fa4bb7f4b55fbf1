package render

import "errors"

// Sentinel error kinds for chart rendering.
var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrUnknownKind   = errors.New("unknown chart kind")
	ErrEmptyChart    = errors.New("chart has no values")
	ErrRender        = errors.New("chart render failed")
)
