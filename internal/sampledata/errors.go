package sampledata

import "errors"

// Error constants.
var (
	ErrInvalidConfig = errors.New("invalid sample data config")
	ErrWrite         = errors.New("write sample data failed")
)
