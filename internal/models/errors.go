package models

import "errors"

// Custom errors
var (
	ErrInvalidInput     = errors.New("invalid input record")
	ErrUnsupportedInput = errors.New("unsupported input format")
	ErrEmptyBatch       = errors.New("no props to evaluate")
)
