package service

import "errors"

var (
	// ErrInvalidInput wraps validation failures on user supplied fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable is returned when an optional backend is not configured.
	ErrUnavailable = errors.New("service unavailable")
)
