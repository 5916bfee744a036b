// Package tools holds the stateless text utilities exposed by the API and the
// CLI: JSON formatting, Base64, hashing, UUIDs, timestamps and SQL reflow.
package tools

import "errors"

var (
	// ErrInvalidJSON is returned when input is not syntactically valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")
	// ErrInvalidBase64 is returned when input cannot be decoded as Base64 text.
	ErrInvalidBase64 = errors.New("invalid base64 input")
	// ErrUnknownAlgorithm is returned for hash algorithm names that are not supported.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")
	// ErrInvalidTimestamp is returned when input is neither an epoch value nor a recognised date.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidCount is returned when a UUID batch size is out of range.
	ErrInvalidCount = errors.New("invalid count")
)
