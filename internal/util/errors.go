package util

import "errors"

var (
	// ErrMalformedRecord marks a flat-file row that does not match the
	// documented column layout. Parsers abort the whole file on it rather
	// than skipping rows silently.
	ErrMalformedRecord = errors.New("malformed record")

	ErrRunNotFound = errors.New("run not found")
)
