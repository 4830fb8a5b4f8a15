package types

import "errors"

// Domain errors for type validation
var (
	ErrInvalidKind      = errors.New("invalid node kind")
	ErrMissingPath      = errors.New("matched file has no path")
	ErrFilenameMismatch = errors.New("filename does not match path")
)
