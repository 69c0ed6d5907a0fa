package repository

import "errors"

// Store implementations wrap driver errors with these so callers need not
// know which back end is configured.
var (
	ErrDuplicate        = errors.New("duplicate key")
	ErrPermissionDenied = errors.New("permission denied")
)
