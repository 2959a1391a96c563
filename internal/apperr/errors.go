package apperr

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrBadCategory = errors.New("unknown category")
)
