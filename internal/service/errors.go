package service

import "errors"

// Sentinel errors mapped to HTTP codes by the controllers. Ownership
// misses deliberately surface as ErrNotFound, never ErrForbidden, so a
// probing user cannot confirm that someone else's registration exists.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)
