package domain

import "errors"

// Sentinel errors shared by services, stores and the delivery layer.
var (
	ErrNotFound      = errors.New("not found")
	ErrTableNotFound = errors.New("table not found")
	ErrRowNotFound   = errors.New("row not found")
	ErrMalformedRow  = errors.New("malformed row")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
)
