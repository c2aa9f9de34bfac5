package domain

import "errors"

var (
	ErrDataFormat     = errors.New("malformed response data")
	ErrEmptyData      = errors.New("response data is empty")
	ErrShapeMismatch  = errors.New("dimension mismatch")
	ErrInvalidOptions = errors.New("invalid sampler options")
)
