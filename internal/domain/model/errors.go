package model

import "errors"

// Sentinel kinds for domain validation errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
