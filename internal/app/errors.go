package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotFound = errors.New("customer not found")
)
