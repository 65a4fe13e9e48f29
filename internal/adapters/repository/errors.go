package repository

import "errors"

// Sentinel kinds for ranking store errors.
var (
	ErrNotFound    = errors.New("customer not ranked")
	ErrNilCustomer = errors.New("nil customer")
	ErrShortDst    = errors.New("destination slice too short")
)
