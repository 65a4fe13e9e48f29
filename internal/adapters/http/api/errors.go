package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")

	// errServiceBusy is the opaque message returned for unexpected
	// failures outside development.
	errServiceBusy = errors.New("service is busy")
)
