package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe = errors.New("api serve failed")
)
