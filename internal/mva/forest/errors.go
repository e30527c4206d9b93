package forest

import "errors"

// Sentinel error kinds for this package.
var (
	ErrLoad      = errors.New("forest load failed")
	ErrMalformed = errors.New("malformed forest")
)
