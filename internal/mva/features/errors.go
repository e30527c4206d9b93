package features

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrDataUnavailable = errors.New("MVA input data unavailable")
	ErrTypeMismatch    = errors.New("particle is not a photon")
)
