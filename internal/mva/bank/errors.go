package bank

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrConfiguration   = errors.New("MVA config failure")
	ErrNotReady        = errors.New("model bank not built")
	ErrUnknownCategory = errors.New("no model for category")
	ErrFeatureLength   = errors.New("feature vector length does not match model inputs")
)
