package estimator

import (
	"errors"

	"github.com/okian/phomva/internal/mva/bank"
	"github.com/okian/phomva/internal/mva/features"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrConfiguration is returned by New for any construction failure.
	ErrConfiguration = bank.ErrConfiguration
	// ErrDataUnavailable is returned by Score when an event product is missing.
	ErrDataUnavailable = features.ErrDataUnavailable
	// ErrTypeMismatch is returned by Score for candidates that are not photons.
	ErrTypeMismatch = features.ErrTypeMismatch
)

// Kind labels err for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, bank.ErrFeatureLength):
		return "feature_length"
	case errors.Is(err, bank.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, bank.ErrNotReady):
		return "not_ready"
	default:
		return "internal"
	}
}
