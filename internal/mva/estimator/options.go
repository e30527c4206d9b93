package estimator

import (
	"github.com/okian/phomva/internal/domain/isolation"
	"github.com/okian/phomva/internal/mva/bank"
	"github.com/okian/phomva/pkg/logger"
)

// Option applies a configuration option to the Estimator.
type Option func(*Estimator)

// WithLoader replaces the weight file loader. Defaults to bank.ForestLoader.
func WithLoader(l bank.Loader) Option {
	return func(e *Estimator) {
		if l != nil {
			e.loader = l
		}
	}
}

// WithIsolation replaces the combined isolation helper.
func WithIsolation(h isolation.Helper) Option {
	return func(e *Estimator) {
		if h != nil {
			e.iso = h
		}
	}
}

// WithLogger sets a custom logger for the estimator.
func WithLogger(l logger.Logger) Option {
	return func(e *Estimator) {
		if l != nil {
			e.logger = l
		}
	}
}
