package bank

import "github.com/okian/phomva/pkg/logger"

// Option applies a configuration option to the Bank.
type Option func(*Bank)

// WithLogger sets a custom logger for the bank.
func WithLogger(l logger.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}
