package event

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrProductNotFound = errors.New("event product not found")
	ErrKeyNotFound     = errors.New("candidate key not found in value map")
)
