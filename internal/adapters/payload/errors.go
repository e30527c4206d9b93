package payload

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrDecode  = errors.New("payload decode failed")
	ErrInvalid = errors.New("invalid payload")
)
