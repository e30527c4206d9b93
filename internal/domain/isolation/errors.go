package isolation

import "errors"

// Sentinel error kinds for this package.
var (
	ErrUnsupportedSample = errors.New("unsupported sample type")
)
