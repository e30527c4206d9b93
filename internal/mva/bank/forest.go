package bank

import "github.com/okian/phomva/internal/mva/forest"

// ForestLoader loads boosted forests from YAML weight files.
var ForestLoader Loader = LoaderFunc(func(path string) (Model, error) {
	f, err := forest.Load(path)
	if err != nil {
		return nil, err
	}
	return f, nil
})
