// Package bank holds one scoring model per category.
package bank

import (
	"context"
	"fmt"
	"slices"

	"github.com/okian/phomva/internal/domain/category"
	"github.com/okian/phomva/pkg/logger"
)

// methodName keys the booked model in logs; it is not a reader control
// parameter, the model file defines everything else.
const methodName = "BDTG method"

// Model is a read-only scoring function over a fixed-order vector.
// Evaluate must be safe for concurrent use.
type Model interface {
	// Inputs returns the ordered variable names the model was trained with.
	Inputs() []string
	Evaluate(x []float64) float64
}

// Loader builds a model from a weight file.
type Loader interface {
	Load(path string) (Model, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (Model, error)

// Load implements Loader.
func (f LoaderFunc) Load(path string) (Model, error) { return f(path) }

// LayoutFunc returns the ordered variable names expected for a category.
type LayoutFunc func(c category.Category) []string

// Bank owns one model per category; it is immutable after New returns.
type Bank struct {
	models [category.Count]Model
	files  [category.Count]string
	logger logger.Logger
}

// New loads one model per category from paths, consumed in category
// enumeration order. Each model must declare exactly the variables that
// layout returns for its category.
func New(ctx context.Context, paths []string, loader Loader, layout LayoutFunc, opts ...Option) (*Bank, error) {
	b := &Bank{logger: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}

	if len(paths) != category.Count {
		return nil, fmt.Errorf("%w: wrong number of weight files: got %d, want %d",
			ErrConfiguration, len(paths), category.Count)
	}
	if loader == nil || layout == nil {
		return nil, fmt.Errorf("%w: loader and layout are required", ErrConfiguration)
	}

	for _, c := range category.Categories() {
		path := paths[c]
		m, err := loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("%w: category %s: load %q: %w", ErrConfiguration, c, path, err)
		}
		if m == nil {
			return nil, fmt.Errorf("%w: category %s: loader returned no model for %q", ErrConfiguration, c, path)
		}
		want := layout(c)
		if got := m.Inputs(); !slices.Equal(got, want) {
			return nil, fmt.Errorf("%w: category %s: %q declares variables %v, want %v",
				ErrConfiguration, c, path, got, want)
		}
		b.models[c] = m
		b.files[c] = path
		b.logger.Debug(ctx, "booked model",
			logger.String("method", methodName),
			logger.String("category", c.String()),
			logger.String("file", path),
			logger.Int("inputs", len(want)),
		)
	}

	return b, nil
}

// Evaluate scores x with the model of category c.
func (b *Bank) Evaluate(c category.Category, x []float64) (float64, error) {
	if b == nil {
		return 0, ErrNotReady
	}
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, c)
	}
	m := b.models[c]
	if m == nil {
		return 0, ErrNotReady
	}
	if want := len(m.Inputs()); len(x) != want {
		return 0, fmt.Errorf("%w: category %s: got %d values, want %d",
			ErrFeatureLength, c, len(x), want)
	}
	return m.Evaluate(x), nil
}

// Len returns the number of loaded models.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, m := range b.models {
		if m != nil {
			n++
		}
	}
	return n
}

// Inputs returns the variable names the model of category c expects.
func (b *Bank) Inputs(c category.Category) []string {
	if b == nil || !c.Valid() || b.models[c] == nil {
		return nil
	}
	return slices.Clone(b.models[c].Inputs())
}

// File returns the weight file the model of category c was loaded from.
func (b *Bank) File(c category.Category) string {
	if b == nil || !c.Valid() {
		return ""
	}
	return b.files[c]
}
