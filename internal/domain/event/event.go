// Package event models the per-event data products the estimator reads:
// named per-candidate value maps and named event-wide scalars.
package event

import (
	"fmt"

	"github.com/okian/phomva/internal/domain/candidate"
)

// Kind tells which product type a named input resolves to.
type Kind string

const (
	KindValueMap Kind = "value_map"
	KindScalar   Kind = "scalar"
)

// Input names one data product a consumer needs from every event.
type Input struct {
	Label string `json:"label" yaml:"label"`
	Kind  Kind   `json:"kind" yaml:"kind"`
}

// Consumer is implemented by hosts that pre-register the inputs a plugin
// will read.
type Consumer interface {
	Consumes(in Input)
}

// Context resolves named products for a single event. Implementations must
// be safe for concurrent reads.
type Context interface {
	ValueMap(label string) (ValueMap, error)
	Scalar(label string) (float64, error)
}

// ValueMap associates a float value to each candidate of a collection.
type ValueMap map[candidate.Key]float64

// Value returns the entry for k.
func (m ValueMap) Value(k candidate.Key) (float64, error) {
	v, ok := m[k]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrKeyNotFound, k)
	}
	return v, nil
}

// Record is an in-memory Context. It must not be mutated once shared.
type Record struct {
	ID        string
	ValueMaps map[string]ValueMap
	Scalars   map[string]float64
}

var _ Context = (*Record)(nil)

// NewRecord creates an empty record for the given event id.
func NewRecord(id string) *Record {
	return &Record{
		ID:        id,
		ValueMaps: make(map[string]ValueMap),
		Scalars:   make(map[string]float64),
	}
}

// ValueMap returns the value map stored under label.
func (r *Record) ValueMap(label string) (ValueMap, error) {
	m, ok := r.ValueMaps[label]
	if !ok {
		return nil, fmt.Errorf("%w: value map %q", ErrProductNotFound, label)
	}
	return m, nil
}

// Scalar returns the scalar stored under label.
func (r *Record) Scalar(label string) (float64, error) {
	v, ok := r.Scalars[label]
	if !ok {
		return 0, fmt.Errorf("%w: scalar %q", ErrProductNotFound, label)
	}
	return v, nil
}

// Consumes lists registered inputs; it satisfies Consumer.
type Consumes []Input

// Consumes appends in.
func (c *Consumes) Consumes(in Input) {
	*c = append(*c, in)
}
