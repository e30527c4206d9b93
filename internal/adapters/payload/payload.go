// Package payload decodes scoring batches: one event's products plus the
// photons to score in it.
package payload

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/phomva/internal/domain/candidate"
	"github.com/okian/phomva/internal/domain/event"
)

// maxBodyBytes caps a decoded request body.
const maxBodyBytes = 8 << 20

// Batch is the wire form of one event.
type Batch struct {
	EventID   string                               `json:"event_id" yaml:"event_id"`
	ValueMaps map[string]map[candidate.Key]float64 `json:"value_maps" yaml:"value_maps"`
	Scalars   map[string]float64                   `json:"scalars" yaml:"scalars"`
	Photons   []candidate.Reco                     `json:"photons" yaml:"photons"`
}

// DecodeJSON reads one batch from r. Unknown fields are rejected.
func DecodeJSON(r io.Reader) (*Batch, error) {
	dec := json.NewDecoder(io.LimitReader(r, maxBodyBytes))
	dec.DisallowUnknownFields()
	var b Batch
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// DecodeFile reads one batch from a YAML or JSON file.
func DecodeFile(path string) (*Batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	var b Batch
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the batch carries something to score and that photon
// keys are unique within the event.
func (b *Batch) Validate() error {
	if len(b.Photons) == 0 {
		return fmt.Errorf("%w: no photons", ErrInvalid)
	}
	seen := make(map[candidate.Key]struct{}, len(b.Photons))
	for i := range b.Photons {
		k := b.Photons[i].Key()
		if k == "" {
			return fmt.Errorf("%w: photon %d has no key", ErrInvalid, i)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate photon key %q", ErrInvalid, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Record builds the event context of the batch. The maps are copied so the
// record stays immutable if the batch is reused.
func (b *Batch) Record() *event.Record {
	rec := event.NewRecord(b.EventID)
	for label, m := range b.ValueMaps {
		vm := make(event.ValueMap, len(m))
		for k, v := range m {
			vm[k] = v
		}
		rec.ValueMaps[label] = vm
	}
	for label, v := range b.Scalars {
		rec.Scalars[label] = v
	}
	return rec
}

// Candidates returns the photons as particles, in batch order.
func (b *Batch) Candidates() []candidate.Particle {
	out := make([]candidate.Particle, len(b.Photons))
	for i := range b.Photons {
		out[i] = &b.Photons[i]
	}
	return out
}
