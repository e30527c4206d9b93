package loadgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/phomva/internal/adapters/payload"
	"github.com/okian/phomva/internal/domain/candidate"
	"github.com/okian/phomva/internal/domain/event"
)

// Generator builds plausible photon batches carrying every required input.
type Generator struct {
	rng    *rand.Rand
	inputs []event.Input
}

// NewGenerator creates a generator for the given required inputs.
func NewGenerator(seed uint64, inputs []event.Input) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		inputs: inputs,
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// Batch returns one event with n photons.
func (g *Generator) Batch(n int) *payload.Batch {
	b := &payload.Batch{
		EventID:   uuid.NewString(),
		ValueMaps: make(map[string]map[candidate.Key]float64),
		Scalars:   make(map[string]float64),
	}
	for _, in := range g.inputs {
		switch in.Kind {
		case event.KindScalar:
			b.Scalars[in.Label] = g.uniform(5, 30)
		case event.KindValueMap:
			b.ValueMaps[in.Label] = make(map[candidate.Key]float64, n)
		}
	}

	for i := 0; i < n; i++ {
		p := g.photon(fmt.Sprintf("pho-%d", i))
		for _, in := range g.inputs {
			if in.Kind == event.KindValueMap {
				b.ValueMaps[in.Label][p.Ref] = g.uniform(0, 5)
			}
		}
		b.Photons = append(b.Photons, p)
	}
	return b
}

func (g *Generator) photon(key string) candidate.Reco {
	eta := g.uniform(-2.5, 2.5)
	e5x5 := g.uniform(10, 200)
	raw := g.uniform(10, 250)
	return candidate.Reco{
		Ref: candidate.Key(key),
		P4:  candidate.Kinematics{Pt: g.uniform(15, 150), Eta: eta, Phi: g.uniform(-3.14159, 3.14159)},
		ID: candidate.IDVars{
			R9:               g.uniform(0.5, 1),
			HadronicOverEm:   g.uniform(0, 0.1),
			HasPixelSeed:     g.rng.IntN(4) == 0,
			PassElectronVeto: g.rng.IntN(4) != 0,
		},
		Shape: candidate.ShowerShape{
			SigmaIetaIeta: g.uniform(0.005, 0.035),
			SigmaIetaIphi: g.uniform(-0.0002, 0.0002),
			E1x5:          e5x5 * g.uniform(0.3, 0.95),
			E5x5:          e5x5,
		},
		SC: candidate.SuperCluster{
			Eta:             eta,
			EtaWidth:        g.uniform(0.005, 0.02),
			PhiWidth:        g.uniform(0.005, 0.08),
			PreshowerEnergy: raw * g.uniform(0, 0.1),
			RawEnergy:       raw,
		},
		Isolation: candidate.PFIsolation{
			ChargedHadron: g.uniform(0, 3),
			NeutralHadron: g.uniform(0, 3),
			Photon:        g.uniform(0, 3),
		},
	}
}
