// Package features assembles the fixed-order input vector of the photon
// identification BDT from a candidate and its event products.
package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/phomva/internal/domain/candidate"
	"github.com/okian/phomva/internal/domain/category"
	"github.com/okian/phomva/internal/domain/event"
	"github.com/okian/phomva/internal/domain/isolation"
)

// Variable names as booked in the weight files. Order is significant.
const (
	VarSigmaIetaIeta    = "ele_oldsigmaietaieta"
	VarSigmaIetaIphi    = "ele_oldsigmaiphiiphi"
	VarCircularity      = "ele_oldcircularity"
	VarR9               = "ele_oldr9"
	VarSCEtaWidth       = "ele_scletawidth"
	VarSCPhiWidth       = "ele_sclphiwidth"
	VarHadronicOverEm   = "ele_he"
	VarCombinedIso      = "ele_HZZ_iso"
	VarHasPixelSeed     = "ele_hasPixelSeed"
	VarPassElectronVeto = "ele_passElectronVeto"
	VarPreshowerOverRaw = "ele_psEoverEraw" // endcap only
)

// Vector lengths per detector region.
const (
	BarrelLength = 10
	EndcapLength = 11
)

// unsetShape marks a shower-shape quantity no source provides.
const unsetShape = math.MaxFloat32

// fsrCorrection is the FSR recovery term given to the isolation helper.
const fsrCorrection = 0.0

var barrelLayout = []string{
	VarSigmaIetaIeta,
	VarSigmaIetaIphi,
	VarCircularity,
	VarR9,
	VarSCEtaWidth,
	VarSCPhiWidth,
	VarHadronicOverEm,
	VarCombinedIso,
	VarHasPixelSeed,
	VarPassElectronVeto,
}

// Layout returns the ordered variable names for category c.
func Layout(c category.Category) []string {
	out := make([]string, 0, EndcapLength)
	out = append(out, barrelLayout...)
	if category.IsEndcap(c) {
		out = append(out, VarPreshowerOverRaw)
	}
	return out
}

// Vector is the positional model input.
type Vector []float64

// Labels names the event products the assembler reads.
type Labels struct {
	Full5x5SigmaIEtaIEtaMap  string `koanf:"full5x5SigmaIEtaIEtaMap"`
	Full5x5SigmaIEtaIPhiMap  string `koanf:"full5x5SigmaIEtaIPhiMap"`
	Full5x5E1x3Map           string `koanf:"full5x5E1x3Map"`
	Full5x5E2x2Map           string `koanf:"full5x5E2x2Map"`
	Full5x5E2x5MaxMap        string `koanf:"full5x5E2x5MaxMap"`
	Full5x5E5x5Map           string `koanf:"full5x5E5x5Map"`
	ESEffSigmaRRMap          string `koanf:"esEffSigmaRRMap"`
	PhoChargedIsolation      string `koanf:"phoChargedIsolation"`
	PhoPhotonIsolation       string `koanf:"phoPhotonIsolation"`
	PhoWorstChargedIsolation string `koanf:"phoWorstChargedIsolation"`
	Rho                      string `koanf:"rho"`
}

func (l Labels) shapeMaps() []string {
	return []string{
		l.Full5x5SigmaIEtaIEtaMap,
		l.Full5x5SigmaIEtaIPhiMap,
		l.Full5x5E1x3Map,
		l.Full5x5E2x2Map,
		l.Full5x5E2x5MaxMap,
		l.Full5x5E5x5Map,
		l.ESEffSigmaRRMap,
	}
}

func (l Labels) isolationMaps() []string {
	return []string{
		l.PhoChargedIsolation,
		l.PhoPhotonIsolation,
		l.PhoWorstChargedIsolation,
	}
}

// RequiredInputs lists the products every event must provide. The shower
// shape maps are only needed in value-map mode.
func RequiredInputs(useValueMaps bool, l Labels) []event.Input {
	var in []event.Input
	if useValueMaps {
		for _, label := range l.shapeMaps() {
			in = append(in, event.Input{Label: label, Kind: event.KindValueMap})
		}
	}
	for _, label := range l.isolationMaps() {
		in = append(in, event.Input{Label: label, Kind: event.KindValueMap})
	}
	return append(in, event.Input{Label: l.Rho, Kind: event.KindScalar})
}

// Variables holds every quantity read for one candidate, named.
type Variables struct {
	SigmaIetaIeta    float64
	SigmaIetaIphi    float64
	Circularity      float64
	R9               float64
	SCEtaWidth       float64
	SCPhiWidth       float64
	HadronicOverEm   float64
	CombinedIso      float64
	HasPixelSeed     float64
	PassElectronVeto float64
	PreshowerOverRaw float64

	// Read but not part of the current layouts.
	E1x3            float64
	E2x2            float64
	E2x5Max         float64
	EffSigmaRR      float64
	Rho             float64
	ChargedIso      float64
	PhotonIso       float64
	WorstChargedIso float64
}

// Pack orders v into the model input of category c.
func (v *Variables) Pack(c category.Category) Vector {
	out := make(Vector, 0, EndcapLength)
	out = append(out,
		v.SigmaIetaIeta,
		v.SigmaIetaIphi,
		v.Circularity,
		v.R9,
		v.SCEtaWidth,
		v.SCPhiWidth,
		v.HadronicOverEm,
		v.CombinedIso,
		v.HasPixelSeed,
		v.PassElectronVeto,
	)
	if category.IsEndcap(c) {
		out = append(out, v.PreshowerOverRaw)
	}
	return out
}

// Circularity returns 1 - e1x5/e5x5, or -1 when e5x5 is zero.
func Circularity(e1x5, e5x5 float64) float64 {
	if e5x5 == 0 {
		return -1
	}
	return 1 - e1x5/e5x5
}

// Assembler extracts feature vectors. It holds no per-call state and is
// safe for concurrent use.
type Assembler struct {
	useValueMaps bool
	labels       Labels
	iso          isolation.Helper
	sampleType   int
	setup        int
}

// New creates an assembler. helper computes the combined isolation.
func New(useValueMaps bool, labels Labels, helper isolation.Helper, opts ...Option) *Assembler {
	a := &Assembler{
		useValueMaps: useValueMaps,
		labels:       labels,
		iso:          helper,
		sampleType:   isolation.Sample2015,
		setup:        isolation.Sample2015,
	}
	if a.iso == nil {
		a.iso = isolation.PF{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequiredInputs lists the products this assembler reads.
func (a *Assembler) RequiredInputs() []event.Input {
	return RequiredInputs(a.useValueMaps, a.labels)
}

// Build returns the model input for p in category c.
func (a *Assembler) Build(p candidate.Particle, ev event.Context, c category.Category) (Vector, error) {
	v, err := a.Variables(p, ev)
	if err != nil {
		return nil, err
	}
	return v.Pack(c), nil
}

// products are the event-level inputs resolved once per call.
type products struct {
	shape [7]event.ValueMap
	iso   [3]event.ValueMap
	rho   float64
}

// fetch resolves every required product. All missing labels are reported
// together and nothing candidate-specific happens before this succeeds.
func (a *Assembler) fetch(ev event.Context) (*products, error) {
	if ev == nil {
		return nil, fmt.Errorf("%w: no event context", ErrDataUnavailable)
	}
	var (
		pr      products
		missing []string
	)
	if a.useValueMaps {
		for i, label := range a.labels.shapeMaps() {
			m, err := ev.ValueMap(label)
			if err != nil {
				missing = append(missing, label)
				continue
			}
			pr.shape[i] = m
		}
	}
	for i, label := range a.labels.isolationMaps() {
		m, err := ev.ValueMap(label)
		if err != nil {
			missing = append(missing, label)
			continue
		}
		pr.iso[i] = m
	}
	rho, err := ev.Scalar(a.labels.Rho)
	if err != nil {
		missing = append(missing, a.labels.Rho)
	}
	pr.rho = rho

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: failed to retrieve %s; check that all needed producers are running upstream",
			ErrDataUnavailable, strings.Join(missing, ", "))
	}
	return &pr, nil
}

// Variables reads and derives every named quantity for p.
func (a *Assembler) Variables(p candidate.Particle, ev event.Context) (*Variables, error) {
	pr, err := a.fetch(ev)
	if err != nil {
		return nil, err
	}

	pho, ok := candidate.AsPhoton(p)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrTypeMismatch, p)
	}
	key := pho.Key()

	var v Variables

	// Full 5x5 cluster shapes.
	var e1x5, e5x5 float64
	if a.useValueMaps {
		vals, err := lookup(key, pr.shape[0], pr.shape[1], pr.shape[5])
		if err != nil {
			return nil, err
		}
		v.SigmaIetaIeta, v.SigmaIetaIphi, e5x5 = vals[0], vals[1], vals[2]
		v.E1x3 = reserved(key, pr.shape[2])
		v.E2x2 = reserved(key, pr.shape[3])
		v.E2x5Max = reserved(key, pr.shape[4])
		v.EffSigmaRR = reserved(key, pr.shape[6])
		// No map carries E1x5; the unset marker stays so scores match the
		// reference the weights were validated against.
		e1x5 = unsetShape
	} else {
		ss := pho.Full5x5ShowerShape()
		v.SigmaIetaIeta, v.SigmaIetaIphi = ss.SigmaIetaIeta, ss.SigmaIetaIphi
		v.E1x3, v.E2x2, v.E2x5Max = ss.E1x3, ss.E2x2, ss.E2x5Max
		v.EffSigmaRR = ss.EffSigmaRR
		e1x5, e5x5 = ss.E1x5, ss.E5x5
	}

	v.ChargedIso = reserved(key, pr.iso[0])
	v.PhotonIso = reserved(key, pr.iso[1])
	v.WorstChargedIso = reserved(key, pr.iso[2])
	v.Rho = pr.rho

	combIso, err := a.iso.CombRelIsoPF(a.sampleType, a.setup, pr.rho, pho, fsrCorrection)
	if err != nil {
		return nil, fmt.Errorf("combined isolation: %w", err)
	}

	sc := pho.SuperCluster()
	v.Circularity = Circularity(e1x5, e5x5)
	v.R9 = pho.R9()
	v.SCEtaWidth = sc.EtaWidth
	v.SCPhiWidth = sc.PhiWidth
	v.HadronicOverEm = pho.HadronicOverEm()
	v.CombinedIso = combIso
	v.HasPixelSeed = boolToFloat(pho.HasPixelSeed())
	v.PassElectronVeto = boolToFloat(pho.PassElectronVeto())
	v.PreshowerOverRaw = sc.PreshowerEnergy / sc.RawEnergy

	a.constrain(&v)
	return &v, nil
}

// constrain is where out-of-range inputs would be clipped. This model
// family was trained without range restrictions, so it leaves v untouched.
func (a *Assembler) constrain(_ *Variables) {}

// lookup reads key from maps that feed the model input; a missing entry fails.
func lookup(key candidate.Key, maps ...event.ValueMap) ([]float64, error) {
	out := make([]float64, len(maps))
	for i, m := range maps {
		val, err := m.Value(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
		}
		out[i] = val
	}
	return out, nil
}

// reserved reads key from a map whose value never reaches the model input.
// A missing entry reads as zero.
func reserved(key candidate.Key, m event.ValueMap) float64 {
	val, err := m.Value(key)
	if err != nil {
		return 0
	}
	return val
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
