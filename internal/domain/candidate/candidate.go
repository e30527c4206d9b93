// Package candidate contains the read-only views of reconstructed particles
// consumed by the estimator.
package candidate

// Key identifies a candidate inside its event. Auxiliary value maps are
// indexed by it.
type Key string

// ShowerShape is the full 5x5 shower-shape bundle of a photon.
type ShowerShape struct {
	SigmaIetaIeta float64 `json:"sigma_ieta_ieta" yaml:"sigma_ieta_ieta"`
	SigmaIetaIphi float64 `json:"sigma_ieta_iphi" yaml:"sigma_ieta_iphi"`
	E1x3          float64 `json:"e1x3" yaml:"e1x3"`
	E1x5          float64 `json:"e1x5" yaml:"e1x5"`
	E2x2          float64 `json:"e2x2" yaml:"e2x2"`
	E2x5Max       float64 `json:"e2x5_max" yaml:"e2x5_max"`
	E5x5          float64 `json:"e5x5" yaml:"e5x5"`
	EffSigmaRR    float64 `json:"eff_sigma_rr" yaml:"eff_sigma_rr"`
}

// SuperCluster holds the supercluster geometry and energies.
type SuperCluster struct {
	Eta             float64 `json:"eta" yaml:"eta"`
	Phi             float64 `json:"phi" yaml:"phi"`
	EtaWidth        float64 `json:"eta_width" yaml:"eta_width"`
	PhiWidth        float64 `json:"phi_width" yaml:"phi_width"`
	PreshowerEnergy float64 `json:"preshower_energy" yaml:"preshower_energy"`
	RawEnergy       float64 `json:"raw_energy" yaml:"raw_energy"`
}

// PFIsolation holds particle-flow isolation sums in the photon cone.
type PFIsolation struct {
	ChargedHadron float64 `json:"charged_hadron" yaml:"charged_hadron"`
	NeutralHadron float64 `json:"neutral_hadron" yaml:"neutral_hadron"`
	Photon        float64 `json:"photon" yaml:"photon"`
}

// Particle is the generic candidate view handed over by the host framework.
type Particle interface {
	Key() Key
	Pt() float64
	Eta() float64
	Phi() float64
}

// Photon is the photon view the estimator needs. Both plain reconstructed
// photons and analysis-level photons satisfy it.
type Photon interface {
	Particle
	R9() float64
	HadronicOverEm() float64
	HasPixelSeed() bool
	PassElectronVeto() bool
	Full5x5ShowerShape() ShowerShape
	SuperCluster() SuperCluster
	PFIsolation() PFIsolation
}

// AsPhoton views p as a Photon. ok is false when p does not provide the
// photon accessors.
func AsPhoton(p Particle) (Photon, bool) {
	if p == nil {
		return nil, false
	}
	ph, ok := p.(Photon)
	return ph, ok
}
