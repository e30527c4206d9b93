package candidate

// Kinematics holds the candidate four-momentum direction and transverse
// momentum.
type Kinematics struct {
	Pt  float64 `json:"pt" yaml:"pt"`
	Eta float64 `json:"eta" yaml:"eta"`
	Phi float64 `json:"phi" yaml:"phi"`
}

// IDVars holds the photon-level identification quantities.
type IDVars struct {
	R9               float64 `json:"r9" yaml:"r9"`
	HadronicOverEm   float64 `json:"h_over_e" yaml:"h_over_e"`
	HasPixelSeed     bool    `json:"has_pixel_seed" yaml:"has_pixel_seed"`
	PassElectronVeto bool    `json:"pass_electron_veto" yaml:"pass_electron_veto"`
}

// Reco is a reconstructed photon with every attribute materialized.
// It is treated as immutable once handed to the estimator.
type Reco struct {
	Ref       Key          `json:"key" yaml:"key"`
	P4        Kinematics   `json:"p4" yaml:"p4"`
	ID        IDVars       `json:"id" yaml:"id"`
	Shape     ShowerShape  `json:"full5x5" yaml:"full5x5"`
	SC        SuperCluster `json:"supercluster" yaml:"supercluster"`
	Isolation PFIsolation  `json:"pf_isolation" yaml:"pf_isolation"`
}

var _ Photon = (*Reco)(nil)

func (r *Reco) Key() Key                        { return r.Ref }
func (r *Reco) Pt() float64                     { return r.P4.Pt }
func (r *Reco) Eta() float64                    { return r.P4.Eta }
func (r *Reco) Phi() float64                    { return r.P4.Phi }
func (r *Reco) R9() float64                     { return r.ID.R9 }
func (r *Reco) HadronicOverEm() float64         { return r.ID.HadronicOverEm }
func (r *Reco) HasPixelSeed() bool              { return r.ID.HasPixelSeed }
func (r *Reco) PassElectronVeto() bool          { return r.ID.PassElectronVeto }
func (r *Reco) Full5x5ShowerShape() ShowerShape { return r.Shape }
func (r *Reco) SuperCluster() SuperCluster      { return r.SC }
func (r *Reco) PFIsolation() PFIsolation        { return r.Isolation }
