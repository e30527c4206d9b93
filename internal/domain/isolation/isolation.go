// Package isolation computes pileup-corrected relative isolation for photons.
package isolation

import (
	"fmt"
	"math"

	"github.com/okian/phomva/internal/domain/candidate"
)

// Sample2015 is the only data-taking period with an effective-area table.
const Sample2015 = 2015

// Helper computes the combined relative PF isolation of a photon.
type Helper interface {
	// CombRelIsoPF returns the relative isolation for the given sample and
	// detector setup, pileup density rho and FSR recovery term fsr.
	CombRelIsoPF(sampleType, setup int, rho float64, p candidate.Photon, fsr float64) (float64, error)
}

// effectiveArea is one |eta| bin upper edge and its area.
type effectiveArea struct {
	maxAbsEta float64
	area      float64
}

// 2015 (25 ns) effective areas, binned in supercluster |eta|.
var effectiveAreas2015 = []effectiveArea{
	{1.0, 0.1752},
	{1.479, 0.1862},
	{2.0, 0.1411},
	{2.2, 0.1534},
	{2.3, 0.1903},
	{2.4, 0.2243},
	{math.Inf(1), 0.2687},
}

// PF is the default Helper: charged-hadron isolation plus the rho-corrected
// neutral sum, divided by pt.
type PF struct{}

var _ Helper = PF{}

// CombRelIsoPF implements Helper.
func (PF) CombRelIsoPF(sampleType, setup int, rho float64, p candidate.Photon, fsr float64) (float64, error) {
	ea, err := EffectiveArea(sampleType, setup, p.SuperCluster().Eta)
	if err != nil {
		return 0, err
	}
	iso := p.PFIsolation()
	neutral := math.Max(0, iso.NeutralHadron+iso.Photon-fsr-rho*ea)
	return (iso.ChargedHadron + neutral) / p.Pt(), nil
}

// EffectiveArea returns the pileup effective area for a supercluster eta.
// setup is accepted for symmetry with sampleType; each sample currently has
// a single detector setup.
func EffectiveArea(sampleType, _ int, scEta float64) (float64, error) {
	if sampleType != Sample2015 {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedSample, sampleType)
	}
	abs := math.Abs(scEta)
	for _, b := range effectiveAreas2015 {
		if abs < b.maxAbsEta {
			return b.area, nil
		}
	}
	return effectiveAreas2015[len(effectiveAreas2015)-1].area, nil
}
