// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"

	"github.com/okian/phomva/internal/domain/isolation"
	"github.com/okian/phomva/internal/mva/estimator"
	"github.com/okian/phomva/internal/mva/features"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Workers bounds how many photons of one batch are scored at once.
	Workers int `koanf:"workers"`

	// MVA configures the estimator.
	MVA MVA `koanf:"mva"`
}

// MVA is the estimator parameter set. Key names follow the producer
// configuration the weight files ship with.
type MVA struct {
	MVATag       string `koanf:"mvaTag"`
	UseValueMaps bool   `koanf:"useValueMaps"`

	// WeightFileNames holds one file per category in EB1, EB2, EE order.
	WeightFileNames []string `koanf:"weightFileNames"`

	SampleType int `koanf:"sampleType"`
	Setup      int `koanf:"setup"`

	features.Labels `koanf:",squash"`
}

// DefaultLabels are the standard producer labels for the photon ID maps.
var DefaultLabels = features.Labels{
	Full5x5SigmaIEtaIEtaMap:  "photonIDValueMapProducer:phoFull5x5SigmaIEtaIEta",
	Full5x5SigmaIEtaIPhiMap:  "photonIDValueMapProducer:phoFull5x5SigmaIEtaIPhi",
	Full5x5E1x3Map:           "photonIDValueMapProducer:phoFull5x5E1x3",
	Full5x5E2x2Map:           "photonIDValueMapProducer:phoFull5x5E2x2",
	Full5x5E2x5MaxMap:        "photonIDValueMapProducer:phoFull5x5E2x5Max",
	Full5x5E5x5Map:           "photonIDValueMapProducer:phoFull5x5E5x5",
	ESEffSigmaRRMap:          "photonIDValueMapProducer:phoESEffSigmaRR",
	PhoChargedIsolation:      "photonIDValueMapProducer:phoChargedIsolation",
	PhoPhotonIsolation:       "photonIDValueMapProducer:phoPhotonIsolation",
	PhoWorstChargedIsolation: "photonIDValueMapProducer:phoWorstChargedIsolation",
	Rho:                      "fixedGridRhoFastjetAll",
}

// New creates a Config with defaults. Weight files have no default.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":9080",
		Workers:  runtime.NumCPU() * 2,
		MVA: MVA{
			MVATag:       "Run2Spring15NonTrig25nsV2",
			UseValueMaps: false,
			SampleType:   isolation.Sample2015,
			Setup:        isolation.Sample2015,
			Labels:       DefaultLabels,
		},
	}
}

// Estimator converts the MVA block into the estimator configuration.
func (m MVA) Estimator() estimator.Config {
	return estimator.Config{
		Tag:          m.MVATag,
		UseValueMaps: m.UseValueMaps,
		Labels:       m.Labels,
		WeightFiles:  append([]string(nil), m.WeightFileNames...),
		SampleType:   m.SampleType,
		Setup:        m.Setup,
	}
}
