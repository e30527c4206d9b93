// Package estimator scores photon candidates with the category BDTs.
//
// An Estimator is built once from its configuration; construction loads
// every weight file. After New returns it holds only read-only state and
// Score may be called from any number of goroutines.
package estimator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/okian/phomva/internal/domain/candidate"
	"github.com/okian/phomva/internal/domain/category"
	"github.com/okian/phomva/internal/domain/event"
	"github.com/okian/phomva/internal/domain/isolation"
	"github.com/okian/phomva/internal/mva/bank"
	"github.com/okian/phomva/internal/mva/features"
	"github.com/okian/phomva/pkg/logger"
	"github.com/okian/phomva/pkg/metrics"
)

// Config is the construction-time parameter set.
type Config struct {
	Tag          string
	UseValueMaps bool
	Labels       features.Labels
	WeightFiles  []string
	SampleType   int
	Setup        int
}

// Estimator computes the photon ID discriminant.
type Estimator struct {
	tag       string
	assembler *features.Assembler
	bank      *bank.Bank

	loader bank.Loader
	iso    isolation.Helper
	logger logger.Logger
}

// New loads the models named in cfg and returns a ready estimator.
func New(ctx context.Context, cfg Config, opts ...Option) (*Estimator, error) {
	e := &Estimator{
		tag:    cfg.Tag,
		loader: bank.ForestLoader,
		iso:    isolation.PF{},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	b, err := bank.New(ctx, cfg.WeightFiles, e.loader, features.Layout, bank.WithLogger(e.logger))
	if err != nil {
		metrics.RecordModelLoadError()
		return nil, fmt.Errorf("estimator %q: %w", cfg.Tag, err)
	}
	e.bank = b
	e.assembler = features.New(cfg.UseValueMaps, cfg.Labels, e.iso,
		features.WithSample(cfg.SampleType, cfg.Setup))

	metrics.UpdateModelsLoaded(b.Len())
	e.logger.Info(ctx, "estimator ready",
		logger.String("tag", e.tag),
		logger.Bool("useValueMaps", cfg.UseValueMaps),
		logger.Int("models", b.Len()),
	)
	return e, nil
}

// Tag returns the instance identifier.
func (e *Estimator) Tag() string { return e.tag }

// RequiredInputs lists the event products every Score call reads.
func (e *Estimator) RequiredInputs() []event.Input {
	return e.assembler.RequiredInputs()
}

// DeclareInputs registers the required inputs with c.
func (e *Estimator) DeclareInputs(c event.Consumer) {
	for _, in := range e.RequiredInputs() {
		c.Consumes(in)
	}
}

// Category returns the category of p from its supercluster eta.
func (e *Estimator) Category(p candidate.Particle) (category.Category, error) {
	pho, ok := candidate.AsPhoton(p)
	if !ok {
		return category.Undefined, fmt.Errorf("%w: got %T", ErrTypeMismatch, p)
	}
	return category.Classify(pho.SuperCluster().Eta), nil
}

// Score returns the raw model output for p. Any failure aborts the call;
// no partial score is returned.
func (e *Estimator) Score(ctx context.Context, p candidate.Particle, ev event.Context) (float64, error) {
	start := time.Now()

	c, err := e.Category(p)
	if err != nil {
		return 0, e.fail(ctx, p, err)
	}

	v, err := e.assembler.Variables(p, ev)
	if err != nil {
		return 0, e.fail(ctx, p, err)
	}
	x := v.Pack(c)

	if e.logger.Enabled(ctx, slog.LevelDebug) {
		e.logger.Debug(ctx, "mva variables",
			logger.String("tag", e.tag),
			logger.String("key", string(p.Key())),
			logger.String("category", c.String()),
			logger.Any("variables", *v),
		)
	}

	score, err := e.bank.Evaluate(c, x)
	if err != nil {
		return 0, e.fail(ctx, p, err)
	}

	metrics.RecordScore(c.String(), score)
	metrics.RecordScoringLatency(c.String(), float64(time.Since(start).Microseconds())/1000)
	return score, nil
}

func (e *Estimator) fail(ctx context.Context, p candidate.Particle, err error) error {
	kind := Kind(err)
	metrics.RecordScoringError(kind)
	var key string
	if p != nil {
		key = string(p.Key())
	}
	e.logger.Debug(ctx, "scoring failed",
		logger.String("tag", e.tag),
		logger.String("key", key),
		logger.String("kind", kind),
		logger.Error(err),
	)
	return err
}
