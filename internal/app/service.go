// Package service wires the estimator into the operations the HTTP API and
// the CLI expose.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/phomva/internal/adapters/payload"
	"github.com/okian/phomva/internal/domain/event"
	"github.com/okian/phomva/internal/domain/isolation"
	"github.com/okian/phomva/internal/mva/bank"
	"github.com/okian/phomva/internal/mva/estimator"
	"github.com/okian/phomva/pkg/logger"
	"github.com/okian/phomva/pkg/metrics"
)

// Score is the result for one photon.
type Score struct {
	Key      string  `json:"key"`
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// Result holds the scores of one batch in photon order.
type Result struct {
	EventID string  `json:"event_id"`
	Scores  []Score `json:"scores"`
}

// Service owns the estimator and scores batches against it.
type Service struct {
	mu sync.RWMutex

	est *estimator.Estimator

	// Configuration
	workerCount int
	estCfg      estimator.Config
	loader      bank.Loader
	iso         isolation.Helper

	// State
	started   bool
	startedAt time.Time
	batches   int64
	photons   int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets how many photons of one batch are scored at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEstimatorConfig sets the estimator built by Start.
func WithEstimatorConfig(cfg estimator.Config) Option {
	return func(s *Service) {
		s.estCfg = cfg
	}
}

// WithLoader replaces the weight file loader.
func WithLoader(l bank.Loader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithIsolation replaces the combined isolation helper.
func WithIsolation(h isolation.Helper) Option {
	return func(s *Service) {
		s.iso = h
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		logger:      nil, // replaced in Start when unset
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the models. Scoring is available once Start returns nil.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting photon mva service...",
		logger.String("tag", s.estCfg.Tag),
		logger.Any("weightFiles", s.estCfg.WeightFiles),
	)

	est, err := estimator.New(ctx, s.estCfg,
		estimator.WithLoader(s.loader),
		estimator.WithIsolation(s.iso),
		estimator.WithLogger(s.logger.Named("estimator")),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStart, err)
	}

	s.est = est
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "photon mva service started",
		logger.Int("workers", s.workerCount),
		logger.Int("inputs", len(est.RequiredInputs())),
	)

	return nil
}

// Stop releases the estimator.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.est = nil
	s.started = false
	s.logger.Info(context.Background(), "photon mva service stopped")
}

func (s *Service) current() (*estimator.Estimator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.est, nil
}

// ScoreBatch scores every photon of b concurrently. The first failure
// cancels the remaining work and no partial result is returned.
func (s *Service) ScoreBatch(ctx context.Context, b *payload.Batch) (*Result, error) {
	est, err := s.current()
	if err != nil {
		return nil, err
	}

	rec := b.Record()
	cands := b.Candidates()
	scores := make([]Score, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerCount)
	for i, p := range cands {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := est.Category(p)
			if err != nil {
				return fmt.Errorf("photon %q: %w", p.Key(), err)
			}
			v, err := est.Score(gctx, p, rec)
			if err != nil {
				return fmt.Errorf("photon %q: %w", p.Key(), err)
			}
			scores[i] = Score{Key: string(p.Key()), Category: c.String(), Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn(ctx, "batch scoring failed",
			logger.String("eventID", b.EventID),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordBatch(len(cands))
	s.mu.Lock()
	s.batches++
	s.photons += int64(len(cands))
	s.mu.Unlock()

	return &Result{EventID: b.EventID, Scores: scores}, nil
}

// RequiredInputs lists the event products a batch must carry.
func (s *Service) RequiredInputs() ([]event.Input, error) {
	est, err := s.current()
	if err != nil {
		return nil, err
	}
	return est.RequiredInputs(), nil
}

// Ready reports whether the models are loaded.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"tag":         s.estCfg.Tag,
		"batches":     s.batches,
		"photons":     s.photons,
	}
	if s.started {
		stats["uptimeSeconds"] = time.Since(s.startedAt).Seconds()
		stats["useValueMaps"] = s.estCfg.UseValueMaps
	}
	return stats
}
