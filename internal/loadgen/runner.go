package loadgen

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/okian/phomva/internal/adapters/payload"
	"github.com/okian/phomva/pkg/logger"
)

// Run asks the server for its required inputs, generates cfg.Batches
// batches and posts them concurrently. Per-batch failures are counted, not
// returned; only setup failures abort the run.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Stats, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Batches <= 0 || cfg.PhotonsPerBatch <= 0 {
		return nil, fmt.Errorf("batches and photons per batch must be positive")
	}

	start := time.Now()
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("batches", cfg.Batches),
		logger.Int("photonsPerBatch", cfg.PhotonsPerBatch),
		logger.Int("workers", cfg.Workers),
	)

	inputs, err := client.requiredInputs(ctx)
	if err != nil {
		return nil, fmt.Errorf("service is not ready: %w", err)
	}

	gen := NewGenerator(cfg.Seed, inputs)
	batches := make([]*payload.Batch, cfg.Batches)
	for i := range batches {
		batches[i] = gen.Batch(cfg.PhotonsPerBatch)
	}
	stats := &Stats{BatchesGenerated: len(batches), StatusCounts: make(map[int]int)}

	if cfg.OutputFile != "" {
		if err := saveBatches(cfg.OutputFile, batches); err != nil {
			log.Warn(ctx, "failed to save batches", logger.Error(err))
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, b := range batches {
		b := b
		g.Go(func() error {
			status, scored, err := client.score(gctx, b)

			mu.Lock()
			defer mu.Unlock()
			stats.BatchesSent++
			stats.StatusCounts[status]++
			if err != nil || status != http.StatusOK {
				stats.BatchesFailed++
				log.Debug(gctx, "batch failed",
					logger.String("eventID", b.EventID),
					logger.Int("status", status),
					logger.Error(err),
				)
				return nil
			}
			stats.BatchesOK++
			stats.PhotonsScored += scored
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = time.Since(start)
	log.Info(ctx, "load run finished",
		logger.Int("sent", stats.BatchesSent),
		logger.Int("ok", stats.BatchesOK),
		logger.Int("failed", stats.BatchesFailed),
		logger.Int("photons", stats.PhotonsScored),
		logger.Float64("successRate", stats.SuccessRate()),
		logger.String("duration", stats.Duration.String()),
	)
	return stats, nil
}

// saveBatches writes the batches as a YAML stream, one document per batch.
func saveBatches(path string, batches []*payload.Batch) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	for i, b := range batches {
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("failed to encode batch %d: %w", i, err)
		}
	}
	return enc.Close()
}
