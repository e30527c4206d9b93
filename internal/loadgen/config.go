// Package loadgen drives a running phomva server with synthetic batches.
package loadgen

import "time"

// Config holds configuration for a load run.
type Config struct {
	BaseURL         string        // Base URL of the service
	Batches         int           // Number of batches to post
	PhotonsPerBatch int           // Photons in every batch
	Workers         int           // Concurrent requests
	Timeout         time.Duration // HTTP request timeout
	Seed            uint64        // Generator seed; equal seeds give equal batches
	OutputFile      string        // Optional YAML dump of the generated batches
}

// Stats holds run statistics.
type Stats struct {
	BatchesGenerated int
	BatchesSent      int
	BatchesOK        int
	BatchesFailed    int
	PhotonsScored    int
	StatusCounts     map[int]int
	Duration         time.Duration
}

// SuccessRate returns the share of sent batches that were scored.
func (s *Stats) SuccessRate() float64 {
	if s.BatchesSent == 0 {
		return 0
	}
	return float64(s.BatchesOK) / float64(s.BatchesSent) * percentageMultiplier
}

const (
	percentageMultiplier = 100
	defaultTimeout       = 10 * time.Second
	defaultWorkers       = 8
	directoryPermission  = 0o750
)
