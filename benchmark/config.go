package benchmark

import "github.com/pkg/errors"

// Config holds the knobs for one benchmark run. It is treated as
// immutable input: Run never modifies it and each run is independent.
type Config struct {
	// WarmupIterations is the number of untimed priming calls before any
	// measurement starts.
	WarmupIterations int `json:"warmup_iterations"`
	// SampleCount is the number of timed batch measurements to collect.
	SampleCount int `json:"sample_count"`
	// BytesPerOp, when positive, enables bytes-per-second throughput
	// derivation in the result record.
	BytesPerOp int64 `json:"bytes_per_op,omitempty"`
}

// DefaultConfig returns the default benchmark configuration.
func DefaultConfig() Config {
	return Config{
		WarmupIterations: 100,
		SampleCount:      1000,
	}
}

// Validate rejects configurations that would make the statistics
// undefined. A SampleCount below 1 is refused outright rather than
// clamped; median indexing needs at least one sample.
func (c Config) Validate() error {
	if c.SampleCount < 1 {
		return errors.Errorf("sample count must be at least 1, got %d", c.SampleCount)
	}
	if c.WarmupIterations < 0 {
		return errors.Errorf("warmup iterations must not be negative, got %d", c.WarmupIterations)
	}
	if c.BytesPerOp < 0 {
		return errors.Errorf("bytes per op must not be negative, got %d", c.BytesPerOp)
	}
	return nil
}
