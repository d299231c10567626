// Package benchmark - Measurement core for microbenchmarking candidate
// functions with adaptive batching and hardware counter support.
package benchmark

import "time"

// Record is the immutable result of one benchmark run. All duration
// fields are per-operation nanoseconds derived from batch timings.
type Record struct {
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	MinNs       float64   `json:"min_ns"`
	MaxNs       float64   `json:"max_ns"`
	MeanNs      float64   `json:"mean_ns"`
	MedianNs    float64   `json:"median_ns"`
	StdDevNs    float64   `json:"std_dev_ns"`
	SampleCount int       `json:"sample_count"`
	// BatchSize is the discovered number of invocations per timed sample.
	BatchSize int     `json:"batch_size"`
	OpsPerSec float64 `json:"ops_per_sec"`
	// BytesPerSec is throughput in MB/s; zero when the run had no
	// BytesPerOp configured.
	BytesPerSec float64 `json:"bytes_per_sec,omitempty"`
	// Hardware is nil when counters were unavailable, distinguishing
	// "not measured" from "measured as zero". The four fields are always
	// populated together.
	Hardware *HardwareMetrics `json:"hardware,omitempty"`
}

// HardwareMetrics captures per-operation hardware counter averages for
// one run.
type HardwareMetrics struct {
	CyclesPerOp       float64 `json:"cycles_per_op"`
	InstructionsPerOp float64 `json:"instructions_per_op"`
	// IPC is instructions divided by cycles; zero when no cycles were
	// observed.
	IPC              float64 `json:"ipc"`
	CacheMissesPerOp float64 `json:"cache_misses_per_op"`
}
