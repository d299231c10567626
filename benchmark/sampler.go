package benchmark

import (
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/hotpath-dev/hotpath/perf"
)

// Func is the canonical candidate shape: one invocation of the code
// under measurement. Candidates that cannot fail wrap themselves with
// the adapter helpers below; argument bundles are closure captures, so
// arity or type mismatches are compile-time errors.
type Func func() error

// Void adapts an infallible candidate with no result.
func Void(fn func()) Func {
	return func() error {
		fn()
		return nil
	}
}

// Value adapts an infallible candidate returning a result. The result is
// routed through Sink so the call cannot be eliminated.
func Value[T any](fn func() T) Func {
	return func() error {
		Sink(fn())
		return nil
	}
}

// ValueErr adapts a fallible candidate returning a result.
func ValueErr[T any](fn func() (T, error)) Func {
	return func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		Sink(v)
		return nil
	}
}

// batchTargetNs is the minimum wall-clock duration one timed batch must
// reach. Batches shorter than this are dominated by timer resolution and
// call-dispatch overhead instead of the measured work.
const batchTargetNs = int64(time.Millisecond)

// Run benchmarks fn under cfg and returns its metrics record: warmup,
// adaptive batch-size discovery, timed sampling, statistics, and an
// optional hardware counter pass. A candidate failure in any phase
// aborts the run; no partial record is ever returned. Failure to open
// hardware counters is not an error; the record's Hardware field simply
// stays nil.
func Run(name string, fn Func, cfg Config) (*Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "benchmark %q", name)
	}

	for i := 0; i < cfg.WarmupIterations; i++ {
		if err := fn(); err != nil {
			return nil, errors.WithMessagef(err, "benchmark %q: warmup", name)
		}
	}

	batchSize, err := discoverBatchSize(fn)
	if err != nil {
		return nil, errors.WithMessagef(err, "benchmark %q: batch discovery", name)
	}

	samples := make([]float64, cfg.SampleCount)
	for i := range samples {
		elapsed, err := timeBatch(fn, batchSize)
		if err != nil {
			return nil, errors.WithMessagef(err, "benchmark %q: sampling", name)
		}
		// Each stored sample is the per-operation average over one
		// batch, not a single-call measurement.
		samples[i] = float64(elapsed) / float64(batchSize)
	}
	sort.Float64s(samples)

	stats := summarize(samples)

	rec := &Record{
		Name:        name,
		Timestamp:   time.Now(),
		MinNs:       stats.min,
		MaxNs:       stats.max,
		MeanNs:      stats.mean,
		MedianNs:    stats.median,
		StdDevNs:    stats.stdDev,
		SampleCount: cfg.SampleCount,
		BatchSize:   batchSize,
	}
	if stats.mean > 0 {
		rec.OpsPerSec = 1e9 / stats.mean
	}
	if cfg.BytesPerOp > 0 {
		rec.BytesPerSec = rec.OpsPerSec * float64(cfg.BytesPerOp) / 1e6
	}

	hw, err := runHardwarePass(fn, cfg.SampleCount, batchSize)
	if err != nil {
		return nil, errors.WithMessagef(err, "benchmark %q: hardware pass", name)
	}
	rec.Hardware = hw

	return rec, nil
}

// discoverBatchSize finds the smallest batch size, starting at 1, whose
// wall-clock duration reaches batchTargetNs. Growth has three branches:
// a zero elapsed reading (timer too coarse to observe anything) grows
// the batch tenfold, otherwise the batch is multiplied by the rounded-up
// ratio of target to elapsed, falling back to doubling whenever that
// ratio degenerates to 1 or below.
func discoverBatchSize(fn Func) (int, error) {
	batchSize := 1
	for {
		elapsed, err := timeBatch(fn, batchSize)
		if err != nil {
			return 0, err
		}
		if elapsed >= batchTargetNs {
			return batchSize, nil
		}

		multiplier := 10
		if elapsed > 0 {
			multiplier = int(math.Ceil(float64(batchTargetNs) / float64(elapsed)))
			if multiplier <= 1 {
				multiplier = 2
			}
		}
		next := batchSize * multiplier
		if next/multiplier != batchSize {
			return 0, errors.Errorf("batch size overflow at %d x%d", batchSize, multiplier)
		}
		batchSize = next
	}
}

// timeBatch invokes fn n times as one timed block and returns the total
// elapsed nanoseconds. The first candidate failure aborts the batch.
func timeBatch(fn Func, n int) (int64, error) {
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := fn(); err != nil {
			return 0, err
		}
	}
	return time.Since(start).Nanoseconds(), nil
}

// runHardwarePass re-executes the full sample workload once more under
// an enabled counter group and averages the aggregate counts over the
// operation count. An open failure means counters are unavailable here
// (permissions, platform) and yields (nil, nil); any failure after a
// successful open is a hard error, since the caller has committed to
// hardware data at that point.
func runHardwarePass(fn Func, sampleCount, batchSize int) (*HardwareMetrics, error) {
	group, err := perf.Open(perf.CPUCycles, perf.Instructions, perf.CacheMisses)
	if err != nil {
		return nil, nil
	}
	defer group.Close()

	if err := group.Capture(); err != nil {
		return nil, err
	}
	totalOps := sampleCount * batchSize
	for i := 0; i < totalOps; i++ {
		if err := fn(); err != nil {
			return nil, err
		}
	}
	if err := group.Stop(); err != nil {
		return nil, err
	}
	counts, err := group.Read()
	if err != nil {
		return nil, err
	}

	ops := float64(totalOps)
	hw := &HardwareMetrics{
		CyclesPerOp:       float64(counts[perf.CPUCycles]) / ops,
		InstructionsPerOp: float64(counts[perf.Instructions]) / ops,
		CacheMissesPerOp:  float64(counts[perf.CacheMisses]) / ops,
	}
	if hw.CyclesPerOp > 0 {
		hw.IPC = hw.InstructionsPerOp / hw.CyclesPerOp
	}
	return hw, nil
}
