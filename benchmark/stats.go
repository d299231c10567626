package benchmark

import "math"

// summary holds the derived statistics for one sorted sample set.
type summary struct {
	min    float64
	max    float64
	mean   float64
	median float64
	stdDev float64
}

// summarize computes summary statistics over per-operation samples,
// which must already be sorted ascending and non-empty.
//
// The median is the element at index len/2: for even counts that is the
// upper-middle sample, not an averaged midpoint. The standard deviation
// is the population form (divide by n, not n-1).
func summarize(sorted []float64) summary {
	n := len(sorted)

	sum := 0.0
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(n)

	sqSum := 0.0
	for _, s := range sorted {
		d := s - mean
		sqSum += d * d
	}

	return summary{
		min:    sorted[0],
		max:    sorted[n-1],
		mean:   mean,
		median: sorted[n/2],
		stdDev: math.Sqrt(sqSum / float64(n)),
	}
}
