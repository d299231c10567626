package benchmark

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeOddCount(t *testing.T) {
	s := summarize([]float64{1, 2, 3, 4, 5})

	assert.Equal(t, 1.0, s.min)
	assert.Equal(t, 5.0, s.max)
	assert.Equal(t, 3.0, s.mean)
	assert.Equal(t, 3.0, s.median)
	assert.InDelta(t, math.Sqrt(2.0), s.stdDev, 1e-12)
}

func TestSummarizeEvenCountTakesUpperMiddle(t *testing.T) {
	// The median is samples[n/2], never an averaged midpoint: for
	// [1 2 3 4] that is index 2, value 3.
	s := summarize([]float64{1, 2, 3, 4})

	assert.Equal(t, 3.0, s.median)
	assert.Equal(t, 2.5, s.mean)
	assert.InDelta(t, math.Sqrt(1.25), s.stdDev, 1e-12)
}

func TestSummarizePopulationStdDev(t *testing.T) {
	// Population form divides by n. For [2 4 4 4 5 5 7 9] that gives
	// exactly 2; the sample form (n-1) would give ~2.138.
	s := summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, 5.0, s.mean)
	assert.InDelta(t, 2.0, s.stdDev, 1e-12)
}

func TestSummarizeSingleSample(t *testing.T) {
	s := summarize([]float64{7})

	assert.Equal(t, 7.0, s.min)
	assert.Equal(t, 7.0, s.max)
	assert.Equal(t, 7.0, s.mean)
	assert.Equal(t, 7.0, s.median)
	assert.Equal(t, 0.0, s.stdDev)
}
