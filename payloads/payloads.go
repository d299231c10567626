// Package payloads provides example candidate functions for the
// benchmark harness: CPU-bound recursion, tight loops, memory movement
// over caller-owned buffers, float32 math, and image resizing. The CLI
// and the end-to-end tests run these through the sampler.
package payloads

import (
	"github.com/chewxy/math32"
)

// NaiveFib computes the nth Fibonacci number by unmemoized recursion.
// Deliberately exponential; the canonical slow baseline.
func NaiveFib(n int) int {
	if n < 2 {
		return n
	}
	return NaiveFib(n-1) + NaiveFib(n-2)
}

// IterFib computes the nth Fibonacci number iteratively.
func IterFib(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// CopyBytes copies src into dst and returns the number of bytes moved.
// Both buffers are owned by the caller; the payload holds no state of
// its own between calls.
func CopyBytes(dst, src []byte) int {
	return copy(dst, src)
}

// SumSqrt32 accumulates the square roots of xs in float32 precision.
func SumSqrt32(xs []float32) float32 {
	var sum float32
	for _, x := range xs {
		sum += math32.Sqrt(x)
	}
	return sum
}
