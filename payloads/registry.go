package payloads

import (
	"image"

	"github.com/hotpath-dev/hotpath/benchmark"
)

// Entry pairs a named candidate with the byte volume it moves per call,
// when that is meaningful for throughput reporting.
type Entry struct {
	Name       string
	Fn         benchmark.Func
	BytesPerOp int64
}

// Builtin returns the builtin payload entries in display order. Buffers
// for the memory payloads are allocated here and captured by the
// closures, so every invocation works on the same caller-owned data.
func Builtin() []Entry {
	const bufSize = 1 << 20 // 1 MiB

	src := make([]byte, bufSize)
	dst := make([]byte, bufSize)
	for i := range src {
		src[i] = byte(i)
	}

	floats := make([]float32, 4096)
	for i := range floats {
		floats[i] = float32(i) + 0.5
	}

	img := NewTestImage(256, 256)

	return []Entry{
		{
			Name: "fib_naive_20",
			Fn:   benchmark.Value(func() int { return NaiveFib(20) }),
		},
		{
			Name: "fib_iter_20",
			Fn:   benchmark.Value(func() int { return IterFib(20) }),
		},
		{
			Name:       "copy_1mib",
			Fn:         benchmark.Value(func() int { return CopyBytes(dst, src) }),
			BytesPerOp: bufSize,
		},
		{
			Name: "sum_sqrt32_4096",
			Fn:   benchmark.Value(func() float32 { return SumSqrt32(floats) }),
		},
		{
			Name: "resize_halve_256",
			Fn:   benchmark.Value(func() image.Image { return HalveImage(img) }),
		},
	}
}
