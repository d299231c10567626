package benchmark

// alwaysFalse is read at runtime, so the compiler cannot prove the
// branch in Sink dead and must keep the value (and the work that
// produced it) alive.
var alwaysFalse bool

var sinkDst any

// Sink marks v as observable, preventing dead-code elimination of the
// computation that produced it. Every value-returning adapter routes its
// result through Sink; payloads that compute without returning should
// call it themselves on their final value, or measurements will be
// silently wrong.
//
//go:noinline
func Sink[T any](v T) {
	if alwaysFalse {
		sinkDst = v
	}
}
