// Package perf provides group-atomic access to hardware performance
// counters. A Group opens one counter per requested event, anchored on a
// group leader so the kernel schedules and reads all of them as a single
// unit. Raw readings carry the time the group was enabled and the time it
// was actually resident on the CPU; when the kernel multiplexed the group
// off the CPU, read values are scaled by enabled/running to estimate the
// full-interval count.
//
// Counters are a Linux facility (perf_event_open). On other platforms, or
// when the calling process lacks permission, Open fails with ErrOpenFailed
// and callers are expected to continue without hardware metrics.
package perf

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Event identifies a hardware performance event kind.
type Event int

const (
	// CPUCycles counts CPU clock cycles.
	CPUCycles Event = iota
	// Instructions counts retired instructions.
	Instructions
	// CacheReferences counts cache accesses.
	CacheReferences
	// CacheMisses counts cache accesses that missed.
	CacheMisses
	// BranchMisses counts mispredicted branches.
	BranchMisses
)

// String returns the perf-style name of the event.
func (e Event) String() string {
	switch e {
	case CPUCycles:
		return "cpu-cycles"
	case Instructions:
		return "instructions"
	case CacheReferences:
		return "cache-references"
	case CacheMisses:
		return "cache-misses"
	case BranchMisses:
		return "branch-misses"
	default:
		return "unknown"
	}
}

// Counts maps each requested event to its (multiplexing-corrected) count.
type Counts map[Event]uint64

// Sentinel errors for each counter-group phase. Callers distinguish them
// with errors.Is; only ErrOpenFailed is expected in normal operation
// (permission restrictions, missing kernel support), and it signals
// "hardware metrics unavailable" rather than a broken run.
var (
	// ErrGroupClosed is returned by any operation on a closed group.
	ErrGroupClosed = errors.New("perf: counter group already closed")
	// ErrOpenFailed is returned when the counter syscall is refused.
	ErrOpenFailed = errors.New("perf: opening counter failed")
	// ErrResetFailed is returned when resetting the group fails.
	ErrResetFailed = errors.New("perf: resetting counter group failed")
	// ErrEnableFailed is returned when enabling the group fails.
	ErrEnableFailed = errors.New("perf: enabling counter group failed")
	// ErrDisableFailed is returned when disabling the group fails.
	ErrDisableFailed = errors.New("perf: disabling counter group failed")
	// ErrReadFailed is returned when reading the group record fails.
	ErrReadFailed = errors.New("perf: reading counter group failed")
	// ErrGetIDFailed is returned when querying a counter identifier fails.
	ErrGetIDFailed = errors.New("perf: querying counter id failed")
)

// groupReading is one decoded PERF_FORMAT_GROUP record from the leader:
// the enabled/running times for the whole group plus one (value, id) pair
// per member.
type groupReading struct {
	timeEnabled uint64
	timeRunning uint64
	counts      []rawCount
}

type rawCount struct {
	value uint64
	id    uint64
}

const (
	groupHeaderSize = 24 // nr + time_enabled + time_running
	rawCountSize    = 16 // value + id
)

// decodeGroupReading parses the binary record produced by reading a group
// leader opened with PERF_FORMAT_GROUP | PERF_FORMAT_ID |
// PERF_FORMAT_TOTAL_TIME_ENABLED | PERF_FORMAT_TOTAL_TIME_RUNNING.
func decodeGroupReading(buf []byte) (groupReading, error) {
	if len(buf) < groupHeaderSize {
		return groupReading{}, errors.Errorf("short group record: %d bytes", len(buf))
	}
	nr := binary.NativeEndian.Uint64(buf[0:8])
	r := groupReading{
		timeEnabled: binary.NativeEndian.Uint64(buf[8:16]),
		timeRunning: binary.NativeEndian.Uint64(buf[16:24]),
	}
	need := groupHeaderSize + int(nr)*rawCountSize
	if len(buf) < need {
		return groupReading{}, errors.Errorf("truncated group record: %d bytes for %d counters", len(buf), nr)
	}
	r.counts = make([]rawCount, 0, nr)
	for i := 0; i < int(nr); i++ {
		off := groupHeaderSize + i*rawCountSize
		r.counts = append(r.counts, rawCount{
			value: binary.NativeEndian.Uint64(buf[off : off+8]),
			id:    binary.NativeEndian.Uint64(buf[off+8 : off+16]),
		})
	}
	return r, nil
}

// scaled maps raw (value, id) pairs back to their events via the id table
// recorded at open time and applies multiplexing correction. A group that
// was never scheduled (time_running == 0) yields all zeros. Values whose
// id is not in the table are ignored; the kernel does not guarantee read
// order matches request order, and newer kernels may append members we
// did not ask for.
func (r groupReading) scaled(ids map[uint64]Event) Counts {
	out := make(Counts, len(ids))
	for _, ev := range ids {
		out[ev] = 0
	}
	if r.timeRunning == 0 {
		return out
	}
	scale := 1.0
	if r.timeRunning < r.timeEnabled {
		scale = float64(r.timeEnabled) / float64(r.timeRunning)
	}
	for _, c := range r.counts {
		ev, ok := ids[c.id]
		if !ok {
			continue
		}
		out[ev] = uint64(float64(c.value) * scale)
	}
	return out
}
