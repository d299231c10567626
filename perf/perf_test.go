package perf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeGroupRecord builds the binary record the kernel produces for a
// group leader read, so the decode and scaling paths can be tested
// without opening real counters.
func encodeGroupRecord(timeEnabled, timeRunning uint64, counts []rawCount) []byte {
	buf := make([]byte, groupHeaderSize+len(counts)*rawCountSize)
	binary.NativeEndian.PutUint64(buf[0:8], uint64(len(counts)))
	binary.NativeEndian.PutUint64(buf[8:16], timeEnabled)
	binary.NativeEndian.PutUint64(buf[16:24], timeRunning)
	for i, c := range counts {
		off := groupHeaderSize + i*rawCountSize
		binary.NativeEndian.PutUint64(buf[off:off+8], c.value)
		binary.NativeEndian.PutUint64(buf[off+8:off+16], c.id)
	}
	return buf
}

func TestDecodeGroupReading(t *testing.T) {
	buf := encodeGroupRecord(1000, 1000, []rawCount{
		{value: 123, id: 7},
		{value: 456, id: 9},
	})

	reading, err := decodeGroupReading(buf)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), reading.timeEnabled)
	assert.Equal(t, uint64(1000), reading.timeRunning)
	require.Len(t, reading.counts, 2)
	assert.Equal(t, rawCount{value: 123, id: 7}, reading.counts[0])
	assert.Equal(t, rawCount{value: 456, id: 9}, reading.counts[1])
}

func TestDecodeGroupReadingShortBuffer(t *testing.T) {
	_, err := decodeGroupReading(make([]byte, 8))
	assert.Error(t, err)

	// Header claims two counters but the payload holds one.
	buf := encodeGroupRecord(1, 1, []rawCount{{value: 1, id: 1}})
	binary.NativeEndian.PutUint64(buf[0:8], 2)
	_, err = decodeGroupReading(buf)
	assert.Error(t, err)
}

func TestMultiplexingScale(t *testing.T) {
	// Group was resident for half of the enabled window, so every value
	// is scaled by 2.0 to estimate the full-interval count.
	reading := groupReading{
		timeEnabled: 100,
		timeRunning: 50,
		counts:      []rawCount{{value: 10, id: 1}},
	}
	ids := map[uint64]Event{1: CPUCycles}

	counts := reading.scaled(ids)
	assert.Equal(t, uint64(20), counts[CPUCycles])
}

func TestScaleFullyResidentGroup(t *testing.T) {
	reading := groupReading{
		timeEnabled: 100,
		timeRunning: 100,
		counts: []rawCount{
			{value: 42, id: 1},
			{value: 7, id: 2},
		},
	}
	ids := map[uint64]Event{1: CPUCycles, 2: Instructions}

	counts := reading.scaled(ids)
	assert.Equal(t, uint64(42), counts[CPUCycles])
	assert.Equal(t, uint64(7), counts[Instructions])
}

func TestScaleNeverScheduledGroup(t *testing.T) {
	// time_running == 0 means the group never ran; every event reads as
	// zero rather than dividing by zero.
	reading := groupReading{
		timeEnabled: 100,
		timeRunning: 0,
		counts:      []rawCount{{value: 999, id: 1}},
	}
	ids := map[uint64]Event{1: CPUCycles, 2: Instructions}

	counts := reading.scaled(ids)
	require.Len(t, counts, 2)
	assert.Equal(t, uint64(0), counts[CPUCycles])
	assert.Equal(t, uint64(0), counts[Instructions])
}

func TestScaleIgnoresUnknownIDs(t *testing.T) {
	reading := groupReading{
		timeEnabled: 10,
		timeRunning: 10,
		counts: []rawCount{
			{value: 5, id: 1},
			{value: 77, id: 999}, // not in the id table
		},
	}
	ids := map[uint64]Event{1: CacheMisses}

	counts := reading.scaled(ids)
	require.Len(t, counts, 1)
	assert.Equal(t, uint64(5), counts[CacheMisses])
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "cpu-cycles", CPUCycles.String())
	assert.Equal(t, "instructions", Instructions.String())
	assert.Equal(t, "cache-references", CacheReferences.String())
	assert.Equal(t, "cache-misses", CacheMisses.String())
	assert.Equal(t, "branch-misses", BranchMisses.String())
	assert.Equal(t, "unknown", Event(100).String())
}

// openGroup opens a real counter group or skips the test when the
// kernel refuses (unprivileged CI, non-Linux platforms).
func openGroup(t *testing.T, events ...Event) *Group {
	t.Helper()
	g, err := Open(events...)
	if err != nil {
		t.Skipf("hardware counters unavailable: %v", err)
	}
	return g
}

func TestGroupLifecycle(t *testing.T) {
	g := openGroup(t, CPUCycles, Instructions)
	defer g.Close()

	require.NoError(t, g.Capture())

	// Burn some cycles so the counters have something to count.
	total := 0
	for i := 0; i < 1_000_000; i++ {
		total += i
	}

	require.NoError(t, g.Stop())

	counts, err := g.Read()
	require.NoError(t, err)
	require.Contains(t, counts, CPUCycles)
	require.Contains(t, counts, Instructions)
	assert.Greater(t, counts[Instructions], uint64(0))
	_ = total
}

func TestGroupCaptureResetsCounts(t *testing.T) {
	g := openGroup(t, Instructions)
	defer g.Close()

	require.NoError(t, g.Capture())
	for i := 0; i < 100_000; i++ {
		_ = i * i
	}
	require.NoError(t, g.Stop())
	first, err := g.Read()
	require.NoError(t, err)

	// A fresh capture starts from zero; a much smaller workload must not
	// inherit the previous window's count.
	require.NoError(t, g.Capture())
	require.NoError(t, g.Stop())
	second, err := g.Read()
	require.NoError(t, err)

	assert.Less(t, second[Instructions], first[Instructions])
}

func TestGroupClosedErrors(t *testing.T) {
	g := openGroup(t, CPUCycles)

	require.NoError(t, g.Close())
	// Second close stays silent.
	require.NoError(t, g.Close())

	assert.ErrorIs(t, g.Capture(), ErrGroupClosed)
	assert.ErrorIs(t, g.Stop(), ErrGroupClosed)
	_, err := g.Read()
	assert.ErrorIs(t, err, ErrGroupClosed)
}

func TestTwoGroupsIndependentLifecycles(t *testing.T) {
	first := openGroup(t, CPUCycles)
	second, err := Open(CPUCycles)
	require.NoError(t, err)

	require.NoError(t, first.Capture())
	require.NoError(t, second.Capture())
	require.NoError(t, first.Stop())
	require.NoError(t, second.Stop())

	// Closing one group must not disturb the other.
	require.NoError(t, first.Close())
	_, err = second.Read()
	require.NoError(t, err)
	require.NoError(t, second.Close())
}
