//go:build linux

package perf

import (
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Group owns a set of open counter file descriptors. The first requested
// event is the group leader; every other event is opened as a sibling
// attached to the leader so the kernel enables, disables, and reads the
// whole set atomically. A Group monitors the calling process on any CPU
// and counts user-space activity only.
type Group struct {
	fds    []int // fds[0] is the leader
	ids    map[uint64]Event
	closed bool
}

// Supported reports whether hardware counters can be opened on this
// platform at all. A true result does not guarantee Open will succeed;
// the kernel may still refuse for permission reasons.
func Supported() bool { return true }

// Open opens one counter per event as a single group. On any failure the
// already-opened descriptors are closed before the error is returned, so
// a failed Open never leaks handles. Permission refusals surface as
// ErrOpenFailed (check kernel.perf_event_paranoid when running
// unprivileged).
func Open(events ...Event) (*Group, error) {
	if len(events) == 0 {
		return nil, errors.WithMessage(ErrOpenFailed, "no events requested")
	}
	g := &Group{
		fds: make([]int, 0, len(events)),
		ids: make(map[uint64]Event, len(events)),
	}
	for i, ev := range events {
		attr := unix.PerfEventAttr{
			Type:   unix.PERF_TYPE_HARDWARE,
			Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
			Config: ev.config(),
			Bits:   unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}
		leader := -1
		if i == 0 {
			// Only the leader starts disabled and carries the group read
			// format; siblings follow its enable/disable state.
			attr.Bits |= unix.PerfBitDisabled
			attr.Read_format = unix.PERF_FORMAT_GROUP |
				unix.PERF_FORMAT_ID |
				unix.PERF_FORMAT_TOTAL_TIME_ENABLED |
				unix.PERF_FORMAT_TOTAL_TIME_RUNNING
		} else {
			leader = g.fds[0]
		}

		fd, err := unix.PerfEventOpen(&attr, 0, -1, leader, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			g.Close()
			return nil, errors.WithMessagef(ErrOpenFailed, "event %s: %v", ev, err)
		}
		g.fds = append(g.fds, fd)

		id, err := eventID(fd)
		if err != nil {
			g.Close()
			return nil, errors.WithMessagef(ErrGetIDFailed, "event %s: %v", ev, err)
		}
		g.ids[id] = ev
	}
	return g, nil
}

// Capture resets the whole group to zero and enables it, so every
// capture/stop cycle counts from a clean slate.
func (g *Group) Capture() error {
	if g.closed {
		return ErrGroupClosed
	}
	if err := unix.IoctlSetInt(g.fds[0], unix.PERF_EVENT_IOC_RESET, unix.PERF_IOC_FLAG_GROUP); err != nil {
		return errors.WithMessage(ErrResetFailed, err.Error())
	}
	if err := unix.IoctlSetInt(g.fds[0], unix.PERF_EVENT_IOC_ENABLE, unix.PERF_IOC_FLAG_GROUP); err != nil {
		return errors.WithMessage(ErrEnableFailed, err.Error())
	}
	return nil
}

// Stop disables the whole group.
func (g *Group) Stop() error {
	if g.closed {
		return ErrGroupClosed
	}
	if err := unix.IoctlSetInt(g.fds[0], unix.PERF_EVENT_IOC_DISABLE, unix.PERF_IOC_FLAG_GROUP); err != nil {
		return errors.WithMessage(ErrDisableFailed, err.Error())
	}
	return nil
}

// Read reads one binary record from the leader covering every member of
// the group, applies multiplexing correction, and maps values back to
// their events by kernel-assigned id. Valid between a Capture and the
// next Capture; the counts reflect the most recent capture/stop window.
func (g *Group) Read() (Counts, error) {
	if g.closed {
		return nil, ErrGroupClosed
	}
	buf := make([]byte, groupHeaderSize+len(g.fds)*rawCountSize)
	n, err := unix.Read(g.fds[0], buf)
	if err != nil {
		return nil, errors.WithMessage(ErrReadFailed, err.Error())
	}
	reading, err := decodeGroupReading(buf[:n])
	if err != nil {
		return nil, errors.WithMessage(ErrReadFailed, err.Error())
	}
	return reading.scaled(g.ids), nil
}

// Close releases every counter descriptor. Closing an already-closed
// group is a no-op, not an error. Any other operation on a closed group
// fails with ErrGroupClosed.
func (g *Group) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	var firstErr error
	for _, fd := range g.fds {
		if err := unix.Close(fd); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	g.fds = nil
	return firstErr
}

// eventID queries the kernel-assigned identifier for one counter. Group
// read records are keyed by these ids, not by open order.
func eventID(fd int) (uint64, error) {
	var id uint64
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(unix.PERF_EVENT_IOC_ID),
		uintptr(unsafe.Pointer(&id)),
	)
	if errno != 0 {
		return 0, errno
	}
	return id, nil
}

// config maps an Event to its PERF_COUNT_HW_* config value.
func (e Event) config() uint64 {
	switch e {
	case CPUCycles:
		return unix.PERF_COUNT_HW_CPU_CYCLES
	case Instructions:
		return unix.PERF_COUNT_HW_INSTRUCTIONS
	case CacheReferences:
		return unix.PERF_COUNT_HW_CACHE_REFERENCES
	case CacheMisses:
		return unix.PERF_COUNT_HW_CACHE_MISSES
	case BranchMisses:
		return unix.PERF_COUNT_HW_BRANCH_MISSES
	default:
		return unix.PERF_COUNT_HW_CPU_CYCLES
	}
}
