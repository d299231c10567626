//go:build !linux

package perf

import "github.com/pkg/errors"

// Group is a stub on platforms without a kernel counter facility. Open
// always fails, so no method is ever reached on a live group.
type Group struct{}

// Supported reports false on non-Linux platforms.
func Supported() bool { return false }

// Open fails with ErrOpenFailed on non-Linux platforms; callers treat
// this as "hardware metrics unavailable" and continue.
func Open(events ...Event) (*Group, error) {
	return nil, errors.WithMessage(ErrOpenFailed, "hardware counters not supported on this platform")
}

// Capture fails on the stub group.
func (g *Group) Capture() error { return ErrGroupClosed }

// Stop fails on the stub group.
func (g *Group) Stop() error { return ErrGroupClosed }

// Read fails on the stub group.
func (g *Group) Read() (Counts, error) { return nil, ErrGroupClosed }

// Close is a no-op on the stub group.
func (g *Group) Close() error { return nil }
