// Package report renders computed benchmark records for humans and
// machines. It is purely presentational: renderers consume a list of
// records plus an optional baseline index and write to the caller's
// writer, and carry no part of the measurement logic.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/hotpath-dev/hotpath/benchmark"
)

// Format selects an output renderer.
type Format string

const (
	// FormatMarkdown renders a Markdown comparison table.
	FormatMarkdown Format = "markdown"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatCSV renders a flat summary CSV.
	FormatCSV Format = "csv"
)

// Reporter renders benchmark records. baseline is the index of the
// record other rows are compared against, or -1 for no comparison.
type Reporter interface {
	Report(w io.Writer, records []benchmark.Record, baseline int) error
}

// New returns the reporter for the requested format.
func New(format Format) (Reporter, error) {
	switch format {
	case FormatMarkdown:
		return &Markdown{}, nil
	case FormatJSON:
		return &JSON{}, nil
	case FormatCSV:
		return &CSV{}, nil
	default:
		return nil, errors.Errorf("unsupported report format: %s", format)
	}
}

// formatNanos converts a per-operation nanosecond value to a
// human-readable duration string.
func formatNanos(ns float64) string {
	d := time.Duration(ns)
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%.1fns", ns)
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", ns/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", ns/1e6)
	default:
		return fmt.Sprintf("%.3fs", ns/1e9)
	}
}
