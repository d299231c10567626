package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hotpath-dev/hotpath/benchmark"
)

// Markdown renders records as a Markdown comparison table, one row per
// record in input order. Hardware columns show "-" for records measured
// without counters; when a baseline is set, the last column reports how
// many times slower each row's mean is than the baseline's.
type Markdown struct{}

// Report writes the table to w.
func (m *Markdown) Report(w io.Writer, records []benchmark.Record, baseline int) error {
	var sb strings.Builder

	withBaseline := baseline >= 0 && baseline < len(records)

	header := []string{
		"Name", "Mean", "Median", "Min", "Max", "Std Dev",
		"Ops/sec", "MB/s", "Cycles/op", "Instr/op", "IPC", "Cache miss/op",
	}
	if withBaseline {
		header = append(header, "vs Baseline")
	}
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")

	for i, r := range records {
		row := []string{
			r.Name,
			formatNanos(r.MeanNs),
			formatNanos(r.MedianNs),
			formatNanos(r.MinNs),
			formatNanos(r.MaxNs),
			formatNanos(r.StdDevNs),
			fmt.Sprintf("%.0f", r.OpsPerSec),
			throughputCell(r),
		}
		row = append(row, hardwareCells(r.Hardware)...)
		if withBaseline {
			row = append(row, baselineCell(r, records[baseline], i == baseline))
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}

func throughputCell(r benchmark.Record) string {
	if r.BytesPerSec == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", r.BytesPerSec)
}

func hardwareCells(hw *benchmark.HardwareMetrics) []string {
	if hw == nil {
		return []string{"-", "-", "-", "-"}
	}
	return []string{
		fmt.Sprintf("%.1f", hw.CyclesPerOp),
		fmt.Sprintf("%.1f", hw.InstructionsPerOp),
		fmt.Sprintf("%.2f", hw.IPC),
		fmt.Sprintf("%.2f", hw.CacheMissesPerOp),
	}
}

func baselineCell(r, base benchmark.Record, isBaseline bool) string {
	if isBaseline {
		return "baseline"
	}
	if base.MeanNs == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", r.MeanNs/base.MeanNs)
}
