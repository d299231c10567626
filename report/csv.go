package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hotpath-dev/hotpath/benchmark"
)

// CSV renders records as a flat summary, one row per record. Hardware
// columns are left empty for records measured without counters.
type CSV struct{}

// Report writes the summary to w.
func (c *CSV) Report(w io.Writer, records []benchmark.Record, baseline int) error {
	var sb strings.Builder
	sb.WriteString("Name,Mean_ns,Median_ns,Min_ns,Max_ns,StdDev_ns,Samples,Batch_Size,Ops_Per_Sec,MB_Per_Sec,Cycles_Per_Op,Instr_Per_Op,IPC,Cache_Misses_Per_Op\n")

	for _, r := range records {
		hardware := ",,,"
		if r.Hardware != nil {
			hardware = fmt.Sprintf("%.2f,%.2f,%.4f,%.2f",
				r.Hardware.CyclesPerOp,
				r.Hardware.InstructionsPerOp,
				r.Hardware.IPC,
				r.Hardware.CacheMissesPerOp,
			)
		}
		sb.WriteString(fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%.2f,%d,%d,%.2f,%.2f,%s\n",
			r.Name,
			r.MeanNs,
			r.MedianNs,
			r.MinNs,
			r.MaxNs,
			r.StdDevNs,
			r.SampleCount,
			r.BatchSize,
			r.OpsPerSec,
			r.BytesPerSec,
			hardware,
		))
	}

	_, err := w.Write([]byte(sb.String()))
	return err
}
