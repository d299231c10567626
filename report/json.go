package report

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/hotpath-dev/hotpath/benchmark"
)

// JSON renders records as an indented JSON document carrying the
// baseline index alongside the records, so downstream tooling can redo
// the comparison.
type JSON struct{}

type jsonDocument struct {
	Baseline int                `json:"baseline"`
	Records  []benchmark.Record `json:"records"`
}

// Report writes the document to w.
func (j *JSON) Report(w io.Writer, records []benchmark.Record, baseline int) error {
	if baseline >= len(records) {
		baseline = -1
	}
	doc := jsonDocument{Baseline: baseline, Records: records}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal records")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
