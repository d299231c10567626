package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Suite manages an ordered set of named candidates sharing a default
// configuration. The measurement path itself is strictly sequential and
// single-threaded; the mutex only guards registration against result
// access, never concurrent measurement.
type Suite struct {
	mu         sync.RWMutex
	config     Config
	candidates []candidate
	results    []Record
	baseline   int
}

type candidate struct {
	name   string
	fn     Func
	config Config
}

// NewSuite creates a benchmark suite whose candidates default to cfg.
func NewSuite(cfg Config) *Suite {
	return &Suite{
		config:     cfg,
		candidates: make([]candidate, 0),
		results:    make([]Record, 0),
		baseline:   -1,
	}
}

// Add registers a candidate using the suite's default configuration.
// Candidates run and report in registration order.
func (s *Suite) Add(name string, fn Func) {
	s.AddWithConfig(name, fn, s.config)
}

// AddWithConfig registers a candidate with its own configuration.
func (s *Suite) AddWithConfig(name string, fn Func, cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, candidate{name: name, fn: fn, config: cfg})
}

// AddScenario registers a candidate configured by a scenario.
func (s *Suite) AddScenario(scenario Scenario, fn Func) {
	s.AddWithConfig(scenario.Name, fn, scenario.Config())
}

// SetBaseline marks the named candidate as the comparison baseline for
// reporting. The candidate must already be registered.
func (s *Suite) SetBaseline(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.candidates {
		if c.name == name {
			s.baseline = i
			return nil
		}
	}
	return errors.Errorf("baseline candidate %q not registered", name)
}

// Baseline returns the index of the baseline candidate, or -1 when none
// was chosen.
func (s *Suite) Baseline() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// Run benchmarks every registered candidate in order and returns the
// collected records. The first candidate failure aborts the whole run;
// partial suite results are discarded.
func (s *Suite) Run() ([]Record, error) {
	s.mu.Lock()
	candidates := make([]candidate, len(s.candidates))
	copy(candidates, s.candidates)
	s.mu.Unlock()

	results := make([]Record, 0, len(candidates))
	for _, c := range candidates {
		rec, err := Run(c.name, c.fn, c.config)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}

	s.mu.Lock()
	s.results = results
	s.mu.Unlock()

	out := make([]Record, len(results))
	copy(out, results)
	return out, nil
}

// Results returns a copy of the records from the last Run.
func (s *Suite) Results() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Record, len(s.results))
	copy(results, s.results)
	return results
}

// SaveResults persists the last run's records to outputDir as a
// timestamped JSON file plus a summary CSV.
func (s *Suite) SaveResults(outputDir string) error {
	results := s.Results()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	resultsFile := filepath.Join(outputDir, fmt.Sprintf("benchmark_results_%s.json", timestamp))

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal results")
	}
	if err := os.WriteFile(resultsFile, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write results file")
	}

	summaryFile := filepath.Join(outputDir, fmt.Sprintf("benchmark_summary_%s.csv", timestamp))
	if err := saveSummaryCSV(summaryFile, results); err != nil {
		return errors.Wrap(err, "failed to save summary CSV")
	}

	return nil
}

func saveSummaryCSV(filename string, results []Record) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	header := "Name,Mean_ns,Median_ns,Min_ns,Max_ns,StdDev_ns,Samples,Batch_Size,Ops_Per_Sec,MB_Per_Sec\n"
	if _, err := file.WriteString(header); err != nil {
		return err
	}

	for _, r := range results {
		line := fmt.Sprintf("%s,%.2f,%.2f,%.2f,%.2f,%.2f,%d,%d,%.2f,%.2f\n",
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
		)
		if _, err := file.WriteString(line); err != nil {
			return err
		}
	}

	return nil
}
