package benchmark

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Scenario names one benchmark run configuration. Scenarios are the
// serializable half of a candidate; the function itself is matched up at
// registration time.
type Scenario struct {
	Name             string `json:"name"`
	WarmupIterations int    `json:"warmup_iterations"`
	SampleCount      int    `json:"sample_count"`
	BytesPerOp       int64  `json:"bytes_per_op,omitempty"`
}

// Config converts the scenario's settings to a run configuration.
func (sc Scenario) Config() Config {
	return Config{
		WarmupIterations: sc.WarmupIterations,
		SampleCount:      sc.SampleCount,
		BytesPerOp:       sc.BytesPerOp,
	}
}

// ScenarioBuilder helps build scenarios with a fluent API.
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a scenario builder seeded with the default
// configuration.
func NewScenarioBuilder(name string) *ScenarioBuilder {
	defaults := DefaultConfig()
	return &ScenarioBuilder{
		scenario: Scenario{
			Name:             name,
			WarmupIterations: defaults.WarmupIterations,
			SampleCount:      defaults.SampleCount,
		},
	}
}

// WithWarmup sets the number of untimed priming iterations.
func (sb *ScenarioBuilder) WithWarmup(iterations int) *ScenarioBuilder {
	sb.scenario.WarmupIterations = iterations
	return sb
}

// WithSamples sets the number of timed samples to collect.
func (sb *ScenarioBuilder) WithSamples(count int) *ScenarioBuilder {
	sb.scenario.SampleCount = count
	return sb
}

// WithBytesPerOp enables throughput derivation for candidates that move
// a fixed number of bytes per call.
func (sb *ScenarioBuilder) WithBytesPerOp(bytes int64) *ScenarioBuilder {
	sb.scenario.BytesPerOp = bytes
	return sb
}

// Build returns the configured scenario.
func (sb *ScenarioBuilder) Build() Scenario {
	return sb.scenario
}

// ScenarioSet represents a collection of related scenarios.
type ScenarioSet struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Scenarios   []Scenario `json:"scenarios"`
}

// SaveScenarioSet saves a scenario set to a JSON file.
func SaveScenarioSet(scenarioSet *ScenarioSet, filename string) error {
	data, err := json.MarshalIndent(scenarioSet, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal scenario set")
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write scenario file")
	}

	return nil
}

// LoadScenarioSet loads a scenario set from a JSON file.
func LoadScenarioSet(filename string) (*ScenarioSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}

	var scenarioSet ScenarioSet
	if err := json.Unmarshal(data, &scenarioSet); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal scenario set")
	}

	return &scenarioSet, nil
}
