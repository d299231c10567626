package benchmark

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSuite(t *testing.T) {
	suite := NewSuite(DefaultConfig())

	assert.NotNil(t, suite)
	assert.Empty(t, suite.candidates)
	assert.Empty(t, suite.results)
	assert.Equal(t, -1, suite.Baseline())
}

func TestSuiteRunPreservesRegistrationOrder(t *testing.T) {
	suite := NewSuite(quickConfig(5))
	suite.Add("first", spinWork(100))
	suite.Add("second", spinWork(200))
	suite.Add("third", spinWork(300))

	results, err := suite.Run()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Name)
	assert.Equal(t, "second", results[1].Name)
	assert.Equal(t, "third", results[2].Name)
}

func TestSuiteBaselineByName(t *testing.T) {
	suite := NewSuite(quickConfig(5))
	suite.Add("a", spinWork(100))
	suite.Add("b", spinWork(100))

	require.NoError(t, suite.SetBaseline("b"))
	assert.Equal(t, 1, suite.Baseline())

	assert.Error(t, suite.SetBaseline("missing"))
}

func TestSuiteResultsReturnsCopy(t *testing.T) {
	suite := NewSuite(quickConfig(5))
	suite.Add("only", spinWork(100))

	_, err := suite.Run()
	require.NoError(t, err)

	results := suite.Results()
	require.Len(t, results, 1)
	results[0].Name = "mutated"
	assert.Equal(t, "only", suite.Results()[0].Name)
}

func TestSuiteRunAbortsOnCandidateFailure(t *testing.T) {
	suite := NewSuite(quickConfig(5))
	suite.Add("good", spinWork(100))
	suite.Add("bad", func() error { return assert.AnError })

	results, err := suite.Run()
	assert.Error(t, err)
	assert.Nil(t, results)
	assert.Empty(t, suite.Results())
}

func TestSuiteSaveResults(t *testing.T) {
	suite := NewSuite(quickConfig(5))
	suite.Add("saved", spinWork(100))

	_, err := suite.Run()
	require.NoError(t, err)

	outputDir := t.TempDir()
	require.NoError(t, suite.SaveResults(outputDir))

	jsonFiles, err := filepath.Glob(filepath.Join(outputDir, "benchmark_results_*.json"))
	require.NoError(t, err)
	require.Len(t, jsonFiles, 1)

	data, err := os.ReadFile(jsonFiles[0])
	require.NoError(t, err)
	var records []Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "saved", records[0].Name)

	csvFiles, err := filepath.Glob(filepath.Join(outputDir, "benchmark_summary_*.csv"))
	require.NoError(t, err)
	assert.Len(t, csvFiles, 1)
}

func TestScenarioBuilder(t *testing.T) {
	scenario := NewScenarioBuilder("test_scenario").
		WithWarmup(5).
		WithSamples(50).
		WithBytesPerOp(4096).
		Build()

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, 5, scenario.WarmupIterations)
	assert.Equal(t, 50, scenario.SampleCount)
	assert.Equal(t, int64(4096), scenario.BytesPerOp)
}

func TestScenarioBuilderDefaults(t *testing.T) {
	scenario := NewScenarioBuilder("defaults").Build()
	defaults := DefaultConfig()

	assert.Equal(t, defaults.WarmupIterations, scenario.WarmupIterations)
	assert.Equal(t, defaults.SampleCount, scenario.SampleCount)
	assert.Zero(t, scenario.BytesPerOp)
}

func TestScenarioSetRoundTrip(t *testing.T) {
	set := &ScenarioSet{
		Name:        "round trip",
		Description: "scenarios survive persistence",
		Scenarios: []Scenario{
			NewScenarioBuilder("one").WithSamples(10).Build(),
			NewScenarioBuilder("two").WithWarmup(0).WithBytesPerOp(1024).Build(),
		},
	}

	filename := filepath.Join(t.TempDir(), "scenarios.json")
	require.NoError(t, SaveScenarioSet(set, filename))

	loaded, err := LoadScenarioSet(filename)
	require.NoError(t, err)
	assert.Equal(t, set, loaded)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, Config{SampleCount: 1}.Validate())
	assert.Error(t, Config{SampleCount: 0}.Validate())
	assert.Error(t, Config{SampleCount: 10, WarmupIterations: -1}.Validate())
	assert.Error(t, Config{SampleCount: 10, BytesPerOp: -1}.Validate())
}

func TestAddScenarioUsesScenarioConfig(t *testing.T) {
	suite := NewSuite(DefaultConfig())
	scenario := NewScenarioBuilder("scenario_run").WithWarmup(1).WithSamples(5).Build()
	suite.AddScenario(scenario, spinWork(100))

	results, err := suite.Run()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "scenario_run", results[0].Name)
	assert.Equal(t, 5, results[0].SampleCount)
}
