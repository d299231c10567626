package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hotpath-dev/hotpath/benchmark"
	"github.com/hotpath-dev/hotpath/payloads"
	"github.com/hotpath-dev/hotpath/report"
)

var (
	flagSamples   int
	flagWarmup    int
	flagFormat    string
	flagOutput    string
	flagBaseline  string
	flagScenarios string
	flagSave      string
	flagList      bool
)

var rootCmd = &cobra.Command{
	Use:   "hotpath [payload ...]",
	Short: "Run microbenchmarks with adaptive batching and hardware counters",
	Long: `Benchmarks the selected payloads (all builtins by default) with the
adaptive sampler: warmup, batch-size discovery against a 1ms floor, timed
sampling, and a hardware-counter pass where the kernel permits one.
Results render as a Markdown table, JSON, or CSV.`,
	RunE: runRoot,
}

func init() {
	rootCmd.Flags().IntVar(&flagSamples, "samples", 0, "Timed samples per payload (0 = default 1000)")
	rootCmd.Flags().IntVar(&flagWarmup, "warmup", -1, "Untimed warmup iterations per payload (-1 = default 100)")
	rootCmd.Flags().StringVar(&flagFormat, "format", "markdown", "Output format: markdown, json, or csv")
	rootCmd.Flags().StringVar(&flagOutput, "output", "", "Write the report to a file instead of stdout")
	rootCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Payload name to compare the other rows against")
	rootCmd.Flags().StringVar(&flagScenarios, "scenarios", "", "Scenario set JSON file overriding per-payload settings")
	rootCmd.Flags().StringVar(&flagSave, "save", "", "Directory to persist raw results (JSON + summary CSV)")
	rootCmd.Flags().BoolVar(&flagList, "list", false, "List available payloads and exit")
}

func runRoot(cmd *cobra.Command, args []string) error {
	entries := payloads.Builtin()

	if flagList {
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), e.Name)
		}
		return nil
	}

	cfg := benchmark.DefaultConfig()
	if flagSamples > 0 {
		cfg.SampleCount = flagSamples
	}
	if flagWarmup >= 0 {
		cfg.WarmupIterations = flagWarmup
	}

	selected, err := selectEntries(entries, args)
	if err != nil {
		return err
	}

	suite := benchmark.NewSuite(cfg)
	if flagScenarios != "" {
		if err := addFromScenarioFile(suite, selected, flagScenarios); err != nil {
			return err
		}
	} else {
		for _, e := range selected {
			entryCfg := cfg
			entryCfg.BytesPerOp = e.BytesPerOp
			suite.AddWithConfig(e.Name, e.Fn, entryCfg)
		}
	}

	if flagBaseline != "" {
		if err := suite.SetBaseline(flagBaseline); err != nil {
			return err
		}
	}

	if _, err := suite.Run(); err != nil {
		return err
	}

	if flagSave != "" {
		if err := suite.SaveResults(flagSave); err != nil {
			return err
		}
	}

	reporter, err := report.New(report.Format(flagFormat))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if flagOutput != "" {
		file, err := os.Create(flagOutput)
		if err != nil {
			return errors.Wrap(err, "failed to create output file")
		}
		defer file.Close()
		out = io.Writer(file)
	}

	return reporter.Report(out, suite.Results(), suite.Baseline())
}

// selectEntries filters the builtin payloads down to the requested
// names; no arguments selects everything.
func selectEntries(entries []payloads.Entry, names []string) ([]payloads.Entry, error) {
	if len(names) == 0 {
		return entries, nil
	}

	byName := make(map[string]payloads.Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	selected := make([]payloads.Entry, 0, len(names))
	for _, name := range names {
		e, ok := byName[name]
		if !ok {
			return nil, errors.Errorf("unknown payload %q (use --list)", name)
		}
		selected = append(selected, e)
	}
	return selected, nil
}

// addFromScenarioFile registers one candidate per scenario, matching
// scenarios to payloads by name.
func addFromScenarioFile(suite *benchmark.Suite, entries []payloads.Entry, filename string) error {
	set, err := benchmark.LoadScenarioSet(filename)
	if err != nil {
		return err
	}

	byName := make(map[string]payloads.Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	for _, scenario := range set.Scenarios {
		e, ok := byName[scenario.Name]
		if !ok {
			return errors.Errorf("scenario %q matches no payload", scenario.Name)
		}
		suite.AddScenario(scenario, e.Fn)
	}
	return nil
}
