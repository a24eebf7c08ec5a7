package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/tui"
)

// resolveConfig layers the sources in order: defaults, then the preset, then
// the config file, then any flag set on the command line. A positional
// algorithm beats all of them.
func resolveConfig(cmd *cobra.Command, algorithm string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if algorithm != "" {
		cfg.Algorithm = algorithm
	}

	if preset != "" {
		p := config.GetPreset(cfg.Algorithm, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Algorithm))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" {
			loaded.Algorithm = cfg.Algorithm
			if inputEmpty(loaded.Input) {
				loaded.Input = cfg.Input
			}
		}
		cfg = loaded
		if algorithm != "" {
			cfg.Algorithm = algorithm
		}
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("interval") {
		cfg.IntervalMS = intervalMS
	}
	if flags.Changed("rewind") {
		cfg.Rewind = rewind
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := applyInputFlags(cmd, &cfg.Input, cfg.Seed); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyInputFlags overwrites the parts of in that were given on the command
// line.
func applyInputFlags(cmd *cobra.Command, in *algo.Input, seed int64) error {
	flags := cmd.Flags()

	if flags.Changed("array") {
		values, err := algo.ParseArray(arrayFlag)
		if err != nil {
			return err
		}
		in.Array = values
	}
	if flags.Changed("random") {
		if randomN <= 0 {
			return fmt.Errorf("--random must be positive, got %d", randomN)
		}
		in.Array = randomArray(rand.New(rand.NewSource(seed)), randomN)
	}

	if flags.Changed("graph") {
		edges, n, err := algo.ParseEdges(graphFlag)
		if err != nil {
			return err
		}
		in.Graph = &algo.GraphSpec{Nodes: n, Edges: edges}
	}
	if flags.Changed("nodes") || flags.Changed("directed") || flags.Changed("source") {
		if in.Graph == nil {
			in.Graph = &algo.GraphSpec{}
		}
	}
	if in.Graph != nil {
		if flags.Changed("nodes") {
			in.Graph.Nodes = nodes
		}
		if flags.Changed("directed") {
			in.Graph.Directed = directed
		}
		if flags.Changed("source") {
			in.Graph.Source = source
		}
	}

	dpFlags := []string{"text-a", "text-b", "weights", "values", "capacity"}
	for _, name := range dpFlags {
		if flags.Changed(name) && in.DP == nil {
			in.DP = &algo.DPSpec{}
		}
	}
	if in.DP != nil {
		if flags.Changed("text-a") {
			in.DP.A = strA
		}
		if flags.Changed("text-b") {
			in.DP.B = strB
		}
		if flags.Changed("weights") {
			w, err := algo.ParseArray(weightsFlag)
			if err != nil {
				return err
			}
			in.DP.Weights = w
		}
		if flags.Changed("values") {
			v, err := algo.ParseArray(valuesFlag)
			if err != nil {
				return err
			}
			in.DP.Values = v
		}
		if flags.Changed("capacity") {
			in.DP.Capacity = capacity
		}
	}

	if flags.Changed("ops") {
		ops, err := algo.ParseOps(opsFlag)
		if err != nil {
			return err
		}
		in.Ops = ops
	}
	return nil
}

func inputEmpty(in algo.Input) bool {
	return len(in.Array) == 0 && in.Graph == nil && in.DP == nil && len(in.Ops) == 0
}

// inputFor returns the configured input, or the registry sample when nothing
// was configured.
func inputFor(reg *registry.Registry, cfg *config.Config) (algo.Input, error) {
	if !inputEmpty(cfg.Input) {
		return cfg.Input.Clone(), nil
	}
	return reg.Sample(cfg.Algorithm)
}

func engineOptions(cfg *config.Config) ([]engine.Option, error) {
	logger, err := loggerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return cfg.EngineOptions(logger)
}

// tuiOptions resolves the play settings. The terminal belongs to the UI, so
// logs go to a file in the data directory, and only at debug level.
func tuiOptions(cmd *cobra.Command, algorithm string) (tui.Options, func() error, error) {
	cfg, err := resolveConfig(cmd, algorithm)
	if err != nil {
		return tui.Options{}, nil, err
	}
	closeLog := func() error { return nil }
	level, _ := config.ParseLogLevel(cfg.Log.Level)
	if level <= slog.LevelDebug {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return tui.Options{}, nil, err
		}
		f, err := os.OpenFile(filepath.Join(dataDir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return tui.Options{}, nil, err
		}
		logOutput, closeLog = f, f.Close
	} else {
		logOutput = io.Discard
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		closeLog()
		return tui.Options{}, nil, err
	}
	out := tui.Options{Registry: registry.NewRegistry(), Engine: opts}
	if !inputEmpty(cfg.Input) {
		in := cfg.Input.Clone()
		out.Input = &in
	}
	if algorithm != "" || preset != "" || configFile != "" {
		out.Algorithm = cfg.Algorithm
	}
	return out, closeLog, nil
}

func randomArray(rng *rand.Rand, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(n*2) + 1
	}
	return out
}
