package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	speed      int
	intervalMS int
	rewind     string
	maxSteps   int
	seed       int64
	logLevel   string
	logFormat  string
	outPath    string
	// input
	arrayFlag   string
	randomN     int
	graphFlag   string
	nodes       int
	directed    bool
	source      int
	strA        string
	strB        string
	weightsFlag string
	valuesFlag  string
	capacity    int
	opsFlag     string
	// bench
	benchSizes []int
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "algoviz",
		Short: "step-by-step algorithm animation",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := tuiOptions(cmd, "")
			if err != nil {
				return err
			}
			defer closeLog()
			return tui.Run(opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".algoviz", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&speed, "speed", 1, "steps per tick while playing")
	pf.IntVar(&intervalMS, "interval", 16, "tick interval in milliseconds")
	pf.StringVar(&rewind, "rewind", "history", "rewind strategy (history or replay)")
	pf.IntVar(&maxSteps, "max-steps", 1_000_000, "step limit for fast-forward and batch runs")
	pf.Int64Var(&seed, "seed", 1, "random seed for --random and bench")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text or json)")

	pf.StringVar(&arrayFlag, "array", "", "array input, e.g. 5,3,8,1")
	pf.IntVar(&randomN, "random", 0, "random array input of this length")
	pf.StringVar(&graphFlag, "graph", "", "edge list, e.g. 0-1:4,1-2:3")
	pf.IntVar(&nodes, "nodes", 0, "node count (default: inferred from edges)")
	pf.BoolVar(&directed, "directed", false, "treat the graph as directed")
	pf.IntVar(&source, "source", 0, "source node for shortest paths and prim")
	pf.StringVar(&strA, "text-a", "", "first string for lcs and edit_distance")
	pf.StringVar(&strB, "text-b", "", "second string for lcs and edit_distance")
	pf.StringVar(&weightsFlag, "weights", "", "knapsack item weights, e.g. 1,3,4")
	pf.StringVar(&valuesFlag, "values", "", "knapsack item values, e.g. 15,20,30")
	pf.IntVar(&capacity, "capacity", 0, "knapsack capacity")
	pf.StringVar(&opsFlag, "ops", "", "range ops, e.g. set:2=5,query:0-3")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "animate one algorithm in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			opts, closeLog, err := tuiOptions(cmd, name)
			if err != nil {
				return err
			}
			defer closeLog()
			if opts.Algorithm == "" {
				opts.Algorithm = "merge_sort"
			}
			return tui.Run(opts)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "run an algorithm to the end and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlgorithm,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every frame of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printTrace,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the counters of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export every frame of a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export every frame of a saved run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm1] [algorithm2] ...",
		Short: "run several algorithms on the same input",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "count steps and time for growing random inputs",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{16, 64, 256, 1024}, "input sizes")

	rootCmd.AddCommand(listCmd, presetsCmd, playCmd, runCmd, traceCmd, runsCmd, plotCmd,
		exportCmd, exportJSONCmd, exportCSVCmd, compareCmd, benchCmd)
	return rootCmd
}
