package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/registry"
	"github.com/san-kum/algoviz/internal/storage"
	"github.com/san-kum/algoviz/internal/trace"
)

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func record(ctx context.Context, reg *registry.Registry, cfg *config.Config, in algo.Input) (*trace.Trace, error) {
	opts, err := engineOptions(cfg)
	if err != nil {
		return nil, err
	}
	return trace.Record(ctx, reg.New, cfg.Algorithm, in, opts...)
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	reg := registry.NewRegistry()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFAMILY\tKIND\tPRESETS\tDESCRIPTION")
	for _, family := range reg.Families() {
		for _, name := range reg.ListFamily(family) {
			e, err := reg.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Name, e.Family, e.Kind, len(config.ListPresets(name)), e.Description)
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	presets := config.ListPresets(args[0])
	if len(presets) == 0 {
		fmt.Fprintf(out, "no presets for algorithm: %s\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "presets for %s:\n", args[0])
	for _, p := range presets {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}
	reg := registry.NewRegistry()
	in, err := inputFor(reg, cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s...\n", cfg.Algorithm)
	start := time.Now()

	tr, runErr := record(cmd.Context(), reg, cfg, in)
	if tr == nil {
		return runErr
	}
	elapsed := time.Since(start)

	runID, err := st.Save(tr, cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", tr.Steps)
	fmt.Fprintf(out, "result: %s\n", trace.FormatData(tr.Final()))
	fmt.Fprintln(out, "\nmetrics:")
	names := make([]string, 0, len(tr.Metrics))
	for name := range tr.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %.6f\n", name, tr.Metrics[name])
	}
	return runErr
}

func printTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, firstArg(args))
	if err != nil {
		return err
	}
	reg := registry.NewRegistry()
	in, err := inputFor(reg, cfg)
	if err != nil {
		return err
	}
	tr, runErr := record(cmd.Context(), reg, cfg, in)
	if tr == nil {
		return runErr
	}
	if err := trace.WriteText(cmd.OutOrStdout(), tr); err != nil {
		return err
	}
	return runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tTIME\tSTEPS\tSEED\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Seed,
			status,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "algorithm: %s\n", meta.Algorithm)
	fmt.Fprintf(out, "frames: %d\n\n", meta.Steps+1)

	plotted := 0
	for _, name := range metrics.Columns {
		data := series[name]
		if len(data) < 2 || slices.Max(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs step"),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
		plotted++
	}
	if plotted == 0 {
		return fmt.Errorf("no data to plot")
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return exportTrace(cmd, args[0], trace.WriteJSON)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	return exportTrace(cmd, args[0], trace.WriteCSV)
}

func exportTrace(cmd *cobra.Command, runID string, write func(w io.Writer, t *trace.Trace) error) error {
	st := storage.New(dataDir)
	t, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if outPath == "" {
		return write(cmd.OutOrStdout(), t)
	}
	if err := trace.WriteFile(outPath, t, write); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", runID, outPath)
	return nil
}

// compareAlgorithms runs every named algorithm on the first one's input,
// all at once.
func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	reg := registry.NewRegistry()
	in, err := inputFor(reg, cfg)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cfg)
	if err != nil {
		return err
	}

	jobs := make([]trace.Job, len(args))
	for i, name := range args {
		jobs[i] = trace.Job{Algorithm: name, Input: in}
	}
	results := trace.RecordAll(cmd.Context(), reg.New, jobs, opts...)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tCMP\tSWP\tOVR\tRLX\tTIME\tRESULT")
	for _, r := range results {
		name := r.Job.Algorithm
		if r.Trace == nil {
			if errors.Is(r.Err, algo.ErrInvalidInput) || errors.Is(r.Err, registry.ErrUnknownAlgorithm) {
				fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\t%v\n", name, r.Err)
				continue
			}
			return r.Err
		}
		s := r.Trace.Final().Stats
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\t%s\n",
			name, r.Trace.Steps, s.Comparisons, s.Swaps, s.Writes, s.Relaxations,
			r.Elapsed.Round(time.Microsecond), summarize(r.Trace.Final()))
	}
	return w.Flush()
}

func summarize(f frame.Frame) string {
	if len(f.Output) > 0 {
		vals := make([]string, len(f.Output))
		for i, v := range f.Output {
			vals[i] = trace.FormatValue(v)
		}
		return "out=" + strings.Join(vals, ",")
	}
	return trace.FormatData(f)
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	reg := registry.NewRegistry()
	entry, err := reg.Get(cfg.Algorithm)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %s (seed %d)\n\n", entry.Name, cfg.Seed)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tSTEPS\tCMP\tSWP\tOVR\tRLX\tTIME\tSTEPS/SEC")

	rng := rand.New(rand.NewSource(cfg.Seed))
	for _, n := range benchSizes {
		if n <= 0 {
			return fmt.Errorf("bench size must be positive, got %d", n)
		}
		in := benchInput(rng, entry, n)

		start := time.Now()
		tr, err := record(cmd.Context(), reg, cfg, in)
		if err != nil {
			if errors.Is(err, algo.ErrInvalidInput) {
				fmt.Fprintf(w, "%d\tskipped: %v\n", n, err)
				continue
			}
			return err
		}
		elapsed := time.Since(start)

		s := tr.Final().Stats
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%v\t%.0f\n",
			n, tr.Steps, s.Comparisons, s.Swaps, s.Writes, s.Relaxations,
			elapsed, float64(tr.Steps)/elapsed.Seconds())
	}
	return w.Flush()
}

// benchInput builds a random input of size n for the entry's family.
func benchInput(rng *rand.Rand, e registry.Entry, n int) algo.Input {
	switch e.Family {
	case registry.FamilyGraph:
		return algo.Input{Graph: randomGraph(rng, n, e.Sample.Graph.Directed)}
	case registry.FamilyDP:
		if e.Sample.DP != nil && len(e.Sample.DP.Weights) > 0 {
			spec := &algo.DPSpec{Capacity: n}
			for i := 0; i < n; i++ {
				spec.Weights = append(spec.Weights, rng.Intn(n)+1)
				spec.Values = append(spec.Values, rng.Intn(100))
			}
			return algo.Input{DP: spec}
		}
		return algo.Input{DP: &algo.DPSpec{A: randomString(rng, n), B: randomString(rng, n)}}
	case registry.FamilyRange:
		in := algo.Input{Array: randomArray(rng, n)}
		for i := 0; i < n; i++ {
			if rng.Intn(2) == 0 {
				in.Ops = append(in.Ops, algo.RangeOp{Op: algo.OpAdd, Index: rng.Intn(n), Value: int64(rng.Intn(10))})
				continue
			}
			lo := rng.Intn(n)
			in.Ops = append(in.Ops, algo.RangeOp{Op: algo.OpQuery, Lo: lo, Hi: lo + rng.Intn(n-lo)})
		}
		return in
	}
	return algo.Input{Array: randomArray(rng, n)}
}

// randomGraph links node i to a random earlier node so the graph is
// connected, then adds 2n random extra edges.
func randomGraph(rng *rand.Rand, n int, directed bool) *algo.GraphSpec {
	g := &algo.GraphSpec{Nodes: n, Directed: directed}
	for i := 1; i < n; i++ {
		g.Edges = append(g.Edges, frame.Edge{From: rng.Intn(i), To: i, Weight: int64(rng.Intn(20) + 1)})
	}
	for i := 0; i < 2*n; i++ {
		g.Edges = append(g.Edges, frame.Edge{From: rng.Intn(n), To: rng.Intn(n), Weight: int64(rng.Intn(20) + 1)})
	}
	return g
}

func randomString(rng *rand.Rand, n int) string {
	const alphabet = "ACGT"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
