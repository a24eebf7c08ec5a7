package trace

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/registry"
)

func record(t *testing.T, name string, in algo.Input) *Trace {
	t.Helper()
	tr, err := Record(context.Background(), registry.NewRegistry().New, name, in)
	require.NoError(t, err)
	return tr
}

func TestRecord(t *testing.T) {
	tr := record(t, "merge_sort", algo.Input{Array: []int{5, 3, 8, 1}})
	assert.Equal(t, "merge_sort", tr.Algorithm)
	assert.Equal(t, frame.KindArray, tr.Kind)
	assert.Equal(t, len(tr.Frames)-1, tr.Steps)
	assert.Equal(t, []int{1, 3, 5, 8}, tr.Final().Array)
	assert.Empty(t, tr.Final().Regions)
	assert.Equal(t, float64(tr.Final().Stats.Comparisons), tr.Metrics["comparisons"])
	for i, f := range tr.Frames {
		assert.Equal(t, i, f.Step)
	}
}

func TestRecordInvalidInput(t *testing.T) {
	_, err := Record(context.Background(), registry.NewRegistry().New, "merge_sort", algo.Input{})
	assert.ErrorIs(t, err, algo.ErrInvalidInput)
}

func TestRecordCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Record(ctx, registry.NewRegistry().New, "merge_sort", algo.Input{Array: []int{2, 1}})
	assert.ErrorIs(t, err, context.Canceled)
}

type closeCounter struct {
	algo.Process
	closed *int
}

func (c closeCounter) Close() {
	*c.closed++
	c.Process.Close()
}

func TestRecordStepLimitClosesProcess(t *testing.T) {
	reg := registry.NewRegistry()
	closed := 0
	factory := func(name string, in algo.Input) (algo.Process, error) {
		p, err := reg.New(name, in)
		if err != nil {
			return nil, err
		}
		return closeCounter{Process: p, closed: &closed}, nil
	}

	tr, err := Record(context.Background(), factory, "merge_sort", algo.Input{Array: []int{5, 3, 8, 1}}, engine.WithMaxSteps(3))
	require.ErrorIs(t, err, engine.ErrStepLimit)
	require.NotNil(t, tr)
	assert.Equal(t, 3, tr.Steps)
	assert.NotEmpty(t, tr.Error)
	assert.Equal(t, 1, closed)
}

func TestWriteJSON(t *testing.T) {
	tr := record(t, "heap_sort", algo.Input{Array: []int{3, 1, 2}})
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, tr))

	var decoded struct {
		Algorithm string        `json:"algorithm"`
		Steps     int           `json:"steps"`
		Frames    []frame.Frame `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "heap_sort", decoded.Algorithm)
	assert.Equal(t, tr.Steps, decoded.Steps)
	require.Len(t, decoded.Frames, len(tr.Frames))
	assert.True(t, frame.Equal(tr.Final(), decoded.Frames[len(decoded.Frames)-1]))
}

func TestWriteCSV(t *testing.T) {
	tr := record(t, "dijkstra", algo.Input{Graph: &algo.GraphSpec{
		Nodes: 3, Directed: true,
		Edges: []frame.Edge{{From: 0, To: 1, Weight: 2}},
	}})
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tr))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(tr.Frames)+1)
	assert.Equal(t, csvHeader, rows[0])

	first, last := rows[1], rows[len(rows)-1]
	assert.Equal(t, "0", first[0])
	assert.Equal(t, "0 inf inf", first[8])
	assert.Equal(t, "0 2 inf", last[8])
	assert.Equal(t, "1", last[6], "one relaxation")
}

func TestWriteText(t *testing.T) {
	tr := record(t, "lcs", algo.Input{DP: &algo.DPSpec{A: "ab", B: "b"}})
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, tr))
	out := buf.String()
	assert.Contains(t, out, "STEP")
	assert.Contains(t, out, "algorithm: lcs")
	assert.Contains(t, out, "output:    1")
	assert.Contains(t, out, "answer:2.1")
}

func TestWriteFile(t *testing.T) {
	tr := record(t, "quick_sort", algo.Input{Array: []int{2, 1}})
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, WriteFile(path, tr, WriteCSV))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "step,op,note"))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "inf", FormatValue(frame.Inf))
	assert.Equal(t, ".", FormatValue(boards.Unset))
	assert.Equal(t, "-4", FormatValue(-4))
}

func TestFormatRegions(t *testing.T) {
	got := FormatRegions([]frame.Region{
		{Name: "compare", Indices: []int{0, 2}},
		{Name: "edge", Edges: []int{3}},
		{Name: "cell", Cells: []frame.Cell{{Row: 1, Col: 2}}},
	})
	assert.Equal(t, "compare:0|2;edge:e3;cell:1.2", got)
}

func TestRecordAll(t *testing.T) {
	in := algo.Input{Array: []int{4, 1, 3, 2}}
	jobs := []Job{
		{Algorithm: "merge_sort", Input: in},
		{Algorithm: "quick_sort", Input: in},
		{Algorithm: "dijkstra", Input: in},
		{Algorithm: "heap_sort", Input: in},
	}
	results := RecordAll(context.Background(), registry.NewRegistry().New, jobs)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		assert.Equal(t, jobs[i].Algorithm, r.Job.Algorithm)
		if r.Job.Algorithm == "dijkstra" {
			assert.ErrorIs(t, r.Err, algo.ErrInvalidInput)
			assert.Nil(t, r.Trace)
			continue
		}
		require.NoError(t, r.Err, r.Job.Algorithm)
		assert.Equal(t, []int{1, 2, 3, 4}, r.Trace.Final().Array)
	}
}
