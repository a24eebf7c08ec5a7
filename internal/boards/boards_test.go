package boards

import (
	"errors"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

func TestArrayBoardTransientAndSticky(t *testing.T) {
	b := NewArrayBoard([]int{4, 2, 7})

	steps := []struct {
		ev      ArrayEvent
		array   []int
		regions []string
	}{
		{ArrayEvent{Op: ArrFocus, Lo: 0, Hi: 3}, []int{4, 2, 7}, []string{"focus"}},
		{ArrayEvent{Op: ArrCompare, I: 0, J: 1}, []int{4, 2, 7}, []string{"focus", "compare"}},
		{ArrayEvent{Op: ArrSwap, I: 0, J: 1}, []int{2, 4, 7}, []string{"focus", "swap"}},
		{ArrayEvent{Op: ArrOverwrite, K: 2, Value: 1}, []int{2, 4, 1}, []string{"focus", "overwrite"}},
		{ArrayEvent{Op: ArrClear, Region: "focus"}, []int{2, 4, 1}, nil},
		{ArrayEvent{Op: ArrMerge, Lo: 0, Mid: 1, Hi: 2}, []int{2, 4, 1}, []string{"merge"}},
		{ArrayEvent{Op: ArrDone}, []int{2, 4, 1}, nil},
	}

	for i, s := range steps {
		if err := b.Apply(s.ev); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		f := b.Snapshot()
		if len(f.Array) != len(s.array) {
			t.Fatalf("step %d: expected %v, got %v", i, s.array, f.Array)
		}
		for k := range s.array {
			if f.Array[k] != s.array[k] {
				t.Errorf("step %d: expected %v, got %v", i, s.array, f.Array)
				break
			}
		}
		if len(f.Regions) != len(s.regions) {
			t.Fatalf("step %d: expected regions %v, got %+v", i, s.regions, f.Regions)
		}
		for k, name := range s.regions {
			if f.Regions[k].Name != name {
				t.Errorf("step %d: expected region %q at %d, got %q", i, name, k, f.Regions[k].Name)
			}
		}
	}

	f := b.Snapshot()
	if f.Stats.Comparisons != 1 || f.Stats.Swaps != 1 || f.Stats.Writes != 1 {
		t.Errorf("unexpected stats: %+v", f.Stats)
	}
}

func TestArrayBoardRejectsBadEvents(t *testing.T) {
	tests := []struct {
		name string
		ev   ArrayEvent
	}{
		{"compare out of range", ArrayEvent{Op: ArrCompare, I: 0, J: 5}},
		{"swap negative", ArrayEvent{Op: ArrSwap, I: -1, J: 0}},
		{"overwrite out of range", ArrayEvent{Op: ArrOverwrite, K: 3}},
		{"focus inverted", ArrayEvent{Op: ArrFocus, Lo: 2, Hi: 1}},
		{"merge split outside", ArrayEvent{Op: ArrMerge, Lo: 0, Mid: 3, Hi: 2}},
		{"unknown op", ArrayEvent{Op: "shuffle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewArrayBoard([]int{1, 2, 3})
			if err := b.Apply(tt.ev); !errors.Is(err, algo.ErrInconsistent) {
				t.Errorf("expected ErrInconsistent, got %v", err)
			}
		})
	}
}

func TestArrayBoardSnapshotIsolated(t *testing.T) {
	src := []int{1, 2}
	b := NewArrayBoard(src)
	src[0] = 50
	f := b.Snapshot()
	if f.Array[0] != 1 {
		t.Errorf("board shares input slice")
	}
	f.Array[1] = 50
	if b.Snapshot().Array[1] != 2 {
		t.Errorf("snapshot shares board storage")
	}
}

func TestGraphBoardShortestPath(t *testing.T) {
	spec := algo.GraphSpec{
		Nodes:    3,
		Directed: true,
		Edges:    []frame.Edge{{From: 0, To: 1, Weight: 5}, {From: 1, To: 2, Weight: 1}},
	}
	b := NewGraphBoard(spec, 0)

	events := []GraphEvent{
		{Op: GraphVisit, Node: 0},
		{Op: GraphRelax, Node: 0, Edge: 0},
		{Op: GraphImprove, Node: 1, Edge: 0, Dist: 5},
		{Op: GraphVisit, Node: 1},
		{Op: GraphRelax, Node: 1, Edge: 1},
		{Op: GraphImprove, Node: 2, Edge: 1, Dist: 6},
		{Op: GraphDone},
	}
	for i, ev := range events {
		if err := b.Apply(ev); err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
	}

	f := b.Snapshot()
	want := []int64{0, 5, 6}
	for i, d := range want {
		if f.Graph.Dist[i] != d {
			t.Errorf("dist[%d]: expected %d, got %d", i, d, f.Graph.Dist[i])
		}
	}
	if f.Graph.Parent[2] != 1 {
		t.Errorf("expected parent of 2 to be 1, got %d", f.Graph.Parent[2])
	}
	tree, ok := f.Region("tree")
	if !ok || len(tree.Edges) != 2 {
		t.Errorf("expected two tree edges, got %+v", tree)
	}
	if f.Stats.Relaxations != 2 {
		t.Errorf("expected 2 relaxations, got %d", f.Stats.Relaxations)
	}
}

func TestGraphBoardRejectsWrongDirection(t *testing.T) {
	spec := algo.GraphSpec{Nodes: 2, Directed: true, Edges: []frame.Edge{{From: 0, To: 1, Weight: 1}}}
	b := NewGraphBoard(spec, 0)
	if err := b.Apply(GraphEvent{Op: GraphRelax, Node: 1, Edge: 0}); !errors.Is(err, algo.ErrInconsistent) {
		t.Errorf("expected ErrInconsistent, got %v", err)
	}
}

func TestGraphBoardSpanningTree(t *testing.T) {
	spec := algo.GraphSpec{Nodes: 3, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 2},
		{From: 1, To: 2, Weight: 3},
		{From: 0, To: 2, Weight: 9},
	}}
	b := NewGraphBoard(spec, -1)
	for _, ev := range []GraphEvent{
		{Op: GraphConsider, Edge: 0},
		{Op: GraphAccept, Edge: 0},
		{Op: GraphConsider, Edge: 1},
		{Op: GraphAccept, Edge: 1},
		{Op: GraphConsider, Edge: 2},
		{Op: GraphReject, Edge: 2},
	} {
		if err := b.Apply(ev); err != nil {
			t.Fatalf("apply %+v: %v", ev, err)
		}
	}
	f := b.Snapshot()
	if len(f.Output) != 1 || f.Output[0] != 5 {
		t.Errorf("expected tree weight 5, got %v", f.Output)
	}
	if f.Graph.Dist != nil {
		t.Errorf("spanning-tree board should carry no distances")
	}
	if err := b.Apply(GraphEvent{Op: GraphAccept, Edge: 0}); !errors.Is(err, algo.ErrInconsistent) {
		t.Errorf("expected duplicate accept to fail, got %v", err)
	}
	if err := b.Apply(GraphEvent{Op: GraphRelax, Node: 0, Edge: 0}); !errors.Is(err, algo.ErrInconsistent) {
		t.Errorf("expected relax on spanning-tree board to fail, got %v", err)
	}
}

func TestTableBoard(t *testing.T) {
	b := NewTableBoard(2, 2)
	if b.Snapshot().Table[1][1] != Unset {
		t.Fatal("expected cells to start unset")
	}

	dep := []frame.Cell{{Row: 0, Col: 0}}
	if err := b.Apply(TableEvent{Op: TableFill, Row: 1, Col: 1, Value: 3, Deps: dep}); !errors.Is(err, algo.ErrInconsistent) {
		t.Errorf("expected read of unset dependency to fail, got %v", err)
	}

	if err := b.Apply(TableEvent{Op: TableFill, Row: 0, Col: 0, Value: 1}); err != nil {
		t.Fatalf("fill base: %v", err)
	}
	if err := b.Apply(TableEvent{Op: TableFill, Row: 1, Col: 1, Value: 3, Deps: dep}); err != nil {
		t.Fatalf("fill dependent: %v", err)
	}
	if err := b.Apply(TableEvent{Op: TableAnswer, Row: 1, Col: 1}); err != nil {
		t.Fatalf("answer: %v", err)
	}

	f := b.Snapshot()
	if f.Table[1][1] != 3 {
		t.Errorf("expected 3, got %d", f.Table[1][1])
	}
	if len(f.Output) != 1 || f.Output[0] != 3 {
		t.Errorf("expected output [3], got %v", f.Output)
	}
	if _, ok := f.Region("answer"); !ok {
		t.Error("expected answer region")
	}
	if f.Stats.Writes != 2 {
		t.Errorf("expected 2 writes, got %d", f.Stats.Writes)
	}

	if err := b.Apply(TableEvent{Op: TableFill, Row: 5, Col: 0}); !errors.Is(err, algo.ErrInconsistent) {
		t.Errorf("expected out-of-range cell to fail, got %v", err)
	}
}
