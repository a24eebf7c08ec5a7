package graphs

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

func run(t *testing.T, ctor func(algo.Input) (algo.Process, error), g algo.GraphSpec) frame.Frame {
	t.Helper()
	p, err := ctor(algo.Input{Graph: &g})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	defer p.Close()
	last := p.Frame()
	for i := 0; i < 100000; i++ {
		f, err := p.Next()
		if errors.Is(err, algo.ErrDone) {
			return last
		}
		if err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		last = f
	}
	t.Fatal("process did not finish")
	return last
}

// floyd returns all-pairs shortest distances from src.
func floyd(g algo.GraphSpec) [][]int64 {
	n := g.Nodes
	d := make([][]int64, n)
	for i := range d {
		d[i] = make([]int64, n)
		for j := range d[i] {
			d[i][j] = frame.Inf
		}
		d[i][i] = 0
	}
	for _, e := range g.Edges {
		d[e.From][e.To] = min(d[e.From][e.To], e.Weight)
		if !g.Directed {
			d[e.To][e.From] = min(d[e.To][e.From], e.Weight)
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if d[i][k] == frame.Inf || d[k][j] == frame.Inf {
					continue
				}
				d[i][j] = min(d[i][j], d[i][k]+d[k][j])
			}
		}
	}
	return d
}

func randomGraph(rng *rand.Rand, n, m int, directed bool, lo, hi int64) algo.GraphSpec {
	g := algo.GraphSpec{Nodes: n, Directed: directed}
	for i := 0; i < m; i++ {
		g.Edges = append(g.Edges, frame.Edge{
			From:   rng.Intn(n),
			To:     rng.Intn(n),
			Weight: lo + rng.Int63n(hi-lo+1),
		})
	}
	return g
}

func TestShortestPathsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		g := randomGraph(rng, 6, 12, trial%2 == 0, 0, 9)
		g.Source = rng.Intn(g.Nodes)
		want := floyd(g)[g.Source]

		for name, ctor := range map[string]func(algo.Input) (algo.Process, error){
			Dijkstra:    NewDijkstra,
			BellmanFord: NewBellmanFord,
		} {
			f := run(t, ctor, g)
			for v, d := range want {
				if f.Graph.Dist[v] != d {
					t.Errorf("%s trial %d: dist[%d] expected %d, got %d", name, trial, v, d, f.Graph.Dist[v])
				}
			}
			// parents must agree with distances
			for v, p := range f.Graph.Parent {
				if p < 0 {
					continue
				}
				if f.Graph.Dist[p] == frame.Inf {
					t.Errorf("%s trial %d: parent %d of %d unreachable", name, trial, p, v)
				}
			}
		}
	}
}

func TestBellmanFordNegativeWeights(t *testing.T) {
	g := algo.GraphSpec{Nodes: 4, Directed: true, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 4},
		{From: 0, To: 2, Weight: 5},
		{From: 2, To: 1, Weight: -3},
		{From: 1, To: 3, Weight: 2},
	}}
	f := run(t, NewBellmanFord, g)
	want := []int64{0, 2, 5, 4}
	for v, d := range want {
		if f.Graph.Dist[v] != d {
			t.Errorf("dist[%d]: expected %d, got %d", v, d, f.Graph.Dist[v])
		}
	}
	if !strings.Contains(f.Note, "no negative cycle") {
		t.Errorf("unexpected note %q", f.Note)
	}
}

func TestBellmanFordReportsNegativeCycle(t *testing.T) {
	g := algo.GraphSpec{Nodes: 3, Directed: true, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: -2},
		{From: 2, To: 1, Weight: 1},
	}}
	f := run(t, NewBellmanFord, g)
	if !strings.HasPrefix(f.Note, "negative cycle") {
		t.Errorf("expected negative cycle note, got %q", f.Note)
	}
}

func TestDijkstraRejectsNegativeWeight(t *testing.T) {
	g := algo.GraphSpec{Nodes: 2, Directed: true, Edges: []frame.Edge{{From: 0, To: 1, Weight: -1}}}
	_, err := NewDijkstra(algo.Input{Graph: &g})
	if !errors.Is(err, algo.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPathSumsCannotOverflow(t *testing.T) {
	g := algo.GraphSpec{Nodes: 3, Directed: true, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: math.MaxInt64 - 1},
		{From: 1, To: 2, Weight: 5},
	}}
	for name, ctor := range map[string]func(algo.Input) (algo.Process, error){
		Dijkstra:    NewDijkstra,
		BellmanFord: NewBellmanFord,
	} {
		p, err := ctor(algo.Input{Graph: &g})
		if p != nil || !errors.Is(err, algo.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}

	g.Edges[0].Weight = algo.MaxWeight(&g)
	f := run(t, NewDijkstra, g)
	if want := g.Edges[0].Weight + 5; f.Graph.Dist[2] != want {
		t.Errorf("expected dist %d, got %d", want, f.Graph.Dist[2])
	}
}

// bruteMST tries every subset of n-1 edges on small graphs.
func bruteMST(g algo.GraphSpec) (int64, bool) {
	best, found := int64(0), false
	m := len(g.Edges)
	for mask := 0; mask < 1<<m; mask++ {
		ds := newDisjointSet(g.Nodes)
		var w int64
		count := 0
		ok := true
		for i := 0; i < m; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			e := g.Edges[i]
			if !ds.union(e.From, e.To) {
				ok = false
				break
			}
			w += e.Weight
			count++
		}
		if !ok || count != g.Nodes-1 {
			continue
		}
		if !found || w < best {
			best, found = w, true
		}
	}
	return best, found
}

func TestSpanningTreesMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 15; trial++ {
		g := randomGraph(rng, 5, 9, false, -3, 12)
		want, connected := bruteMST(g)
		if !connected {
			continue
		}
		for name, ctor := range map[string]func(algo.Input) (algo.Process, error){
			Kruskal: NewKruskal,
			Prim:    NewPrim,
		} {
			f := run(t, ctor, g)
			if len(f.Output) != 1 || f.Output[0] != want {
				t.Errorf("%s trial %d: expected weight %d, got %v", name, trial, want, f.Output)
			}
			tree, _ := f.Region("tree")
			if len(tree.Edges) != g.Nodes-1 {
				t.Errorf("%s trial %d: expected %d tree edges, got %d", name, trial, g.Nodes-1, len(tree.Edges))
			}
		}
	}
}

func TestSpanningTreeDisconnected(t *testing.T) {
	g := algo.GraphSpec{Nodes: 4, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 1},
		{From: 2, To: 3, Weight: 1},
	}}
	f := run(t, NewKruskal, g)
	if !strings.Contains(f.Note, "disconnected") {
		t.Errorf("expected disconnected note, got %q", f.Note)
	}
	if f.Output[0] != 2 {
		t.Errorf("expected forest weight 2, got %d", f.Output[0])
	}

	f = run(t, NewPrim, g)
	if !strings.Contains(f.Note, "disconnected") {
		t.Errorf("expected disconnected note, got %q", f.Note)
	}
	if f.Output[0] != 1 {
		t.Errorf("expected component weight 1, got %d", f.Output[0])
	}
}

func TestSpanningTreeRequiresUndirected(t *testing.T) {
	g := algo.GraphSpec{Nodes: 2, Directed: true, Edges: []frame.Edge{{From: 0, To: 1, Weight: 1}}}
	for _, ctor := range []func(algo.Input) (algo.Process, error){NewKruskal, NewPrim} {
		if _, err := ctor(algo.Input{Graph: &g}); !errors.Is(err, algo.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestGraphInputIsCopied(t *testing.T) {
	g := algo.GraphSpec{Nodes: 2, Edges: []frame.Edge{{From: 0, To: 1, Weight: 3}}}
	p, err := NewPrim(algo.Input{Graph: &g})
	if err != nil {
		t.Fatal(err)
	}
	g.Edges[0].Weight = 100
	for {
		f, err := p.Next()
		if err != nil {
			break
		}
		if f.Graph.Edges[0].Weight != 3 {
			t.Fatalf("process observed caller mutation")
		}
	}
}
