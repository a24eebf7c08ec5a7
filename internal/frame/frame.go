// Package frame defines the immutable snapshot handed from the step engine to
// renderers.
//
// A Frame carries the current value of the visualized data structure, the
// named highlight regions produced by the last step, and cumulative counters.
// Frames are values: anything that leaves the engine is a deep copy made with
// [Frame.Clone], so history can never be mutated by a consumer.
package frame

import (
	"math"
	"slices"
)

// Kind identifies which data field of a Frame is populated.
type Kind string

const (
	KindArray Kind = "array"
	KindGraph Kind = "graph"
	KindTable Kind = "table"
)

// Inf marks an unreachable node distance.
const Inf int64 = math.MaxInt64

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Region is a named highlight over part of the data. Indices address array
// positions or graph nodes, Edges address Graph.Edges, Cells address table
// entries.
type Region struct {
	Name    string `json:"name"`
	Indices []int  `json:"indices,omitempty"`
	Edges   []int  `json:"edges,omitempty"`
	Cells   []Cell `json:"cells,omitempty"`
}

func (r Region) Clone() Region {
	return Region{
		Name:    r.Name,
		Indices: slices.Clone(r.Indices),
		Edges:   slices.Clone(r.Edges),
		Cells:   slices.Clone(r.Cells),
	}
}

type Edge struct {
	From   int   `json:"from"`
	To     int   `json:"to"`
	Weight int64 `json:"weight"`
}

type Graph struct {
	Nodes    int     `json:"nodes"`
	Directed bool    `json:"directed"`
	Edges    []Edge  `json:"edges"`
	Dist     []int64 `json:"dist,omitempty"`
	Parent   []int   `json:"parent,omitempty"`
}

func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	return &Graph{
		Nodes:    g.Nodes,
		Directed: g.Directed,
		Edges:    slices.Clone(g.Edges),
		Dist:     slices.Clone(g.Dist),
		Parent:   slices.Clone(g.Parent),
	}
}

// Stats are running totals since step 0. They live on the frame so that
// rewinding also rewinds the counters.
type Stats struct {
	Comparisons int `json:"comparisons"`
	Swaps       int `json:"swaps"`
	Writes      int `json:"writes"`
	Relaxations int `json:"relaxations"`
}

type Frame struct {
	Step    int       `json:"step"`
	Kind    Kind      `json:"kind"`
	Op      string    `json:"op"`
	Note    string    `json:"note,omitempty"`
	Array   []int     `json:"array,omitempty"`
	Graph   *Graph    `json:"graph,omitempty"`
	Table   [][]int64 `json:"table,omitempty"`
	Regions []Region  `json:"regions,omitempty"`
	Stats   Stats     `json:"stats"`
	Output  []int64   `json:"output,omitempty"`
}

// Clone returns a deep copy.
func (f Frame) Clone() Frame {
	c := f
	c.Array = slices.Clone(f.Array)
	c.Graph = f.Graph.Clone()
	c.Output = slices.Clone(f.Output)
	if f.Table != nil {
		c.Table = make([][]int64, len(f.Table))
		for i, row := range f.Table {
			c.Table[i] = slices.Clone(row)
		}
	}
	if f.Regions != nil {
		c.Regions = make([]Region, len(f.Regions))
		for i, r := range f.Regions {
			c.Regions[i] = r.Clone()
		}
	}
	return c
}

// Region returns the named region and whether it is present.
func (f Frame) Region(name string) (Region, bool) {
	for _, r := range f.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Highlighted reports whether index i belongs to the named region.
func (f Frame) Highlighted(name string, i int) bool {
	r, ok := f.Region(name)
	return ok && slices.Contains(r.Indices, i)
}

// Equal reports deep equality. Used to check that replayed frames match the
// frames produced going forward.
func Equal(a, b Frame) bool {
	if a.Step != b.Step || a.Kind != b.Kind || a.Op != b.Op || a.Note != b.Note || a.Stats != b.Stats {
		return false
	}
	if !slices.Equal(a.Array, b.Array) || !slices.Equal(a.Output, b.Output) {
		return false
	}
	if !slices.EqualFunc(a.Table, b.Table, func(x, y []int64) bool { return slices.Equal(x, y) }) {
		return false
	}
	if !slices.EqualFunc(a.Regions, b.Regions, regionEqual) {
		return false
	}
	return graphEqual(a.Graph, b.Graph)
}

func regionEqual(a, b Region) bool {
	return a.Name == b.Name &&
		slices.Equal(a.Indices, b.Indices) &&
		slices.Equal(a.Edges, b.Edges) &&
		slices.Equal(a.Cells, b.Cells)
}

func graphEqual(a, b *Graph) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Nodes == b.Nodes &&
		a.Directed == b.Directed &&
		slices.Equal(a.Edges, b.Edges) &&
		slices.Equal(a.Dist, b.Dist) &&
		slices.Equal(a.Parent, b.Parent)
}
