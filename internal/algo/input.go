package algo

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/algoviz/internal/frame"
)

// Input is the raw problem handed to a Process constructor. Only the fields
// relevant to the chosen algorithm are read.
type Input struct {
	Array []int      `yaml:"array,omitempty" json:"array,omitempty"`
	Graph *GraphSpec `yaml:"graph,omitempty" json:"graph,omitempty"`
	DP    *DPSpec    `yaml:"dp,omitempty" json:"dp,omitempty"`
	Ops   []RangeOp  `yaml:"ops,omitempty" json:"ops,omitempty"`
}

type GraphSpec struct {
	Nodes    int          `yaml:"nodes" json:"nodes"`
	Directed bool         `yaml:"directed" json:"directed"`
	Source   int          `yaml:"source" json:"source"`
	Edges    []frame.Edge `yaml:"edges" json:"edges"`
}

// DPSpec holds parameters for the table-filling problems. A and B are the
// strings for lcs and edit_distance; Weights, Values and Capacity describe a
// 0/1 knapsack.
type DPSpec struct {
	A        string `yaml:"a,omitempty" json:"a,omitempty"`
	B        string `yaml:"b,omitempty" json:"b,omitempty"`
	Weights  []int  `yaml:"weights,omitempty" json:"weights,omitempty"`
	Values   []int  `yaml:"values,omitempty" json:"values,omitempty"`
	Capacity int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
}

type RangeOpKind string

const (
	OpSet   RangeOpKind = "set"
	OpAdd   RangeOpKind = "add"
	OpQuery RangeOpKind = "query"
)

// RangeOp is one operation against a segment or Fenwick tree. Set and Add use
// Index and Value; Query sums the inclusive range [Lo, Hi].
type RangeOp struct {
	Op    RangeOpKind `yaml:"op" json:"op"`
	Index int         `yaml:"index,omitempty" json:"index,omitempty"`
	Value int64       `yaml:"value,omitempty" json:"value,omitempty"`
	Lo    int         `yaml:"lo,omitempty" json:"lo,omitempty"`
	Hi    int         `yaml:"hi,omitempty" json:"hi,omitempty"`
}

// Clone returns a deep copy so that factories can rebuild a run from an
// untouched input.
func (in Input) Clone() Input {
	c := Input{
		Array: slices.Clone(in.Array),
		Ops:   slices.Clone(in.Ops),
	}
	if in.Graph != nil {
		g := *in.Graph
		g.Edges = slices.Clone(in.Graph.Edges)
		c.Graph = &g
	}
	if in.DP != nil {
		d := *in.DP
		d.Weights = slices.Clone(in.DP.Weights)
		d.Values = slices.Clone(in.DP.Values)
		c.DP = &d
	}
	return c
}

// RequireArray checks that an array input is present.
func RequireArray(algorithm string, in Input) error {
	if len(in.Array) == 0 {
		return Invalid(algorithm, "array", "must not be empty")
	}
	return nil
}

// GraphRules tunes graph validation per algorithm.
type GraphRules struct {
	NonNegative bool
	Undirected  bool
	NeedSource  bool
}

// RequireGraph validates node ids, weights and the source vertex.
func RequireGraph(algorithm string, in Input, rules GraphRules) error {
	g := in.Graph
	if g == nil {
		return Invalid(algorithm, "graph", "missing")
	}
	if g.Nodes <= 0 {
		return Invalid(algorithm, "graph", "node count must be positive, got %d", g.Nodes)
	}
	if rules.Undirected && g.Directed {
		return Invalid(algorithm, "graph", "requires an undirected graph")
	}
	if rules.NeedSource && (g.Source < 0 || g.Source >= g.Nodes) {
		return Invalid(algorithm, "source", "node %d out of range [0,%d)", g.Source, g.Nodes)
	}
	limit := MaxWeight(g)
	for i, e := range g.Edges {
		if e.From < 0 || e.From >= g.Nodes || e.To < 0 || e.To >= g.Nodes {
			return Invalid(algorithm, "edge", "edge %d (%d->%d) references a missing node", i, e.From, e.To)
		}
		if rules.NonNegative && e.Weight < 0 {
			return Invalid(algorithm, "edge", "edge %d (%d->%d) has negative weight %d", i, e.From, e.To, e.Weight)
		}
		if e.Weight > limit || e.Weight < -limit {
			return Invalid(algorithm, "edge", "edge %d (%d->%d) weight %d exceeds %d", i, e.From, e.To, e.Weight, limit)
		}
	}
	return nil
}

// MaxWeight is the largest edge weight magnitude g may carry. Every path sum
// the graph algorithms form, including the chains Bellman-Ford builds on a
// negative cycle, then stays strictly inside (-Inf, Inf).
func MaxWeight(g *GraphSpec) int64 {
	arcs := int64(max(2*len(g.Edges), 1))
	return (frame.Inf - 1) / int64(max(g.Nodes, 1)) / arcs
}

// ParseArray parses "5,3,8,1" (spaces allowed).
func ParseArray(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse array element %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseEdges parses "0-1:4,1-2:3". A missing ":w" means weight 1.
func ParseEdges(s string) ([]frame.Edge, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, 0, nil
	}
	maxNode := -1
	var edges []frame.Edge
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		ends, weight, hasWeight := strings.Cut(p, ":")
		from, to, ok := strings.Cut(ends, "-")
		if !ok {
			return nil, 0, fmt.Errorf("parse edge %q: expected from-to[:weight]", p)
		}
		u, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, 0, fmt.Errorf("parse edge %q: %w", p, err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(to))
		if err != nil {
			return nil, 0, fmt.Errorf("parse edge %q: %w", p, err)
		}
		w := int64(1)
		if hasWeight {
			w, err = strconv.ParseInt(strings.TrimSpace(weight), 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("parse edge %q: %w", p, err)
			}
		}
		edges = append(edges, frame.Edge{From: u, To: v, Weight: w})
		maxNode = max(maxNode, u, v)
	}
	return edges, maxNode + 1, nil
}

// ParseOps parses "set:2=5,add:0=-1,query:1-4" into range operations.
func ParseOps(s string) ([]RangeOp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ops []RangeOp
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		kind, args, ok := strings.Cut(p, ":")
		if !ok {
			return nil, fmt.Errorf("parse op %q: expected op:args", p)
		}
		switch RangeOpKind(kind) {
		case OpSet, OpAdd:
			idx, val, ok := strings.Cut(args, "=")
			if !ok {
				return nil, fmt.Errorf("parse op %q: expected %s:index=value", p, kind)
			}
			i, err := strconv.Atoi(strings.TrimSpace(idx))
			if err != nil {
				return nil, fmt.Errorf("parse op %q: %w", p, err)
			}
			v, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse op %q: %w", p, err)
			}
			ops = append(ops, RangeOp{Op: RangeOpKind(kind), Index: i, Value: v})
		case OpQuery:
			lo, hi, ok := strings.Cut(args, "-")
			if !ok {
				return nil, fmt.Errorf("parse op %q: expected query:lo-hi", p)
			}
			l, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("parse op %q: %w", p, err)
			}
			h, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("parse op %q: %w", p, err)
			}
			ops = append(ops, RangeOp{Op: OpQuery, Lo: l, Hi: h})
		default:
			return nil, fmt.Errorf("parse op %q: unknown op %q", p, kind)
		}
	}
	return ops, nil
}
