package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/dp"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/graphs"
	"github.com/san-kum/algoviz/internal/rangeq"
	"github.com/san-kum/algoviz/internal/sorting"
)

var ErrUnknownAlgorithm = errors.New("registry: unknown algorithm")

const (
	FamilySorting = "sorting"
	FamilyGraph   = "graph"
	FamilyDP      = "dp"
	FamilyRange   = "range"
)

type Constructor func(algo.Input) (algo.Process, error)

// Entry describes one algorithm. Sample is a ready-made input used when the
// caller supplies none.
type Entry struct {
	Name        string
	Family      string
	Kind        frame.Kind
	Description string
	New         Constructor
	Sample      algo.Input
}

type Registry struct {
	entries map[string]Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}

	sortSample := algo.Input{Array: []int{5, 3, 8, 1, 9, 2, 7, 4, 6}}
	r.add(Entry{Name: sorting.MergeSort, Family: FamilySorting, Kind: frame.KindArray,
		Description: "top-down merge sort; shows each merge with its destination slot",
		New:         sorting.NewMergeSort, Sample: sortSample})
	r.add(Entry{Name: sorting.QuickSort, Family: FamilySorting, Kind: frame.KindArray,
		Description: "Lomuto quick sort with the last element as pivot",
		New:         sorting.NewQuickSort, Sample: sortSample})
	r.add(Entry{Name: sorting.HeapSort, Family: FamilySorting, Kind: frame.KindArray,
		Description: "max-heap build followed by repeated extraction",
		New:         sorting.NewHeapSort, Sample: sortSample})

	weighted := &algo.GraphSpec{Nodes: 6, Source: 0, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 7},
		{From: 0, To: 2, Weight: 9},
		{From: 0, To: 5, Weight: 14},
		{From: 1, To: 2, Weight: 10},
		{From: 1, To: 3, Weight: 15},
		{From: 2, To: 3, Weight: 11},
		{From: 2, To: 5, Weight: 2},
		{From: 3, To: 4, Weight: 6},
		{From: 4, To: 5, Weight: 9},
	}}
	negative := &algo.GraphSpec{Nodes: 5, Directed: true, Source: 0, Edges: []frame.Edge{
		{From: 0, To: 1, Weight: 6},
		{From: 0, To: 3, Weight: 7},
		{From: 1, To: 2, Weight: 5},
		{From: 1, To: 3, Weight: 8},
		{From: 1, To: 4, Weight: -4},
		{From: 2, To: 1, Weight: -2},
		{From: 3, To: 2, Weight: -3},
		{From: 3, To: 4, Weight: 9},
		{From: 4, To: 0, Weight: 2},
		{From: 4, To: 2, Weight: 7},
	}}
	r.add(Entry{Name: graphs.Dijkstra, Family: FamilyGraph, Kind: frame.KindGraph,
		Description: "single-source shortest paths with a binary-heap frontier",
		New:         graphs.NewDijkstra, Sample: algo.Input{Graph: weighted}})
	r.add(Entry{Name: graphs.BellmanFord, Family: FamilyGraph, Kind: frame.KindGraph,
		Description: "edge-list relaxation passes with a negative-cycle check",
		New:         graphs.NewBellmanFord, Sample: algo.Input{Graph: negative}})
	r.add(Entry{Name: graphs.Kruskal, Family: FamilyGraph, Kind: frame.KindGraph,
		Description: "minimum spanning tree from sorted edges and union-find",
		New:         graphs.NewKruskal, Sample: algo.Input{Graph: weighted}})
	r.add(Entry{Name: graphs.Prim, Family: FamilyGraph, Kind: frame.KindGraph,
		Description: "minimum spanning tree grown from the source",
		New:         graphs.NewPrim, Sample: algo.Input{Graph: weighted}})

	r.add(Entry{Name: dp.LCS, Family: FamilyDP, Kind: frame.KindTable,
		Description: "longest common subsequence table",
		New:         dp.NewLCS, Sample: algo.Input{DP: &algo.DPSpec{A: "ABCBDAB", B: "BDCABA"}}})
	r.add(Entry{Name: dp.Knapsack, Family: FamilyDP, Kind: frame.KindTable,
		Description: "0/1 knapsack by item and capacity",
		New:         dp.NewKnapsack, Sample: algo.Input{DP: &algo.DPSpec{Weights: []int{1, 3, 4, 5}, Values: []int{1, 4, 5, 7}, Capacity: 7}}})
	r.add(Entry{Name: dp.EditDistance, Family: FamilyDP, Kind: frame.KindTable,
		Description: "Levenshtein distance table",
		New:         dp.NewEditDistance, Sample: algo.Input{DP: &algo.DPSpec{A: "kitten", B: "sitting"}}})

	rangeSample := algo.Input{
		Array: []int{2, 1, 5, 3, 4, 2, 6, 1},
		Ops: []algo.RangeOp{
			{Op: algo.OpQuery, Lo: 1, Hi: 5},
			{Op: algo.OpSet, Index: 3, Value: 10},
			{Op: algo.OpAdd, Index: 6, Value: -4},
			{Op: algo.OpQuery, Lo: 0, Hi: 7},
			{Op: algo.OpQuery, Lo: 3, Hi: 3},
		},
	}
	r.add(Entry{Name: rangeq.SegmentTree, Family: FamilyRange, Kind: frame.KindArray,
		Description: "iterative segment tree, point updates and range sums",
		New:         rangeq.NewSegmentTree, Sample: rangeSample})
	r.add(Entry{Name: rangeq.FenwickTree, Family: FamilyRange, Kind: frame.KindArray,
		Description: "Fenwick tree, point updates and range sums",
		New:         rangeq.NewFenwickTree, Sample: rangeSample})

	return r
}

func (r *Registry) add(e Entry) {
	e.Sample = e.Sample.Clone()
	r.entries[e.Name] = e
}

func (r *Registry) Get(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
	e.Sample = e.Sample.Clone()
	return e, nil
}

// New builds a process. It has the engine factory signature.
func (r *Registry) New(name string, in algo.Input) (algo.Process, error) {
	e, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return e.New(in)
}

func (r *Registry) Sample(name string) (algo.Input, error) {
	e, err := r.Get(name)
	if err != nil {
		return algo.Input{}, err
	}
	return e.Sample, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ListFamily returns the sorted names in one family.
func (r *Registry) ListFamily(family string) []string {
	var names []string
	for name, e := range r.entries {
		if e.Family == family {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Families returns family names in display order.
func (r *Registry) Families() []string {
	return []string{FamilySorting, FamilyGraph, FamilyDP, FamilyRange}
}
