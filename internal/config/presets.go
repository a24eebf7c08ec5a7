package config

import (
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

func preset(alg string, in algo.Input) *Config {
	c := DefaultConfig()
	c.Algorithm = alg
	c.Input = in
	return c
}

func arr(v ...int) algo.Input { return algo.Input{Array: v} }

var grid = &algo.GraphSpec{Nodes: 9, Source: 0, Edges: []frame.Edge{
	{From: 0, To: 1, Weight: 4}, {From: 1, To: 2, Weight: 1},
	{From: 3, To: 4, Weight: 2}, {From: 4, To: 5, Weight: 6},
	{From: 6, To: 7, Weight: 3}, {From: 7, To: 8, Weight: 1},
	{From: 0, To: 3, Weight: 1}, {From: 3, To: 6, Weight: 5},
	{From: 1, To: 4, Weight: 7}, {From: 4, To: 7, Weight: 1},
	{From: 2, To: 5, Weight: 2}, {From: 5, To: 8, Weight: 3},
}}

var Presets = map[string]map[string]*Config{
	"merge_sort": {
		"reversed":      preset("merge_sort", arr(9, 8, 7, 6, 5, 4, 3, 2, 1)),
		"nearly_sorted": preset("merge_sort", arr(1, 2, 4, 3, 5, 6, 8, 7, 9)),
		"few_unique":    preset("merge_sort", arr(3, 1, 3, 2, 1, 2, 3, 1)),
	},
	"quick_sort": {
		"sorted":   preset("quick_sort", arr(1, 2, 3, 4, 5, 6, 7, 8)),
		"reversed": preset("quick_sort", arr(8, 7, 6, 5, 4, 3, 2, 1)),
		"pivots":   preset("quick_sort", arr(5, 9, 1, 5, 7, 5, 2, 8)),
	},
	"heap_sort": {
		"reversed": preset("heap_sort", arr(10, 9, 8, 7, 6, 5, 4, 3, 2, 1)),
		"small":    preset("heap_sort", arr(4, 10, 3, 5, 1)),
	},
	"dijkstra": {
		"grid": preset("dijkstra", algo.Input{Graph: grid}),
		"unreachable": preset("dijkstra", algo.Input{Graph: &algo.GraphSpec{Nodes: 4, Directed: true, Edges: []frame.Edge{
			{From: 0, To: 1, Weight: 2}, {From: 1, To: 2, Weight: 2}, {From: 3, To: 0, Weight: 1},
		}}}),
	},
	"bellman_ford": {
		"negative_cycle": preset("bellman_ford", algo.Input{Graph: &algo.GraphSpec{Nodes: 4, Directed: true, Edges: []frame.Edge{
			{From: 0, To: 1, Weight: 1}, {From: 1, To: 2, Weight: -1}, {From: 2, To: 3, Weight: -1}, {From: 3, To: 1, Weight: -1},
		}}}),
		"grid": preset("bellman_ford", algo.Input{Graph: grid}),
	},
	"kruskal": {
		"grid": preset("kruskal", algo.Input{Graph: grid}),
		"forest": preset("kruskal", algo.Input{Graph: &algo.GraphSpec{Nodes: 5, Edges: []frame.Edge{
			{From: 0, To: 1, Weight: 3}, {From: 1, To: 2, Weight: 1}, {From: 3, To: 4, Weight: 2},
		}}}),
	},
	"prim": {
		"grid": preset("prim", algo.Input{Graph: grid}),
	},
	"lcs": {
		"dna": preset("lcs", algo.Input{DP: &algo.DPSpec{A: "GATTACA", B: "TACGATA"}}),
	},
	"knapsack": {
		"tight": preset("knapsack", algo.Input{DP: &algo.DPSpec{Weights: []int{2, 3, 4, 5}, Values: []int{3, 4, 5, 6}, Capacity: 5}}),
	},
	"edit_distance": {
		"typo": preset("edit_distance", algo.Input{DP: &algo.DPSpec{A: "recieve", B: "receive"}}),
	},
	"segment_tree": {
		"updates": preset("segment_tree", algo.Input{
			Array: []int{5, 8, 6, 3, 2, 7},
			Ops: []algo.RangeOp{
				{Op: algo.OpQuery, Lo: 0, Hi: 5},
				{Op: algo.OpAdd, Index: 2, Value: 4},
				{Op: algo.OpQuery, Lo: 1, Hi: 3},
			},
		}),
	},
	"fenwick_tree": {
		"prefix": preset("fenwick_tree", algo.Input{
			Array: []int{3, 2, -1, 6, 5, 4, -3, 3},
			Ops: []algo.RangeOp{
				{Op: algo.OpQuery, Lo: 0, Hi: 3},
				{Op: algo.OpSet, Index: 2, Value: 7},
				{Op: algo.OpQuery, Lo: 2, Hi: 6},
			},
		}),
	},
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(algorithm, name string) *Config {
	named, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := named[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(algorithm string) []string {
	named, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
