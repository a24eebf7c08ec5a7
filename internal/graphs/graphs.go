// Package graphs implements shortest-path and spanning-tree algorithms as
// event generators over a graph board.
//
// Dijkstra and Bellman-Ford report distances through Graph.Dist and the
// shortest-path tree through the sticky "tree" region. Kruskal and Prim
// accept edges into the "tree" region and report the total weight as the
// single Output value. A disconnected input is not an error; it is called out
// in the final note.
package graphs

import (
	"iter"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

const (
	Dijkstra    = "dijkstra"
	BellmanFord = "bellman_ford"
	Kruskal     = "kruskal"
	Prim        = "prim"
)

// arc is one traversable direction of an edge.
type arc struct {
	edge int
	to   int
	w    int64
}

// adjacency lists the arcs leaving each node, in edge order. Undirected edges
// appear from both ends.
func adjacency(g *algo.GraphSpec) [][]arc {
	adj := make([][]arc, g.Nodes)
	for i, e := range g.Edges {
		adj[e.From] = append(adj[e.From], arc{edge: i, to: e.To, w: e.Weight})
		if !g.Directed && e.From != e.To {
			adj[e.To] = append(adj[e.To], arc{edge: i, to: e.From, w: e.Weight})
		}
	}
	return adj
}

type generator func(g *algo.GraphSpec, yield func(boards.GraphEvent) bool)

func newProcess(name string, in algo.Input, rules algo.GraphRules, tree bool, gen generator) (algo.Process, error) {
	if err := algo.RequireGraph(name, in, rules); err != nil {
		return nil, err
	}
	spec := in.Clone().Graph
	source := spec.Source
	if tree {
		source = -1
	}
	board := boards.NewGraphBoard(*spec, source)
	events := iter.Seq[boards.GraphEvent](func(yield func(boards.GraphEvent) bool) {
		gen(spec, yield)
	})
	return algo.NewStream(name, board, events), nil
}

func NewDijkstra(in algo.Input) (algo.Process, error) {
	return newProcess(Dijkstra, in, algo.GraphRules{NonNegative: true, NeedSource: true}, false, dijkstra)
}

func NewBellmanFord(in algo.Input) (algo.Process, error) {
	return newProcess(BellmanFord, in, algo.GraphRules{NeedSource: true}, false, bellmanFord)
}

func NewKruskal(in algo.Input) (algo.Process, error) {
	return newProcess(Kruskal, in, algo.GraphRules{Undirected: true}, true, kruskal)
}

func NewPrim(in algo.Input) (algo.Process, error) {
	return newProcess(Prim, in, algo.GraphRules{Undirected: true, NeedSource: true}, true, prim)
}

func reachable(dist []int64) int {
	n := 0
	for _, d := range dist {
		if d != frame.Inf {
			n++
		}
	}
	return n
}
