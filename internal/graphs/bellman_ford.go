package graphs

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

// bellmanFord runs up to n-1 passes over the edge list, stopping early once a
// pass changes nothing, then makes one more pass looking for a negative cycle.
func bellmanFord(g *algo.GraphSpec, yield func(boards.GraphEvent) bool) {
	dist := make([]int64, g.Nodes)
	for i := range dist {
		dist[i] = frame.Inf
	}
	dist[g.Source] = 0
	if !yield(boards.GraphEvent{Op: boards.GraphVisit, Node: g.Source}) {
		return
	}

	arcs := func(e frame.Edge) [][2]int {
		if g.Directed {
			return [][2]int{{e.From, e.To}}
		}
		return [][2]int{{e.From, e.To}, {e.To, e.From}}
	}

	for pass := 1; pass < g.Nodes; pass++ {
		changed := false
		for i, e := range g.Edges {
			for _, a := range arcs(e) {
				u, v := a[0], a[1]
				if dist[u] == frame.Inf {
					continue
				}
				if !yield(boards.GraphEvent{Op: boards.GraphRelax, Node: u, Edge: i, Note: fmt.Sprintf("pass %d", pass)}) {
					return
				}
				if nd := dist[u] + e.Weight; nd < dist[v] {
					dist[v] = nd
					changed = true
					if !yield(boards.GraphEvent{Op: boards.GraphImprove, Node: v, Edge: i, Dist: nd, Note: fmt.Sprintf("pass %d", pass)}) {
						return
					}
				}
			}
		}
		if !changed {
			if !yield(boards.GraphEvent{Op: boards.GraphNote, Note: fmt.Sprintf("pass %d changed nothing", pass)}) {
				return
			}
			break
		}
	}

	for i, e := range g.Edges {
		for _, a := range arcs(e) {
			u, v := a[0], a[1]
			if dist[u] != frame.Inf && dist[u]+e.Weight < dist[v] {
				yield(boards.GraphEvent{Op: boards.GraphDone, Note: fmt.Sprintf("negative cycle through edge %d (%d->%d)", i, u, v)})
				return
			}
		}
	}
	yield(boards.GraphEvent{Op: boards.GraphDone, Note: fmt.Sprintf("no negative cycle; %d of %d nodes reachable", reachable(dist), g.Nodes)})
}
