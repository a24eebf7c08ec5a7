package graphs

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

// disjointSet is union-find with path halving and union by size.
type disjointSet struct {
	parent []int
	size   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n), size: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(a, b int) bool {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return false
	}
	if d.size[ra] < d.size[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	return true
}

func kruskal(g *algo.GraphSpec, yield func(boards.GraphEvent) bool) {
	order := make([]int, len(g.Edges))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(g.Edges[a].Weight, g.Edges[b].Weight)
	})

	ds := newDisjointSet(g.Nodes)
	accepted := 0
	for _, i := range order {
		if accepted == g.Nodes-1 {
			break
		}
		e := g.Edges[i]
		if !yield(boards.GraphEvent{Op: boards.GraphConsider, Edge: i}) {
			return
		}
		if ds.union(e.From, e.To) {
			accepted++
			if !yield(boards.GraphEvent{Op: boards.GraphAccept, Edge: i}) {
				return
			}
			continue
		}
		if !yield(boards.GraphEvent{Op: boards.GraphReject, Edge: i, Note: fmt.Sprintf("%d and %d already connected", e.From, e.To)}) {
			return
		}
	}
	yield(boards.GraphEvent{Op: boards.GraphDone, Note: treeNote(accepted, g.Nodes)})
}

func treeNote(accepted, nodes int) string {
	if accepted == nodes-1 {
		return "spanning tree complete"
	}
	return fmt.Sprintf("graph is disconnected: forest with %d components", nodes-accepted)
}
