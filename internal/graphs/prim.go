package graphs

import (
	"container/heap"
	"fmt"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

type candidate struct {
	edge int
	to   int
	w    int64
}

// candidates is a min-heap on weight, then edge index.
type candidates []candidate

func (c candidates) Len() int { return len(c) }
func (c candidates) Less(i, j int) bool {
	if c[i].w != c[j].w {
		return c[i].w < c[j].w
	}
	return c[i].edge < c[j].edge
}
func (c candidates) Swap(i, j int) { c[i], c[j] = c[j], c[i] }
func (c *candidates) Push(x any)   { *c = append(*c, x.(candidate)) }
func (c *candidates) Pop() any {
	old := *c
	e := old[len(old)-1]
	*c = old[:len(old)-1]
	return e
}

// prim grows a tree from the source. Only the component containing the
// source is spanned.
func prim(g *algo.GraphSpec, yield func(boards.GraphEvent) bool) {
	adj := adjacency(g)
	inTree := make([]bool, g.Nodes)
	pq := &candidates{}

	add := func(u int) bool {
		inTree[u] = true
		if !yield(boards.GraphEvent{Op: boards.GraphVisit, Node: u}) {
			return false
		}
		for _, a := range adj[u] {
			if !inTree[a.to] {
				heap.Push(pq, candidate{edge: a.edge, to: a.to, w: a.w})
			}
		}
		return true
	}

	if !add(g.Source) {
		return
	}
	accepted := 0
	for pq.Len() > 0 && accepted < g.Nodes-1 {
		c := heap.Pop(pq).(candidate)
		if !yield(boards.GraphEvent{Op: boards.GraphConsider, Edge: c.edge}) {
			return
		}
		if inTree[c.to] {
			if !yield(boards.GraphEvent{Op: boards.GraphReject, Edge: c.edge}) {
				return
			}
			continue
		}
		accepted++
		if !yield(boards.GraphEvent{Op: boards.GraphAccept, Edge: c.edge}) {
			return
		}
		if !add(c.to) {
			return
		}
	}
	note := "spanning tree complete"
	if accepted < g.Nodes-1 {
		note = fmt.Sprintf("graph is disconnected: tree reaches %d of %d nodes", accepted+1, g.Nodes)
	}
	yield(boards.GraphEvent{Op: boards.GraphDone, Note: note})
}
