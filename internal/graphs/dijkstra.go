package graphs

import (
	"container/heap"
	"fmt"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

type entry struct {
	node int
	dist int64
}

// frontier is a min-heap on distance, ties broken by node id so that runs
// are reproducible.
type frontier []entry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].node < f[j].node
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(entry)) }
func (f *frontier) Pop() any {
	old := *f
	e := old[len(old)-1]
	*f = old[:len(old)-1]
	return e
}

func dijkstra(g *algo.GraphSpec, yield func(boards.GraphEvent) bool) {
	adj := adjacency(g)
	dist := make([]int64, g.Nodes)
	for i := range dist {
		dist[i] = frame.Inf
	}
	dist[g.Source] = 0
	settled := make([]bool, g.Nodes)

	pq := &frontier{{node: g.Source}}
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(entry)
		u := cur.node
		// stale entry
		if settled[u] || cur.dist != dist[u] {
			continue
		}
		settled[u] = true
		if !yield(boards.GraphEvent{Op: boards.GraphVisit, Node: u, Note: fmt.Sprintf("settle %d at %d", u, dist[u])}) {
			return
		}
		for _, a := range adj[u] {
			if settled[a.to] {
				continue
			}
			if !yield(boards.GraphEvent{Op: boards.GraphRelax, Node: u, Edge: a.edge}) {
				return
			}
			if nd := dist[u] + a.w; nd < dist[a.to] {
				dist[a.to] = nd
				if !yield(boards.GraphEvent{Op: boards.GraphImprove, Node: a.to, Edge: a.edge, Dist: nd}) {
					return
				}
				heap.Push(pq, entry{node: a.to, dist: nd})
			}
		}
	}
	yield(boards.GraphEvent{Op: boards.GraphDone, Note: fmt.Sprintf("%d of %d nodes reachable", reachable(dist), g.Nodes)})
}
