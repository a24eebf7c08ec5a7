package boards

import (
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

type GraphOp string

const (
	GraphVisit    GraphOp = "visit"
	GraphRelax    GraphOp = "relax"
	GraphImprove  GraphOp = "improve"
	GraphConsider GraphOp = "consider"
	GraphAccept   GraphOp = "accept"
	GraphReject   GraphOp = "reject"
	GraphNote     GraphOp = "note"
	GraphDone     GraphOp = "done"
)

// GraphEvent is one step against a graph board.
//
//	visit     Node becomes active and settled
//	relax     Edge is examined from Node
//	improve   Dist[Node] = Dist via Edge, parent updated
//	consider  Edge is examined for the spanning tree
//	accept    Edge joins the tree
//	reject    Edge would close a cycle
//	note      only sets the note
//	done      clears the transient highlights
type GraphEvent struct {
	Op   GraphOp
	Node int
	Edge int
	Dist int64
	Note string
}

type GraphBoard struct {
	g          frame.Graph
	parentEdge []int
	settled    []int
	tree       []int
	transient  []frame.Region
	stats      frame.Stats
	total      int64
	mst        bool
	op         string
	note       string
}

// NewGraphBoard builds a board for shortest-path runs from source. Pass a
// negative source for spanning-tree runs, which carry no distances and
// report the tree weight as output.
func NewGraphBoard(spec algo.GraphSpec, source int) *GraphBoard {
	b := &GraphBoard{
		g: frame.Graph{
			Nodes:    spec.Nodes,
			Directed: spec.Directed,
			Edges:    slices.Clone(spec.Edges),
		},
		mst: source < 0,
	}
	if !b.mst {
		b.g.Dist = make([]int64, spec.Nodes)
		b.g.Parent = make([]int, spec.Nodes)
		b.parentEdge = make([]int, spec.Nodes)
		for i := range b.g.Dist {
			b.g.Dist[i] = frame.Inf
			b.g.Parent[i] = -1
			b.parentEdge[i] = -1
		}
		b.g.Dist[source] = 0
	}
	return b
}

func (b *GraphBoard) checkNode(n int) error {
	if n < 0 || n >= b.g.Nodes {
		return algo.Inconsistent("node %d out of range [0,%d)", n, b.g.Nodes)
	}
	return nil
}

func (b *GraphBoard) checkEdge(e int) error {
	if e < 0 || e >= len(b.g.Edges) {
		return algo.Inconsistent("edge %d out of range [0,%d)", e, len(b.g.Edges))
	}
	return nil
}

// other returns the endpoint of edge e opposite to node n.
func (b *GraphBoard) other(e, n int) (int, error) {
	edge := b.g.Edges[e]
	switch n {
	case edge.From:
		return edge.To, nil
	case edge.To:
		if b.g.Directed {
			return 0, algo.Inconsistent("edge %d is directed %d->%d, traversed from %d", e, edge.From, edge.To, n)
		}
		return edge.From, nil
	}
	return 0, algo.Inconsistent("edge %d does not touch node %d", e, n)
}

func (b *GraphBoard) Apply(ev GraphEvent) error {
	b.transient = b.transient[:0]
	b.note = ev.Note

	switch ev.Op {
	case GraphVisit:
		if err := b.checkNode(ev.Node); err != nil {
			return err
		}
		if !slices.Contains(b.settled, ev.Node) {
			b.settled = append(b.settled, ev.Node)
		}
		b.transient = append(b.transient, frame.Region{Name: "active", Indices: []int{ev.Node}})
	case GraphRelax:
		if b.mst {
			return algo.Inconsistent("relax on a spanning-tree board")
		}
		if err := b.checkNode(ev.Node); err != nil {
			return err
		}
		if err := b.checkEdge(ev.Edge); err != nil {
			return err
		}
		to, err := b.other(ev.Edge, ev.Node)
		if err != nil {
			return err
		}
		b.stats.Relaxations++
		b.transient = append(b.transient,
			frame.Region{Name: "active", Indices: pair(ev.Node, to)},
			frame.Region{Name: "edge", Edges: []int{ev.Edge}})
	case GraphImprove:
		if b.mst {
			return algo.Inconsistent("improve on a spanning-tree board")
		}
		if err := b.checkNode(ev.Node); err != nil {
			return err
		}
		if err := b.checkEdge(ev.Edge); err != nil {
			return err
		}
		edge := b.g.Edges[ev.Edge]
		if edge.From != ev.Node && edge.To != ev.Node {
			return algo.Inconsistent("edge %d does not reach node %d", ev.Edge, ev.Node)
		}
		from := edge.From
		if from == ev.Node {
			from = edge.To
		}
		b.g.Dist[ev.Node] = ev.Dist
		b.g.Parent[ev.Node] = from
		b.parentEdge[ev.Node] = ev.Edge
		b.stats.Writes++
		b.transient = append(b.transient,
			frame.Region{Name: "active", Indices: []int{ev.Node}},
			frame.Region{Name: "edge", Edges: []int{ev.Edge}})
	case GraphConsider:
		if err := b.checkEdge(ev.Edge); err != nil {
			return err
		}
		e := b.g.Edges[ev.Edge]
		b.stats.Comparisons++
		b.transient = append(b.transient,
			frame.Region{Name: "active", Indices: pair(e.From, e.To)},
			frame.Region{Name: "edge", Edges: []int{ev.Edge}})
	case GraphAccept:
		if err := b.checkEdge(ev.Edge); err != nil {
			return err
		}
		if slices.Contains(b.tree, ev.Edge) {
			return algo.Inconsistent("edge %d accepted twice", ev.Edge)
		}
		e := b.g.Edges[ev.Edge]
		b.tree = append(b.tree, ev.Edge)
		b.total += e.Weight
		b.stats.Writes++
		for _, n := range []int{e.From, e.To} {
			if !slices.Contains(b.settled, n) {
				b.settled = append(b.settled, n)
			}
		}
		b.transient = append(b.transient, frame.Region{Name: "edge", Edges: []int{ev.Edge}})
	case GraphReject:
		if err := b.checkEdge(ev.Edge); err != nil {
			return err
		}
		b.transient = append(b.transient, frame.Region{Name: "rejected", Edges: []int{ev.Edge}})
	case GraphNote:
	case GraphDone:
	default:
		return algo.Inconsistent("unknown graph op %q", ev.Op)
	}

	b.op = string(ev.Op)
	return nil
}

func (b *GraphBoard) treeEdges() []int {
	if b.mst {
		return slices.Clone(b.tree)
	}
	var out []int
	for _, e := range b.parentEdge {
		if e >= 0 {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}

func (b *GraphBoard) Snapshot() frame.Frame {
	f := frame.Frame{
		Kind:  frame.KindGraph,
		Op:    b.op,
		Note:  b.note,
		Graph: b.g.Clone(),
		Stats: b.stats,
	}
	if len(b.settled) > 0 {
		f.Regions = append(f.Regions, frame.Region{Name: "settled", Indices: slices.Clone(b.settled)})
	}
	if tree := b.treeEdges(); len(tree) > 0 {
		f.Regions = append(f.Regions, frame.Region{Name: "tree", Edges: tree})
	}
	for _, r := range b.transient {
		f.Regions = append(f.Regions, r.Clone())
	}
	if b.mst {
		f.Output = []int64{b.total}
	}
	return f
}
