package boards

import (
	"math"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

// Unset marks a table cell that has not been filled yet.
const Unset int64 = math.MinInt64

type TableOp string

const (
	TableFill   TableOp = "fill"
	TableAnswer TableOp = "answer"
)

// TableEvent fills one cell from its dependencies, or marks the answer cell.
type TableEvent struct {
	Op    TableOp
	Row   int
	Col   int
	Value int64
	Deps  []frame.Cell
	Note  string
}

type TableBoard struct {
	cells     [][]int64
	answer    *frame.Cell
	transient []frame.Region
	stats     frame.Stats
	output    []int64
	op        string
	note      string
}

func NewTableBoard(rows, cols int) *TableBoard {
	cells := make([][]int64, rows)
	for i := range cells {
		cells[i] = make([]int64, cols)
		for j := range cells[i] {
			cells[i][j] = Unset
		}
	}
	return &TableBoard{cells: cells}
}

func (b *TableBoard) check(c frame.Cell) error {
	if c.Row < 0 || c.Row >= len(b.cells) || c.Col < 0 || c.Col >= len(b.cells[c.Row]) {
		return algo.Inconsistent("cell (%d,%d) outside table", c.Row, c.Col)
	}
	return nil
}

func (b *TableBoard) Apply(ev TableEvent) error {
	b.transient = b.transient[:0]
	b.note = ev.Note
	at := frame.Cell{Row: ev.Row, Col: ev.Col}
	if err := b.check(at); err != nil {
		return err
	}

	switch ev.Op {
	case TableFill:
		for _, d := range ev.Deps {
			if err := b.check(d); err != nil {
				return err
			}
			if b.cells[d.Row][d.Col] == Unset {
				return algo.Inconsistent("cell (%d,%d) read before it was filled", d.Row, d.Col)
			}
		}
		b.cells[ev.Row][ev.Col] = ev.Value
		b.stats.Writes++
		b.stats.Comparisons += max(len(ev.Deps)-1, 0)
		b.transient = append(b.transient, frame.Region{Name: "cell", Cells: []frame.Cell{at}})
		if len(ev.Deps) > 0 {
			b.transient = append(b.transient, frame.Region{Name: "deps", Cells: slices.Clone(ev.Deps)})
		}
	case TableAnswer:
		if b.cells[ev.Row][ev.Col] == Unset {
			return algo.Inconsistent("answer cell (%d,%d) is empty", ev.Row, ev.Col)
		}
		b.answer = &at
		b.output = []int64{b.cells[ev.Row][ev.Col]}
	default:
		return algo.Inconsistent("unknown table op %q", ev.Op)
	}

	b.op = string(ev.Op)
	return nil
}

func (b *TableBoard) Snapshot() frame.Frame {
	f := frame.Frame{
		Kind:   frame.KindTable,
		Op:     b.op,
		Note:   b.note,
		Table:  make([][]int64, len(b.cells)),
		Stats:  b.stats,
		Output: slices.Clone(b.output),
	}
	for i, row := range b.cells {
		f.Table[i] = slices.Clone(row)
	}
	if b.answer != nil {
		f.Regions = append(f.Regions, frame.Region{Name: "answer", Cells: []frame.Cell{*b.answer}})
	}
	for _, r := range b.transient {
		f.Regions = append(f.Regions, r.Clone())
	}
	return f
}
