// Package boards holds the display copies that turn algorithm events into
// frames. Each board is the only place its data is mutated on the display
// side; algorithms keep their own working copies.
package boards

import (
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

type ArrayOp string

const (
	ArrCompare   ArrayOp = "compare"
	ArrSwap      ArrayOp = "swap"
	ArrOverwrite ArrayOp = "overwrite"
	ArrVisit     ArrayOp = "visit"
	ArrFocus     ArrayOp = "focus"
	ArrMerge     ArrayOp = "merge"
	ArrRange     ArrayOp = "range"
	ArrClear     ArrayOp = "clear"
	ArrAnswer    ArrayOp = "answer"
	ArrDone      ArrayOp = "done"
)

// ArrayEvent is one step against an array board.
//
//	compare   I, J (and K as destination when HasDest)
//	swap      I, J
//	overwrite K, Value
//	visit     I (and K as destination when HasDest)
//	focus     [Lo, Hi)
//	merge     [Lo, Hi) split at Mid
//	range     [Lo, Hi)
//	clear     Region ("" clears every sticky region)
//	answer    Value appended to the frame output
//	done      clears all regions
type ArrayEvent struct {
	Op      ArrayOp
	I, J, K int
	HasDest bool
	Value   int
	Lo      int
	Mid     int
	Hi      int
	Region  string
	Note    string
}

// sticky region names in rendering order
var arraySticky = []string{"focus", "merge", "range"}

type ArrayBoard struct {
	values    []int
	sticky    map[string]frame.Region
	transient []frame.Region
	stats     frame.Stats
	output    []int64
	op        string
	note      string
}

func NewArrayBoard(values []int) *ArrayBoard {
	return &ArrayBoard{
		values: slices.Clone(values),
		sticky: make(map[string]frame.Region),
	}
}

func (b *ArrayBoard) Len() int { return len(b.values) }

func (b *ArrayBoard) check(idx ...int) error {
	for _, i := range idx {
		if i < 0 || i >= len(b.values) {
			return algo.Inconsistent("index %d out of range [0,%d)", i, len(b.values))
		}
	}
	return nil
}

func (b *ArrayBoard) checkSpan(lo, hi int) error {
	if lo < 0 || hi > len(b.values) || lo > hi {
		return algo.Inconsistent("range [%d,%d) outside [0,%d)", lo, hi, len(b.values))
	}
	return nil
}

func (b *ArrayBoard) Apply(ev ArrayEvent) error {
	b.transient = b.transient[:0]
	b.note = ev.Note

	switch ev.Op {
	case ArrCompare:
		if err := b.check(ev.I, ev.J); err != nil {
			return err
		}
		b.stats.Comparisons++
		b.transient = append(b.transient, frame.Region{Name: "compare", Indices: pair(ev.I, ev.J)})
		if ev.HasDest {
			if err := b.check(ev.K); err != nil {
				return err
			}
			b.transient = append(b.transient, frame.Region{Name: "dest", Indices: []int{ev.K}})
		}
	case ArrSwap:
		if err := b.check(ev.I, ev.J); err != nil {
			return err
		}
		b.values[ev.I], b.values[ev.J] = b.values[ev.J], b.values[ev.I]
		b.stats.Swaps++
		b.transient = append(b.transient, frame.Region{Name: "swap", Indices: pair(ev.I, ev.J)})
	case ArrOverwrite:
		if err := b.check(ev.K); err != nil {
			return err
		}
		b.values[ev.K] = ev.Value
		b.stats.Writes++
		b.transient = append(b.transient, frame.Region{Name: "overwrite", Indices: []int{ev.K}})
	case ArrVisit:
		if err := b.check(ev.I); err != nil {
			return err
		}
		b.transient = append(b.transient, frame.Region{Name: "visit", Indices: []int{ev.I}})
		if ev.HasDest {
			if err := b.check(ev.K); err != nil {
				return err
			}
			b.transient = append(b.transient, frame.Region{Name: "dest", Indices: []int{ev.K}})
		}
	case ArrFocus, ArrRange:
		if err := b.checkSpan(ev.Lo, ev.Hi); err != nil {
			return err
		}
		b.sticky[string(ev.Op)] = frame.Region{Name: string(ev.Op), Indices: span(ev.Lo, ev.Hi)}
	case ArrMerge:
		if err := b.checkSpan(ev.Lo, ev.Hi); err != nil {
			return err
		}
		if ev.Mid < ev.Lo || ev.Mid > ev.Hi {
			return algo.Inconsistent("merge split %d outside [%d,%d)", ev.Mid, ev.Lo, ev.Hi)
		}
		b.sticky["merge"] = frame.Region{Name: "merge", Indices: span(ev.Lo, ev.Hi)}
	case ArrClear:
		if ev.Region == "" {
			clear(b.sticky)
		} else {
			delete(b.sticky, ev.Region)
		}
	case ArrAnswer:
		b.output = append(b.output, int64(ev.Value))
	case ArrDone:
		clear(b.sticky)
	default:
		return algo.Inconsistent("unknown array op %q", ev.Op)
	}

	b.op = string(ev.Op)
	return nil
}

func (b *ArrayBoard) Snapshot() frame.Frame {
	f := frame.Frame{
		Kind:   frame.KindArray,
		Op:     b.op,
		Note:   b.note,
		Array:  slices.Clone(b.values),
		Stats:  b.stats,
		Output: slices.Clone(b.output),
	}
	for _, name := range arraySticky {
		if r, ok := b.sticky[name]; ok {
			f.Regions = append(f.Regions, r.Clone())
		}
	}
	for _, r := range b.transient {
		f.Regions = append(f.Regions, r.Clone())
	}
	return f
}

func pair(i, j int) []int {
	if i == j {
		return []int{i}
	}
	return []int{i, j}
}

func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
