// Package rangeq animates point updates and range-sum queries on a segment
// tree and a Fenwick tree. The board array is the tree array itself; query
// answers are appended to the frame output in operation order.
package rangeq

import (
	"fmt"
	"iter"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

const (
	SegmentTree = "segment_tree"
	FenwickTree = "fenwick_tree"
)

// tree is the working copy an operation sequence runs against.
type tree interface {
	build(yield func(boards.ArrayEvent) bool) bool
	add(idx int, delta int, yield func(boards.ArrayEvent) bool) bool
	query(lo, hi int, yield func(boards.ArrayEvent) bool) (int, bool)
}

func validate(name string, in algo.Input) error {
	if err := algo.RequireArray(name, in); err != nil {
		return err
	}
	n := len(in.Array)
	for i, op := range in.Ops {
		switch op.Op {
		case algo.OpSet, algo.OpAdd:
			if op.Index < 0 || op.Index >= n {
				return algo.Invalid(name, "ops", "op %d: index %d out of range [0,%d)", i, op.Index, n)
			}
		case algo.OpQuery:
			if op.Lo < 0 || op.Hi >= n || op.Lo > op.Hi {
				return algo.Invalid(name, "ops", "op %d: query [%d,%d] outside [0,%d)", i, op.Lo, op.Hi, n)
			}
		default:
			return algo.Invalid(name, "ops", "op %d: unknown kind %q", i, op.Op)
		}
	}
	return nil
}

// run builds the tree and then plays the operations. Set is expressed as an
// add of the difference from the current raw value.
func run(t tree, raw []int, ops []algo.RangeOp, yield func(boards.ArrayEvent) bool) bool {
	if !t.build(yield) {
		return false
	}
	for _, op := range ops {
		switch op.Op {
		case algo.OpSet:
			delta := int(op.Value) - raw[op.Index]
			raw[op.Index] = int(op.Value)
			if !t.add(op.Index, delta, yield) {
				return false
			}
		case algo.OpAdd:
			raw[op.Index] += int(op.Value)
			if !t.add(op.Index, int(op.Value), yield) {
				return false
			}
		case algo.OpQuery:
			sum, ok := t.query(op.Lo, op.Hi, yield)
			if !ok {
				return false
			}
			note := fmt.Sprintf("sum[%d..%d] = %d", op.Lo, op.Hi, sum)
			if !yield(boards.ArrayEvent{Op: boards.ArrAnswer, Value: sum, Note: note}) {
				return false
			}
			if !yield(boards.ArrayEvent{Op: boards.ArrClear, Region: "range"}) {
				return false
			}
		}
	}
	return yield(boards.ArrayEvent{Op: boards.ArrDone})
}

func newProcess(name string, in algo.Input, initial []int, t tree) algo.Process {
	raw := in.Clone()
	events := iter.Seq[boards.ArrayEvent](func(yield func(boards.ArrayEvent) bool) {
		run(t, raw.Array, raw.Ops, yield)
	})
	return algo.NewStream(name, boards.NewArrayBoard(initial), events)
}
