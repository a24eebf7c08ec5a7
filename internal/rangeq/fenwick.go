package rangeq

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

// fenwickTree is 1-indexed; slot 0 is unused and stays zero.
type fenwickTree struct {
	n int
	t []int
}

func NewFenwickTree(in algo.Input) (algo.Process, error) {
	if err := validate(FenwickTree, in); err != nil {
		return nil, err
	}
	n := len(in.Array)
	ft := &fenwickTree{n: n, t: make([]int, n+1)}
	copy(ft.t[1:], in.Array)
	return newProcess(FenwickTree, in, slices.Clone(ft.t), ft), nil
}

func lowbit(i int) int { return i & -i }

// build is the linear construction: each node pushes its total to its parent.
func (f *fenwickTree) build(yield func(boards.ArrayEvent) bool) bool {
	for i := 1; i <= f.n; i++ {
		j := i + lowbit(i)
		if j > f.n {
			continue
		}
		f.t[j] += f.t[i]
		if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: j, Value: f.t[j], Note: fmt.Sprintf("t[%d] += t[%d]", j, i)}) {
			return false
		}
	}
	return true
}

func (f *fenwickTree) add(idx, delta int, yield func(boards.ArrayEvent) bool) bool {
	for i := idx + 1; i <= f.n; i += lowbit(i) {
		f.t[i] += delta
		if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: i, Value: f.t[i], Note: fmt.Sprintf("t[%d] += %d", i, delta)}) {
			return false
		}
	}
	return true
}

func (f *fenwickTree) prefix(i int, sign int, yield func(boards.ArrayEvent) bool) (int, bool) {
	sum := 0
	for ; i > 0; i -= lowbit(i) {
		sum += f.t[i]
		verb := "add"
		if sign < 0 {
			verb = "subtract"
		}
		if !yield(boards.ArrayEvent{Op: boards.ArrVisit, I: i, Note: fmt.Sprintf("%s t[%d] = %d", verb, i, f.t[i])}) {
			return 0, false
		}
	}
	return sum, true
}

func (f *fenwickTree) query(lo, hi int, yield func(boards.ArrayEvent) bool) (int, bool) {
	if !yield(boards.ArrayEvent{Op: boards.ArrRange, Lo: lo + 1, Hi: hi + 2}) {
		return 0, false
	}
	upper, ok := f.prefix(hi+1, 1, yield)
	if !ok {
		return 0, false
	}
	lower, ok := f.prefix(lo, -1, yield)
	if !ok {
		return 0, false
	}
	return upper - lower, true
}
