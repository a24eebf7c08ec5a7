package rangeq

import (
	"fmt"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

// segmentTree is the bottom-up layout: leaves at n..2n-1, node i holds
// t[2i] + t[2i+1], slot 0 unused.
type segmentTree struct {
	n int
	t []int
}

func NewSegmentTree(in algo.Input) (algo.Process, error) {
	if err := validate(SegmentTree, in); err != nil {
		return nil, err
	}
	n := len(in.Array)
	st := &segmentTree{n: n, t: make([]int, 2*n)}
	copy(st.t[n:], in.Array)
	return newProcess(SegmentTree, in, slices.Clone(st.t), st), nil
}

func (s *segmentTree) pull(i int, yield func(boards.ArrayEvent) bool) bool {
	s.t[i] = s.t[2*i] + s.t[2*i+1]
	note := fmt.Sprintf("t[%d] = t[%d] + t[%d]", i, 2*i, 2*i+1)
	return yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: i, Value: s.t[i], Note: note})
}

func (s *segmentTree) build(yield func(boards.ArrayEvent) bool) bool {
	for i := s.n - 1; i >= 1; i-- {
		if !s.pull(i, yield) {
			return false
		}
	}
	return true
}

func (s *segmentTree) add(idx, delta int, yield func(boards.ArrayEvent) bool) bool {
	p := idx + s.n
	s.t[p] += delta
	if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: p, Value: s.t[p], Note: fmt.Sprintf("leaf %d += %d", idx, delta)}) {
		return false
	}
	for p /= 2; p >= 1; p /= 2 {
		if !s.pull(p, yield) {
			return false
		}
	}
	return true
}

func (s *segmentTree) query(lo, hi int, yield func(boards.ArrayEvent) bool) (int, bool) {
	if !yield(boards.ArrayEvent{Op: boards.ArrRange, Lo: lo + s.n, Hi: hi + s.n + 1}) {
		return 0, false
	}
	sum := 0
	visit := func(i int) bool {
		sum += s.t[i]
		return yield(boards.ArrayEvent{Op: boards.ArrVisit, I: i, Note: fmt.Sprintf("take t[%d] = %d", i, s.t[i])})
	}
	for l, r := lo+s.n, hi+s.n+1; l < r; l, r = l/2, r/2 {
		if l&1 == 1 {
			if !visit(l) {
				return 0, false
			}
			l++
		}
		if r&1 == 1 {
			r--
			if !visit(r) {
				return 0, false
			}
		}
	}
	return sum, true
}
