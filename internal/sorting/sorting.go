// Package sorting implements the comparison sorts as event generators over
// an array board.
//
// Highlight semantics:
//
//   - compare: the two positions being compared (merge sort also marks the
//     write destination as dest)
//   - swap: the two positions just exchanged
//   - overwrite: the position just written
//   - focus: the recursion segment currently being sorted (sticky)
//   - merge: the segment currently being merged (sticky)
//
// Every run ends with a done step that clears all regions, so the final
// frame is the sorted array with an empty highlight set.
package sorting

import (
	"iter"
	"slices"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
)

const (
	MergeSort = "merge_sort"
	QuickSort = "quick_sort"
	HeapSort  = "heap_sort"
)

type generator func(arr []int, yield func(boards.ArrayEvent) bool) bool

func newProcess(name string, in algo.Input, gen generator) (*algo.Stream[boards.ArrayEvent], error) {
	if err := algo.RequireArray(name, in); err != nil {
		return nil, err
	}
	board := boards.NewArrayBoard(in.Array)
	work := slices.Clone(in.Array)
	events := iter.Seq[boards.ArrayEvent](func(yield func(boards.ArrayEvent) bool) {
		if !gen(work, yield) {
			return
		}
		yield(boards.ArrayEvent{Op: boards.ArrDone, Note: "sorted"})
	})
	return algo.NewStream(name, board, events), nil
}

func NewMergeSort(in algo.Input) (algo.Process, error) {
	p, err := newProcess(MergeSort, in, mergeSort)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func NewQuickSort(in algo.Input) (algo.Process, error) {
	p, err := newProcess(QuickSort, in, quickSort)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func NewHeapSort(in algo.Input) (algo.Process, error) {
	p, err := newProcess(HeapSort, in, heapSort)
	if err != nil {
		return nil, err
	}
	return p, nil
}
