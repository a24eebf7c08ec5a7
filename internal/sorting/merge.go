package sorting

import (
	"slices"

	"github.com/san-kum/algoviz/internal/boards"
)

func mergeSort(arr []int, yield func(boards.ArrayEvent) bool) bool {
	if !yield(boards.ArrayEvent{Op: boards.ArrFocus, Lo: 0, Hi: len(arr)}) {
		return false
	}
	if !mergeSortRange(arr, 0, len(arr), yield) {
		return false
	}
	return yield(boards.ArrayEvent{Op: boards.ArrClear})
}

// mergeSortRange sorts arr[start:end).
func mergeSortRange(arr []int, start, end int, yield func(boards.ArrayEvent) bool) bool {
	if end-start <= 1 {
		return true
	}
	mid := (start + end) / 2

	if !yield(boards.ArrayEvent{Op: boards.ArrFocus, Lo: start, Hi: end}) {
		return false
	}
	if !mergeSortRange(arr, start, mid, yield) {
		return false
	}
	if !mergeSortRange(arr, mid, end, yield) {
		return false
	}
	if !merge(arr, start, mid, end, yield) {
		return false
	}
	return yield(boards.ArrayEvent{Op: boards.ArrClear, Region: "merge"})
}

func merge(arr []int, start, mid, end int, yield func(boards.ArrayEvent) bool) bool {
	left := slices.Clone(arr[start:mid])
	right := slices.Clone(arr[mid:end])

	if !yield(boards.ArrayEvent{Op: boards.ArrMerge, Lo: start, Mid: mid, Hi: end}) {
		return false
	}

	i, j, k := 0, 0, start
	for i < len(left) && j < len(right) {
		cmp := boards.ArrayEvent{Op: boards.ArrCompare, I: start + i, J: mid + j, K: k, HasDest: true}
		if !yield(cmp) {
			return false
		}
		if left[i] <= right[j] {
			arr[k] = left[i]
			i++
		} else {
			arr[k] = right[j]
			j++
		}
		if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: k, Value: arr[k]}) {
			return false
		}
		k++
	}

	// drain whichever side is left
	for ; i < len(left); i, k = i+1, k+1 {
		if !yield(boards.ArrayEvent{Op: boards.ArrVisit, I: start + i, K: k, HasDest: true}) {
			return false
		}
		arr[k] = left[i]
		if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: k, Value: arr[k]}) {
			return false
		}
	}
	for ; j < len(right); j, k = j+1, k+1 {
		if !yield(boards.ArrayEvent{Op: boards.ArrVisit, I: mid + j, K: k, HasDest: true}) {
			return false
		}
		arr[k] = right[j]
		if !yield(boards.ArrayEvent{Op: boards.ArrOverwrite, K: k, Value: arr[k]}) {
			return false
		}
	}
	return true
}
