package sorting

import "github.com/san-kum/algoviz/internal/boards"

func heapSort(arr []int, yield func(boards.ArrayEvent) bool) bool {
	n := len(arr)
	if !yield(boards.ArrayEvent{Op: boards.ArrFocus, Lo: 0, Hi: n, Note: "build heap"}) {
		return false
	}
	for i := n/2 - 1; i >= 0; i-- {
		if !siftDown(arr, n, i, yield) {
			return false
		}
	}

	for end := n - 1; end > 0; end-- {
		arr[0], arr[end] = arr[end], arr[0]
		if !yield(boards.ArrayEvent{Op: boards.ArrSwap, I: 0, J: end, Note: "extract max"}) {
			return false
		}
		if !yield(boards.ArrayEvent{Op: boards.ArrFocus, Lo: 0, Hi: end}) {
			return false
		}
		if !siftDown(arr, end, 0, yield) {
			return false
		}
	}
	return yield(boards.ArrayEvent{Op: boards.ArrClear})
}

// siftDown restores the max-heap property for the subtree rooted at i
// within arr[:n].
func siftDown(arr []int, n, i int, yield func(boards.ArrayEvent) bool) bool {
	for {
		largest := i
		left, right := 2*i+1, 2*i+2
		if left < n {
			if !yield(boards.ArrayEvent{Op: boards.ArrCompare, I: left, J: largest}) {
				return false
			}
			if arr[left] > arr[largest] {
				largest = left
			}
		}
		if right < n {
			if !yield(boards.ArrayEvent{Op: boards.ArrCompare, I: right, J: largest}) {
				return false
			}
			if arr[right] > arr[largest] {
				largest = right
			}
		}
		if largest == i {
			return true
		}
		arr[i], arr[largest] = arr[largest], arr[i]
		if !yield(boards.ArrayEvent{Op: boards.ArrSwap, I: i, J: largest}) {
			return false
		}
		i = largest
	}
}
