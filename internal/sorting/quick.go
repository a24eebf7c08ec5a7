package sorting

import "github.com/san-kum/algoviz/internal/boards"

func quickSort(arr []int, yield func(boards.ArrayEvent) bool) bool {
	if !quickSortRange(arr, 0, len(arr)-1, yield) {
		return false
	}
	return yield(boards.ArrayEvent{Op: boards.ArrClear})
}

// quickSortRange sorts arr[low..high] inclusive.
func quickSortRange(arr []int, low, high int, yield func(boards.ArrayEvent) bool) bool {
	if low >= high {
		return true
	}
	if !yield(boards.ArrayEvent{Op: boards.ArrFocus, Lo: low, Hi: high + 1}) {
		return false
	}
	p, ok := partition(arr, low, high, yield)
	if !ok {
		return false
	}
	if !quickSortRange(arr, low, p-1, yield) {
		return false
	}
	return quickSortRange(arr, p+1, high, yield)
}

// partition is Lomuto's scheme with the last element as pivot. Each scan
// position shows the boundary comparison first, then the pivot comparison.
func partition(arr []int, low, high int, yield func(boards.ArrayEvent) bool) (int, bool) {
	pivot := arr[high]
	i := low
	for j := low; j < high; j++ {
		if !yield(boards.ArrayEvent{Op: boards.ArrCompare, I: i, J: j}) {
			return 0, false
		}
		if !yield(boards.ArrayEvent{Op: boards.ArrCompare, I: j, J: high}) {
			return 0, false
		}
		if arr[j] <= pivot {
			if i != j {
				arr[i], arr[j] = arr[j], arr[i]
				if !yield(boards.ArrayEvent{Op: boards.ArrSwap, I: i, J: j}) {
					return 0, false
				}
			}
			i++
		}
	}
	if i != high {
		arr[i], arr[high] = arr[high], arr[i]
		if !yield(boards.ArrayEvent{Op: boards.ArrSwap, I: i, J: high, Note: "place pivot"}) {
			return 0, false
		}
	}
	return i, true
}
