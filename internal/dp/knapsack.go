package dp

import (
	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

// NewKnapsack fills the 0/1 knapsack table. Cell (i, w) is the best value
// using the first i items within capacity w.
func NewKnapsack(in algo.Input) (algo.Process, error) {
	spec, err := requireDP(Knapsack, in)
	if err != nil {
		return nil, err
	}
	if len(spec.Weights) == 0 {
		return nil, algo.Invalid(Knapsack, "weights", "must not be empty")
	}
	if len(spec.Weights) != len(spec.Values) {
		return nil, algo.Invalid(Knapsack, "values", "have %d entries for %d weights", len(spec.Values), len(spec.Weights))
	}
	if spec.Capacity < 0 {
		return nil, algo.Invalid(Knapsack, "capacity", "must not be negative, got %d", spec.Capacity)
	}
	if spec.Capacity >= maxCells {
		return nil, algo.Invalid(Knapsack, "capacity", "%d exceeds %d cells", spec.Capacity, maxCells)
	}
	for i, w := range spec.Weights {
		if w <= 0 {
			return nil, algo.Invalid(Knapsack, "weights", "item %d has non-positive weight %d", i, w)
		}
		if spec.Values[i] < 0 {
			return nil, algo.Invalid(Knapsack, "values", "item %d has negative value %d", i, spec.Values[i])
		}
		if int64(spec.Values[i]) > frame.Inf/int64(len(spec.Values)) {
			return nil, algo.Invalid(Knapsack, "values", "item %d value %d is too large", i, spec.Values[i])
		}
	}
	n, capacity := len(spec.Weights), spec.Capacity

	return newProcess(Knapsack, n+1, capacity+1, func(yield func(boards.TableEvent) bool) bool {
		t := make([][]int64, n+1)
		for i := range t {
			t[i] = make([]int64, capacity+1)
		}
		for w := 0; w <= capacity; w++ {
			if !yield(boards.TableEvent{Op: boards.TableFill, Row: 0, Col: w}) {
				return false
			}
		}
		for i := 1; i <= n; i++ {
			wt, val := spec.Weights[i-1], int64(spec.Values[i-1])
			for w := 0; w <= capacity; w++ {
				ev := boards.TableEvent{Op: boards.TableFill, Row: i, Col: w}
				skip := t[i-1][w]
				if wt > w {
					t[i][w] = skip
					ev.Deps = []frame.Cell{cell(i-1, w)}
					ev.Note = "item does not fit"
				} else {
					t[i][w] = max(skip, t[i-1][w-wt]+val)
					ev.Deps = []frame.Cell{cell(i-1, w), cell(i-1, w-wt)}
				}
				ev.Value = t[i][w]
				if !yield(ev) {
					return false
				}
			}
		}
		return true
	})
}
