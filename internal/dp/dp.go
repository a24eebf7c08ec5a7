// Package dp fills dynamic-programming tables one cell per step. Each fill
// names the cells its value was computed from, and the run ends by marking
// the answer cell.
package dp

import (
	"iter"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

const (
	LCS          = "lcs"
	Knapsack     = "knapsack"
	EditDistance = "edit_distance"
)

// maxCells bounds rows*cols for every table.
const maxCells = 1 << 16

type filler func(yield func(boards.TableEvent) bool) bool

func newProcess(name string, rows, cols int, fill filler) (algo.Process, error) {
	if rows <= 0 || cols <= 0 || rows > maxCells/cols {
		return nil, algo.Invalid(name, "dp", "table of %dx%d exceeds %d cells", rows, cols, maxCells)
	}
	board := boards.NewTableBoard(rows, cols)
	events := iter.Seq[boards.TableEvent](func(yield func(boards.TableEvent) bool) {
		if !fill(yield) {
			return
		}
		yield(boards.TableEvent{Op: boards.TableAnswer, Row: rows - 1, Col: cols - 1})
	})
	return algo.NewStream(name, board, events), nil
}

func cell(r, c int) frame.Cell { return frame.Cell{Row: r, Col: c} }

func requireDP(name string, in algo.Input) (*algo.DPSpec, error) {
	if in.DP == nil {
		return nil, algo.Invalid(name, "dp", "missing")
	}
	return in.Clone().DP, nil
}
