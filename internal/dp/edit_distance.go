package dp

import (
	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

// NewEditDistance fills the Levenshtein table turning DP.A into DP.B with
// unit-cost insert, delete and substitute.
func NewEditDistance(in algo.Input) (algo.Process, error) {
	spec, err := requireDP(EditDistance, in)
	if err != nil {
		return nil, err
	}
	if spec.A == "" && spec.B == "" {
		return nil, algo.Invalid(EditDistance, "dp", "at least one string must be non-empty")
	}
	a, b := []rune(spec.A), []rune(spec.B)
	n, m := len(a), len(b)

	return newProcess(EditDistance, n+1, m+1, func(yield func(boards.TableEvent) bool) bool {
		t := make([][]int64, n+1)
		for i := range t {
			t[i] = make([]int64, m+1)
		}
		for i := 0; i <= n; i++ {
			for j := 0; j <= m; j++ {
				ev := boards.TableEvent{Op: boards.TableFill, Row: i, Col: j}
				switch {
				case i == 0 && j == 0:
				case i == 0:
					t[i][j] = int64(j)
					ev.Deps = []frame.Cell{cell(0, j-1)}
				case j == 0:
					t[i][j] = int64(i)
					ev.Deps = []frame.Cell{cell(i-1, 0)}
				case a[i-1] == b[j-1]:
					t[i][j] = t[i-1][j-1]
					ev.Deps = []frame.Cell{cell(i-1, j-1)}
				default:
					t[i][j] = 1 + min(t[i-1][j], t[i][j-1], t[i-1][j-1])
					ev.Deps = []frame.Cell{cell(i-1, j), cell(i, j-1), cell(i-1, j-1)}
				}
				ev.Value = t[i][j]
				if !yield(ev) {
					return false
				}
			}
		}
		return true
	})
}
