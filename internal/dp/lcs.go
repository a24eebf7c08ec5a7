package dp

import (
	"fmt"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/boards"
	"github.com/san-kum/algoviz/internal/frame"
)

// NewLCS fills the longest-common-subsequence table for DP.A and DP.B.
// Cell (i, j) is the LCS length of A[:i] and B[:j].
func NewLCS(in algo.Input) (algo.Process, error) {
	spec, err := requireDP(LCS, in)
	if err != nil {
		return nil, err
	}
	if spec.A == "" || spec.B == "" {
		return nil, algo.Invalid(LCS, "dp", "both strings must be non-empty")
	}
	a, b := []rune(spec.A), []rune(spec.B)
	n, m := len(a), len(b)

	return newProcess(LCS, n+1, m+1, func(yield func(boards.TableEvent) bool) bool {
		t := make([][]int64, n+1)
		for i := range t {
			t[i] = make([]int64, m+1)
		}
		for j := 0; j <= m; j++ {
			if !yield(boards.TableEvent{Op: boards.TableFill, Row: 0, Col: j}) {
				return false
			}
		}
		for i := 1; i <= n; i++ {
			if !yield(boards.TableEvent{Op: boards.TableFill, Row: i, Col: 0}) {
				return false
			}
			for j := 1; j <= m; j++ {
				ev := boards.TableEvent{Op: boards.TableFill, Row: i, Col: j}
				if a[i-1] == b[j-1] {
					t[i][j] = t[i-1][j-1] + 1
					ev.Deps = []frame.Cell{cell(i-1, j-1)}
					ev.Note = fmt.Sprintf("match %q", a[i-1])
				} else {
					t[i][j] = max(t[i-1][j], t[i][j-1])
					ev.Deps = []frame.Cell{cell(i-1, j), cell(i, j-1)}
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
