package metrics

import (
	"slices"

	"github.com/san-kum/algoviz/internal/frame"
)

// Series records the counters of every frame it is shown and feeds the
// attached metrics. It can be attached to an engine as an observer; a frame
// at step 0 starts a new run and clears what was recorded.
type Series struct {
	steps   []int
	stats   []frame.Stats
	metrics []Metric
}

func NewSeries(ms ...Metric) *Series {
	return &Series{metrics: ms}
}

func (s *Series) OnFrame(f frame.Frame) {
	if f.Step == 0 {
		s.Reset()
	}
	s.steps = append(s.steps, f.Step)
	s.stats = append(s.stats, f.Stats)
	for _, m := range s.metrics {
		m.Observe(f)
	}
}

func (s *Series) Reset() {
	s.steps = s.steps[:0]
	s.stats = s.stats[:0]
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Series) Len() int { return len(s.steps) }

func (s *Series) Stats() []frame.Stats { return slices.Clone(s.stats) }

// Column returns one counter over time, ready for plotting. Unknown names
// return nil.
func (s *Series) Column(name string) []float64 {
	var pick func(frame.Stats) int
	switch name {
	case "comparisons":
		pick = func(st frame.Stats) int { return st.Comparisons }
	case "swaps":
		pick = func(st frame.Stats) int { return st.Swaps }
	case "writes":
		pick = func(st frame.Stats) int { return st.Writes }
	case "relaxations":
		pick = func(st frame.Stats) int { return st.Relaxations }
	default:
		return nil
	}
	out := make([]float64, len(s.stats))
	for i, st := range s.stats {
		out[i] = float64(pick(st))
	}
	return out
}

// Values returns the current value of every attached metric by name.
func (s *Series) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

var Columns = []string{"comparisons", "swaps", "writes", "relaxations"}
