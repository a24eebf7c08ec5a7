package metrics

import "github.com/san-kum/algoviz/internal/frame"

type Metric interface {
	Name() string
	Observe(f frame.Frame)
	Value() float64
	Reset()
}

// Counter reports the latest value of one cumulative frame counter.
type Counter struct {
	name  string
	pick  func(frame.Stats) int
	value int
}

func NewComparisons() *Counter {
	return &Counter{name: "comparisons", pick: func(s frame.Stats) int { return s.Comparisons }}
}

func NewSwaps() *Counter {
	return &Counter{name: "swaps", pick: func(s frame.Stats) int { return s.Swaps }}
}

func NewWrites() *Counter {
	return &Counter{name: "writes", pick: func(s frame.Stats) int { return s.Writes }}
}

func NewRelaxations() *Counter {
	return &Counter{name: "relaxations", pick: func(s frame.Stats) int { return s.Relaxations }}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) Observe(f frame.Frame) { c.value = c.pick(f.Stats) }

func (c *Counter) Value() float64 { return float64(c.value) }

func (c *Counter) Reset() { c.value = 0 }

// Standard returns one fresh instance of every metric in this package.
func Standard() []Metric {
	return []Metric{
		NewComparisons(),
		NewSwaps(),
		NewWrites(),
		NewRelaxations(),
		NewActivity(),
		NewMutation(),
	}
}
