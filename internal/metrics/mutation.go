package metrics

import "github.com/san-kum/algoviz/internal/frame"

// Mutation is the fraction of steps that changed the data rather than only
// reading it.
type Mutation struct {
	name     string
	prev     frame.Stats
	mutating int
	samples  int
}

func NewMutation() *Mutation {
	return &Mutation{
		name: "mutation",
	}
}

func (m *Mutation) Name() string {
	return m.name
}

func (m *Mutation) Observe(f frame.Frame) {
	if f.Step == 0 {
		m.prev = f.Stats
		return
	}
	if f.Stats.Swaps > m.prev.Swaps || f.Stats.Writes > m.prev.Writes {
		m.mutating++
	}
	m.prev = f.Stats
	m.samples++
}

func (m *Mutation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.mutating) / float64(m.samples)
}

func (m *Mutation) Reset() {
	m.prev = frame.Stats{}
	m.mutating = 0
	m.samples = 0
}
