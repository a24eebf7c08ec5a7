package metrics

import "github.com/san-kum/algoviz/internal/frame"

// Activity is the mean number of highlighted positions per step.
type Activity struct {
	name    string
	sum     int
	samples int
}

func NewActivity() *Activity {
	return &Activity{
		name: "activity",
	}
}

func (a *Activity) Name() string {
	return a.name
}

func (a *Activity) Observe(f frame.Frame) {
	if f.Step == 0 {
		return
	}
	for _, r := range f.Regions {
		a.sum += len(r.Indices) + len(r.Edges) + len(r.Cells)
	}
	a.samples++
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.samples)
}

func (a *Activity) Reset() {
	a.sum = 0
	a.samples = 0
}
