// Package trace records a complete run and writes it out as JSON, CSV or
// plain text.
package trace

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/metrics"
)

type Trace struct {
	Algorithm string             `json:"algorithm"`
	Kind      frame.Kind         `json:"kind"`
	Recorded  time.Time          `json:"recorded"`
	Steps     int                `json:"steps"`
	Input     algo.Input         `json:"input"`
	Frames    []frame.Frame      `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
	Error     string             `json:"error,omitempty"`
}

// Final returns the last frame of the trace.
func (t *Trace) Final() frame.Frame {
	if len(t.Frames) == 0 {
		return frame.Frame{}
	}
	return t.Frames[len(t.Frames)-1]
}

// Record runs name to completion on a history-keeping engine and collects
// every frame. A step fault still yields the frames produced before it,
// together with the error.
func Record(ctx context.Context, factory engine.Factory, name string, in algo.Input, opts ...engine.Option) (*Trace, error) {
	series := metrics.NewSeries(metrics.Standard()...)
	opts = append(slices.Clone(opts), engine.WithRewind(engine.RewindHistory))
	e := engine.New(factory, opts...)
	defer e.Reset()
	e.AddObserver(series)

	if err := e.Load(name, in); err != nil {
		return nil, err
	}
	_, runErr := e.RunToEnd(ctx)
	if ctx.Err() != nil {
		return nil, fmt.Errorf("record %s: %w", name, ctx.Err())
	}

	frames := e.Frames()
	t := &Trace{
		Algorithm: name,
		Recorded:  time.Now().UTC(),
		Steps:     len(frames) - 1,
		Input:     in.Clone(),
		Frames:    frames,
		Metrics:   series.Values(),
	}
	if len(frames) > 0 {
		t.Kind = frames[0].Kind
	}
	if runErr != nil {
		t.Error = runErr.Error()
	}
	return t, runErr
}
