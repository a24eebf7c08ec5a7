package engine_test

import (
	"iter"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/registry"
)

// tallyBoard sums its events; negative events are rejected.
type tallyBoard struct{ total int }

func (b *tallyBoard) Apply(ev int) error {
	if ev < 0 {
		return algo.Inconsistent("negative event %d", ev)
	}
	b.total += ev
	return nil
}

func (b *tallyBoard) Snapshot() frame.Frame {
	return frame.Frame{Kind: frame.KindArray, Op: "add", Array: []int{b.total}}
}

// scripted plays in.Array as events and panics when it meets 999.
func scripted(in algo.Input) (algo.Process, error) {
	if err := algo.RequireArray("scripted", in); err != nil {
		return nil, err
	}
	events := iter.Seq[int](func(yield func(int) bool) {
		for _, v := range in.Array {
			if v == 999 {
				panic("scripted failure")
			}
			if !yield(v) {
				return
			}
		}
	})
	return algo.NewStream("scripted", &tallyBoard{}, events), nil
}

func factory() engine.Factory {
	reg := registry.NewRegistry()
	return func(name string, in algo.Input) (algo.Process, error) {
		if name == "scripted" {
			return scripted(in)
		}
		return reg.New(name, in)
	}
}

type recorder struct{ frames []frame.Frame }

func (r *recorder) OnFrame(f frame.Frame) { r.frames = append(r.frames, f) }

// forwardFrames steps to the end collecting every frame from the current one.
func forwardFrames(e *engine.Engine) []frame.Frame {
	out := []frame.Frame{e.Current()}
	for e.State() != engine.Finished {
		if _, err := e.Step(); err != nil {
			panic(err)
		}
		out = append(out, e.Current())
	}
	return out
}
