package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

// DefaultMaxSteps caps FastForward and RunToEnd.
const DefaultMaxSteps = 1_000_000

type Engine struct {
	factory   Factory
	rewind    Rewind
	maxSteps  int
	log       *slog.Logger
	observers []Observer

	name  string
	input algo.Input

	proc     algo.Process
	state    State
	playback Playback
	current  frame.Frame
	// history[k] is the frame at step k; only kept with RewindHistory.
	history  []frame.Frame
	produced int
	last     int
	err      error
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithRewind(r Rewind) Option {
	return func(e *Engine) { e.rewind = r }
}

func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

func WithPlayback(p Playback) Option {
	return func(e *Engine) { e.playback = p }
}

func New(factory Factory, opts ...Option) *Engine {
	e := &Engine{
		factory:  factory,
		rewind:   RewindHistory,
		maxSteps: DefaultMaxSteps,
		log:      slog.New(slog.DiscardHandler),
		playback: DefaultPlayback(),
		last:     -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.playback.Mode = ModePaused
	e.playback.Speed = clampSpeed(e.playback.Speed)
	return e
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) State() State           { return e.state }
func (e *Engine) Playback() Playback     { return e.playback }
func (e *Engine) Algorithm() string      { return e.name }
func (e *Engine) Input() algo.Input      { return e.input.Clone() }
func (e *Engine) Current() frame.Frame   { return e.current.Clone() }
func (e *Engine) Err() error             { return e.err }
func (e *Engine) RewindStrategy() Rewind { return e.rewind }

func (e *Engine) Status() Status {
	return Status{
		Algorithm:  e.name,
		State:      e.state,
		Playback:   e.playback,
		Rewind:     e.rewind,
		Step:       e.current.Step,
		Produced:   e.produced,
		Last:       e.last,
		HasProcess: e.proc != nil,
		Err:        e.err,
	}
}

// Frames returns copies of every frame produced so far. It is empty unless
// the history strategy is in use.
func (e *Engine) Frames() []frame.Frame {
	out := make([]frame.Frame, len(e.history))
	for i, f := range e.history {
		out[i] = f.Clone()
	}
	return out
}

// Load starts a new run. If the process cannot be built the engine keeps
// whatever it had before, which is Idle for a fresh engine.
func (e *Engine) Load(name string, in algo.Input) error {
	p, err := e.build(name, in)
	if err != nil {
		e.log.Warn("load rejected", "algorithm", name, "error", err)
		return err
	}
	e.install(name, in.Clone(), p)
	return nil
}

// Select switches algorithm, keeping the current input.
func (e *Engine) Select(name string) error {
	return e.Load(name, e.input)
}

// Reload restarts the current algorithm from step 0, including after Reset.
func (e *Engine) Reload() error {
	if e.name == "" {
		return ErrNotLoaded
	}
	return e.Load(e.name, e.input)
}

func (e *Engine) install(name string, in algo.Input, p algo.Process) {
	e.closeProcess()
	e.name = name
	e.input = in
	e.proc = p
	e.current = p.Frame()
	e.produced = 0
	e.last = -1
	e.err = nil
	e.history = nil
	if e.rewind == RewindHistory {
		e.history = []frame.Frame{e.current}
	}
	e.playback.Mode = ModePaused
	e.setState(Ready)
	if p.Done() {
		e.last = 0
		e.setState(Finished)
	}
	e.log.Debug("loaded", "algorithm", name, "kind", p.Kind(), "rewind", e.rewind)
	e.notify(e.current)
}

func (e *Engine) build(name string, in algo.Input) (p algo.Process, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = &EngineError{Algorithm: name, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()
	return e.factory(name, in.Clone())
}

func pull(p algo.Process) (f frame.Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return p.Next()
}

func (e *Engine) closeProcess() {
	if e.proc != nil {
		e.proc.Close()
		e.proc = nil
	}
}

func (e *Engine) setState(s State) {
	if s == e.state {
		return
	}
	e.log.Debug("state", "algorithm", e.name, "from", e.state, "to", s, "step", e.current.Step)
	e.state = s
}

func (e *Engine) notify(f frame.Frame) {
	for _, o := range e.observers {
		o.OnFrame(f.Clone())
	}
}

func (e *Engine) atEnd() bool {
	return e.last >= 0 && e.current.Step == e.last
}

// fault halts the run. Frames already produced stay reachable by rewinding.
func (e *Engine) fault(step int, err error) error {
	ee := &EngineError{Algorithm: e.name, Step: step, Err: err}
	e.err = ee
	e.last = e.current.Step
	e.closeProcess()
	e.playback.Mode = ModePaused
	e.setState(Finished)
	e.log.Warn("step failed", "algorithm", e.name, "step", step, "error", err)
	return ee
}

// forward moves one step, from history when the step was produced before,
// otherwise from the process.
func (e *Engine) forward() (bool, error) {
	if e.atEnd() {
		return false, nil
	}
	step := e.current.Step + 1
	if step < len(e.history) {
		e.current = e.history[step]
		return true, nil
	}
	if e.proc == nil {
		e.last = e.current.Step
		return false, nil
	}

	f, err := pull(e.proc)
	if errors.Is(err, algo.ErrDone) {
		e.last = e.current.Step
		return false, nil
	}
	if err != nil {
		return false, e.fault(step, err)
	}
	if f.Step != step {
		return false, e.fault(step, fmt.Errorf("process produced step %d, expected %d", f.Step, step))
	}

	e.current = f
	if f.Step > e.produced {
		e.produced = f.Step
		if e.rewind == RewindHistory {
			e.history = append(e.history, f)
		}
		e.notify(f)
	}
	if e.proc.Done() {
		e.last = f.Step
	}
	return true, nil
}

// rewindTo moves back to an earlier step.
func (e *Engine) rewindTo(step int) error {
	if e.rewind == RewindHistory {
		e.current = e.history[step]
		return nil
	}

	p, err := e.build(e.name, e.input)
	if err != nil {
		return e.fault(step, fmt.Errorf("rebuild for replay: %w", err))
	}
	f := p.Frame()
	for i := 1; i <= step; i++ {
		f, err = pull(p)
		if err != nil {
			p.Close()
			return e.fault(i, fmt.Errorf("replay to step %d: %w", step, err))
		}
	}
	e.closeProcess()
	e.proc = p
	e.current = f
	return nil
}

func (e *Engine) settle(otherwise State) {
	if e.atEnd() {
		e.playback.Mode = ModePaused
		e.setState(Finished)
		return
	}
	e.setState(otherwise)
}

func (e *Engine) Play() (Outcome, error) {
	switch e.state {
	case Idle:
		return Unchanged, ErrNotLoaded
	case Finished:
		return Boundary, nil
	case Running:
		return Unchanged, nil
	}
	e.playback.Mode = ModeRunning
	e.setState(Running)
	return Changed, nil
}

func (e *Engine) Pause() (Outcome, error) {
	if e.state != Running {
		return Unchanged, nil
	}
	e.playback.Mode = ModePaused
	e.setState(Paused)
	return Changed, nil
}

// Step applies exactly one step. After the run is finished it does nothing.
func (e *Engine) Step() (Outcome, error) {
	switch e.state {
	case Idle:
		return Unchanged, ErrNotLoaded
	case Finished:
		return Boundary, nil
	}
	e.playback.Mode = ModeStepping
	moved, err := e.forward()
	if err != nil {
		return Unchanged, err
	}
	e.settle(Paused)
	if !moved {
		return Boundary, nil
	}
	return Changed, nil
}

// Reverse goes back one frame. At step 0 it reports Boundary.
func (e *Engine) Reverse() (Outcome, error) {
	if e.state == Idle {
		return Unchanged, ErrNotLoaded
	}
	if e.current.Step == 0 {
		return Boundary, nil
	}
	if err := e.rewindTo(e.current.Step - 1); err != nil {
		return Unchanged, err
	}
	e.playback.Mode = ModePaused
	e.setState(Paused)
	return Changed, nil
}

// FastForward runs to the end of the algorithm, at most MaxSteps steps.
func (e *Engine) FastForward() (Outcome, error) {
	switch e.state {
	case Idle:
		return Unchanged, ErrNotLoaded
	case Finished:
		return Boundary, nil
	}
	e.playback.Mode = ModePaused
	moved := 0
	for moved < e.maxSteps {
		ok, err := e.forward()
		if err != nil {
			return Changed, err
		}
		if !ok {
			break
		}
		moved++
	}
	e.settle(Paused)
	if moved == 0 {
		return Boundary, nil
	}
	return Changed, nil
}

// Seek jumps to an absolute step, clamped to the run.
func (e *Engine) Seek(step int) (Outcome, error) {
	if e.state == Idle {
		return Unchanged, ErrNotLoaded
	}
	step = max(step, 0)
	switch {
	case step == e.current.Step:
		return Unchanged, nil
	case step < e.current.Step:
		if err := e.rewindTo(step); err != nil {
			return Unchanged, err
		}
		e.playback.Mode = ModePaused
		e.setState(Paused)
		return Changed, nil
	}

	from := e.current.Step
	for e.current.Step < step {
		ok, err := e.forward()
		if err != nil {
			return Changed, err
		}
		if !ok {
			break
		}
	}
	e.playback.Mode = ModePaused
	e.settle(Paused)
	if e.current.Step == from {
		return Boundary, nil
	}
	return Changed, nil
}

// Reset discards the run. The algorithm name and input are kept so the run
// can be reloaded.
func (e *Engine) Reset() (Outcome, error) {
	if e.state == Idle && e.proc == nil {
		return Unchanged, nil
	}
	e.closeProcess()
	e.history = nil
	e.current = frame.Frame{}
	e.produced = 0
	e.last = -1
	e.err = nil
	e.playback.Mode = ModePaused
	e.setState(Idle)
	return Changed, nil
}

func (e *Engine) SetSpeed(n int) Outcome {
	n = clampSpeed(n)
	if n == e.playback.Speed {
		return Boundary
	}
	e.playback.Speed = n
	return Changed
}

// Tick is the host loop callback. While running it applies Speed steps and
// pauses itself at the end. It reports whether the frame changed.
func (e *Engine) Tick() (bool, error) {
	if e.state != Running {
		return false, nil
	}
	changed := false
	for i := 0; i < e.playback.Speed; i++ {
		ok, err := e.forward()
		if err != nil {
			return changed, err
		}
		if !ok {
			break
		}
		changed = true
	}
	e.settle(Running)
	return changed, nil
}

// RunToEnd drives the run to completion without a host loop. Cancelling ctx
// resets the engine.
func (e *Engine) RunToEnd(ctx context.Context) (frame.Frame, error) {
	if e.state == Idle {
		return frame.Frame{}, ErrNotLoaded
	}
	count := 0
	for !e.atEnd() {
		select {
		case <-ctx.Done():
			e.Reset()
			return frame.Frame{}, ctx.Err()
		default:
		}
		if count >= e.maxSteps {
			e.setState(Paused)
			return e.Current(), fmt.Errorf("%w after %d steps", ErrStepLimit, count)
		}
		ok, err := e.forward()
		if err != nil {
			return e.Current(), err
		}
		if !ok {
			break
		}
		count++
	}
	e.playback.Mode = ModePaused
	e.settle(Paused)
	return e.Current(), nil
}

func (e *Engine) Dispatch(a Action) (Outcome, error) {
	switch a.Kind {
	case Play:
		return e.Play()
	case Pause:
		return e.Pause()
	case Step:
		return e.Step()
	case Reset:
		return e.Reset()
	case FastForward:
		return e.FastForward()
	case Reverse:
		return e.Reverse()
	case SelectAlgorithm:
		if err := e.Select(a.Algorithm); err != nil {
			return Unchanged, err
		}
		return Changed, nil
	case SpeedUp:
		return e.SetSpeed(e.playback.Speed * 2), nil
	case SpeedDown:
		return e.SetSpeed(e.playback.Speed / 2), nil
	}
	return Unchanged, fmt.Errorf("unknown action: %s", a.Kind)
}
