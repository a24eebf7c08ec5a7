package engine

import (
	"fmt"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
)

// State is the engine lifecycle position.
type State int

const (
	Idle State = iota
	Ready
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Mode int

const (
	ModePaused Mode = iota
	ModeRunning
	ModeStepping
)

func (m Mode) String() string {
	switch m {
	case ModePaused:
		return "paused"
	case ModeRunning:
		return "running"
	case ModeStepping:
		return "stepping"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

const (
	MinSpeed = 1
	MaxSpeed = 64
)

// Playback is the user-controlled playback state. Only dispatched actions
// change it; Tick reads it.
type Playback struct {
	Mode Mode
	// Speed is the number of steps applied per tick while running.
	Speed int
	// Interval is the host tick period.
	Interval time.Duration
}

func DefaultPlayback() Playback {
	return Playback{Mode: ModePaused, Speed: 1, Interval: 16 * time.Millisecond}
}

func clampSpeed(n int) int {
	return min(max(n, MinSpeed), MaxSpeed)
}

type ActionKind int

const (
	Play ActionKind = iota
	Pause
	Step
	Reset
	FastForward
	Reverse
	SelectAlgorithm
	SpeedUp
	SpeedDown
)

var actionNames = map[ActionKind]string{
	Play:            "play",
	Pause:           "pause",
	Step:            "step",
	Reset:           "reset",
	FastForward:     "fast_forward",
	Reverse:         "reverse",
	SelectAlgorithm: "select",
	SpeedUp:         "speed_up",
	SpeedDown:       "speed_down",
}

func (k ActionKind) String() string {
	if n, ok := actionNames[k]; ok {
		return n
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is a user input. Algorithm is read only by SelectAlgorithm.
type Action struct {
	Kind      ActionKind
	Algorithm string
}

// Outcome describes what an action did. Boundary is not an error: it means
// the request ran into the start or the end of the run and nothing changed.
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
	Boundary
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Boundary:
		return "boundary"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Rewind selects how earlier frames are recovered.
//
// RewindHistory keeps every emitted frame: stepping back is O(1) time at
// O(steps) memory. RewindReplay keeps only the current frame and rebuilds
// the process from its input, pulling n frames to get back to step n: O(n)
// time per rewind at constant frame memory. Processes are deterministic, so
// both produce identical frames.
type Rewind string

const (
	RewindHistory Rewind = "history"
	RewindReplay  Rewind = "replay"
)

func ParseRewind(s string) (Rewind, error) {
	switch Rewind(s) {
	case RewindHistory, RewindReplay:
		return Rewind(s), nil
	case "":
		return RewindHistory, nil
	}
	return "", fmt.Errorf("unknown rewind strategy: %s", s)
}

// Factory builds a fresh process for an algorithm name and input.
type Factory func(name string, in algo.Input) (algo.Process, error)

// Observer is told about every newly produced frame, including the initial
// frame of each run. Frames revisited by rewinding are not reported again.
type Observer interface {
	OnFrame(f frame.Frame)
}

// Status is a read-only summary for renderers.
type Status struct {
	Algorithm string
	State     State
	Playback  Playback
	Rewind    Rewind
	// Step is the step of the current frame.
	Step int
	// Produced is the highest step produced so far in this run.
	Produced int
	// Last is the final step once known, -1 before.
	Last       int
	HasProcess bool
	Err        error
}
