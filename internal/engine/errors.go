package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by actions that need a run while the engine
	// is idle.
	ErrNotLoaded = errors.New("engine: no algorithm loaded")

	// ErrPanic marks a process that panicked while producing a step.
	ErrPanic = errors.New("engine: process panicked")

	// ErrStepLimit is returned when a headless run exceeds MaxSteps.
	ErrStepLimit = errors.New("engine: step limit reached")
)

// EngineError reports a fault while producing a step. The engine halts in
// Finished when one occurs.
type EngineError struct {
	Algorithm string
	Step      int
	Err       error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine: %s failed at step %d: %v", e.Algorithm, e.Step, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
