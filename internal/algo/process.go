package algo

import (
	"fmt"
	"iter"

	"github.com/san-kum/algoviz/internal/frame"
)

// Process produces the step sequence of one algorithm run.
type Process interface {
	Name() string
	Kind() frame.Kind
	// Frame returns the most recent frame, or the initial frame before the
	// first step.
	Frame() frame.Frame
	// Next advances by exactly one unit of work. It returns ErrDone once the
	// algorithm is complete; any other error means the process is broken.
	Next() (frame.Frame, error)
	// Done reports whether Next has nothing left to produce. It becomes true
	// together with the final frame, not one call later.
	Done() bool
	Close()
}

// Board is the display copy of a data structure. Apply mutates it for one
// event, Snapshot copies its current state into a new Frame.
type Board[E any] interface {
	Apply(ev E) error
	Snapshot() frame.Frame
}

// Stream drives an event iterator against a Board. It pulls one event ahead
// so that completion is known as soon as the last event is applied.
type Stream[E any] struct {
	name    string
	board   Board[E]
	next    func() (E, bool)
	stop    func()
	pending E
	step    int
	done    bool
	current frame.Frame
}

var _ Process = (*Stream[struct{}])(nil)

func NewStream[E any](name string, board Board[E], events iter.Seq[E]) *Stream[E] {
	next, stop := iter.Pull(events)
	s := &Stream[E]{
		name:  name,
		board: board,
		next:  next,
		stop:  stop,
	}
	s.current = board.Snapshot()
	s.current.Step = 0
	s.current.Op = "init"
	s.pull()
	return s
}

func (s *Stream[E]) Name() string       { return s.name }
func (s *Stream[E]) Kind() frame.Kind   { return s.current.Kind }
func (s *Stream[E]) Frame() frame.Frame { return s.current.Clone() }
func (s *Stream[E]) Steps() int         { return s.step }
func (s *Stream[E]) Done() bool         { return s.done }

func (s *Stream[E]) pull() {
	ev, ok := s.next()
	if !ok {
		s.finish()
		return
	}
	s.pending = ev
}

func (s *Stream[E]) Next() (frame.Frame, error) {
	if s.done {
		return frame.Frame{}, ErrDone
	}

	if err := s.board.Apply(s.pending); err != nil {
		s.finish()
		return frame.Frame{}, fmt.Errorf("%s step %d: %w", s.name, s.step+1, err)
	}

	s.step++
	f := s.board.Snapshot()
	f.Step = s.step
	s.current = f
	s.pull()
	return f.Clone(), nil
}

func (s *Stream[E]) Close() { s.finish() }

func (s *Stream[E]) finish() {
	if s.done {
		return
	}
	s.done = true
	s.stop()
}
