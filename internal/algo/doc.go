// Package algo defines the step-production contract shared by every
// visualized algorithm.
//
// The package provides:
//
//   - [Process]: a single algorithm's stepping state machine
//   - [Board]: the live display copy that applies algorithm events
//   - [Stream]: adapts an event sequence and a Board into a Process
//   - [Input]: raw problem input (array, graph, DP parameters, range ops)
//
// Algorithms are written as plain iterators that yield events against their
// own working copy of the data. They never touch the board directly. The
// Stream pulls one event per step with [iter.Pull], applies it and snapshots
// the board, so the emitted Frame is derived only from events.
//
// # Example
//
//	p, err := sorting.NewMergeSort(algo.Input{Array: []int{5, 3, 8, 1}})
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//	for {
//		f, err := p.Next()
//		if errors.Is(err, algo.ErrDone) {
//			break
//		}
//		...
//	}
//
// # Thread Safety
//
// Processes are NOT safe for concurrent use. The generator runs as a
// coroutine of the caller; nothing executes in the background.
package algo
