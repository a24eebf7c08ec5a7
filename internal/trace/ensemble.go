package trace

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/engine"
)

type Job struct {
	Algorithm string
	Input     algo.Input
}

// Result holds one job's outcome. Trace may be set alongside Err when the
// run faulted part way.
type Result struct {
	Job     Job
	Trace   *Trace
	Err     error
	Elapsed time.Duration
}

// RecordAll records every job on its own engine concurrently. Results come
// back in job order.
func RecordAll(ctx context.Context, factory engine.Factory, jobs []Job, opts ...engine.Option) []Result {
	results := make([]Result, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(idx int, job Job) {
			defer wg.Done()
			start := time.Now()
			t, err := Record(ctx, factory, job.Algorithm, job.Input.Clone(), opts...)
			results[idx] = Result{Job: job, Trace: t, Err: err, Elapsed: time.Since(start)}
		}(i, job)
	}

	wg.Wait()
	return results
}
