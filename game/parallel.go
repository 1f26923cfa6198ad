package game

import (
	"context"
	"sync"
)

// sweepJob is one (reproProb, predProb) combination in sweep order.
type sweepJob struct {
	index     int
	reproProb int
	predProb  int
}

// sweepOutcome is a finished job handed back to the apply phase.
type sweepOutcome struct {
	job sweepJob
	res *Result
	err error
}

// runParallel applies compute then apply to every job in job order. With more
// than one worker the compute phase runs on a pool while apply stays on the
// calling goroutine in job order, so output matches the serial sweep. At most
// 2*numWorkers jobs are in flight between feeding and applying. The first
// error from either phase cancels the remaining work.
func runParallel(
	ctx context.Context,
	jobs []sweepJob,
	numWorkers int,
	compute func(sweepJob) (*Result, error),
	apply func(sweepJob, *Result) error,
) error {
	numWorkers = min(numWorkers, len(jobs))
	if numWorkers <= 1 {
		return runSerial(ctx, jobs, compute, apply)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workChan := make(chan sweepJob)
	doneChan := make(chan sweepOutcome, numWorkers)
	slots := make(chan struct{}, 2*numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range workChan {
				res, err := compute(job)
				select {
				case doneChan <- sweepOutcome{job: job, res: res, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed jobs until done or cancelled
	go func() {
		defer close(workChan)
		for _, job := range jobs {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			select {
			case workChan <- job:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(doneChan)
	}()

	pending := make(map[int]sweepOutcome, numWorkers)
	next := 0
	var firstErr error

	for out := range doneChan {
		if firstErr != nil {
			continue
		}
		pending[out.job.index] = out

		for {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			err := o.err
			if err == nil {
				err = apply(o.job, o.res)
			}
			if err != nil {
				firstErr = err
				cancel()
				break
			}
			next++
			<-slots
		}
	}

	if firstErr != nil {
		return firstErr
	}
	if next < len(jobs) {
		return ctx.Err()
	}
	return nil
}

// runSerial is the single-goroutine sweep.
func runSerial(
	ctx context.Context,
	jobs []sweepJob,
	compute func(sweepJob) (*Result, error),
	apply func(sweepJob, *Result) error,
) error {
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := compute(job)
		if err != nil {
			return err
		}
		if err := apply(job, res); err != nil {
			return err
		}
	}
	return nil
}
