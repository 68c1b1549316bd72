package worker

import (
	"context"
	"errors"
	"sync"
)

// Job produces one result.
type Job[T any] func(context.Context) (T, error)

// Collect runs jobs with bounded concurrency. Results keep the order of jobs;
// a failed or skipped job leaves the zero value in its slot. The returned
// error joins every job error plus the context error, if any.
func Collect[T any](ctx context.Context, workers int, jobs []Job[T]) ([]T, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]T, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	idxCh := make(chan int)
	errCh := make(chan error, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				value, err := jobs[idx](ctx)
				if err != nil {
					errCh <- err
					continue
				}
				results[idx] = value
			}
		}()
	}

enqueueLoop:
	for idx := range jobs {
		select {
		case <-ctx.Done():
			break enqueueLoop
		case idxCh <- idx:
		}
	}
	close(idxCh)

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		errs = append(errs, ctxErr)
	}

	if len(errs) > 0 {
		return results, errors.Join(errs...)
	}
	return results, nil
}
