package twilio

import (
	"context"
	"errors"
	"time"
)

// BulkOperation is one step of a bulk run, usually a close or delete of the
// resource identified by ID.
type BulkOperation func(ctx context.Context, id string) error

// BulkResult records the outcome of one bulk step.
type BulkResult struct {
	ID       string
	Err      error
	NotFound bool
	Duration time.Duration
}

// Success reports whether the step completed without error.
func (r BulkResult) Success() bool {
	return r.Err == nil && !r.NotFound
}

// BulkRunner applies an operation to many resources strictly one after the
// other, waiting Interval between steps. The pacing belongs to the caller of
// the bulk operation. Dispatch itself never delays requests.
type BulkRunner struct {
	// Interval is the delay between two consecutive steps.
	Interval time.Duration
	// ContinueOnError keeps going after a failed step. Not found
	// responses never stop a run.
	ContinueOnError bool
	// OnResult is called after each step.
	OnResult func(result BulkResult)
}

// Run executes op for every id in order. It returns the results of the steps
// that ran. Without ContinueOnError the first failure stops the run and is
// returned. With it, all failures are joined.
func (r *BulkRunner) Run(ctx context.Context, ids []string, op BulkOperation) ([]BulkResult, error) {
	results := make([]BulkResult, 0, len(ids))

	var failures []error

	for index, id := range ids {
		if index > 0 && r.Interval > 0 {
			err := wait(ctx, r.Interval)
			if err != nil {
				return results, &NetworkError{Err: err}
			}
		}

		start := time.Now()
		err := op(ctx, id)
		result := BulkResult{ID: id, Duration: time.Since(start)}

		switch {
		case err == nil:
		case IsNotFound(err):
			result.NotFound = true
		default:
			result.Err = err
		}

		results = append(results, result)

		if r.OnResult != nil {
			r.OnResult(result)
		}

		if result.Err != nil {
			if !r.ContinueOnError {
				return results, result.Err
			}

			failures = append(failures, result.Err)
		}
	}

	return results, errors.Join(failures...)
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
