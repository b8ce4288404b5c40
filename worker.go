package gridpath

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Job is one independent search request. The grid belongs to the job for the
// duration of SolveAll and must not be shared with another job.
type Job struct {
	Grid  *Grid
	Start Cell
	Goal  Cell
}

// Outcome is the worker's answer for the job at Index.
type Outcome struct {
	Index  int
	Result Result
	Err    error
}

// SolveAll searches every job on a pool of worker goroutines and returns the
// outcomes in job order. Per-job failures are reported in Outcome.Err; the
// returned error is non-nil only when ctx is cancelled before all jobs finish.
func SolveAll(contextObject context.Context, jobs []Job, options ...Option) ([]Outcome, error) {
	searchOptions := applyOptions(options)
	outcomes := make([]Outcome, len(jobs))
	if err := contextObject.Err(); err != nil {
		return outcomes, err
	}
	if len(jobs) == 0 {
		return outcomes, nil
	}

	numberOfWorkers := min(searchOptions.NumberOfWorkers, len(jobs))
	jobChannel := make(chan int)
	outcomeChannel := make(chan Outcome)

	// --- Start worker pool ---
	var wg sync.WaitGroup
	for i := 0; i < numberOfWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobChannel {
				job := jobs[index]
				result, err := Search(job.Grid, job.Start, job.Goal, options...)
				select {
				case outcomeChannel <- Outcome{Index: index, Result: result, Err: err}:
				case <-contextObject.Done():
					return
				}
			}
		}()
	}

	// --- Dispatcher ---
	go func() {
		defer close(jobChannel)
		for index := range jobs {
			select {
			case jobChannel <- index:
			case <-contextObject.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomeChannel)
	}()

	// --- Collect ---
	received := 0
	for outcome := range outcomeChannel {
		outcomes[outcome.Index] = outcome
		received++
	}
	if received < len(jobs) {
		searchOptions.Logger.Debug("batch interrupted", zap.Int("solved", received), zap.Int("jobs", len(jobs)))
		return outcomes, contextObject.Err()
	}
	return outcomes, nil
}
