package execution

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"stp/internal/config"
	"stp/internal/domain"
	"stp/internal/events"
	"stp/internal/ui"
)

// WorkerPool manages a pool of workers for parallel scenario execution.
// Worker goroutines only run scenarios; results are collected on the
// calling goroutine, which also fires lifecycle events, so event
// handlers never run concurrently.
type WorkerPool struct {
	config     *config.Config
	runner     *Runner
	scheduler  Scheduler
	dispatcher *events.Dispatcher
	progress   *ui.ProgressBar
	log        *zap.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, dispatcher *events.Dispatcher, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		config:     cfg,
		runner:     runner,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		log:        logger,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute runs all scenarios in parallel (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, scenarios []*domain.Scenario) ([]*domain.ScenarioResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, scenarios, false)
}

// ExecuteWithOptions runs scenarios with optional fail-fast (stop scheduling after the first failure).
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, scenarios []*domain.Scenario, failFast bool) ([]*domain.ScenarioResult, time.Duration, error) {
	if len(scenarios) == 0 {
		return nil, 0, nil
	}

	workerCount := wp.config.Workers
	if workerCount <= 0 {
		workerCount = 1
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	distribution := wp.scheduler.Schedule(scenarios, workerCount)
	results := make(chan *domain.ScenarioResult, len(scenarios))
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, batch := range distribution {
		if len(batch) == 0 {
			continue
		}
		wg.Add(1)
		go func(workerID int, batch []*domain.Scenario) {
			defer wg.Done()
			for _, sc := range batch {
				select {
				case <-runCtx.Done():
					return
				default:
				}
				result := wp.runner.Run(runCtx, sc, workerID)
				results <- result
				if failFast && result.Failed() {
					cancel()
					return
				}
			}
		}(i+1, batch)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []*domain.ScenarioResult
	var completed, passedSteps, failedSteps int
	var firstErr error
	for result := range results {
		allResults = append(allResults, result)

		completed++
		p, f := stepCounts(result)
		passedSteps += p
		failedSteps += f
		if wp.progress != nil {
			wp.progress.Update(completed, passedSteps, failedSteps)
		}

		wp.log.Debug("scenario finished",
			zap.String("scenario", result.Scenario.Subject),
			zap.Bool("passed", result.Passed()),
		)

		if err := wp.fireResult(ctx, result); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if wp.progress != nil {
		wp.progress.Finish()
	}

	duration := time.Since(startTime)
	if wp.dispatcher != nil && firstErr == nil {
		firstErr = wp.dispatcher.Fire(ctx, events.RunFinishedEvent{Results: allResults, Duration: duration})
	}
	return allResults, duration, firstErr
}

// fireResult dispatches the per-scenario lifecycle event
func (wp *WorkerPool) fireResult(ctx context.Context, result *domain.ScenarioResult) error {
	if wp.dispatcher == nil {
		return nil
	}
	if result.Failed() {
		return wp.dispatcher.Fire(ctx, events.ScenarioFailedEvent{Result: result})
	}
	return wp.dispatcher.Fire(ctx, events.ScenarioPassedEvent{Result: result})
}

// stepCounts tallies passed and failed steps of one scenario result
func stepCounts(result *domain.ScenarioResult) (passed, failed int) {
	for _, step := range result.StepResults {
		switch step.Status {
		case domain.StepPassed:
			passed++
		case domain.StepFailed:
			failed++
		}
	}
	return passed, failed
}
