package execution

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stp/internal/config"
	"stp/internal/domain"
	"stp/internal/events"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()

	scenarios := make([]*domain.Scenario, 5)
	for i := range scenarios {
		scenarios[i] = &domain.Scenario{Subject: fmt.Sprintf("scenario %d", i)}
	}

	t.Run("distributes evenly", func(t *testing.T) {
		distribution := scheduler.Schedule(scenarios, 2)
		require.Len(t, distribution, 2)
		assert.Len(t, distribution[0], 3)
		assert.Len(t, distribution[1], 2)
	})

	t.Run("zero workers falls back to one", func(t *testing.T) {
		distribution := scheduler.Schedule(scenarios, 0)
		require.Len(t, distribution, 1)
		assert.Len(t, distribution[0], 5)
	})
}

func newTestPool(t *testing.T, dispatcher *events.Dispatcher, workers int) *WorkerPool {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.Workers = workers
	runner := NewRunner(cfg, zap.NewNop())
	return NewWorkerPool(cfg, runner, NewRoundRobinScheduler(), dispatcher, zap.NewNop())
}

func passingScenario(name string) *domain.Scenario {
	return &domain.Scenario{
		Subject: name,
		Steps:   []domain.StepDef{{Name: "only step", Run: "true"}},
	}
}

func failingScenario(name string) *domain.Scenario {
	return &domain.Scenario{
		Subject: name,
		Steps:   []domain.StepDef{{Name: "only step", Run: "false"}},
	}
}

func TestWorkerPool_Execute(t *testing.T) {
	dispatcher := events.NewDispatcher()

	var passed, failed int
	var runFinished bool
	dispatcher.Listen(events.ScenarioPassedEvent{}, func(ctx context.Context, ev events.Event) error {
		passed++
		return nil
	})
	dispatcher.Listen(events.ScenarioFailedEvent{}, func(ctx context.Context, ev events.Event) error {
		failed++
		return nil
	})
	dispatcher.Listen(events.RunFinishedEvent{}, func(ctx context.Context, ev events.Event) error {
		runFinished = true
		return nil
	})

	pool := newTestPool(t, dispatcher, 2)
	scenarios := []*domain.Scenario{
		passingScenario("first"),
		failingScenario("second"),
		passingScenario("third"),
	}

	results, duration, err := pool.Execute(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Positive(t, duration)

	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.True(t, runFinished)
}

func TestWorkerPool_Execute_NoScenarios(t *testing.T) {
	pool := newTestPool(t, events.NewDispatcher(), 2)
	results, duration, err := pool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, duration)
}

func TestWorkerPool_Execute_HandlerErrorPropagates(t *testing.T) {
	dispatcher := events.NewDispatcher()
	boom := errors.New("handler broke")
	dispatcher.Listen(events.ScenarioFailedEvent{}, func(ctx context.Context, ev events.Event) error {
		return boom
	})

	pool := newTestPool(t, dispatcher, 1)
	_, _, err := pool.Execute(context.Background(), []*domain.Scenario{failingScenario("broken")})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestWorkerPool_ExecuteWithOptions_FailFast(t *testing.T) {
	pool := newTestPool(t, events.NewDispatcher(), 1)

	scenarios := []*domain.Scenario{
		failingScenario("fails first"),
		passingScenario("after failure"),
		passingScenario("also after failure"),
	}

	results, _, err := pool.ExecuteWithOptions(context.Background(), scenarios, true)
	require.NoError(t, err)
	// With a single worker the failure cancels the run before the rest execute
	assert.Less(t, len(results), len(scenarios))
}
