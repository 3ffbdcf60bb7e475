package execution

import (
	"context"
	"time"

	"stp/internal/domain"
)

// Executor executes scenarios and returns their results
type Executor interface {
	Execute(ctx context.Context, scenarios []*domain.Scenario) ([]*domain.ScenarioResult, time.Duration, error)
}
