package events

import (
	"time"

	"stp/internal/config"
	"stp/internal/domain"
)

// Event is a notification fired by the runner lifecycle
type Event any

// ConfigLoadedEvent is fired once per run, before any scenario executes
type ConfigLoadedEvent struct {
	Config *config.Config
}

// RunStartedEvent is fired after discovery, with the scenarios to execute
type RunStartedEvent struct {
	Scenarios []*domain.Scenario
}

// ScenarioPassedEvent is fired for each scenario that completed without failures
type ScenarioPassedEvent struct {
	Result *domain.ScenarioResult
}

// ScenarioFailedEvent is fired for each scenario with at least one failed step
type ScenarioFailedEvent struct {
	Result *domain.ScenarioResult
}

// RunFinishedEvent is fired after the last scenario result was dispatched
type RunFinishedEvent struct {
	Results  []*domain.ScenarioResult
	Duration time.Duration
}
