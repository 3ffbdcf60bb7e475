package domain

import "time"

// StepStatus is the terminal status of an executed step
type StepStatus int

const (
	StepPassed StepStatus = iota
	StepFailed
	StepSkipped
)

// String returns the status label used in reports and prompts
func (s StepStatus) String() string {
	switch s {
	case StepPassed:
		return "passed"
	case StepFailed:
		return "failed"
	case StepSkipped:
		return "skipped"
	}
	return "unknown"
}

// StepResult represents the outcome of executing a single step
type StepResult struct {
	Name    string        // Step name
	Status  StepStatus    // Terminal status
	Elapsed time.Duration // Time taken to execute
	ExcInfo *ExcInfo      // Captured failure, nil when the step did not fail
}

// ScenarioResult aggregates a scenario with its executed steps and the
// scope captured at the point of failure (or completion).
type ScenarioResult struct {
	Scenario     *Scenario
	StepResults  []StepResult // Execution order
	Scope        Scope        // Variables in insertion order
	ExtraDetails []string     // Free-text annotations attached by plugins
}

// AddExtraDetails attaches a human-readable annotation for later display.
func (r *ScenarioResult) AddExtraDetails(detail string) {
	r.ExtraDetails = append(r.ExtraDetails, detail)
}

// Failed reports whether any step carries a captured failure.
func (r *ScenarioResult) Failed() bool {
	for _, step := range r.StepResults {
		if step.ExcInfo != nil {
			return true
		}
	}
	return false
}

// Passed reports whether the scenario completed without failures.
func (r *ScenarioResult) Passed() bool {
	return !r.Failed()
}

// RunMeta contains metadata about a scenario run
type RunMeta struct {
	TotalScenarios  int     `json:"total_scenarios"`
	FailedScenarios int     `json:"failed_scenarios"`
	PassedScenarios int     `json:"passed_scenarios"`
	FailedSteps     int     `json:"failed_steps"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for a scenario run
type RunOutput struct {
	Meta    RunMeta           `json:"meta"`
	Details []ScenarioFailure `json:"details"`
}
