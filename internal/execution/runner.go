package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"stp/internal/config"
	"stp/internal/domain"
)

// Runner executes a single scenario, step by step
type Runner struct {
	config *config.Config
	log    *zap.Logger
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{config: cfg, log: logger}
}

// Run executes every step of the scenario in order. After the first
// failed step the remaining steps are recorded as skipped; the failure
// keeps the error and the call stack captured at the point it was seen.
func (r *Runner) Run(ctx context.Context, sc *domain.Scenario, workerID int) *domain.ScenarioResult {
	result := &domain.ScenarioResult{Scenario: sc}
	for _, v := range sc.Vars {
		result.Scope.Set(v.Name, v.Value)
	}
	result.Scope.Set("_worker_id", workerID)

	failed := false
	for _, step := range sc.Steps {
		if failed || step.Skip {
			result.StepResults = append(result.StepResults, domain.StepResult{
				Name:   step.Name,
				Status: domain.StepSkipped,
			})
			continue
		}

		stepResult := r.runStep(ctx, sc, step, workerID, &result.Scope)
		result.StepResults = append(result.StepResults, stepResult)
		if stepResult.ExcInfo != nil {
			failed = true
		}
	}

	return result
}

// runStep executes one step command and applies its assertions
func (r *Runner) runStep(ctx context.Context, sc *domain.Scenario, step domain.StepDef, workerID int, scope *domain.Scope) domain.StepResult {
	start := time.Now()
	cmd := exec.CommandContext(ctx, "sh", "-c", step.Run)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = r.stepEnv(*scope, workerID)

	rawOutput, runErr := cmd.CombinedOutput()
	elapsed := time.Since(start)
	output := string(rawOutput)
	exitCode := exitCodeOf(cmd, runErr)

	scope.Set("_exit_code", exitCode)
	if step.Register != "" {
		scope.Set(step.Register, strings.TrimSpace(output))
	}

	if stepErr := checkStep(step, output, exitCode, runErr); stepErr != nil {
		r.log.Debug("step failed",
			zap.String("scenario", sc.Subject),
			zap.String("step", step.Name),
			zap.Int("exit_code", exitCode),
			zap.Error(stepErr),
		)
		return domain.StepResult{
			Name:    step.Name,
			Status:  domain.StepFailed,
			Elapsed: elapsed,
			ExcInfo: &domain.ExcInfo{Err: stepErr, Frames: CaptureFrames(1)},
		}
	}

	return domain.StepResult{Name: step.Name, Status: domain.StepPassed, Elapsed: elapsed}
}

// stepEnv builds the command environment: the process environment, the
// worker's isolated database name and the scenario's visible variables.
func (r *Runner) stepEnv(scope domain.Scope, workerID int) []string {
	env := os.Environ()
	env = append(env, fmt.Sprintf("DB_DATABASE=%s", r.config.GetDatabaseName(workerID)))
	for _, v := range scope {
		if strings.HasPrefix(v.Name, "_") {
			continue
		}
		env = append(env, fmt.Sprintf("%s=%v", v.Name, v.Value))
	}
	return env
}

// checkStep decides whether a step failed. Explicit expectations take
// precedence over the raw command error: a step expecting exit code 1
// passes when the command exits 1.
func checkStep(step domain.StepDef, output string, exitCode int, runErr error) error {
	if step.Expect != nil {
		if step.Expect.ExitCode != nil && exitCode != *step.Expect.ExitCode {
			return domain.NewAssertionError(
				fmt.Sprintf("unexpected exit code %d", exitCode),
				exitCode, "==", *step.Expect.ExitCode,
			)
		}
		if step.Expect.OutputContains != "" && !strings.Contains(output, step.Expect.OutputContains) {
			return domain.NewAssertionError(
				"output missing expected substring",
				strings.TrimSpace(output), "contains", step.Expect.OutputContains,
			)
		}
		if step.Expect.ExitCode != nil {
			return nil
		}
	}

	if runErr == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		if msg := strings.TrimSpace(output); msg != "" {
			return errors.New(msg)
		}
		return fmt.Errorf("command exited with code %d", exitCode)
	}
	return fmt.Errorf("command could not run: %w", runErr)
}

// exitCodeOf extracts the exit code of a finished command. Commands that
// never started report -1.
func exitCodeOf(cmd *exec.Cmd, runErr error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if runErr != nil {
		return -1
	}
	return 0
}
