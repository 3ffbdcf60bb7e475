package execution

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stp/internal/config"
	"stp/internal/domain"
)

func intPtr(v int) *int { return &v }

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return NewRunner(cfg, zap.NewNop())
}

func TestRunner_Run_AllStepsPass(t *testing.T) {
	runner := newTestRunner(t)
	sc := &domain.Scenario{
		Subject: "Echo scenario",
		Vars:    []domain.Var{{Name: "greeting", Value: "hello"}},
		Steps: []domain.StepDef{
			{Name: "first", Run: "echo $greeting"},
			{Name: "second", Run: "true"},
		},
	}

	result := runner.Run(context.Background(), sc, 1)

	require.Len(t, result.StepResults, 2)
	assert.Equal(t, domain.StepPassed, result.StepResults[0].Status)
	assert.Equal(t, domain.StepPassed, result.StepResults[1].Status)
	assert.True(t, result.Passed())

	workerID, ok := result.Scope.Get("_worker_id")
	require.True(t, ok)
	assert.Equal(t, 1, workerID)
}

func TestRunner_Run_FailureSkipsRemainingSteps(t *testing.T) {
	runner := newTestRunner(t)
	sc := &domain.Scenario{
		Subject: "Failing scenario",
		Steps: []domain.StepDef{
			{Name: "ok", Run: "true"},
			{Name: "boom", Run: "echo 'invalid token' >&2; exit 1"},
			{Name: "never runs", Run: "true"},
		},
	}

	result := runner.Run(context.Background(), sc, 1)

	require.Len(t, result.StepResults, 3)
	assert.Equal(t, domain.StepPassed, result.StepResults[0].Status)
	assert.Equal(t, domain.StepFailed, result.StepResults[1].Status)
	assert.Equal(t, domain.StepSkipped, result.StepResults[2].Status)
	assert.True(t, result.Failed())

	excInfo := result.StepResults[1].ExcInfo
	require.NotNil(t, excInfo)
	assert.Equal(t, "invalid token", excInfo.Err.Error())
	assert.NotEmpty(t, excInfo.Frames, "failure should capture a call stack")

	exitCode, ok := result.Scope.Get("_exit_code")
	require.True(t, ok)
	assert.Equal(t, 1, exitCode)
}

func TestRunner_Run_RegisterCapturesOutput(t *testing.T) {
	runner := newTestRunner(t)
	sc := &domain.Scenario{
		Subject: "Register scenario",
		Steps: []domain.StepDef{
			{Name: "capture", Run: "echo captured-value", Register: "token"},
			{Name: "use", Run: "test \"$token\" = captured-value"},
		},
	}

	result := runner.Run(context.Background(), sc, 1)

	assert.True(t, result.Passed())
	token, ok := result.Scope.Get("token")
	require.True(t, ok)
	assert.Equal(t, "captured-value", token)
}

func TestRunner_Run_ExpectedNonZeroExitCodePasses(t *testing.T) {
	runner := newTestRunner(t)
	sc := &domain.Scenario{
		Subject: "Expected failure",
		Steps: []domain.StepDef{
			{Name: "fails as expected", Run: "exit 3", Expect: &domain.Expect{ExitCode: intPtr(3)}},
		},
	}

	result := runner.Run(context.Background(), sc, 1)
	assert.True(t, result.Passed())
}

func TestRunner_Run_SkippedStepDefinition(t *testing.T) {
	runner := newTestRunner(t)
	sc := &domain.Scenario{
		Subject: "Skip scenario",
		Steps: []domain.StepDef{
			{Name: "skipped", Skip: true},
			{Name: "runs", Run: "true"},
		},
	}

	result := runner.Run(context.Background(), sc, 1)

	require.Len(t, result.StepResults, 2)
	assert.Equal(t, domain.StepSkipped, result.StepResults[0].Status)
	assert.Equal(t, domain.StepPassed, result.StepResults[1].Status)
	assert.True(t, result.Passed())
}

func TestCheckStep(t *testing.T) {
	tests := []struct {
		name     string
		step     domain.StepDef
		output   string
		exitCode int
		runErr   error
		wantErr  bool
		wantMsg  string
	}{
		{
			name:     "no expectations, success",
			step:     domain.StepDef{Name: "s", Run: "true"},
			exitCode: 0,
		},
		{
			name: "exit code mismatch",
			step: domain.StepDef{
				Name: "s", Run: "true",
				Expect: &domain.Expect{ExitCode: intPtr(0)},
			},
			exitCode: 2,
			wantErr:  true,
			wantMsg:  "unexpected exit code 2",
		},
		{
			name: "output missing substring",
			step: domain.StepDef{
				Name: "s", Run: "true",
				Expect: &domain.Expect{OutputContains: "ready"},
			},
			output:   "still booting",
			exitCode: 0,
			wantErr:  true,
			wantMsg:  "output missing expected substring",
		},
		{
			name: "output contains substring",
			step: domain.StepDef{
				Name: "s", Run: "true",
				Expect: &domain.Expect{OutputContains: "ready"},
			},
			output:   "service ready",
			exitCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStep(tt.step, tt.output, tt.exitCode, tt.runErr)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCheckStep_StructuredAssertion(t *testing.T) {
	step := domain.StepDef{
		Name: "s", Run: "true",
		Expect: &domain.Expect{ExitCode: intPtr(0)},
	}

	err := checkStep(step, "", 7, nil)
	require.Error(t, err)

	var assertErr *domain.AssertionError
	require.ErrorAs(t, err, &assertErr)
	assert.Equal(t, 7, assertErr.Left)
	assert.Equal(t, "==", assertErr.Operator)
	assert.Equal(t, 0, assertErr.Right)
	assert.True(t, assertErr.LeftSet)
	assert.True(t, assertErr.RightSet)
}

func TestCaptureFrames(t *testing.T) {
	frames := CaptureFrames(0)
	require.NotEmpty(t, frames)
	assert.Contains(t, frames[0].Function, "TestCaptureFrames")
	assert.NotZero(t, frames[0].Line)
}
