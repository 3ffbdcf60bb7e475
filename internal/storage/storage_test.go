package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp/internal/config"
	"stp/internal/domain"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	return cfg
}

func TestSaveAndLoad(t *testing.T) {
	cfg := testConfig(t)
	store := NewJSONStorage(cfg)

	passed := &domain.ScenarioResult{
		Scenario: &domain.Scenario{Subject: "login succeeds"},
		StepResults: []domain.StepResult{
			{Name: "request token", Status: domain.StepPassed},
		},
	}
	failed := &domain.ScenarioResult{
		Scenario: &domain.Scenario{Subject: "login fails"},
		StepResults: []domain.StepResult{
			{Name: "request token", Status: domain.StepPassed},
			{Name: "verify token", Status: domain.StepFailed, ExcInfo: &domain.ExcInfo{Err: assert.AnError}},
		},
	}
	failures := []domain.ScenarioFailure{
		{ScenarioName: "login fails", FilePath: "scenarios/login.scenario.yaml", Step: "verify token", Line: 3, Message: "invalid token"},
	}

	err := store.Save([]*domain.ScenarioResult{passed, failed}, failures, 1500*time.Millisecond, 2)
	require.NoError(t, err)

	output, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 2, output.Meta.TotalScenarios)
	assert.Equal(t, 1, output.Meta.PassedScenarios)
	assert.Equal(t, 1, output.Meta.FailedScenarios)
	assert.Equal(t, 1, output.Meta.FailedSteps)
	assert.Equal(t, 2, output.Meta.Workers)
	assert.InDelta(t, 1.5, output.Meta.DurationSeconds, 0.001)
	require.Len(t, output.Details, 1)
	assert.Equal(t, "login fails", output.Details[0].ScenarioName)
	assert.Equal(t, "verify token", output.Details[0].Step)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := testConfig(t)
	store := NewJSONStorage(cfg)

	_, err := store.Load()
	assert.Error(t, err)
}

func TestSaveOutputCreatesDir(t *testing.T) {
	cfg := testConfig(t)
	store := NewJSONStorage(cfg)

	output := &domain.RunOutput{Meta: domain.RunMeta{TotalScenarios: 3}}
	require.NoError(t, store.SaveOutput(output))

	assert.FileExists(t, filepath.Join(cfg.ProjectPath, config.DefaultOutputJSONDir, config.DefaultOutputJSONFile))
}
