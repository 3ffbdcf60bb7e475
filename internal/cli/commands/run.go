package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/dbprep"
	"stp/internal/debugprompt"
	"stp/internal/discovery"
	"stp/internal/domain"
	"stp/internal/events"
	"stp/internal/execution"
	"stp/internal/logging"
	"stp/internal/scenario"
	"stp/internal/storage"
	"stp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	scanner     *discovery.Scanner
	filter      *discovery.Filter
	parser      *scenario.Parser
	storage     storage.Storage
	formatter   *ui.Formatter
	provisioner *dbprep.Provisioner
	viewer      ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	parser *scenario.Parser,
	st storage.Storage,
	formatter *ui.Formatter,
	provisioner *dbprep.Provisioner,
	viewer ui.Viewer,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		scanner:     scanner,
		filter:      filter,
		parser:      parser,
		storage:     st,
		formatter:   formatter,
		provisioner: provisioner,
		viewer:      viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.New(rc.config.Flags.Verbose)
	defer func() { _ = logger.Sync() }()

	// Create worker databases if flag is set
	if rc.config.Flags.PrepareDB {
		if _, err := rc.provisioner.CheckAndCreateDatabases(rc.config.Workers); err != nil {
			return fmt.Errorf("database preparation failed: %w", err)
		}
	}

	// Wire the event pipeline; execution-time dependencies are built here
	// because they depend on parsed flags.
	dispatcher := events.NewDispatcher()
	if rc.config.Flags.DebugPrompt {
		builder := debugprompt.NewBuilder(debugprompt.Options{
			IncludeVariables: rc.config.Flags.PromptVariables,
			TracebackLimit:   rc.config.Flags.TracebackLimit,
		})
		debugprompt.NewPlugin(builder, logger).Subscribe(dispatcher)
	}
	if err := dispatcher.Fire(ctx, events.ConfigLoadedEvent{Config: rc.config}); err != nil {
		return err
	}

	// Discover scenario files
	files, err := rc.scanner.Scan(rc.config.GetScenarioPath())
	if err != nil {
		return err
	}
	files = rc.filter.FilterByName(files, rc.config.Flags.NameFilter)

	// Parse scenarios
	var scenarios []*domain.Scenario
	for _, file := range files {
		parsed, err := rc.parser.ParseFile(file)
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		scenarios = append(scenarios, parsed...)
	}

	if len(scenarios) == 0 {
		color.Yellow("No scenarios to execute")
		return nil
	}

	if err := dispatcher.Fire(ctx, events.RunStartedEvent{Scenarios: scenarios}); err != nil {
		return err
	}

	// Create and set progress bar
	runner := execution.NewRunner(rc.config, logger)
	pool := execution.NewWorkerPool(rc.config, runner, execution.NewRoundRobinScheduler(), dispatcher, logger)
	pool.SetProgress(ui.NewProgressBar(len(scenarios)))

	// Execute scenarios
	results, duration, err := pool.ExecuteWithOptions(ctx, scenarios, rc.config.Flags.FailFast)
	if err != nil {
		return err
	}

	// Collect failures
	failures := rc.collectFailures(results)

	// Save results
	if err := rc.storage.Save(results, failures, duration, rc.config.Workers); err != nil {
		return fmt.Errorf("failed to save scenario results: %w", err)
	}

	// Print stats
	if err := rc.formatter.PrintMetaStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFaills && len(failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}
	return nil
}

// collectFailures converts failed results into the persisted failure records
func (rc *RunCommand) collectFailures(results []*domain.ScenarioResult) []domain.ScenarioFailure {
	projectRoot := rc.config.GetProjectRoot()

	var failures []domain.ScenarioFailure
	for _, result := range results {
		if result.Passed() {
			continue
		}
		step, excInfo := firstFailedStep(result)

		message := ""
		if excInfo != nil && excInfo.Err != nil {
			message = excInfo.Err.Error()
		}

		failures = append(failures, domain.ScenarioFailure{
			ScenarioName: result.Scenario.Subject,
			FilePath:     displayPath(projectRoot, result.Scenario.Path),
			Step:         step,
			Line:         result.Scenario.StartLine,
			Message:      message,
			PromptPath:   debugprompt.PromptPath(result.ExtraDetails),
		})
	}
	return failures
}

// firstFailedStep returns the name and failure of the first failed step
func firstFailedStep(result *domain.ScenarioResult) (string, *domain.ExcInfo) {
	for _, step := range result.StepResults {
		if step.ExcInfo != nil {
			return step.Name, step.ExcInfo
		}
	}
	return "", nil
}

// displayPath makes a scenario path project-relative when it lies under the root
func displayPath(projectRoot, path string) string {
	if projectRoot == "" {
		return path
	}
	rel, err := filepath.Rel(projectRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
