package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/storage"
	"stp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := lc.scanner.Scan(lc.config.GetScenarioPath())
	if err != nil {
		return err
	}

	// Filter scenario files
	files = lc.filter.FilterByName(files, lc.config.Flags.NameFilter)

	if len(files) == 0 {
		color.Yellow("No scenarios found")
		return nil
	}

	// Mark files that failed in the last run, when results exist
	var failedPaths map[string]struct{}
	if output, err := lc.storage.Load(); err == nil {
		failedPaths = ui.FailedPathKeys(output.Details, lc.config.ProjectPath)
	}

	return lc.formatter.PrintScenarioList(files, lc.config.Flags.ListScenarios, failedPaths)
}
