package commands

import (
	"github.com/spf13/cobra"

	"stp/internal/cli"
	"stp/internal/config"
	"stp/internal/dbprep"
	"stp/internal/debugprompt"
	"stp/internal/discovery"
	"stp/internal/scenario"
	"stp/internal/storage"
	"stp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Prepare *PrepareCommand
	Faills  *FaillsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	parser := scenario.NewParser()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, parser, jsonStorage)
	provisioner := dbprep.NewProvisioner(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:     NewRunCommand(cfg, scanner, filter, parser, jsonStorage, formatter, provisioner, errorViewer),
		List:    NewListCommand(cfg, scanner, filter, formatter, jsonStorage),
		Prepare: NewPrepareCommand(cfg, provisioner),
		Faills:  NewFaillsCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run scenarios in parallel",
		Long:  "Discover and execute scenario files using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			cfg.ApplyEnvironment()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of parallel workers to use")
	runCmd.Flags().StringVarP(&flags.ScenarioPath, "scenario-path", "s", "", "Path to the folder where scenario discovery should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter scenario files by name pattern (supports wildcards, e.g., '*login*' or '*checkout.scenario.yaml')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first scenario failure")
	runCmd.Flags().BoolVar(&flags.PrepareDB, "prepare-db", false, "Create worker databases before executing scenarios")
	runCmd.Flags().BoolVar(&flags.OpenFaills, "open-faills", false, "Open the faills viewer when the run finishes with failures")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")
	runCmd.Flags().BoolVar(&flags.DebugPrompt, "debug-prompt", true, "Generate an AI debug prompt file for each failed scenario")
	runCmd.Flags().BoolVar(&flags.PromptVariables, "prompt-variables", false, "Include scenario variables in generated debug prompts")
	runCmd.Flags().IntVar(&flags.TracebackLimit, "tb-limit", debugprompt.DefaultTracebackLimit, "Maximum stack frames rendered in debug prompts")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered scenarios",
		Long:  "Scan and list all scenario files without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			cfg.ApplyEnvironment()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter scenario files by name pattern (supports wildcards, e.g., '*login*' or '*checkout.scenario.yaml')")
	listCmd.Flags().StringVarP(&flags.ScenarioPath, "scenario-path", "s", "", "Path to the folder where scenario discovery should start")
	listCmd.Flags().BoolVarP(&flags.ListScenarios, "scenarios", "c", false, "List scenario subjects instead of scenario files")
	rootCmd.AddCommand(listCmd)

	// Prepare command
	prepareCmd := &cobra.Command{
		Use:   "prepare",
		Short: "Create worker databases",
		Long:  "Check and create the per-worker databases scenarios run against",
		RunE:  c.Prepare.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			cfg.ApplyEnvironment()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			return nil
		},
	}
	prepareCmd.Flags().IntVarP(&flags.Workers, "workers", "w", config.DefaultWorkers, "Number of worker databases to prepare")
	rootCmd.AddCommand(prepareCmd)

	// Faills command
	faillsCmd := &cobra.Command{
		Use:   "faills",
		Short: "View scenario failures interactively",
		Long:  "Display scenario failures from the last run in an interactive viewer",
		RunE:  c.Faills.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			cfg.ApplyEnvironment()
			return nil
		},
	}
	rootCmd.AddCommand(faillsCmd)
}
