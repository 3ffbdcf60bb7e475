package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stp/internal/cli"
	"stp/internal/cli/commands"
	"stp/internal/config"
	"stp/internal/version"
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "stp",
		Short:   "Parallel scenario test processor",
		Long:    `A parallel runner for scenario files. Executes scenario steps as shell commands across workers, and generates AI-ready debug prompts for failed scenarios.`,
		Version: version.Version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
