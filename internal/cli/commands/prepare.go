package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stp/internal/config"
	"stp/internal/dbprep"
)

// PrepareCommand handles the prepare command
type PrepareCommand struct {
	config      *config.Config
	provisioner *dbprep.Provisioner
}

// NewPrepareCommand creates a new PrepareCommand
func NewPrepareCommand(cfg *config.Config, provisioner *dbprep.Provisioner) *PrepareCommand {
	return &PrepareCommand{
		config:      cfg,
		provisioner: provisioner,
	}
}

// Execute runs the command
func (pc *PrepareCommand) Execute(cmd *cobra.Command, args []string) error {
	workers, err := pc.provisioner.CheckAndCreateDatabases(pc.config.Workers)
	if err != nil {
		return fmt.Errorf("database preparation failed: %w", err)
	}

	color.Green("✓ %d worker database(s) ready", len(workers))
	return nil
}
