package commands

import (
	"strconv"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stp/internal/cli"
	"stp/internal/config"
	"stp/internal/debugprompt"
)

func TestRegister_TracebackLimitDefaultMatchesBuilder(t *testing.T) {
	rootCmd := &cobra.Command{Use: "stp"}
	cfg := config.New()
	var flags cli.Flags

	NewCommands(cfg).Register(rootCmd, &flags, cfg)

	runCmd, _, err := rootCmd.Find([]string{"run"})
	require.NoError(t, err)

	flag := runCmd.Flags().Lookup("tb-limit")
	require.NotNil(t, flag)
	assert.Equal(t, strconv.Itoa(debugprompt.DefaultTracebackLimit), flag.DefValue)
}
