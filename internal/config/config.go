package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath  string
	ScenarioPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Workers int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers         int
	ScenarioPath    string
	NameFilter      string
	ListScenarios   bool
	FailFast        bool
	OpenFaills      bool
	PrepareDB       bool
	Verbose         bool
	DebugPrompt     bool
	PromptVariables bool
	TracebackLimit  int // zero means the prompt builder's default
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		ScenarioPath:   DefaultScenarioPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Workers:        DefaultWorkers,
		Flags: Flags{
			Workers:     DefaultWorkers,
			DebugPrompt: true,
		},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, reads the project .env (when present) and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags
	cfg.ApplyEnvironment()

	// Apply flag overrides
	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}

	return cfg
}

// ApplyEnvironment resolves the project path from the environment, then
// reads that project's .env (when present) and remaining overrides.
func (c *Config) ApplyEnvironment() {
	if p := os.Getenv("STP_PROJECT_PATH"); p != "" {
		c.ProjectPath = p
	}

	// .env is optional; already-set environment variables win over it
	_ = godotenv.Load(filepath.Join(c.ProjectPath, ".env"))

	if p := os.Getenv("STP_SCENARIO_PATH"); p != "" {
		c.ScenarioPath = p
	}
}

// GetScenarioPath returns the scenario path, using the flag if provided
func (c *Config) GetScenarioPath() string {
	if c.Flags.ScenarioPath != "" {
		// If ScenarioPath is provided, make it relative to the project path if it's not absolute
		if filepath.IsAbs(c.Flags.ScenarioPath) {
			return c.Flags.ScenarioPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.ScenarioPath)
	}

	// Default: combine project path and scenario path
	return filepath.Join(c.ProjectPath, c.ScenarioPath)
}

// GetProjectRoot returns the absolute project path.
// Resolves to an absolute path so prompt locations and path cleanup are stable regardless of cwd.
func (c *Config) GetProjectRoot() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}

// GetOutputPath returns the full path to the output JSON file (under the project so run and faills use the same file).
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetTmpDir returns the directory where transient files (debug prompts) are created.
// Kept under the project root so their project-relative paths are short.
func (c *Config) GetTmpDir() string {
	return filepath.Join(c.GetProjectRoot(), c.OutputJSONDir, "tmp")
}

// GetDatabaseName returns the database name for a worker
func (c *Config) GetDatabaseName(workerID int) string {
	prefix := os.Getenv("DB_DATABASE_PREFIX")
	if prefix == "" {
		prefix = "testing"
	}
	return fmt.Sprintf("%s_%d", prefix, workerID)
}
