package cli

import "stp/internal/config"

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
	TracebackLimit  int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:         f.Workers,
		ScenarioPath:    f.ScenarioPath,
		NameFilter:      f.NameFilter,
		ListScenarios:   f.ListScenarios,
		FailFast:        f.FailFast,
		OpenFaills:      f.OpenFaills,
		PrepareDB:       f.PrepareDB,
		Verbose:         f.Verbose,
		DebugPrompt:     f.DebugPrompt,
		PromptVariables: f.PromptVariables,
		TracebackLimit:  f.TracebackLimit,
	}
}
