package domain

// ScenarioFailure represents a failed scenario in the persisted run output
type ScenarioFailure struct {
	ScenarioName string `json:"scenario_name"`
	FilePath     string `json:"file_path"`
	Step         string `json:"step"`
	Line         int    `json:"line"`
	Message      string `json:"message"`
	PromptPath   string `json:"prompt_path,omitempty"` // AI debug prompt file, relative to the project root
	Resolved     bool   `json:"resolved,omitempty"`    // Track if the failure is marked as resolved
}
