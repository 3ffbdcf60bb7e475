package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultScenarioPath is the default scenario path
	DefaultScenarioPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "scenario-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".stp"
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for scenarios
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"storage",
	"dist",
	"build",
}
