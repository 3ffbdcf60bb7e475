package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"stp/internal/config"
	"stp/internal/discovery"
	"stp/internal/domain"
	"stp/internal/scenario"
	"stp/internal/storage"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *scenario.Parser
	store  storage.Storage
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *scenario.Parser, store storage.Storage) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		store:  store,
	}
}

// PrintMetaStats reads and displays meta statistics from the last run
func (f *Formatter) PrintMetaStats() error {
	// Clear terminal screen
	fmt.Print("\033[2J\033[H")

	output, err := f.store.Load()
	if err != nil {
		return err
	}

	meta := output.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                  Scenario Execution Statistics                ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	// Total Scenarios
	fmt.Printf("│ %-31s │ ", "Total Scenarios")
	color.White("%-27d │\n", meta.TotalScenarios)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Passed Scenarios
	fmt.Printf("│ %-31s │ ", "Passed Scenarios")
	color.Green("%-27d │\n", meta.PassedScenarios)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Scenarios
	fmt.Printf("│ %-31s │ ", "Failed Scenarios")
	color.Red("%-27d │\n", meta.FailedScenarios)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Failed Steps
	fmt.Printf("│ %-31s │ ", "Failed Steps")
	color.Red("%-27d │\n", meta.FailedSteps)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Duration
	fmt.Printf("│ %-31s │ ", "Duration")
	durationStr := fmt.Sprintf("%.2fs", meta.DurationSeconds)
	color.White("%-27s │\n", durationStr)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Workers
	fmt.Printf("│ %-31s │ ", "Workers")
	color.White("%-27d │\n", meta.Workers)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	// Timestamp
	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	// Print summary line
	fmt.Println()
	if meta.FailedScenarios == 0 {
		color.Green("✓ All scenarios passed!")
	} else {
		color.Red("✗ %d scenario(s) failed with %d step failure(s)", meta.FailedScenarios, meta.FailedSteps)
		fmt.Println()
		f.printFailedScenariosTree(output.Details)
	}

	return nil
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.ScenarioFailure
	IsFile   bool
}

// printFailedScenariosTree prints a tree structure of failed scenarios
func (f *Formatter) printFailedScenariosTree(failures []domain.ScenarioFailure) {
	if len(failures) == 0 {
		return
	}

	// Group failures by file path
	fileMap := make(map[string][]domain.ScenarioFailure)
	for _, failure := range failures {
		fileMap[failure.FilePath] = append(fileMap[failure.FilePath], failure)
	}

	root := &TreeNode{
		Name:     "",
		Children: make(map[string]*TreeNode),
		IsFile:   false,
	}

	// Process each file
	for filePath, fileFailures := range fileMap {
		parts := strings.Split(strings.TrimPrefix(filePath, "./"), "/")
		current := root

		// Navigate/create tree nodes for each path part
		for i, part := range parts {
			if part == "" {
				continue
			}

			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}

			current = current.Children[part]

			// If this is the file (last part), add failures
			if i == len(parts)-1 {
				current.Failures = fileFailures
			}
		}
	}

	// Print tree recursively
	f.printTreeNode(root, "", true, true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isLast bool, isRoot bool) {
	// Sort children for consistent output
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Print children
	for i, key := range keys {
		child := node.Children[key]
		isLastChild := i == len(keys)-1

		// Determine connector
		var connector string
		if isRoot {
			connector = ""
		} else if isLastChild {
			connector = prefix + "   |_"
		} else {
			connector = prefix + "  |_"
		}

		// Print child node
		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		// Print failed scenarios if this is a file
		if child.IsFile && len(child.Failures) > 0 {
			for j, failure := range child.Failures {
				isLastCase := j == len(child.Failures)-1
				var casePrefix string
				if isLastChild {
					if isLastCase {
						casePrefix = strings.ReplaceAll(prefix, "|", " ") + "        |_"
					} else {
						casePrefix = prefix + "  |        |_"
					}
				} else {
					if isLastCase {
						casePrefix = prefix + "  |        |_"
					} else {
						casePrefix = prefix + "  |  |     |_"
					}
				}
				color.Red("%s%s", casePrefix, failure.ScenarioName)
			}
		}

		// Recursively print children
		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else if isLastChild {
			newPrefix = strings.ReplaceAll(prefix, "|", " ") + "  "
		} else {
			newPrefix = prefix + "  |"
		}
		f.printTreeNode(child, newPrefix, isLastChild, false)
	}
}

// FailedPathKeys builds the lookup set of failed scenario files from a previous run,
// keyed the same way PrintScenarioList keys discovered files.
func FailedPathKeys(failures []domain.ScenarioFailure, projectPath string) map[string]struct{} {
	keys := make(map[string]struct{}, len(failures))
	for _, failure := range failures {
		keys[normalizedPathForKey(projectPath, failure.FilePath)] = struct{}{}
	}
	return keys
}

// normalizedPathForKey returns a path key for matching files against stored failures.
func normalizedPathForKey(projectPath, path string) string {
	p := path
	if projectPath != "" {
		if rel, err := filepath.Rel(projectPath, path); err == nil && rel != ".." && !strings.HasPrefix(rel, "..") {
			p = rel
		}
	}
	p = filepath.ToSlash(p)
	p = strings.TrimSuffix(p, discovery.ScenarioSuffix)
	return strings.ToLower(p)
}

// PrintScenarioList prints a list of scenario files, optionally with their subjects.
// failedPaths is optional; if set, files in this set are marked with [F] in red (from last run).
func (f *Formatter) PrintScenarioList(files []string, showSubjects bool, failedPaths map[string]struct{}) error {
	if showSubjects {
		// Display tree view with scenario subjects
		color.Green("Found %d scenario file(s) with scenarios:\n", len(files))

		for i, file := range files {
			scenarios, err := f.parser.ParseFile(file)
			if err != nil {
				color.Red("Error reading scenario file %s: %v", file, err)
				continue
			}

			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, file)
			if err != nil {
				relPath = file
			}

			failMarker := ""
			if len(failedPaths) > 0 {
				key := normalizedPathForKey(f.config.ProjectPath, file)
				if _, ok := failedPaths[key]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			// Print scenario file as root node
			isLastFile := i == len(files)-1
			if isLastFile {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}

			// Print subjects as children
			for j, sc := range scenarios {
				isLastCase := j == len(scenarios)-1

				var prefix string
				if isLastFile {
					if isLastCase {
						prefix = "    └── "
					} else {
						prefix = "    ├── "
					}
				} else {
					if isLastCase {
						prefix = "│   └── "
					} else {
						prefix = "│   ├── "
					}
				}

				fmt.Printf("%s%s\n", prefix, color.YellowString(sc.Subject))
			}

			// Add spacing between files (except for the last one)
			if i < len(files)-1 {
				fmt.Println()
			}
		}
	} else {
		// Display simple list of scenario files
		color.Green("Found %d scenario file(s):\n", len(files))

		for i, file := range files {
			// Get relative path for cleaner display
			relPath, err := filepath.Rel(f.config.ProjectPath, file)
			if err != nil {
				relPath = file
			}

			failMarker := ""
			if len(failedPaths) > 0 {
				key := normalizedPathForKey(f.config.ProjectPath, file)
				if _, ok := failedPaths[key]; ok {
					failMarker = " " + color.RedString("[F]")
				}
			}

			if i == len(files)-1 {
				color.Cyan("└── %s%s", relPath, failMarker)
			} else {
				color.Cyan("├── %s%s", relPath, failMarker)
			}
		}
	}

	return nil
}
