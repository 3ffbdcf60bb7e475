package debugprompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"stp/internal/domain"
	"stp/internal/version"
)

// DefaultTracebackLimit caps the stack frames rendered in a prompt
const DefaultTracebackLimit = 10

// ErrNoFailure is returned when a prompt is requested for a scenario
// result without any captured failure. That is a contract violation in
// the host integration, not a condition the builder degrades around.
var ErrNoFailure = errors.New("debugprompt: scenario result has no captured failure")

// systemPrompt frames the assistant's task. Fixed across invocations.
const systemPrompt = `You are a senior test automation engineer helping me debug a failed scenario.
– Analyse the information below.
– Identify the most likely root cause.
– Propose the **smallest** scenario or code change that would make it pass.
– Answer in markdown with the sections:
  1. **Root cause**
  2. **Suggested fix (code)** — show only the diff or patched snippet
  3. **Why this works**`

// Options customizes a Builder
type Options struct {
	// IncludeVariables adds the scenario scope to the prompt. Off by
	// default because scope values may be large or sensitive.
	IncludeVariables bool
	// TracebackLimit caps rendered stack frames; zero means the default.
	TracebackLimit int
	// FrameFilter overrides the default host-internal frame filter.
	FrameFilter FrameFilter
}

// Builder assembles AI-ready debug prompts for failed scenarios.
// It collects runtime information, scenario details, steps, source,
// traceback and variables into a fixed markdown document.
type Builder struct {
	includeVariables bool
	tbLimit          int
	filter           FrameFilter
}

// NewBuilder creates a Builder with the given options
func NewBuilder(opts Options) *Builder {
	tbLimit := opts.TracebackLimit
	if tbLimit <= 0 {
		tbLimit = DefaultTracebackLimit
	}
	return &Builder{
		includeVariables: opts.IncludeVariables,
		tbLimit:          tbLimit,
		filter:           opts.FrameFilter,
	}
}

// Build renders the debug prompt for a failed scenario result.
// projectRoot is the absolute project path, used only for display
// normalization of locations and traceback paths.
func (b *Builder) Build(result *domain.ScenarioResult, projectRoot string) (string, error) {
	excInfo := firstError(result)
	if excInfo == nil {
		return "", ErrNoFailure
	}

	source, startLine, _ := scenarioSource(result.Scenario)

	var sb strings.Builder
	sb.WriteString("## SYSTEM\n")
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n## SCENARIO\n")
	fmt.Fprintf(&sb, "- **Name:** %s\n", result.Scenario.Subject)
	fmt.Fprintf(&sb, "- **Location:** %s\n", scenarioLocation(result.Scenario, projectRoot, startLine))
	fmt.Fprintf(&sb, "- **Runtime:** %s\n", runtimeInfo())
	sb.WriteString("\n## STEPS\n")
	sb.WriteString(formatSteps(result.StepResults))
	sb.WriteString("\n\n## SOURCE\n```yaml\n")
	sb.WriteString(source)
	sb.WriteString("\n```\n\n## FAILURE\n")
	sb.WriteString(cleanupPaths(formatErrorMessage(excInfo.Err), projectRoot))
	sb.WriteString("\n\n## TRACEBACK\n```\n")
	sb.WriteString(cleanupPaths(b.formatTraceback(excInfo), projectRoot))
	sb.WriteString("\n```\n\n## VARIABLES\n")
	if b.includeVariables {
		sb.WriteString(formatVariables(result.Scope))
	} else {
		sb.WriteString("—")
	}

	return sb.String(), nil
}

// firstError returns the captured failure of the first failed step
func firstError(result *domain.ScenarioResult) *domain.ExcInfo {
	for _, step := range result.StepResults {
		if step.ExcInfo != nil {
			return step.ExcInfo
		}
	}
	return nil
}

// scenarioLocation renders a path:line locator for the scenario. The
// path is shown relative to the project root; a scenario outside the
// root keeps its absolute path rather than a misleading ../ chain.
func scenarioLocation(sc *domain.Scenario, projectRoot string, startLine int) string {
	path := sc.Path
	if rel, err := filepath.Rel(projectRoot, sc.Path); err == nil && !strings.HasPrefix(rel, "..") {
		path = rel
	}
	return fmt.Sprintf("%s:%d", path, startLine)
}

// scenarioSource recovers the scenario source text with line numbers.
// Ordered attempts, first success wins: the parsed document block with
// its original line numbers, then the whole backing file numbered from
// line 1, then an empty block with -1 sentinels.
func scenarioSource(sc *domain.Scenario) (source string, start, end int) {
	if sc.Source != "" && sc.StartLine >= 1 {
		lines := dedent(strings.Split(sc.Source, "\n"))
		return numberLines(lines, sc.StartLine), sc.StartLine, sc.StartLine + len(lines) - 1
	}

	raw, err := os.ReadFile(sc.Path)
	if err != nil {
		return "", -1, -1
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	return numberLines(lines, 1), 1, len(lines)
}

// dedent strips the common leading whitespace of all non-blank lines
func dedent(lines []string) []string {
	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= margin {
			out[i] = line[margin:]
		} else {
			out[i] = strings.TrimLeft(line, " \t")
		}
	}
	return out
}

// numberLines prefixes each line with its number, left-padded to 4 characters
func numberLines(lines []string, start int) string {
	numbered := make([]string, len(lines))
	for i, line := range lines {
		numbered[i] = fmt.Sprintf("%4d: %s", start+i, line)
	}
	return strings.Join(numbered, "\n")
}

// formatSteps renders each executed step with status and duration
func formatSteps(steps []domain.StepResult) string {
	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("- [%s] %s (%.2fs)", step.Status, step.Name, step.Elapsed.Seconds())
	}
	return strings.Join(lines, "\n")
}

// formatErrorMessage renders the failure message. Assertion failures
// with structured operands surface those operands even when the error's
// own message is generic.
func formatErrorMessage(err error) string {
	var assertErr *domain.AssertionError
	if !errors.As(err, &assertErr) || !assertErr.LeftSet {
		return err.Error()
	}
	if !assertErr.RightSet || assertErr.Operator == "" {
		return fmt.Sprintf("AssertionError: assert %s", repr(assertErr.Left))
	}
	return fmt.Sprintf("AssertionError: assert %s %s %s",
		repr(assertErr.Left), assertErr.Operator, repr(assertErr.Right))
}

// formatTraceback filters host-internal frames and renders the rest.
// The filter is built lazily and reused across invocations.
func (b *Builder) formatTraceback(excInfo *domain.ExcInfo) string {
	if b.filter == nil {
		b.filter = NewModuleRootFilter(internalRoots...)
	}
	return formatFrames(b.filter.Filter(excInfo.Frames), b.tbLimit)
}

// formatVariables renders the scenario scope, skipping internal bindings
func formatVariables(scope domain.Scope) string {
	var lines []string
	for _, v := range scope {
		if strings.HasPrefix(v.Name, "_") {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s = %s", v.Name, repr(v.Value)))
	}
	if len(lines) == 0 {
		return "No variables found"
	}
	return strings.Join(lines, "\n")
}

// runtimeInfo summarizes the runtime: Go version, stp version, platform
func runtimeInfo() string {
	return fmt.Sprintf("Go %s · stp %s · %s/%s", goVersion(), version.Version, runtime.GOOS, runtime.GOARCH)
}

// goVersion returns the bare major.minor.patch of the running Go
func goVersion() string {
	v := runtime.Version()
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	return strings.TrimPrefix(v, "go")
}

// cleanupPaths replaces every occurrence of the project root with "."
// so prompts stay readable and machine-independent. Plain textual
// substitution, applied identically to failure and traceback text.
func cleanupPaths(s, projectRoot string) string {
	root := strings.TrimRight(projectRoot, string(os.PathSeparator))
	if root == "" || !filepath.IsAbs(root) {
		return s
	}
	return strings.ReplaceAll(s, root, ".")
}

// repr renders a value in Go debug notation (strings quoted, composites
// as Go syntax), distinguishing "1" from 1 in prompts.
func repr(v any) string {
	return fmt.Sprintf("%#v", v)
}
