package debugprompt

import (
	"fmt"
	"strings"

	"stp/internal/domain"
)

// FrameFilter excludes stack frames that belong to host-internal code
// from a traceback before display.
type FrameFilter interface {
	Filter(frames []domain.Frame) []domain.Frame
}

// ModuleRootFilter drops frames whose function lives under any of the
// configured module roots. Roots are matched as prefixes of the fully
// qualified function name.
type ModuleRootFilter struct {
	roots []string
}

// NewModuleRootFilter creates a filter for the given module roots
func NewModuleRootFilter(roots ...string) *ModuleRootFilter {
	return &ModuleRootFilter{roots: roots}
}

// Filter returns the frames that do not belong to any excluded root
func (f *ModuleRootFilter) Filter(frames []domain.Frame) []domain.Frame {
	var kept []domain.Frame
	for _, frame := range frames {
		if !f.excluded(frame) {
			kept = append(kept, frame)
		}
	}
	return kept
}

func (f *ModuleRootFilter) excluded(frame domain.Frame) bool {
	for _, root := range f.roots {
		if strings.HasPrefix(frame.Function, root) {
			return true
		}
	}
	return false
}

// internalRoots hide dispatch plumbing from prompts when no custom
// filter is supplied. The runner frames that observed the failure are
// kept: they are the only real frames a step failure produces.
var internalRoots = []string{
	"stp/internal/execution.CaptureFrames",
	"stp/internal/execution.(*WorkerPool)",
	"stp/internal/events",
	"stp/internal/cli",
	"runtime.",
	"testing.",
}

// formatFrames renders at most limit frames in the Go runtime's
// traceback style: function name, then indented file:line.
func formatFrames(frames []domain.Frame, limit int) string {
	if limit > 0 && len(frames) > limit {
		frames = frames[:limit]
	}
	var b strings.Builder
	for _, f := range frames {
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
	}
	return strings.TrimRight(b.String(), " \t\n")
}
