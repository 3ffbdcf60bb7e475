package execution

import (
	"runtime"

	"stp/internal/domain"
)

const maxCapturedFrames = 64

// CaptureFrames records the current call stack, innermost frame first.
// skip counts additional callers to drop beyond CaptureFrames itself.
func CaptureFrames(skip int) []domain.Frame {
	pcs := make([]uintptr, maxCapturedFrames)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	var captured []domain.Frame
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			captured = append(captured, domain.Frame{
				Function: frame.Function,
				File:     frame.File,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return captured
}
