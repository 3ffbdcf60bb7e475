package domain

// Frame is a single stack frame captured at the point of failure
type Frame struct {
	Function string // Fully qualified function name (import path included)
	File     string // Absolute source file path
	Line     int
}

// ExcInfo is a captured failure: the error value plus the call stack
// recorded when the failure was observed.
type ExcInfo struct {
	Err    error
	Frames []Frame
}

// AssertionError is a step assertion failure. Left, Operator and Right
// carry the structured comparison when the assertion recorded one, so
// reports can show the operands even when Msg is generic.
type AssertionError struct {
	Msg      string
	Left     any
	Operator string
	Right    any
	LeftSet  bool
	RightSet bool
}

// NewAssertionError builds a structured comparison failure (left op right).
func NewAssertionError(msg string, left any, operator string, right any) *AssertionError {
	return &AssertionError{
		Msg:      msg,
		Left:     left,
		Operator: operator,
		Right:    right,
		LeftSet:  true,
		RightSet: true,
	}
}

func (e *AssertionError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "assertion failed"
}
