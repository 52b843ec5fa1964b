package render

import "errors"

var (
	ErrStackUnderflow  = errors.New("render: pop or read on an empty buffer stack")
	ErrStackUnbalanced = errors.New("render: buffer stack not empty at end of frame")
	ErrStackIndex      = errors.New("render: buffer stack index out of range")
	ErrBackend         = errors.New("render: backend error")
)

// FrameError wraps a failure with the frame stage that produced it.
type FrameError struct {
	Stage   string
	Wrapped error
}

func (e *FrameError) Error() string {
	return "render: " + e.Stage + ": " + e.Wrapped.Error()
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
