package sim

import (
	"errors"

	"github.com/san-kum/crtsim/internal/input"
)

var (
	// ErrPayload indicates a custom event carried a value of the wrong type.
	ErrPayload = input.ErrPayloadType

	// ErrNoFrames indicates a video input without any animation step.
	ErrNoFrames = errors.New("sim: video input has no frames")

	// ErrInvalidVideo indicates a video input with a zero or negative size.
	ErrInvalidVideo = errors.New("sim: video input has invalid dimensions")
)

// TickError wraps an update failure with the step that produced it.
type TickError struct {
	Step    string
	Now     float64
	Wrapped error
}

func (e *TickError) Error() string {
	return "sim: " + e.Step + ": " + e.Wrapped.Error()
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
