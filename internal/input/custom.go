package input

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPayloadType is returned when a custom event carries a value of the
// wrong type for its kind.
var ErrPayloadType = errors.New("input: custom event payload has wrong type")

// PayloadError names the custom event and the type it should have carried.
type PayloadError struct {
	Kind string
	Want string
	Got  any
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("input: custom event %q: expected %s, got %T", e.Kind, e.Want, e.Got)
}

func (e *PayloadError) Unwrap() error { return ErrPayloadType }

const customPrefix = "event_kind:"

// CustomEvent is an externally injected parameter override. Kind has the
// "event_kind:" prefix removed; an empty Kind means no event.
type CustomEvent struct {
	Kind  string
	Value any
}

// SetCustomEvent stores an override for the current tick.
func (s *State) SetCustomEvent(kind string, value any) {
	s.Custom = CustomEvent{Kind: strings.TrimPrefix(kind, customPrefix), Value: value}
}

// Is reports whether the event targets kind.
func (e CustomEvent) Is(kind string) bool { return e.Kind == kind }

func (e CustomEvent) fail(want string) error {
	return &PayloadError{Kind: e.Kind, Want: want, Got: e.Value}
}

// Float returns a numeric payload.
func (e CustomEvent) Float() (float64, error) {
	switch v := e.Value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, e.fail("number")
}

// Int returns a numeric payload truncated to an integer.
func (e CustomEvent) Int() (int, error) {
	f, err := e.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// Color accepts a number or a "#RRGGBB" / "0xRRGGBB" string.
func (e CustomEvent) Color() (int32, error) {
	if s, ok := e.Value.(string); ok {
		c, err := ParseColor(s)
		if err != nil {
			return 0, e.fail("colour")
		}
		return c, nil
	}
	f, err := e.Float()
	if err != nil {
		return 0, e.fail("colour")
	}
	return int32(f), nil
}

// Variant returns the payload as a string: either a variant name or a
// decimal index.
func (e CustomEvent) Variant() (string, error) {
	switch v := e.Value.(type) {
	case string:
		return v, nil
	case float64, float32, int, int32, int64:
		n, _ := e.Int()
		return strconv.Itoa(n), nil
	}
	return "", e.fail("variant name or index")
}

// ParseColor parses "#RRGGBB", "0xRRGGBB" or "RRGGBB".
func ParseColor(s string) (int32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("input: invalid colour %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("input: colour %q out of range", s)
	}
	return int32(v), nil
}

// FormatColor renders a colour as "#RRGGBB".
func FormatColor(c int32) string {
	return fmt.Sprintf("#%06X", c&0xFFFFFF)
}
