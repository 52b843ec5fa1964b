package render

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
)

// BufferStack is a stack of render targets whose slots are pooled. Popping
// keeps the slot and its content, so a pass can still read the layers it
// just popped through Nth.
type BufferStack struct {
	name  string
	dev   Device
	slots []*Target
	top   int
	spec  TargetSpec
}

func NewBufferStack(name string, dev Device) *BufferStack {
	return &BufferStack{name: name, dev: dev, top: -1}
}

// The setters only affect later pushes.

func (s *BufferStack) SetResolution(width, height int) {
	s.spec.Width, s.spec.Height = width, height
}

func (s *BufferStack) SetDepthbuffer(depth bool) { s.spec.Depth = depth }

func (s *BufferStack) SetInterpolation(i crt.TextureInterpolation) { s.spec.Interpolation = i }

// Push moves the top up one slot, allocating a target when the slot is new
// or its signature differs from the current configuration.
func (s *BufferStack) Push() error {
	idx := s.top + 1
	if idx < len(s.slots) && s.slots[idx].Spec == s.spec {
		s.top = idx
		return nil
	}
	t, err := s.dev.CreateTarget(s.spec)
	if err != nil {
		return fmt.Errorf("%s stack: push %d: %w", s.name, idx, err)
	}
	if idx < len(s.slots) {
		s.dev.DeleteTarget(s.slots[idx])
		s.slots[idx] = t
	} else {
		s.slots = append(s.slots, t)
	}
	s.top = idx
	return nil
}

func (s *BufferStack) Pop() error {
	if s.top < 0 {
		return fmt.Errorf("%s stack: %w", s.name, ErrStackUnderflow)
	}
	s.top--
	return nil
}

func (s *BufferStack) Current() (*Target, error) {
	if s.top < 0 {
		return nil, fmt.Errorf("%s stack: %w", s.name, ErrStackUnderflow)
	}
	return s.slots[s.top], nil
}

// Nth reads the slot k above the top without popping: 0 is the top, 1 the
// most recently popped slot, and so on.
func (s *BufferStack) Nth(k int) (*Target, error) {
	idx := s.top + k
	if idx < 0 || idx >= len(s.slots) {
		return nil, fmt.Errorf("%s stack: nth(%d) with top %d of %d: %w", s.name, k, s.top, len(s.slots), ErrStackIndex)
	}
	return s.slots[idx], nil
}

func (s *BufferStack) BindCurrent() error {
	t, err := s.Current()
	if err != nil {
		return err
	}
	s.dev.BindTarget(t)
	return nil
}

func (s *BufferStack) AssertEmpty() error {
	if s.top != -1 {
		return fmt.Errorf("%s stack: %d entries left: %w", s.name, s.top+1, ErrStackUnbalanced)
	}
	return nil
}

// Depth is the number of pushed entries.
func (s *BufferStack) Depth() int { return s.top + 1 }

// Slots is the number of pooled targets.
func (s *BufferStack) Slots() int { return len(s.slots) }

// Release deletes every pooled target.
func (s *BufferStack) Release() {
	for _, t := range s.slots {
		s.dev.DeleteTarget(t)
	}
	s.slots = nil
	s.top = -1
}
