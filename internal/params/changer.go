// Package params implements the bounded value changer used for every
// continuously adjustable simulation parameter.
package params

import "github.com/san-kum/crtsim/internal/events"

type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Changer applies one tick of input to a value it does not own. Build it,
// configure it, then call Process exactly once.
type Changer[T Number] struct {
	value       *T
	increase    bool
	decrease    bool
	progression T
	override    *T
	min, max    T
	hasMin      bool
	hasMax      bool
	trigger     func(T)
	dispatcher  events.Dispatcher
}

func New[T Number](value *T, increase, decrease bool, d events.Dispatcher) *Changer[T] {
	if d == nil {
		d = events.Nop
	}
	return &Changer[T]{value: value, increase: increase, decrease: decrease, dispatcher: d}
}

// SetProgression sets the amount added or removed this tick.
func (c *Changer[T]) SetProgression(p T) *Changer[T] {
	c.progression = p
	return c
}

// SetOverride replaces the value after progression when v is non-nil.
func (c *Changer[T]) SetOverride(v *T) *Changer[T] {
	c.override = v
	return c
}

func (c *Changer[T]) SetMin(v T) *Changer[T] {
	c.min, c.hasMin = v, true
	return c
}

func (c *Changer[T]) SetMax(v T) *Changer[T] {
	c.max, c.hasMax = v, true
	return c
}

// SetTrigger registers the handler run when the tick changed the value.
func (c *Changer[T]) SetTrigger(fn func(T)) *Changer[T] {
	c.trigger = fn
	return c
}

// Process applies progression, override and bounds, and reports whether the
// value differs from where it started.
func (c *Changer[T]) Process() bool {
	start := *c.value
	v := start
	if c.increase {
		v += c.progression
	}
	if c.decrease {
		v -= c.progression
	}
	if c.override != nil {
		v = *c.override
	}
	if c.hasMin && v < c.min {
		v = c.min
		c.dispatcher.DispatchMinimumValue(float64(c.min))
	}
	if c.hasMax && v > c.max {
		v = c.max
		c.dispatcher.DispatchMaximumValue(float64(c.max))
	}
	*c.value = v
	if v == start {
		return false
	}
	if c.trigger != nil {
		c.trigger(v)
	}
	return true
}
