package sim

import (
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
)

// Ticker runs one frame of input handling: sample buttons, update the
// session, then drop the transient input whether or not the update failed.
type Ticker struct {
	Resources  *Resources
	Input      *input.State
	Dispatcher events.Dispatcher
}

func NewTicker(res *Resources, in *input.State, d events.Dispatcher) *Ticker {
	if in == nil {
		in = &input.State{}
	}
	return &Ticker{Resources: res, Input: in, Dispatcher: d}
}

// Tick advances the session to now (milliseconds).
func (t *Ticker) Tick(now float64) (bool, error) {
	t.Input.Now = now
	t.Input.TrackButtons()
	defer t.Input.ResetTransient()
	return Update(t.Resources, t.Input, t.Dispatcher)
}
