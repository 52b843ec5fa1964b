package sim

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
)

// Update advances res by one tick of in. It reports false once the session
// should end. On error nothing is dispatched and res keeps its state, except
// that per-tick requests such as a screenshot are dropped.
func Update(res *Resources, in *input.State, d events.Dispatcher) (bool, error) {
	if d == nil {
		d = events.Nop
	}
	scratch := *res
	var buf events.Buffer
	u := &updater{res: &scratch, in: in, d: buf.Dispatcher()}

	running, err := u.run()
	if err != nil {
		res.ScreenshotRequested = false
		return true, err
	}
	*res = scratch
	buf.Flush(d)
	return running, nil
}

type updater struct {
	res *Resources
	in  *input.State
	d   events.Dispatcher
	dt  float32
}

type step struct {
	name string
	fn   func() error
}

func (u *updater) run() (bool, error) {
	u.updateTimers()
	u.updateAnimation()

	if err := u.do(
		step{"colors", u.updateColors},
		step{"blur", u.updateBlur},
		step{"lines per pixel", u.updateLinesPerPixel},
	); err != nil {
		return true, err
	}

	if u.in.Esc.JustPressed() {
		u.d.DispatchExitingSession()
		return false, nil
	}
	if u.in.Space.JustPressed() {
		u.d.DispatchToggleInfoPanel()
	}

	u.updatePixelPulse()

	if err := u.do(
		step{"filters", u.updateFilters},
		step{"speeds", u.updateSpeeds},
		step{"camera", u.updateCamera},
	); err != nil {
		return true, err
	}

	u.res.ScreenshotRequested = u.in.Screenshot.JustReleased()
	return true, nil
}

func (u *updater) do(steps ...step) error {
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return &TickError{Step: s.name, Now: u.in.Now, Wrapped: err}
		}
	}
	return nil
}

func (u *updater) updateTimers() {
	t := &u.res.Timers
	u.dt = float32((u.in.Now - t.LastTime) / 1000)
	elapsed := u.in.Now - t.LastSecond
	t.LastTime = u.in.Now
	if elapsed >= 1000 {
		u.d.DispatchFPS(float32(t.FrameCount))
		t.LastSecond = u.in.Now
		t.FrameCount = 0
	} else {
		t.FrameCount++
	}
}

func (u *updater) updateAnimation() {
	a := &u.res.Animation
	a.NeedsBufferDataLoad = !a.loaded
	a.loaded = true

	delay := a.Frame().Delay
	if len(a.Steps) < 2 || delay <= 0 {
		return
	}
	next := a.LastFrameChange + delay
	if u.in.Now < next {
		return
	}
	a.LastFrameChange = next
	last := a.CurrentFrame
	a.CurrentFrame = (a.CurrentFrame + 1) % len(a.Steps)
	if last != a.CurrentFrame {
		a.NeedsBufferDataLoad = true
	}
}

func (u *updater) updatePixelPulse() {
	f := &u.res.Filters
	if u.in.ShowingPixelsPulse.JustPressed() {
		f.ShowingPixelsPulse = !f.ShowingPixelsPulse
		msg := "Screen wave OFF."
		if f.ShowingPixelsPulse {
			msg = "Screen wave ON."
		}
		u.d.DispatchTopMessage(msg)
	}
	if f.ShowingPixelsPulse {
		f.PixelsPulse += u.dt * crt.PulseRate
	} else {
		f.PixelsPulse = 0
	}
}

func (u *updater) message(format string, args ...any) {
	u.d.DispatchTopMessage(fmt.Sprintf(format, args...))
}
