package sim

import (
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
)

func testVideo(frames int, delay float64) VideoInput {
	steps := make([]AnimationStep, frames)
	for i := range steps {
		steps[i] = AnimationStep{Pixels: make([]byte, 4*4*4), Delay: delay}
	}
	return VideoInput{
		Steps:          steps,
		ImageSize:      crt.Size{Width: 4, Height: 4},
		BackgroundSize: crt.Size{Width: 4, Height: 4},
		ViewportSize:   crt.Size{Width: 640, Height: 480},
		PixelWidth:     1,
		MaxTextureSize: 8192,
	}
}

// session drives a Ticker the way a host would: key actions go through
// the binding table, time advances 16ms per tick.
type session struct {
	res      *Resources
	ticker   *Ticker
	bindings *input.Bindings
	rec      *events.Recorder
	now      float64
}

func newSession(video VideoInput) *session {
	res, err := Initialize(video, crt.DefaultShadows(), 0)
	if err != nil {
		panic(err)
	}
	rec := events.NewRecorder()
	return &session{
		res:      res,
		ticker:   NewTicker(res, &input.State{}, rec.Dispatcher()),
		bindings: input.NewBindings(nil),
		rec:      rec,
	}
}

func (s *session) key(action string, pressed bool) {
	s.bindings.Apply(s.ticker.Input, action, pressed)
}

func (s *session) tick() (bool, error) {
	s.now += 16
	return s.ticker.Tick(s.now)
}

// tap presses action for one tick and releases it on the next.
func (s *session) tap(action string) error {
	s.key(action, true)
	if _, err := s.tick(); err != nil {
		return err
	}
	s.key(action, false)
	_, err := s.tick()
	return err
}
