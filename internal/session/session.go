// Package session wires one simulation run: the input bindings, the per-tick
// updater, the drawer and the screenshot store. Hosts feed it key actions
// and call Frame once per displayed frame.
package session

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/sim"
	"github.com/san-kum/crtsim/internal/storage"
)

// MaxMessages is how many top messages Messages keeps.
const MaxMessages = 8

type Options struct {
	// Source names the input in logs and screenshot metadata.
	Source string
	Config *config.Config
	// Store receives screenshots. Nil drops them.
	Store  *storage.Store
	Logger *slog.Logger
	// Observer also receives every notification, after logging.
	Observer events.Dispatcher
}

type Session struct {
	Resources *sim.Resources
	Input     *input.State
	Bindings  *input.Bindings
	Ticker    *sim.Ticker
	Drawer    *render.Drawer

	source   string
	store    *storage.Store
	log      *slog.Logger
	disp     events.Dispatcher
	messages []string
	shots    []string
	frames   int
	tickErrs int
}

func New(video sim.VideoInput, backend render.Backend, opts Options, now float64) (*Session, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	res, err := sim.Initialize(video, crt.DefaultShadows(), now)
	if err != nil {
		return nil, err
	}
	filters := res.Filters
	if err := opts.Config.ApplyFilters(&filters); err != nil {
		return nil, err
	}
	res.SetFilters(filters)

	s := &Session{
		Resources: res,
		Input:     &input.State{},
		Bindings:  input.NewBindings(opts.Logger),
		Drawer:    render.NewDrawer(backend),
		source:    opts.Source,
		store:     opts.Store,
		log:       opts.Logger,
	}
	for key, action := range opts.Config.Bindings {
		if !s.Bindings.Has(action) {
			return nil, fmt.Errorf("session: binding %q: unknown action %q", key, action)
		}
		s.Bindings.Alias(key, action)
	}

	ds := []events.Dispatcher{events.NewLogDispatcher(opts.Logger), events.Func(s.observe)}
	if opts.Observer != nil {
		ds = append(ds, opts.Observer)
	}
	s.disp = events.Multi(ds...)
	s.Ticker = sim.NewTicker(res, s.Input, s.disp)

	sim.DispatchAll(res, s.disp)
	s.log.Info("session started",
		"source", opts.Source,
		"image", fmt.Sprintf("%dx%d", video.ImageSize.Width, video.ImageSize.Height),
		"frames", len(video.Steps),
		"viewport", fmt.Sprintf("%dx%d", video.ViewportSize.Width, video.ViewportSize.Height))
	return s, nil
}

// Key applies a key or action name. It reports whether anything was bound.
func (s *Session) Key(action string, pressed bool) bool {
	return s.Bindings.Apply(s.Input, action, pressed)
}

// Frame ticks the session to now (milliseconds) and draws it. It returns
// false once the session asked to exit. A failed tick is logged and skipped
// so the previous state is drawn again.
func (s *Session) Frame(now float64) (bool, error) {
	running, err := s.Ticker.Tick(now)
	if err != nil {
		s.tickErrs++
		s.log.Warn("tick failed", "err", err)
	}
	if !running {
		s.log.Info("session closed", "frames", s.frames)
		return false, nil
	}
	if err := s.Drawer.Draw(s.Resources, s.disp); err != nil {
		return true, err
	}
	s.frames++
	return true, nil
}

// Resize follows a window size change.
func (s *Session) Resize(width, height int) {
	s.Resources.Resize(crt.Size{Width: width, Height: height})
}

func (s *Session) observe(e events.Event) {
	switch e.Kind {
	case events.TopMessage:
		s.messages = append(s.messages, e.Value.(string))
		if len(s.messages) > MaxMessages {
			s.messages = s.messages[len(s.messages)-MaxMessages:]
		}
	case events.ScreenshotTaken:
		s.saveShot(e.Value.(events.Screenshot))
	}
}

func (s *Session) saveShot(shot events.Screenshot) {
	if s.store == nil {
		return
	}
	summary := storage.Summarize(&s.Resources.Filters, s.Resources.Shadows)
	id, err := s.store.Save(s.source, shot, summary)
	if err != nil {
		s.log.Error("screenshot not saved", "err", err)
		return
	}
	s.shots = append(s.shots, id)
	s.log.Info("screenshot saved", "id", id, "dir", s.store.Dir())
}

// Messages returns the most recent top messages, oldest first.
func (s *Session) Messages() []string { return s.messages }

// Shots returns the ids of the screenshots saved by this session.
func (s *Session) Shots() []string { return s.shots }

func (s *Session) Frames() int { return s.frames }

func (s *Session) TickErrors() int { return s.tickErrs }

func (s *Session) Release() {
	s.Drawer.Release()
}
