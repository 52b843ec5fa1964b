package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/sim"
	"github.com/san-kum/crtsim/internal/storage"
)

func testVideo() sim.VideoInput {
	return sim.VideoInput{
		Steps:          []sim.AnimationStep{{Pixels: make([]byte, 4*4*4)}},
		ImageSize:      crt.Size{Width: 4, Height: 4},
		BackgroundSize: crt.Size{Width: 4, Height: 4},
		ViewportSize:   crt.Size{Width: 320, Height: 240},
		PixelWidth:     1,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(t *testing.T, cfg *config.Config, store *storage.Store, rec *events.Recorder) (*Session, *render.NullBackend) {
	t.Helper()
	nb := render.NewNullBackend()
	opts := Options{Source: "test.png", Config: cfg, Store: store, Logger: quietLogger()}
	if rec != nil {
		opts.Observer = rec.Dispatcher()
	}
	s, err := New(testVideo(), nb, opts, 0)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, nb
}

// tap presses action for one frame and releases it on the next.
func tap(t *testing.T, s *Session, action string, now *float64) {
	t.Helper()
	if !s.Key(action, true) {
		t.Fatalf("action %q is not bound", action)
	}
	frame(t, s, now)
	s.Key(action, false)
	frame(t, s, now)
}

func frame(t *testing.T, s *Session, now *float64) bool {
	t.Helper()
	*now += 16
	running, err := s.Frame(*now)
	if err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	return running
}

func TestSessionStartsInSync(t *testing.T) {
	rec := events.NewRecorder()
	s, _ := newSession(t, nil, nil, rec)
	if rec.Count(events.BlurLevel) != 1 || rec.Count(events.CameraZoom) != 1 {
		t.Error("every value should be dispatched once at start")
	}
	if s.Frames() != 0 {
		t.Error("no frame drawn yet")
	}
}

func TestSessionAppliesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preset = "sharp"
	cfg.Bindings = map[string]string{"f5": "reset-filters+reset-speeds"}
	s, _ := newSession(t, cfg, nil, nil)

	if s.Resources.Filters.BlurPasses != 0 || s.Resources.Filters.ShadowShape != 0 {
		t.Error("preset not applied")
	}

	var now float64
	tap(t, s, "b", &now)
	if s.Resources.Filters.BlurPasses != 1 {
		t.Fatalf("blur should increase, got %d", s.Resources.Filters.BlurPasses)
	}
	tap(t, s, "f5", &now)
	if s.Resources.Filters.BlurPasses != 0 {
		t.Error("reset should restore the preset, not the built-in defaults")
	}
}

func TestSessionRejectsUnknownBinding(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bindings = map[string]string{"f5": "self-destruct"}
	_, err := New(testVideo(), render.NewNullBackend(), Options{Config: cfg, Logger: quietLogger()}, 0)
	if err == nil {
		t.Error("expected an unknown action error")
	}
}

func TestSessionDrawsAndKeepsMessages(t *testing.T) {
	s, nb := newSession(t, nil, nil, nil)
	var now float64
	for i := 0; i < MaxMessages+2; i++ {
		tap(t, s, "y", &now)
	}
	if s.Frames() != 2*(MaxMessages+2) {
		t.Errorf("unexpected frame count %d", s.Frames())
	}
	if nb.Stats.FramesLoaded != 1 {
		t.Errorf("a still image uploads once, got %d", nb.Stats.FramesLoaded)
	}
	if got := len(s.Messages()); got != MaxMessages {
		t.Errorf("expected %d messages, got %d", MaxMessages, got)
	}
}

func TestSessionSavesScreenshots(t *testing.T) {
	store := storage.New(t.TempDir())
	s, _ := newSession(t, nil, store, nil)

	var now float64
	tap(t, s, "f4", &now)
	if len(s.Shots()) != 1 {
		t.Fatalf("expected one screenshot, got %v", s.Shots())
	}
	meta, err := store.Load(s.Shots()[0])
	if err != nil {
		t.Fatal(err)
	}
	if meta.Source != "test.png" || meta.Width != 320 || meta.Height != 240 {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestSessionBadTickSavesNoExtraScreenshot(t *testing.T) {
	store := storage.New(t.TempDir())
	s, nb := newSession(t, nil, store, nil)

	var now float64
	tap(t, s, "f4", &now)
	reads := nb.Stats.ReadBacks
	s.Input.SetCustomEvent("event_kind:blur_level", "oops")
	frame(t, s, &now)

	if s.TickErrors() != 1 {
		t.Fatalf("expected one tick error, got %d", s.TickErrors())
	}
	if len(s.Shots()) != 1 {
		t.Errorf("expected a single screenshot, got %v", s.Shots())
	}
	if nb.Stats.ReadBacks != reads {
		t.Errorf("the failed tick read back %d frames", nb.Stats.ReadBacks-reads)
	}
	shots, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 1 {
		t.Errorf("expected one shot on disk, got %d", len(shots))
	}
}

func TestSessionEscapeEnds(t *testing.T) {
	rec := events.NewRecorder()
	s, _ := newSession(t, nil, nil, rec)
	var now float64
	s.Key("escape", true)
	if frame(t, s, &now) {
		t.Error("escape should end the session")
	}
	if rec.Count(events.ExitingSession) != 1 {
		t.Error("exit not notified")
	}
}

func TestSessionSkipsBadTicks(t *testing.T) {
	s, _ := newSession(t, nil, nil, nil)
	var now float64
	s.Input.SetCustomEvent("event_kind:blur_level", "lots")
	if !frame(t, s, &now) {
		t.Fatal("a bad payload must not end the session")
	}
	if s.TickErrors() != 1 {
		t.Errorf("expected one tick error, got %d", s.TickErrors())
	}
	if s.Frames() != 1 {
		t.Error("the previous state should still be drawn")
	}
}
