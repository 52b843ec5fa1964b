package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/session"
	"github.com/san-kum/crtsim/internal/sim"
)

func newInspector(t *testing.T) *Inspector {
	t.Helper()
	nb := render.NewNullBackend()
	m := New(nb)
	video := sim.VideoInput{
		Steps:          []sim.AnimationStep{{Pixels: make([]byte, 2*2*4)}},
		ImageSize:      crt.Size{Width: 2, Height: 2},
		BackgroundSize: crt.Size{Width: 2, Height: 2},
		ViewportSize:   crt.Size{Width: 200, Height: 100},
		PixelWidth:     1,
	}
	s, err := session.New(video, nb, session.Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Observer: m.Observer(),
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	m.Attach(s)
	m.Init()
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyActions(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, "arrowleft"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "escape"},
		{tea.KeyMsg{Type: tea.KeySpace}, "space"},
		{tea.KeyMsg{Type: tea.KeyF4}, "f4"},
		{runes("b"), "b"},
		{runes("N"), "shift+n"},
		{runes("ab"), ""},
	}
	for _, tt := range tests {
		got := strings.Join(keyActions(tt.msg), "+")
		if got != tt.want {
			t.Errorf("keyActions(%v) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestInspectorTicksAndReleases(t *testing.T) {
	m := newInspector(t)
	m.Update(runes("b"))
	if len(m.pending) != 1 {
		t.Fatalf("expected one held key, got %v", m.pending)
	}

	_, cmd := m.Update(tickMsg(m.start.Add(16 * time.Millisecond)))
	if cmd == nil {
		t.Fatal("a running inspector keeps ticking")
	}
	if len(m.pending) != 0 || m.s.Input.Blur.Increase.Input {
		t.Error("keys should be released after the tick")
	}
	if m.s.Resources.Filters.BlurPasses != 2 {
		t.Errorf("blur should increase, got %d", m.s.Resources.Filters.BlurPasses)
	}
	if len(m.drawCalls) != 1 || m.drawCalls[0] == 0 {
		t.Errorf("draw calls not recorded: %v", m.drawCalls)
	}

	view := m.View()
	for _, want := range []string{"filters", "camera", "pipeline", "Blur level: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestInspectorSpaceTogglesPanels(t *testing.T) {
	m := newInspector(t)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tickMsg(m.start.Add(16 * time.Millisecond)))
	if m.showInfo {
		t.Error("space should hide the panels")
	}
	if strings.Contains(m.View(), "pipeline") {
		t.Error("hidden panels should not render")
	}
}

func TestInspectorQuitsOnEscape(t *testing.T) {
	m := newInspector(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := m.Update(tickMsg(m.start.Add(16 * time.Millisecond)))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("escape should quit")
	}
	if !m.done {
		t.Error("inspector should be stopped")
	}
}
