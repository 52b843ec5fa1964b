package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/session"
)

const historyLen = 60

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1)
)

// Inspector runs a session headless on a counting backend and shows its
// state in the terminal. Terminals report no key releases, so every key is
// held for exactly one tick.
type Inspector struct {
	s  *session.Session
	nb *render.NullBackend

	start    time.Time
	pending  []string
	showInfo bool
	locked   bool
	fps      float32

	drawCalls []float64
	pixelDraw []float64
	lastStats render.Stats

	err  error
	done bool

	width, height int
}

func New(nb *render.NullBackend) *Inspector {
	return &Inspector{
		nb:       nb,
		showInfo: true,
		width:    100,
		height:   32,
	}
}

// Observer returns the dispatcher the session should notify.
func (m *Inspector) Observer() events.Dispatcher {
	return events.Func(func(e events.Event) {
		switch e.Kind {
		case events.ToggleInfoPanel:
			m.showInfo = !m.showInfo
		case events.FPS:
			m.fps = e.Value.(float32)
		case events.CameraMovementMode:
			m.locked = e.Value.(bool)
		}
	})
}

func (m *Inspector) Attach(s *session.Session) { m.s = s }

// Err is the draw error that stopped the inspector, if any.
func (m *Inspector) Err() error { return m.err }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Inspector) Init() tea.Cmd {
	m.start = time.Now()
	return tick()
}

func (m *Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		for _, action := range keyActions(msg) {
			if m.s.Key(action, true) {
				m.pending = append(m.pending, action)
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		now := float64(time.Time(msg).Sub(m.start).Milliseconds())
		if !m.step(now) {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// step runs one frame, then releases the keys pressed before it.
func (m *Inspector) step(now float64) bool {
	m.nb.ResetTrace()
	running, err := m.s.Frame(now)
	for _, action := range m.pending {
		m.s.Key(action, false)
	}
	m.pending = m.pending[:0]

	if err != nil {
		m.err = err
		m.done = true
		return false
	}
	if !running {
		m.done = true
		return false
	}
	m.lastStats = m.nb.Stats
	m.drawCalls = appendHistory(m.drawCalls, float64(m.nb.Stats.DrawCalls))
	m.pixelDraw = appendHistory(m.pixelDraw, float64(m.nb.Stats.PixelDraws))
	return true
}

func appendHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyLen {
		h = h[len(h)-historyLen:]
	}
	return h
}

// keyActions maps a terminal key to binding names. Upper-case letters also
// hold shift.
func keyActions(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeyLeft:
		return []string{"arrowleft"}
	case tea.KeyRight:
		return []string{"arrowright"}
	case tea.KeyUp:
		return []string{"arrowup"}
	case tea.KeyDown:
		return []string{"arrowdown"}
	case tea.KeyEsc:
		return []string{"escape"}
	case tea.KeySpace:
		return []string{"space"}
	case tea.KeyF4:
		return []string{"f4"}
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil
		}
		r := msg.Runes[0]
		if unicode.IsUpper(r) {
			return []string{"shift", string(unicode.ToLower(r))}
		}
		return []string{string(r)}
	}
	return nil
}

func (m *Inspector) View() string {
	if m.s == nil {
		return ""
	}
	var b strings.Builder

	status := green.Render("●") + " " + green.Render("running")
	if m.done {
		status = yellow.Render("○") + " " + yellow.Render("stopped")
	}
	b.WriteString("\n   " + cyan.Render("c r t s i m") + "  " + status)
	b.WriteString(dim.Render(fmt.Sprintf("  frame %d  %.0ffps", m.s.Frames(), m.fps)) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", 40)) + "\n\n")

	if m.showInfo {
		top := lipgloss.JoinHorizontal(lipgloss.Top, m.filtersPanel(), " ", m.cameraPanel(), " ", m.pipelinePanel())
		b.WriteString(indent(top) + "\n")
	}

	if len(m.drawCalls) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.drawCalls, m.pixelDraw},
			asciigraph.Height(4),
			asciigraph.Width(40),
			asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
			asciigraph.Caption("draw calls / pixel draws per frame"))
		b.WriteString(indent(chart) + "\n")
	}

	b.WriteString("\n")
	for _, msg := range m.s.Messages() {
		b.WriteString("   " + white.Render(msg) + "\n")
	}
	if m.err != nil {
		b.WriteString("   " + magenta.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + dim.Render("   wasdqe move  arrows turn  b/v blur  g/h lines  y/o/./, modes  space panel  f4 shot  esc quit") + "\n")
	return b.String()
}

func (m *Inspector) filtersPanel() string {
	f := &m.s.Resources.Filters
	rows := [][2]string{
		{"colors", f.ColorChannels.String()},
		{"geometry", f.PixelsGeometryKind.String()},
		{"shadow", m.s.Resources.Shadows.Get(f.ShadowShape).String()},
		{"layering", f.LayeringKind.String()},
		{"curvature", f.ScreenCurvatureKind.String()},
		{"resolution", f.InternalResolution.String()},
		{"texture", f.TextureInterpolation.String()},
		{"blur", fmt.Sprint(f.BlurPasses)},
		{"lines/px", fmt.Sprint(f.LinesPerPixel)},
		{"bright", fmt.Sprintf("%.2f", f.ExtraBright)},
		{"contrast", fmt.Sprintf("%.2f", f.ExtraContrast)},
		{"light", input.FormatColor(f.LightColor)},
		{"px width", fmt.Sprintf("%.3f", f.PixelWidth)},
		{"gaps", fmt.Sprintf("%.3f %.3f", f.PixelScaleY, f.PixelScaleX)},
		{"spread", fmt.Sprintf("%.3f", f.PixelGap)},
	}
	return panel.Render(table("filters", rows))
}

func (m *Inspector) cameraPanel() string {
	c := &m.s.Resources.Camera
	mode := "free"
	if m.locked {
		mode = "locked"
	}
	vec := func(v [3]float32) string { return fmt.Sprintf("%.2f %.2f %.2f", v[0], v[1], v[2]) }
	rows := [][2]string{
		{"pos", vec(c.Position())},
		{"dir", vec(c.Direction())},
		{"up", vec(c.AxisUp())},
		{"zoom", fmt.Sprintf("%.1f", c.Zoom)},
		{"mode", mode},
		{"move", fmt.Sprintf("%.2f", c.MovementSpeed)},
		{"turn", fmt.Sprintf("%.2f", c.TurningSpeed)},
		{"filter", fmt.Sprintf("%.2f", m.s.Resources.FilterSpeed)},
	}
	return panel.Render(table("camera", rows))
}

func (m *Inspector) pipelinePanel() string {
	main, bg := m.s.Drawer.Stacks()
	st := m.lastStats
	rows := [][2]string{
		{"draws", fmt.Sprint(st.DrawCalls)},
		{"pixels", fmt.Sprint(st.PixelDraws)},
		{"binds", fmt.Sprint(st.Binds)},
		{"clears", fmt.Sprint(st.Clears)},
		{"created", fmt.Sprint(st.TargetsCreated)},
		{"deleted", fmt.Sprint(st.TargetsDeleted)},
		{"main", fmt.Sprintf("%d slots", main.Slots())},
		{"bg", fmt.Sprintf("%d slots", bg.Slots())},
		{"shots", fmt.Sprint(len(m.s.Shots()))},
	}
	return panel.Render(table("pipeline", rows))
}

func table(title string, rows [][2]string) string {
	var b strings.Builder
	b.WriteString(cyan.Render(title) + "\n")
	for _, r := range rows {
		b.WriteString(dim.Render(fmt.Sprintf("%-10s", r[0])) + white.Render(r[1]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "   " + l
	}
	return strings.Join(lines, "\n")
}

// Run shows the inspector until the session ends or ctrl+c.
func (m *Inspector) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
