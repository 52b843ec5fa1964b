package input

import (
	"log/slog"
	"strings"
)

type setter func(s *State, pressed bool)

// Bindings maps action names (key names or named features) to input fields.
type Bindings struct {
	actions map[string]setter
	logger  *slog.Logger
}

func NewBindings(logger *slog.Logger) *Bindings {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Bindings{actions: make(map[string]setter), logger: logger}
	b.registerDefaults()
	return b
}

// Register binds every name to fn, replacing any previous binding.
func (b *Bindings) Register(fn func(s *State, pressed bool), names ...string) {
	for _, n := range names {
		b.actions[strings.ToLower(n)] = fn
	}
}

// Alias makes name behave exactly like target, which may be composite.
func (b *Bindings) Alias(name, target string) {
	b.actions[strings.ToLower(name)] = func(s *State, pressed bool) {
		b.Apply(s, target, pressed)
	}
}

// Has reports whether action resolves to a binding, composites included.
func (b *Bindings) Has(action string) bool {
	action = strings.ToLower(action)
	if _, ok := b.actions[action]; ok {
		return true
	}
	if !strings.Contains(action, "+") {
		return false
	}
	for _, part := range strings.Split(action, "+") {
		if part != "" && !b.Has(part) {
			return false
		}
	}
	return true
}

// Apply sets the input behind action. Exact names win over composites so
// "+" stays a key of its own; otherwise "a+b" applies a and b. Unknown
// actions are logged and ignored. It reports whether anything was bound.
func (b *Bindings) Apply(s *State, action string, pressed bool) bool {
	action = strings.ToLower(action)
	if fn, ok := b.actions[action]; ok {
		fn(s, pressed)
		return true
	}
	if strings.Contains(action, "+") {
		used := false
		for _, part := range strings.Split(action, "+") {
			if part == "" {
				continue
			}
			if b.Apply(s, part, pressed) {
				used = true
			}
		}
		return used
	}
	if pressed {
		b.logger.Debug("ignored key", "action", action)
	}
	return false
}

func unlessFocused(fn setter) setter {
	return func(s *State, pressed bool) {
		if !s.InputFocused {
			fn(s, pressed)
		}
	}
}

func (b *Bindings) registerDefaults() {
	reg := func(fn setter, names ...string) { b.Register(fn, names...) }

	reg(unlessFocused(func(s *State, p bool) { s.NextLayeringKind.Input = p }), ",")
	reg(unlessFocused(func(s *State, p bool) { s.ToggleShadowKind.Input = p }), ".")
	reg(func(s *State, p bool) { s.NextLayeringKind.Input = p }, "feature-change-screen-layering-type")
	reg(func(s *State, p bool) { s.ToggleShadowKind.Input = p }, "feature-change-pixel-shadow")
	reg(unlessFocused(func(s *State, p bool) { s.RotateLeft = p }), "+")
	reg(unlessFocused(func(s *State, p bool) { s.RotateRight = p }), "-")
	reg(func(s *State, p bool) { s.InputFocused = p }, "input_focused")

	reg(func(s *State, p bool) { s.WalkLeft = p }, "a")
	reg(func(s *State, p bool) { s.WalkRight = p }, "d")
	reg(func(s *State, p bool) { s.WalkForward = p }, "w")
	reg(func(s *State, p bool) { s.WalkBackward = p }, "s")
	reg(func(s *State, p bool) { s.WalkUp = p }, "q")
	reg(func(s *State, p bool) { s.WalkDown = p }, "e")
	reg(func(s *State, p bool) { s.TurnLeft = p }, "arrowleft", "←", "◀")
	reg(func(s *State, p bool) { s.TurnRight = p }, "arrowright", "→", "▶")
	reg(func(s *State, p bool) { s.TurnUp = p }, "arrowup", "↑", "▲")
	reg(func(s *State, p bool) { s.TurnDown = p }, "arrowdown", "↓", "▼")

	reg(func(s *State, p bool) { s.SpeedUp.Input = p }, "f", "feature-change-move-speed-inc")
	reg(func(s *State, p bool) { s.SpeedDown.Input = p }, "r", "feature-change-move-speed-dec")
	reg(func(s *State, p bool) { s.Shift = p; s.SpeedUp.Input = p }, "feature-change-pixel-speed-inc")
	reg(func(s *State, p bool) { s.Shift = p; s.SpeedDown.Input = p }, "feature-change-pixel-speed-dec")
	reg(func(s *State, p bool) { s.ResetSpeeds = p }, "t", "reset-speeds")

	reg(func(s *State, p bool) { s.CameraZoom.Increase = p }, "camera-zoom-inc")
	reg(func(s *State, p bool) { s.CameraZoom.Decrease = p }, "camera-zoom-dec")
	reg(func(s *State, p bool) { s.PixelScaleX.Increase = p }, "u", "pixel-vertical-gap-inc")
	reg(func(s *State, p bool) { s.PixelScaleX.Decrease = p }, "i", "pixel-vertical-gap-dec")
	reg(func(s *State, p bool) { s.PixelScaleY.Increase = p }, "j", "pixel-horizontal-gap-inc")
	reg(func(s *State, p bool) { s.PixelScaleY.Decrease = p }, "k", "pixel-horizontal-gap-dec")
	reg(func(s *State, p bool) { s.PixelWidth.Increase = p }, "n", "pixel-width-inc")
	reg(func(s *State, p bool) { s.PixelWidth.Decrease = p }, "m", "pixel-width-dec")
	reg(func(s *State, p bool) { s.Shift = p; s.PixelWidth.Increase = p }, "pixel-spread-inc")
	reg(func(s *State, p bool) { s.Shift = p; s.PixelWidth.Decrease = p }, "pixel-spread-dec")
	reg(func(s *State, p bool) { s.Blur.Increase.Input = p }, "b", "blur-level-inc")
	reg(func(s *State, p bool) { s.Blur.Decrease.Input = p }, "v", "blur-level-dec", "bluer-level-dec")
	reg(func(s *State, p bool) { s.Contrast.Increase = p }, "<", "&lt;", "pixel-contrast-inc")
	reg(func(s *State, p bool) { s.Contrast.Decrease = p }, "z", "pixel-contrast-dec")
	reg(func(s *State, p bool) { s.Bright.Increase = p }, "c", "pixel-brightness-inc")
	reg(func(s *State, p bool) { s.Bright.Decrease = p }, "x", "pixel-brightness-dec")
	reg(func(s *State, p bool) { s.LPP.Increase.Input = p }, "g", "lines-per-pixel-inc")
	reg(func(s *State, p bool) { s.LPP.Decrease.Input = p }, "h", "lines-per-pixel-dec")

	reg(func(s *State, p bool) { s.NextColorRepresentationKind.Input = p }, "y", "feature-change-color-representation")
	reg(func(s *State, p bool) { s.NextPixelGeometryKind.Input = p }, "o", "feature-change-pixel-geometry")
	reg(func(s *State, p bool) { s.NextScreenCurvature.Input = p }, "l", "feature-change-screen-curvature")
	reg(func(s *State, p bool) { s.NextInternalResolution.Input = p }, "feature-change-internal-resolution")
	reg(func(s *State, p bool) { s.NextTextureInterpolation.Input = p }, "feature-change-texture-interpolation")
	reg(func(s *State, p bool) { s.CameraMovementMode.Input = p }, "feature-camera-movement-mode")
	reg(func(s *State, p bool) { s.ShowingPixelsPulse.Input = p }, "p", "feature-pulsation")
	reg(func(s *State, p bool) { s.ToggleBackground.Input = p }, "toggle-background")

	reg(func(s *State, p bool) { s.Shift = p }, "shift")
	reg(func(s *State, p bool) { s.Alt = p }, "alt")
	reg(func(s *State, p bool) { s.Space.Input = p }, " ", "space")
	reg(func(s *State, p bool) { s.Esc.Input = p }, "escape", "esc", "feature-quit")
	reg(func(s *State, p bool) { s.Screenshot.Input = p }, "f4", "screenshot")
	reg(func(s *State, p bool) { s.ResetPosition = p }, "reset-camera")
	reg(func(s *State, p bool) { s.ResetFilters = p }, "reset-filters")
	reg(func(s *State, p bool) { s.MouseClick.Input = p }, "mouse-click")
}
