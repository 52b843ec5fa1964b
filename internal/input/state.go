package input

// State is everything the host reports for one tick. Booleans are held
// levels; Buttons add edge detection; the mouse deltas, scroll and custom
// event are transient and cleared by ResetTransient.
type State struct {
	Now float64 // milliseconds

	WalkLeft, WalkRight       bool
	WalkForward, WalkBackward bool
	WalkUp, WalkDown          bool
	TurnLeft, TurnRight       bool
	TurnUp, TurnDown          bool
	RotateLeft, RotateRight   bool

	MouseClick     Button
	MousePositionX float32
	MousePositionY float32
	MouseScrollY   float32

	CameraZoom  IncDec[bool]
	PixelScaleX IncDec[bool]
	PixelScaleY IncDec[bool]
	PixelWidth  IncDec[bool] // with Shift: pixel spread
	Bright      IncDec[bool]
	Contrast    IncDec[bool]
	Blur        IncDec[Button]
	LPP         IncDec[Button]

	SpeedUp   Button
	SpeedDown Button

	NextColorRepresentationKind Button
	NextPixelGeometryKind       Button
	ToggleShadowKind            Button
	NextLayeringKind            Button
	NextScreenCurvature         Button
	NextInternalResolution      Button
	NextTextureInterpolation    Button
	ShowingPixelsPulse          Button
	ToggleBackground            Button
	CameraMovementMode          Button
	Esc                         Button
	Space                       Button
	Screenshot                  Button

	ResetSpeeds   bool
	ResetPosition bool
	ResetFilters  bool
	Shift         bool
	Alt           bool
	InputFocused  bool

	Custom CustomEvent
}

func (s *State) buttons() []*Button {
	list := []*Button{
		&s.MouseClick,
		&s.SpeedUp, &s.SpeedDown,
		&s.NextColorRepresentationKind,
		&s.NextPixelGeometryKind,
		&s.ToggleShadowKind,
		&s.NextLayeringKind,
		&s.NextScreenCurvature,
		&s.NextInternalResolution,
		&s.NextTextureInterpolation,
		&s.ShowingPixelsPulse,
		&s.ToggleBackground,
		&s.CameraMovementMode,
		&s.Esc, &s.Space, &s.Screenshot,
	}
	s.Blur.each(func(b *Button) { list = append(list, b) })
	s.LPP.each(func(b *Button) { list = append(list, b) })
	return list
}

// TrackButtons samples every button. Call once at the start of a tick.
func (s *State) TrackButtons() {
	for _, b := range s.buttons() {
		b.TrackInput()
	}
}

// ResetTransient clears the values that only live for one tick.
func (s *State) ResetTransient() {
	s.MousePositionX = 0
	s.MousePositionY = 0
	s.MouseScrollY = 0
	s.Custom = CustomEvent{}
}
