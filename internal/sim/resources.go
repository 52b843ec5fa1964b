package sim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/camera"
	"github.com/san-kum/crtsim/internal/crt"
)

const (
	PixelManipulationBaseSpeed float32 = 20
	TurningBaseSpeed           float32 = 3
	MovementBaseSpeed          float32 = 10
	MovementSpeedFactor        float32 = 50
)

// AnimationStep is one frame of the source: RGBA pixels, bottom row first,
// shown for Delay milliseconds.
type AnimationStep struct {
	Pixels []byte
	Delay  float64
}

// VideoInput describes the source image or animation and the surface it is
// shown on.
type VideoInput struct {
	Steps          []AnimationStep
	ImageSize      crt.Size
	BackgroundSize crt.Size
	ViewportSize   crt.Size
	PixelWidth     float32
	Stretch        bool
	MaxTextureSize int
}

func (v VideoInput) validate() error {
	if len(v.Steps) == 0 {
		return ErrNoFrames
	}
	for _, s := range []crt.Size{v.ImageSize, v.BackgroundSize, v.ViewportSize} {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: %dx%d", ErrInvalidVideo, s.Width, s.Height)
		}
	}
	if v.PixelWidth <= 0 {
		return fmt.Errorf("%w: pixel width %g", ErrInvalidVideo, v.PixelWidth)
	}
	return nil
}

type Timers struct {
	LastTime   float64
	LastSecond float64
	FrameCount int
}

type Animation struct {
	Steps           []AnimationStep
	CurrentFrame    int
	LastFrameChange float64
	// NeedsBufferDataLoad is set for the tick on which the drawer must
	// upload the current frame.
	NeedsBufferDataLoad bool
	loaded              bool
}

// Frame returns the step currently on screen.
func (a *Animation) Frame() AnimationStep {
	return a.Steps[a.CurrentFrame]
}

type InitialParameters struct {
	PositionZ     float32
	PixelWidth    float32
	MovementSpeed float32
}

// Resources is the whole mutable state of a session.
type Resources struct {
	Video     VideoInput
	Filters   crt.Filters
	Camera    camera.Camera
	Timers    Timers
	Animation Animation
	Initial   InitialParameters
	Shadows   crt.ShadowRegistry

	// FilterSpeed scales every filter progression.
	FilterSpeed float32

	ScreenshotRequested bool

	defaults crt.Filters
}

// Initialize builds the session state for video, placing the camera far
// enough to see the whole background.
func Initialize(video VideoInput, shadows crt.ShadowRegistry, now float64) (*Resources, error) {
	if err := video.validate(); err != nil {
		return nil, err
	}
	if len(shadows) == 0 {
		shadows = crt.DefaultShadows()
	}

	z := FarAwayPosition(video)
	movement := MovementBaseSpeed * z / MovementSpeedFactor
	cam := camera.New(mgl32.Vec3{0, 0, z}, movement, TurningBaseSpeed)

	filters := crt.NewFilters(video.PixelWidth)
	filters.InternalResolution.SetViewport(video.ViewportSize, video.MaxTextureSize)

	res := &Resources{
		Video:   video,
		Filters: filters,
		Camera:  cam,
		Timers:  Timers{LastTime: now, LastSecond: now},
		Animation: Animation{
			Steps:               video.Steps,
			LastFrameChange:     now,
			NeedsBufferDataLoad: true,
		},
		Initial: InitialParameters{
			PositionZ:     z,
			PixelWidth:    video.PixelWidth,
			MovementSpeed: movement,
		},
		Shadows:     shadows,
		FilterSpeed: PixelManipulationBaseSpeed,
		defaults:    filters,
	}
	return res, nil
}

// SetFilters replaces the filters and makes them the target of a full
// filter reset.
func (r *Resources) SetFilters(f crt.Filters) {
	f.InternalResolution.SetViewport(r.Video.ViewportSize, r.Video.MaxTextureSize)
	if f.ShadowShape >= len(r.Shadows) {
		f.ShadowShape = 0
	}
	r.Filters = f
	r.defaults = f
}

// DefaultFilters returns what a full filter reset restores.
func (r *Resources) DefaultFilters() crt.Filters {
	return r.defaults
}

// Resize updates the viewport the internal resolution is derived from.
func (r *Resources) Resize(viewport crt.Size) {
	r.Video.ViewportSize = viewport
	r.Filters.InternalResolution.SetViewport(viewport, r.Video.MaxTextureSize)
	r.defaults.InternalResolution.SetViewport(viewport, r.Video.MaxTextureSize)
}

// FarAwayPosition is the camera distance at which the background fits the
// viewport. Without stretch the ratio is snapped to an integer divisor of
// the bounding resolution so source pixels map to whole screen pixels.
func FarAwayPosition(v VideoInput) float32 {
	width := float32(v.BackgroundSize.Width)
	height := float32(v.BackgroundSize.Height)
	viewportWidthScaled := uint32(float32(v.ViewportSize.Width) / v.PixelWidth)
	widthRatio := float32(viewportWidthScaled) / width
	heightRatio := float32(v.ViewportSize.Height) / height

	heightBounded := widthRatio > heightRatio
	boundRatio, resolution := widthRatio, int32(viewportWidthScaled)
	if heightBounded {
		boundRatio, resolution = heightRatio, int32(v.ViewportSize.Height)
	}
	for boundRatio < 1 {
		boundRatio *= 2
		resolution *= 2
	}
	if !v.Stretch {
		divisor := int32(boundRatio)
		for divisor > 1 {
			if resolution%divisor == 0 {
				break
			}
			divisor--
		}
		boundRatio = float32(divisor)
	}
	factor := 0.68 * v.PixelWidth
	if heightBounded {
		factor = 1.2076
	}
	return 0.5 + (float32(resolution)/boundRatio)*factor
}
