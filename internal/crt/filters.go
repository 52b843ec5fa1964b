package crt

const (
	MinBrightness = -1.0
	MaxBrightness = 1.0
	MinContrast   = 0.0
	MaxContrast   = 20.0
	MinBlurPasses = 0
	MaxBlurPasses = 100
	MinLinesPerPx = 1
	MaxLinesPerPx = 20
	MinPixelSize  = 0.0
	MaxPixelSize  = 100.0
	MinPixelWidth = 0.01
	MaxColor      = 0xFFFFFF

	// PulseRate is how fast the pulse accumulator grows per second.
	PulseRate = 0.3
)

// Filters is the complete CRT parameter set read by the drawer.
type Filters struct {
	InternalResolution   InternalResolution
	TextureInterpolation TextureInterpolation

	BlurPasses    int
	LinesPerPixel int

	LightColor      int32
	BrightnessColor int32
	ExtraBright     float32
	ExtraContrast   float32

	PixelWidth  float32
	PixelScaleX float32 // vertical gap
	PixelScaleY float32 // horizontal gap
	PixelGap    float32 // spread

	ShadowShape              int
	PixelsGeometryKind       PixelsGeometryKind
	ColorChannels            ColorChannels
	ScreenCurvatureKind      ScreenCurvatureKind
	LayeringKind             ScreenLayeringKind
	ShowingDiffuseForeground bool
	ShowingSolidBackground   bool
	SolidColorWeight         float32

	ShowingBackground  bool
	ShowingPixelsPulse bool
	PixelsPulse        float32
}

func NewFilters(pixelWidth float32) Filters {
	f := Filters{
		InternalResolution:   NewInternalResolution(1),
		TextureInterpolation: Linear,
		BlurPasses:           1,
		LinesPerPixel:        1,
		LightColor:           0xFFFFFF,
		BrightnessColor:      0xFFFFFF,
		ExtraBright:          0,
		ExtraContrast:        1,
		PixelWidth:           pixelWidth,
		ShadowShape:          1,
		PixelsGeometryKind:   Squares,
		ColorChannels:        Combined,
		ScreenCurvatureKind:  Flat,
		ShowingBackground:    true,
	}
	f.SetLayering(ShadowOnly)
	return f
}

// SetLayering selects a layering kind and derives the layer visibility flags.
func (f *Filters) SetLayering(kind ScreenLayeringKind) {
	f.LayeringKind = kind
	f.ShowingDiffuseForeground, f.ShowingSolidBackground, f.SolidColorWeight = kind.Layers()
}

// PixelHaveDepth reports whether the pixel geometry needs a depth buffer.
func (f *Filters) PixelHaveDepth() bool {
	return f.PixelsGeometryKind == Cubes
}

// ExtraLight is the brightness colour scaled by the brightness offset.
func (f *Filters) ExtraLight() [3]float32 {
	return ScaleColor(ColorFromInt(f.BrightnessColor), f.ExtraBright)
}
