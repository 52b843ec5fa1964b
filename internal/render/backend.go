package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/crt"
)

// TargetSpec is the signature of an off-screen target. Two targets with the
// same spec are interchangeable.
type TargetSpec struct {
	Width         int
	Height        int
	Depth         bool
	Interpolation crt.TextureInterpolation
}

// Target is an off-screen colour texture with an optional depth buffer.
type Target struct {
	Spec        TargetSpec
	Framebuffer uint32
	Texture     uint32
	Depthbuffer uint32
}

// Device is the render-target half of a backend.
type Device interface {
	CreateTarget(spec TargetSpec) (*Target, error)
	DeleteTarget(t *Target)
	// BindTarget makes t the draw target and sets the viewport to its size.
	// A nil target selects the default framebuffer.
	BindTarget(t *Target)
	Clear()
	Viewport(width, height int)
	BindTexture(unit int, texture uint32)
	// ReadPixels reads RGBA bytes, bottom row first, from the bound target.
	ReadPixels(width, height int) []byte
	// Err returns the first error recorded since the previous call.
	Err() error
}

// Pipeline is the shader half of a backend. Passes sample the textures
// bound with Device.BindTexture.
type Pipeline interface {
	LoadFrame(pixels []byte, size crt.Size)
	DrawPixels(u PixelsUniform)
	// DrawRGB adds three channel layers bound to units 0, 1 and 2 onto the
	// bound target.
	DrawRGB()
	// DrawBlend mixes the foreground (unit 0) over the background (unit 1).
	DrawBlend()
	DrawBlurPass(horizontal bool)
	// DrawUpscale copies unit 0 onto the whole bound target.
	DrawUpscale()
	ShadowCount() int
}

type Backend interface {
	Device
	Pipeline
}

// PixelsUniform is everything one instanced pixel draw needs.
type PixelsUniform struct {
	ShadowKind           int
	Geometry             crt.PixelsGeometryKind
	View                 mgl32.Mat4
	Projection           mgl32.Mat4
	LightPos             mgl32.Vec3
	AmbientStrength      float32
	ContrastFactor       float32
	LightColor           [3]float32
	ExtraLight           [3]float32
	PixelGap             [2]float32
	PixelScale           [3]float32
	PixelOffset          [3]float32
	PixelPulse           float32
	HeightModifierFactor float32
	ScreenCurvature      float32
}
