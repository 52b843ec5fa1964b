// Package events defines the notification contract between the simulation
// core and whatever presents it: a window host, a terminal inspector or a
// test recorder.
package events

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/crt"
)

// Dispatcher receives every observable change made by the updater and the
// drawer. Implementations must not call back into the simulation.
type Dispatcher interface {
	DispatchCameraUpdate(position, direction, up mgl32.Vec3)
	DispatchChangePixelHorizontalGap(size float32)
	DispatchChangePixelVerticalGap(size float32)
	DispatchChangePixelWidth(size float32)
	DispatchChangePixelSpread(size float32)
	DispatchChangePixelBrightness(value float32)
	DispatchChangePixelContrast(value float32)
	DispatchChangeLightColor(color int32)
	DispatchChangeBrightnessColor(color int32)
	DispatchChangeCameraZoom(zoom float32)
	DispatchChangeBlurLevel(level int)
	DispatchChangeLinesPerPixel(count int)
	DispatchColorRepresentation(c crt.ColorChannels)
	DispatchPixelGeometry(g crt.PixelsGeometryKind)
	DispatchPixelShadowShape(shape crt.ShadowShape)
	DispatchScreenLayeringType(l crt.ScreenLayeringKind)
	DispatchScreenCurvature(c crt.ScreenCurvatureKind)
	DispatchInternalResolution(r crt.InternalResolution)
	DispatchTextureInterpolation(i crt.TextureInterpolation)
	DispatchChangePixelSpeed(speed float32)
	DispatchChangeTurningSpeed(speed float32)
	DispatchChangeMovementSpeed(speed float32)
	DispatchExitingSession()
	DispatchToggleInfoPanel()
	DispatchFPS(fps float32)
	DispatchRequestPointerLock()
	DispatchExitPointerLock()
	DispatchScreenshot(shot Screenshot)
	DispatchChangeCameraMovementMode(locked bool)
	DispatchTopMessage(msg string)
	DispatchMinimumValue(value float64)
	DispatchMaximumValue(value float64)
}

// CameraPose is the payload of a camera update.
type CameraPose struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Up        mgl32.Vec3
}

// Screenshot is a bottom-up RGBA read-back of the composite layer.
type Screenshot struct {
	Pixels     []byte
	Width      int
	Height     int
	Multiplier float64
}
