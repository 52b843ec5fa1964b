package events

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/crtsim/internal/crt"
)

type Kind string

const (
	CameraUpdate         Kind = "camera_update"
	PixelHorizontalGap   Kind = "pixel_horizontal_gap"
	PixelVerticalGap     Kind = "pixel_vertical_gap"
	PixelWidth           Kind = "pixel_width"
	PixelSpread          Kind = "pixel_spread"
	PixelBrightness      Kind = "pixel_brightness"
	PixelContrast        Kind = "pixel_contrast"
	LightColor           Kind = "light_color"
	BrightnessColor      Kind = "brightness_color"
	CameraZoom           Kind = "camera_zoom"
	BlurLevel            Kind = "blur_level"
	LinesPerPixel        Kind = "lines_per_pixel"
	ColorRepresentation  Kind = "color_representation"
	PixelGeometry        Kind = "pixel_geometry"
	PixelShadowShape     Kind = "pixel_shadow_shape"
	ScreenLayeringType   Kind = "screen_layering_type"
	ScreenCurvature      Kind = "screen_curvature"
	InternalResolution   Kind = "internal_resolution"
	TextureInterpolation Kind = "texture_interpolation"
	PixelSpeed           Kind = "pixel_speed"
	TurningSpeed         Kind = "turning_speed"
	MovementSpeed        Kind = "movement_speed"
	ExitingSession       Kind = "exiting_session"
	ToggleInfoPanel      Kind = "toggle_info_panel"
	FPS                  Kind = "fps"
	RequestPointerLock   Kind = "request_pointer_lock"
	ExitPointerLock      Kind = "exit_pointer_lock"
	ScreenshotTaken      Kind = "screenshot"
	CameraMovementMode   Kind = "camera_movement_mode"
	TopMessage           Kind = "top_message"
	MinimumValue         Kind = "minimum_value"
	MaximumValue         Kind = "maximum_value"
)

// Event is a dispatched notification captured as data.
type Event struct {
	Kind  Kind
	Value any
}

// Func adapts a single callback into a full Dispatcher. Every notification
// is turned into an Event.
type Func func(Event)

func (f Func) DispatchCameraUpdate(position, direction, up mgl32.Vec3) {
	f(Event{CameraUpdate, CameraPose{position, direction, up}})
}
func (f Func) DispatchChangePixelHorizontalGap(size float32) { f(Event{PixelHorizontalGap, size}) }
func (f Func) DispatchChangePixelVerticalGap(size float32)   { f(Event{PixelVerticalGap, size}) }
func (f Func) DispatchChangePixelWidth(size float32)         { f(Event{PixelWidth, size}) }
func (f Func) DispatchChangePixelSpread(size float32)        { f(Event{PixelSpread, size}) }
func (f Func) DispatchChangePixelBrightness(value float32)   { f(Event{PixelBrightness, value}) }
func (f Func) DispatchChangePixelContrast(value float32)     { f(Event{PixelContrast, value}) }
func (f Func) DispatchChangeLightColor(color int32)          { f(Event{LightColor, color}) }
func (f Func) DispatchChangeBrightnessColor(color int32)     { f(Event{BrightnessColor, color}) }
func (f Func) DispatchChangeCameraZoom(zoom float32)         { f(Event{CameraZoom, zoom}) }
func (f Func) DispatchChangeBlurLevel(level int)             { f(Event{BlurLevel, level}) }
func (f Func) DispatchChangeLinesPerPixel(count int)         { f(Event{LinesPerPixel, count}) }
func (f Func) DispatchColorRepresentation(c crt.ColorChannels) {
	f(Event{ColorRepresentation, c})
}
func (f Func) DispatchPixelGeometry(g crt.PixelsGeometryKind) { f(Event{PixelGeometry, g}) }
func (f Func) DispatchPixelShadowShape(shape crt.ShadowShape) {
	f(Event{PixelShadowShape, shape})
}
func (f Func) DispatchScreenLayeringType(l crt.ScreenLayeringKind) {
	f(Event{ScreenLayeringType, l})
}
func (f Func) DispatchScreenCurvature(c crt.ScreenCurvatureKind) { f(Event{ScreenCurvature, c}) }
func (f Func) DispatchInternalResolution(r crt.InternalResolution) {
	f(Event{InternalResolution, r})
}
func (f Func) DispatchTextureInterpolation(i crt.TextureInterpolation) {
	f(Event{TextureInterpolation, i})
}
func (f Func) DispatchChangePixelSpeed(speed float32)       { f(Event{PixelSpeed, speed}) }
func (f Func) DispatchChangeTurningSpeed(speed float32)     { f(Event{TurningSpeed, speed}) }
func (f Func) DispatchChangeMovementSpeed(speed float32)    { f(Event{MovementSpeed, speed}) }
func (f Func) DispatchExitingSession()                      { f(Event{ExitingSession, nil}) }
func (f Func) DispatchToggleInfoPanel()                     { f(Event{ToggleInfoPanel, nil}) }
func (f Func) DispatchFPS(fps float32)                      { f(Event{FPS, fps}) }
func (f Func) DispatchRequestPointerLock()                  { f(Event{RequestPointerLock, nil}) }
func (f Func) DispatchExitPointerLock()                     { f(Event{ExitPointerLock, nil}) }
func (f Func) DispatchScreenshot(shot Screenshot)           { f(Event{ScreenshotTaken, shot}) }
func (f Func) DispatchChangeCameraMovementMode(locked bool) { f(Event{CameraMovementMode, locked}) }
func (f Func) DispatchTopMessage(msg string)                { f(Event{TopMessage, msg}) }
func (f Func) DispatchMinimumValue(value float64)           { f(Event{MinimumValue, value}) }
func (f Func) DispatchMaximumValue(value float64)           { f(Event{MaximumValue, value}) }

// Deliver replays a captured event on d. Events with a payload of the wrong
// type are dropped.
func Deliver(d Dispatcher, e Event) {
	switch e.Kind {
	case CameraUpdate:
		if p, ok := e.Value.(CameraPose); ok {
			d.DispatchCameraUpdate(p.Position, p.Direction, p.Up)
		}
	case PixelHorizontalGap:
		deliver(e, d.DispatchChangePixelHorizontalGap)
	case PixelVerticalGap:
		deliver(e, d.DispatchChangePixelVerticalGap)
	case PixelWidth:
		deliver(e, d.DispatchChangePixelWidth)
	case PixelSpread:
		deliver(e, d.DispatchChangePixelSpread)
	case PixelBrightness:
		deliver(e, d.DispatchChangePixelBrightness)
	case PixelContrast:
		deliver(e, d.DispatchChangePixelContrast)
	case LightColor:
		deliver(e, d.DispatchChangeLightColor)
	case BrightnessColor:
		deliver(e, d.DispatchChangeBrightnessColor)
	case CameraZoom:
		deliver(e, d.DispatchChangeCameraZoom)
	case BlurLevel:
		deliver(e, d.DispatchChangeBlurLevel)
	case LinesPerPixel:
		deliver(e, d.DispatchChangeLinesPerPixel)
	case ColorRepresentation:
		deliver(e, d.DispatchColorRepresentation)
	case PixelGeometry:
		deliver(e, d.DispatchPixelGeometry)
	case PixelShadowShape:
		deliver(e, d.DispatchPixelShadowShape)
	case ScreenLayeringType:
		deliver(e, d.DispatchScreenLayeringType)
	case ScreenCurvature:
		deliver(e, d.DispatchScreenCurvature)
	case InternalResolution:
		deliver(e, d.DispatchInternalResolution)
	case TextureInterpolation:
		deliver(e, d.DispatchTextureInterpolation)
	case PixelSpeed:
		deliver(e, d.DispatchChangePixelSpeed)
	case TurningSpeed:
		deliver(e, d.DispatchChangeTurningSpeed)
	case MovementSpeed:
		deliver(e, d.DispatchChangeMovementSpeed)
	case ExitingSession:
		d.DispatchExitingSession()
	case ToggleInfoPanel:
		d.DispatchToggleInfoPanel()
	case FPS:
		deliver(e, d.DispatchFPS)
	case RequestPointerLock:
		d.DispatchRequestPointerLock()
	case ExitPointerLock:
		d.DispatchExitPointerLock()
	case ScreenshotTaken:
		deliver(e, d.DispatchScreenshot)
	case CameraMovementMode:
		deliver(e, d.DispatchChangeCameraMovementMode)
	case TopMessage:
		deliver(e, d.DispatchTopMessage)
	case MinimumValue:
		deliver(e, d.DispatchMinimumValue)
	case MaximumValue:
		deliver(e, d.DispatchMaximumValue)
	}
}

func deliver[T any](e Event, fn func(T)) {
	if v, ok := e.Value.(T); ok {
		fn(v)
	}
}
