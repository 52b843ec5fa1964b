package sim

import (
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
)

// DispatchAll reports every observable value once, so a freshly attached
// presenter starts in sync with the session.
func DispatchAll(res *Resources, d events.Dispatcher) {
	f := res.Filters
	d.DispatchChangePixelVerticalGap(f.PixelScaleX)
	d.DispatchChangePixelHorizontalGap(f.PixelScaleY)
	d.DispatchChangePixelWidth(f.PixelWidth)
	d.DispatchChangePixelSpread(f.PixelGap)
	d.DispatchChangePixelBrightness(f.ExtraBright)
	d.DispatchChangePixelContrast(f.ExtraContrast)
	d.DispatchChangeLightColor(f.LightColor)
	d.DispatchChangeBrightnessColor(f.BrightnessColor)
	d.DispatchChangeBlurLevel(f.BlurPasses)
	d.DispatchChangeLinesPerPixel(f.LinesPerPixel)
	d.DispatchColorRepresentation(f.ColorChannels)
	d.DispatchPixelGeometry(f.PixelsGeometryKind)
	d.DispatchPixelShadowShape(res.Shadows.Get(f.ShadowShape))
	d.DispatchScreenLayeringType(f.LayeringKind)
	d.DispatchScreenCurvature(f.ScreenCurvatureKind)
	d.DispatchInternalResolution(f.InternalResolution)
	d.DispatchTextureInterpolation(f.TextureInterpolation)

	d.DispatchChangeCameraZoom(res.Camera.Zoom)
	d.DispatchChangePixelSpeed(speedRatio(res.FilterSpeed, PixelManipulationBaseSpeed))
	d.DispatchChangeTurningSpeed(speedRatio(res.Camera.TurningSpeed, TurningBaseSpeed))
	d.DispatchChangeMovementSpeed(speedRatio(res.Camera.MovementSpeed, res.Initial.MovementSpeed))
	d.DispatchChangeCameraMovementMode(res.Camera.LockedMode)
	pose := res.Camera.Pose()
	d.DispatchCameraUpdate(pose.Position, pose.Direction, pose.Up)
}

func notifyFilterDiff(before, after crt.Filters, shadows crt.ShadowRegistry, d events.Dispatcher) {
	floats := []struct {
		a, b   float32
		notify func(float32)
	}{
		{before.PixelScaleX, after.PixelScaleX, d.DispatchChangePixelVerticalGap},
		{before.PixelScaleY, after.PixelScaleY, d.DispatchChangePixelHorizontalGap},
		{before.PixelWidth, after.PixelWidth, d.DispatchChangePixelWidth},
		{before.PixelGap, after.PixelGap, d.DispatchChangePixelSpread},
		{before.ExtraBright, after.ExtraBright, d.DispatchChangePixelBrightness},
		{before.ExtraContrast, after.ExtraContrast, d.DispatchChangePixelContrast},
	}
	for _, v := range floats {
		if v.a != v.b {
			v.notify(v.b)
		}
	}
	if before.LightColor != after.LightColor {
		d.DispatchChangeLightColor(after.LightColor)
	}
	if before.BrightnessColor != after.BrightnessColor {
		d.DispatchChangeBrightnessColor(after.BrightnessColor)
	}
	if before.BlurPasses != after.BlurPasses {
		d.DispatchChangeBlurLevel(after.BlurPasses)
	}
	if before.LinesPerPixel != after.LinesPerPixel {
		d.DispatchChangeLinesPerPixel(after.LinesPerPixel)
	}
	if before.ColorChannels != after.ColorChannels {
		d.DispatchColorRepresentation(after.ColorChannels)
	}
	if before.PixelsGeometryKind != after.PixelsGeometryKind {
		d.DispatchPixelGeometry(after.PixelsGeometryKind)
	}
	if before.ShadowShape != after.ShadowShape {
		d.DispatchPixelShadowShape(shadows.Get(after.ShadowShape))
	}
	if before.LayeringKind != after.LayeringKind {
		d.DispatchScreenLayeringType(after.LayeringKind)
	}
	if before.ScreenCurvatureKind != after.ScreenCurvatureKind {
		d.DispatchScreenCurvature(after.ScreenCurvatureKind)
	}
	if before.InternalResolution.Multiplier != after.InternalResolution.Multiplier {
		d.DispatchInternalResolution(after.InternalResolution)
	}
	if before.TextureInterpolation != after.TextureInterpolation {
		d.DispatchTextureInterpolation(after.TextureInterpolation)
	}
}
