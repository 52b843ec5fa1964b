package sim

import (
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/input"
	"github.com/san-kum/crtsim/internal/params"
)

// customOverride returns a pointer to the payload when the tick's custom
// event targets kind, nil when it does not.
func customOverride[T any](ev input.CustomEvent, kind string, get func() (T, error)) (*T, error) {
	if !ev.Is(kind) {
		return nil, nil
	}
	v, err := get()
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func floatOverride(ev input.CustomEvent, kind string) (*float32, error) {
	return customOverride(ev, kind, func() (float32, error) {
		f, err := ev.Float()
		return float32(f), err
	})
}

func (u *updater) updateColors() error {
	f := &u.res.Filters
	ev := u.in.Custom
	rate := 0.01 * u.dt * u.res.FilterSpeed

	bright, err := floatOverride(ev, "pixel_brightness")
	if err != nil {
		return err
	}
	params.New(&f.ExtraBright, u.in.Bright.Increase, u.in.Bright.Decrease, u.d).
		SetProgression(rate).
		SetOverride(bright).
		SetMin(crt.MinBrightness).SetMax(crt.MaxBrightness).
		SetTrigger(u.d.DispatchChangePixelBrightness).
		Process()

	contrast, err := floatOverride(ev, "pixel_contrast")
	if err != nil {
		return err
	}
	params.New(&f.ExtraContrast, u.in.Contrast.Increase, u.in.Contrast.Decrease, u.d).
		SetProgression(rate).
		SetOverride(contrast).
		SetMin(crt.MinContrast).SetMax(crt.MaxContrast).
		SetTrigger(u.d.DispatchChangePixelContrast).
		Process()

	for _, c := range []struct {
		kind   string
		value  *int32
		notify func(int32)
	}{
		{"light_color", &f.LightColor, u.d.DispatchChangeLightColor},
		{"brightness_color", &f.BrightnessColor, u.d.DispatchChangeBrightnessColor},
	} {
		override, err := customOverride(ev, c.kind, ev.Color)
		if err != nil {
			return err
		}
		notify := c.notify
		params.New(c.value, false, false, u.d).
			SetOverride(override).
			SetMin(0).SetMax(crt.MaxColor).
			SetTrigger(func(v int32) {
				notify(v)
				u.d.DispatchTopMessage("Color changed.")
			}).
			Process()
	}
	return nil
}

func (u *updater) updateBlur() error {
	f := &u.res.Filters
	override, err := customOverride(u.in.Custom, "blur_level", u.in.Custom.Int)
	if err != nil {
		return err
	}
	params.New(&f.BlurPasses, u.in.Blur.Increase.JustPressed(), u.in.Blur.Decrease.JustPressed(), u.d).
		SetProgression(1).
		SetOverride(override).
		SetMin(crt.MinBlurPasses).SetMax(crt.MaxBlurPasses).
		SetTrigger(func(v int) {
			u.message("Blur level: %d", v)
			u.d.DispatchChangeBlurLevel(v)
		}).
		Process()
	return nil
}

func (u *updater) updateLinesPerPixel() error {
	f := &u.res.Filters
	override, err := customOverride(u.in.Custom, "lines_per_pixel", u.in.Custom.Int)
	if err != nil {
		return err
	}
	params.New(&f.LinesPerPixel, u.in.LPP.Increase.JustPressed(), u.in.LPP.Decrease.JustPressed(), u.d).
		SetProgression(1).
		SetOverride(override).
		SetMin(crt.MinLinesPerPx).SetMax(crt.MaxLinesPerPx).
		SetTrigger(func(v int) {
			u.message("Lines per pixel: %d", v)
			u.d.DispatchChangeLinesPerPixel(v)
		}).
		Process()
	return nil
}

func (u *updater) updateFilters() error {
	if u.in.ResetFilters {
		u.resetFilters()
		return nil
	}
	if err := u.updateEnums(); err != nil {
		return err
	}
	return u.updatePixelSizes()
}

func (u *updater) resetFilters() {
	before := u.res.Filters
	after := u.res.defaults
	after.InternalResolution.SetViewport(u.res.Video.ViewportSize, u.res.Video.MaxTextureSize)
	u.res.Filters = after
	notifyFilterDiff(before, after, u.res.Shadows, u.d)
	u.d.DispatchTopMessage("All filter options have been reset.")
}

func (u *updater) updateEnums() error {
	f := &u.res.Filters
	in := u.in

	layering, err := variantOverride(in.Custom, "screen_layering_type", crt.ParseScreenLayeringKind)
	if err != nil {
		return err
	}
	if layering != nil || (!in.InputFocused && in.NextLayeringKind.JustPressed()) {
		next := f.LayeringKind.Next()
		if layering != nil {
			next = *layering
		}
		if next != f.LayeringKind {
			f.SetLayering(next)
			u.message("Layering kind '%s' selected.", next)
			u.d.DispatchScreenLayeringType(next)
		}
	}

	channels, err := variantOverride(in.Custom, "color_representation", crt.ParseColorChannels)
	if err != nil {
		return err
	}
	if channels != nil || in.NextColorRepresentationKind.JustPressed() {
		next := f.ColorChannels.Next()
		if channels != nil {
			next = *channels
		}
		if next != f.ColorChannels {
			f.ColorChannels = next
			u.message("Pixel color representation: %s.", next)
			u.d.DispatchColorRepresentation(next)
		}
	}

	geometry, err := variantOverride(in.Custom, "pixel_geometry", crt.ParsePixelsGeometryKind)
	if err != nil {
		return err
	}
	if geometry != nil || in.NextPixelGeometryKind.JustPressed() {
		next := f.PixelsGeometryKind.Next()
		if geometry != nil {
			next = *geometry
		}
		if next != f.PixelsGeometryKind {
			f.PixelsGeometryKind = next
			u.message("Showing pixels as %s.", next)
			u.d.DispatchPixelGeometry(next)
		}
	}

	shadow, err := u.shadowOverride()
	if err != nil {
		return err
	}
	if shadow != nil || (!in.InputFocused && in.ToggleShadowKind.JustPressed()) {
		next := (f.ShadowShape + 1) % len(u.res.Shadows)
		if shadow != nil {
			next = *shadow
		}
		if next != f.ShadowShape {
			f.ShadowShape = next
			u.message("Showing next pixel shadow: %d.", next)
			u.d.DispatchPixelShadowShape(u.res.Shadows.Get(next))
		}
	}

	curvature, err := variantOverride(in.Custom, "screen_curvature", crt.ParseScreenCurvatureKind)
	if err != nil {
		return err
	}
	if curvature != nil || in.NextScreenCurvature.JustPressed() {
		next := f.ScreenCurvatureKind.Next()
		if curvature != nil {
			next = *curvature
		}
		if next != f.ScreenCurvatureKind {
			f.ScreenCurvatureKind = next
			u.message("Screen curvature: %s.", next)
			u.d.DispatchScreenCurvature(next)
		}
	}

	resolution, err := u.resolutionOverride()
	if err != nil {
		return err
	}
	if resolution != nil || in.NextInternalResolution.JustPressed() {
		next := f.InternalResolution.Next()
		if resolution != nil {
			next = f.InternalResolution
			next.Multiplier = *resolution
		}
		if next != f.InternalResolution {
			f.InternalResolution = next
			u.message("Internal resolution: %s.", next)
			u.d.DispatchInternalResolution(next)
		}
	}

	interpolation, err := variantOverride(in.Custom, "texture_interpolation", crt.ParseTextureInterpolation)
	if err != nil {
		return err
	}
	if interpolation != nil || in.NextTextureInterpolation.JustPressed() {
		next := f.TextureInterpolation.Next()
		if interpolation != nil {
			next = *interpolation
		}
		if next != f.TextureInterpolation {
			f.TextureInterpolation = next
			u.message("Texture interpolation: %s.", next)
			u.d.DispatchTextureInterpolation(next)
		}
	}

	if in.ToggleBackground.JustPressed() {
		f.ShowingBackground = !f.ShowingBackground
		msg := "Background OFF."
		if f.ShowingBackground {
			msg = "Background ON."
		}
		u.d.DispatchTopMessage(msg)
	}
	return nil
}

func variantOverride[T any](ev input.CustomEvent, kind string, parse func(string) (T, bool)) (*T, error) {
	if !ev.Is(kind) {
		return nil, nil
	}
	name, err := ev.Variant()
	if err != nil {
		return nil, err
	}
	v, ok := parse(name)
	if !ok {
		return nil, &input.PayloadError{Kind: kind, Want: "known " + kind + " variant", Got: ev.Value}
	}
	return &v, nil
}

func (u *updater) shadowOverride() (*int, error) {
	ev := u.in.Custom
	idx, err := customOverride(ev, "pixel_shadow_shape", ev.Int)
	if err != nil || idx == nil {
		return nil, err
	}
	if *idx < 0 || *idx >= len(u.res.Shadows) {
		return nil, &input.PayloadError{Kind: ev.Kind, Want: "shadow index", Got: ev.Value}
	}
	return idx, nil
}

func (u *updater) resolutionOverride() (*float64, error) {
	ev := u.in.Custom
	m, err := customOverride(ev, "internal_resolution", ev.Float)
	if err != nil || m == nil {
		return nil, err
	}
	if !crt.ValidMultiplier(*m) {
		return nil, &input.PayloadError{Kind: ev.Kind, Want: "resolution multiplier", Got: ev.Value}
	}
	return m, nil
}

func (u *updater) updatePixelSizes() error {
	f := &u.res.Filters
	in := u.in
	velocity := u.dt * u.res.FilterSpeed

	sizes := []struct {
		kind     string
		value    *float32
		inc, dec bool
		rate     float32
		min      float32
		notify   func(float32)
	}{
		{"pixel_vertical_gap", &f.PixelScaleX, in.PixelScaleX.Increase, in.PixelScaleX.Decrease,
			0.00125, crt.MinPixelSize, u.d.DispatchChangePixelVerticalGap},
		{"pixel_horizontal_gap", &f.PixelScaleY, in.PixelScaleY.Increase, in.PixelScaleY.Decrease,
			0.00125, crt.MinPixelSize, u.d.DispatchChangePixelHorizontalGap},
		{"pixel_width", &f.PixelWidth, in.PixelWidth.Increase && !in.Shift, in.PixelWidth.Decrease && !in.Shift,
			0.005, crt.MinPixelWidth, u.d.DispatchChangePixelWidth},
		{"pixel_spread", &f.PixelGap, in.PixelWidth.Increase && in.Shift, in.PixelWidth.Decrease && in.Shift,
			0.005, crt.MinPixelSize, u.d.DispatchChangePixelSpread},
	}
	for _, s := range sizes {
		override, err := floatOverride(in.Custom, s.kind)
		if err != nil {
			return err
		}
		params.New(s.value, s.inc, s.dec, u.d).
			SetProgression(velocity * s.rate).
			SetOverride(override).
			SetMin(s.min).SetMax(crt.MaxPixelSize).
			SetTrigger(s.notify).
			Process()
	}
	return nil
}
