package render

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/sim"
)

const (
	BackgroundWidth      = 1920 / 2
	BackgroundHeight     = 1080 / 2
	BackgroundBlurPasses = 6
)

// Drawer owns the buffer stacks and issues one frame per Draw.
type Drawer struct {
	backend Backend
	main    *BufferStack
	bg      *BufferStack

	screenshot []byte
}

func NewDrawer(b Backend) *Drawer {
	return &Drawer{
		backend: b,
		main:    NewBufferStack("main", b),
		bg:      NewBufferStack("background", b),
	}
}

// Stacks exposes the stacks for inspection.
func (d *Drawer) Stacks() (main, background *BufferStack) { return d.main, d.bg }

// LastScreenshot is the read-back of the most recent frame, nil when that
// frame took no screenshot.
func (d *Drawer) LastScreenshot() []byte { return d.screenshot }

// Release deletes every pooled target.
func (d *Drawer) Release() {
	d.main.Release()
	d.bg.Release()
}

// frame is the per-Draw state shared by the passes.
type frame struct {
	*Drawer
	res   *sim.Resources
	f     *crt.Filters
	base  PixelsUniform
	err   error
	stage string
}

// Draw renders res into the default framebuffer.
func (d *Drawer) Draw(res *sim.Resources, disp events.Dispatcher) error {
	if disp == nil {
		disp = events.Nop
	}
	fr := &frame{Drawer: d, res: res, f: &res.Filters}
	fr.base = fr.baseUniform()

	fr.run("load", fr.load)
	fr.run("setup", fr.setup)
	if fr.f.ShowingDiffuseForeground {
		fr.run("foreground", fr.foreground)
	}
	fr.run("background", fr.background)
	fr.run("solid", fr.solid)
	fr.run("blend", fr.blend)
	if fr.f.BlurPasses > 0 {
		fr.run("blur", fr.blur)
	}
	fr.run("screenshot", func() error { return fr.readback(disp) })
	fr.run("present", fr.present)

	if fr.err != nil {
		return &FrameError{Stage: fr.stage, Wrapped: fr.err}
	}
	return nil
}

func (fr *frame) run(stage string, fn func() error) {
	if fr.err != nil {
		return
	}
	if err := fn(); err != nil {
		fr.err, fr.stage = err, stage
	}
}

// do runs stack operations in order, stopping at the first error.
func do(ops ...func() error) error {
	for _, op := range ops {
		if err := op(); err != nil {
			return err
		}
	}
	return nil
}

func (fr *frame) clear() error {
	fr.backend.Clear()
	return nil
}

func (fr *frame) bindNth(stack *BufferStack, unit, k int) error {
	t, err := stack.Nth(k)
	if err != nil {
		return err
	}
	fr.backend.BindTexture(unit, t.Texture)
	return nil
}

func (fr *frame) baseUniform() PixelsUniform {
	cam := &fr.res.Camera
	viewport := fr.res.Video.ViewportSize
	return PixelsUniform{
		ShadowKind:      fr.f.ShadowShape,
		Geometry:        fr.f.PixelsGeometryKind,
		View:            cam.View(),
		Projection:      cam.Projection(float32(viewport.Width), float32(viewport.Height)),
		LightPos:        cam.Position(),
		AmbientStrength: fr.f.PixelsGeometryKind.AmbientStrength(),
		ContrastFactor:  fr.f.ExtraContrast,
		ExtraLight:      fr.f.ExtraLight(),
		PixelGap:        PixelGap(fr.f),
		PixelScale:      PixelScale(fr.f),
		PixelPulse:      fr.f.PixelsPulse,
		ScreenCurvature: fr.f.ScreenCurvatureKind.Factor(),
	}
}

func (fr *frame) load() error {
	if fr.res.Animation.NeedsBufferDataLoad {
		fr.backend.LoadFrame(fr.res.Animation.Frame().Pixels, fr.res.Video.ImageSize)
	}
	return nil
}

func (fr *frame) setup() error {
	ir := fr.f.InternalResolution
	fr.main.SetResolution(ir.Width(), ir.Height())
	fr.main.SetDepthbuffer(fr.f.PixelHaveDepth())
	fr.main.SetInterpolation(fr.f.TextureInterpolation)
	return do(fr.main.Push, fr.main.Push, fr.main.BindCurrent, fr.clear)
}

func (fr *frame) foreground() error {
	overlapping := fr.f.ColorChannels == crt.Overlapping
	splits := fr.f.ColorChannels.Splits()

	for line := 0; line < fr.f.LinesPerPixel; line++ {
		for split := 0; split < splits; split++ {
			if overlapping {
				if err := do(fr.main.Push, fr.main.BindCurrent, fr.clear); err != nil {
					return err
				}
			}
			u := fr.base
			u.PixelOffset, u.PixelScale, u.LightColor = ForegroundPass(fr.f, line, split)
			u.HeightModifierFactor = 1
			fr.backend.DrawPixels(u)
		}
		if overlapping {
			if err := fr.recombine(); err != nil {
				return err
			}
		}
	}
	return nil
}

// recombine pops the three channel layers of a line group and merges them
// into the working target.
func (fr *frame) recombine() error {
	err := do(
		fr.main.Pop, fr.main.Pop, fr.main.Pop,
		fr.main.BindCurrent,
		func() error { return fr.bindNth(fr.main, 0, 1) },
		func() error { return fr.bindNth(fr.main, 1, 2) },
		func() error { return fr.bindNth(fr.main, 2, 3) },
	)
	if err != nil {
		return err
	}
	fr.backend.DrawRGB()
	fr.backend.BindTexture(0, 0)
	return nil
}

func (fr *frame) background() error {
	if err := do(fr.main.Push, fr.main.BindCurrent, fr.clear); err != nil {
		return err
	}
	if !fr.f.ShowingBackground {
		return nil
	}

	fr.bg.SetResolution(BackgroundWidth, BackgroundHeight)
	fr.bg.SetDepthbuffer(false)
	fr.bg.SetInterpolation(crt.Linear)
	if err := do(fr.bg.Push, fr.bg.BindCurrent, fr.clear); err != nil {
		return err
	}

	u := fr.base
	u.ShadowKind = 0
	u.HeightModifierFactor = 0
	u.LightColor = BackgroundLight(fr.f)
	u.ExtraLight = [3]float32{}
	fr.backend.DrawPixels(u)

	source, err := fr.bg.Current()
	if err != nil {
		return err
	}
	target, err := fr.main.Current()
	if err != nil {
		return err
	}
	if err := Blur(fr.backend, fr.bg, source, target, BackgroundBlurPasses); err != nil {
		return err
	}
	return fr.bg.Pop()
}

func (fr *frame) solid() error {
	if fr.f.ShowingSolidBackground {
		if err := fr.main.BindCurrent(); err != nil {
			return err
		}
		w := fr.f.SolidColorWeight
		u := fr.base
		u.ShadowKind = 0
		u.HeightModifierFactor = 0
		u.LightColor = [3]float32{w, w, w}
		u.ExtraLight = [3]float32{}
		fr.backend.DrawPixels(u)
	}
	return fr.main.Pop()
}

func (fr *frame) blend() error {
	err := do(
		fr.main.Pop,
		fr.main.BindCurrent,
		fr.clear,
		func() error { return fr.bindNth(fr.main, 0, 1) },
		func() error { return fr.bindNth(fr.main, 1, 2) },
	)
	if err != nil {
		return err
	}
	fr.backend.DrawBlend()
	fr.backend.BindTexture(0, 0)
	return nil
}

func (fr *frame) blur() error {
	target, err := fr.main.Current()
	if err != nil {
		return err
	}
	return Blur(fr.backend, fr.main, target, target, fr.f.BlurPasses)
}

func (fr *frame) readback(disp events.Dispatcher) error {
	fr.screenshot = nil
	if !fr.res.ScreenshotRequested {
		return nil
	}
	if err := fr.main.BindCurrent(); err != nil {
		return err
	}
	ir := fr.f.InternalResolution
	fr.screenshot = fr.backend.ReadPixels(ir.Width(), ir.Height())
	disp.DispatchScreenshot(events.Screenshot{
		Pixels:     fr.screenshot,
		Width:      ir.Width(),
		Height:     ir.Height(),
		Multiplier: ir.Multiplier,
	})
	return nil
}

func (fr *frame) present() error {
	if err := do(fr.main.Pop, fr.main.AssertEmpty); err != nil {
		return err
	}
	viewport := fr.res.Video.ViewportSize
	fr.backend.BindTarget(nil)
	fr.backend.Clear()
	fr.backend.Viewport(viewport.Width, viewport.Height)
	if err := fr.bindNth(fr.main, 0, 1); err != nil {
		return err
	}
	fr.backend.DrawUpscale()
	if err := fr.backend.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
