package render

import (
	"fmt"

	"github.com/san-kum/crtsim/internal/crt"
)

// Stats counts what a backend was asked to do.
type Stats struct {
	DrawCalls      int
	PixelDraws     int
	TargetsCreated int
	TargetsDeleted int
	Binds          int
	Clears         int
	ReadBacks      int
	FramesLoaded   int
}

// NullBackend implements Backend without a GPU. It counts calls and, with
// Tracing on, records each one as a short string.
type NullBackend struct {
	Stats   Stats
	Tracing bool
	Trace   []string
	Shadows int

	// FailWith is reported by the next Err call.
	FailWith error

	nextID uint32
	bound  *Target
	units  [4]uint32
}

func NewNullBackend() *NullBackend {
	return &NullBackend{Shadows: len(crt.DefaultShadows())}
}

func (n *NullBackend) trace(format string, args ...any) {
	if n.Tracing {
		n.Trace = append(n.Trace, fmt.Sprintf(format, args...))
	}
}

// ResetTrace clears the trace and the counters.
func (n *NullBackend) ResetTrace() {
	n.Trace = nil
	n.Stats = Stats{}
}

func (n *NullBackend) CreateTarget(spec TargetSpec) (*Target, error) {
	n.nextID++
	n.Stats.TargetsCreated++
	n.trace("create t%d %dx%d", n.nextID, spec.Width, spec.Height)
	return &Target{Spec: spec, Framebuffer: n.nextID, Texture: n.nextID}, nil
}

func (n *NullBackend) DeleteTarget(t *Target) {
	n.Stats.TargetsDeleted++
	n.trace("delete t%d", t.Framebuffer)
}

func (n *NullBackend) BindTarget(t *Target) {
	n.Stats.Binds++
	n.bound = t
	if t == nil {
		n.trace("bind screen")
		return
	}
	n.trace("bind t%d", t.Framebuffer)
}

func (n *NullBackend) Clear() {
	n.Stats.Clears++
	n.trace("clear")
}

func (n *NullBackend) Viewport(width, height int) {
	n.trace("viewport %dx%d", width, height)
}

func (n *NullBackend) BindTexture(unit int, texture uint32) {
	if unit >= 0 && unit < len(n.units) {
		n.units[unit] = texture
	}
	if texture != 0 {
		n.trace("texture %d=t%d", unit, texture)
	}
}

func (n *NullBackend) ReadPixels(width, height int) []byte {
	n.Stats.ReadBacks++
	n.trace("read %dx%d", width, height)
	return make([]byte, width*height*4)
}

func (n *NullBackend) Err() error {
	err := n.FailWith
	n.FailWith = nil
	return err
}

func (n *NullBackend) LoadFrame(pixels []byte, size crt.Size) {
	n.Stats.FramesLoaded++
	n.trace("load %dx%d", size.Width, size.Height)
}

func (n *NullBackend) DrawPixels(u PixelsUniform) {
	n.Stats.DrawCalls++
	n.Stats.PixelDraws++
	n.trace("pixels shadow=%d light=%.2f,%.2f,%.2f", u.ShadowKind, u.LightColor[0], u.LightColor[1], u.LightColor[2])
}

func (n *NullBackend) DrawRGB() {
	n.Stats.DrawCalls++
	n.trace("rgb")
}

func (n *NullBackend) DrawBlend() {
	n.Stats.DrawCalls++
	n.trace("blend")
}

func (n *NullBackend) DrawBlurPass(horizontal bool) {
	n.Stats.DrawCalls++
	if horizontal {
		n.trace("blur h")
	} else {
		n.trace("blur v")
	}
}

func (n *NullBackend) DrawUpscale() {
	n.Stats.DrawCalls++
	n.trace("upscale")
}

func (n *NullBackend) ShadowCount() int { return n.Shadows }
