package glrender

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/render"
)

const (
	shadowTextureSize = 64
	shadowUnit        = 3
)

var ErrIncompleteFramebuffer = errors.New("glrender: incomplete framebuffer")

// Backend draws with an OpenGL 3.3 core context. The context must be current
// on the calling goroutine for every method, New included.
type Backend struct {
	log *slog.Logger

	pixels  *program
	blur    *program
	rgb     *program
	blend   *program
	upscale *program

	quadVAO, quadVBO, quadEBO  uint32
	cubeVAO, cubeVBO, colorVBO uint32

	shadows   []uint32
	image     crt.Size
	instances int32
	depth     bool
	err       error
}

var _ render.Backend = (*Backend)(nil)

func New(shadows crt.ShadowRegistry, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to init opengl: %v", err)
	}

	b := &Backend{log: logger}
	var err error
	steps := []struct {
		dst        **program
		vert, frag string
	}{
		{&b.pixels, "pixels.vert", "pixels.frag"},
		{&b.blur, "quad.vert", "blur.frag"},
		{&b.rgb, "quad.vert", "rgb.frag"},
		{&b.blend, "quad.vert", "blend.frag"},
		{&b.upscale, "quad.vert", "upscale.frag"},
	}
	for _, s := range steps {
		if *s.dst, err = newProgram(s.vert, s.frag); err != nil {
			b.Release()
			return nil, err
		}
	}

	b.initSamplers()
	b.initQuad()
	b.initCube()
	b.initShadows(shadows)

	logger.Info("opengl initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
		"shadows", len(b.shadows),
		"max_texture_size", MaxTextureSize())
	return b, b.Err()
}

// MaxTextureSize queries the largest texture side the driver accepts.
func MaxTextureSize() int {
	var size int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &size)
	return int(size)
}

func (b *Backend) initSamplers() {
	b.blur.use()
	b.blur.setInt("image", 0)
	b.upscale.use()
	b.upscale.setInt("image", 0)
	b.rgb.use()
	b.rgb.setInt("redImage", 0)
	b.rgb.setInt("greenImage", 1)
	b.rgb.setInt("blueImage", 2)
	b.blend.use()
	b.blend.setInt("foregroundImage", 0)
	b.blend.setInt("backgroundImage", 1)
	b.pixels.use()
	b.pixels.setInt("shadowTexture", shadowUnit)
	gl.UseProgram(0)
}

func (b *Backend) initQuad() {
	gl.GenVertexArrays(1, &b.quadVAO)
	gl.BindVertexArray(b.quadVAO)

	gl.GenBuffers(1, &b.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadGeometry)*4, gl.Ptr(quadGeometry), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 5*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 5*4, 3*4)
	gl.BindVertexArray(0)
}

func (b *Backend) initCube() {
	gl.GenVertexArrays(1, &b.cubeVAO)
	gl.BindVertexArray(b.cubeVAO)

	gl.GenBuffers(1, &b.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeGeometry)*4, gl.Ptr(cubeGeometry), gl.STATIC_DRAW)

	stride := int32(cubeFloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	// One RGBA colour per instance, filled by LoadFrame.
	gl.GenBuffers(1, &b.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.colorVBO)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.UNSIGNED_BYTE, true, 0, 0)
	gl.VertexAttribDivisor(3, 1)
	gl.BindVertexArray(0)
}

func (b *Backend) initShadows(shadows crt.ShadowRegistry) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	b.shadows = make([]uint32, len(shadows))
	for i, shape := range shadows {
		data := shape.Texture(shadowTextureSize)
		gl.GenTextures(1, &b.shadows[i])
		gl.BindTexture(gl.TEXTURE_2D, b.shadows[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, shadowTextureSize, shadowTextureSize, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(data))
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func textureFilter(i crt.TextureInterpolation) int32 {
	if i == crt.Nearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func (b *Backend) CreateTarget(spec render.TargetSpec) (*render.Target, error) {
	t := &render.Target{Spec: spec}
	w, h := int32(spec.Width), int32(spec.Height)

	gl.GenFramebuffers(1, &t.Framebuffer)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.Framebuffer)

	filter := textureFilter(spec.Interpolation)
	gl.GenTextures(1, &t.Texture)
	gl.BindTexture(gl.TEXTURE_2D, t.Texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.Texture, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if spec.Depth {
		gl.GenRenderbuffers(1, &t.Depthbuffer)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.Depthbuffer)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.Depthbuffer)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		b.DeleteTarget(t)
		return nil, fmt.Errorf("%w: status 0x%x for %dx%d", ErrIncompleteFramebuffer, status, w, h)
	}
	b.log.Debug("target created", "fb", t.Framebuffer, "width", w, "height", h, "depth", spec.Depth)
	return t, nil
}

func (b *Backend) DeleteTarget(t *render.Target) {
	if t.Depthbuffer != 0 {
		gl.DeleteRenderbuffers(1, &t.Depthbuffer)
	}
	gl.DeleteTextures(1, &t.Texture)
	gl.DeleteFramebuffers(1, &t.Framebuffer)
}

func (b *Backend) BindTarget(t *render.Target) {
	if t == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		b.depth = false
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.Framebuffer)
	gl.Viewport(0, 0, int32(t.Spec.Width), int32(t.Spec.Height))
	b.depth = t.Spec.Depth
	if b.depth {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (b *Backend) Clear() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) BindTexture(unit int, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (b *Backend) ReadPixels(width, height int) []byte {
	buf := make([]byte, width*height*4)
	if len(buf) == 0 {
		return buf
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf
}

// Err drains the GL error queue and returns the first error seen since the
// previous call.
func (b *Backend) Err() error {
	err := b.err
	b.err = nil
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if err == nil {
			err = fmt.Errorf("gl error 0x%x", code)
		}
	}
	return err
}

func (b *Backend) LoadFrame(pixels []byte, size crt.Size) {
	want := size.Width * size.Height * 4
	if len(pixels) < want {
		b.err = fmt.Errorf("frame has %d bytes, want %d for %dx%d", len(pixels), want, size.Width, size.Height)
		return
	}
	b.image = size
	b.instances = int32(size.Width * size.Height)
	if want == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, want, gl.Ptr(pixels[:want]), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *Backend) DrawPixels(u render.PixelsUniform) {
	if b.instances == 0 {
		return
	}
	p := b.pixels
	p.use()
	gl.UniformMatrix4fv(p.loc("view"), 1, false, &u.View[0])
	gl.UniformMatrix4fv(p.loc("projection"), 1, false, &u.Projection[0])
	gl.Uniform2i(p.loc("imageSize"), int32(b.image.Width), int32(b.image.Height))
	p.setVec2("pixelGap", u.PixelGap)
	p.setVec3("pixelScale", u.PixelScale)
	p.setVec3("pixelOffset", u.PixelOffset)
	p.setFloat("pixelPulse", u.PixelPulse)
	p.setFloat("heightModifierFactor", u.HeightModifierFactor)
	p.setFloat("screenCurvature", u.ScreenCurvature)
	p.setVec3("lightPos", u.LightPos)
	p.setVec3("lightColor", u.LightColor)
	p.setVec3("extraLight", u.ExtraLight)
	p.setFloat("ambientStrength", u.AmbientStrength)
	p.setFloat("contrastFactor", u.ContrastFactor)

	shadow := u.ShadowKind > 0 && u.ShadowKind < len(b.shadows)
	p.setBool("hasShadow", shadow)
	if shadow {
		b.BindTexture(shadowUnit, b.shadows[u.ShadowKind])
	}

	vertices := int32(squareVertices)
	if u.Geometry == crt.Cubes {
		vertices = int32(len(cubeGeometry) / cubeFloatsPerVertex)
	}

	// Passes accumulate into the bound target.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.BindVertexArray(b.cubeVAO)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, vertices, b.instances)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// drawQuad runs a full-screen pass. Quads neither test nor write depth, so
// a depth target keeps accepting later pixel and quad passes.
func (b *Backend) drawQuad(p *program) {
	p.use()
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.BindVertexArray(b.quadVAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	if b.depth {
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (b *Backend) DrawRGB() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	b.drawQuad(b.rgb)
	gl.Disable(gl.BLEND)
}

func (b *Backend) DrawBlend() { b.drawQuad(b.blend) }

func (b *Backend) DrawBlurPass(horizontal bool) {
	b.blur.use()
	b.blur.setBool("horizontal", horizontal)
	b.drawQuad(b.blur)
}

func (b *Backend) DrawUpscale() { b.drawQuad(b.upscale) }

func (b *Backend) ShadowCount() int { return len(b.shadows) }

// Release frees every GL object the backend created. Targets owned by a
// render.BufferStack are released through the stack.
func (b *Backend) Release() {
	for _, p := range []*program{b.pixels, b.blur, b.rgb, b.blend, b.upscale} {
		if p != nil {
			p.delete()
		}
	}
	for _, buf := range []*uint32{&b.quadVBO, &b.quadEBO, &b.cubeVBO, &b.colorVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
		}
	}
	for _, vao := range []*uint32{&b.quadVAO, &b.cubeVAO} {
		if *vao != 0 {
			gl.DeleteVertexArrays(1, vao)
		}
	}
	if len(b.shadows) > 0 {
		gl.DeleteTextures(int32(len(b.shadows)), &b.shadows[0])
	}
	b.shadows = nil
}
