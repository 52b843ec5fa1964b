// Package video turns image files into the animation steps a session plays.
//
// Still images (PNG, JPEG, BMP, WebP) become a single step. GIF files become
// one step per frame with the frame delay converted to milliseconds. Every
// step holds RGBA bytes with the bottom row first, the layout the GPU upload
// expects.
package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/sim"
)

// DefaultGIFDelay replaces GIF frame delays of 10ms or less, matching how
// browsers play such files.
const DefaultGIFDelay = 100

var (
	ErrEmptyImage = errors.New("video: image has no pixels")
	ErrTooLarge   = errors.New("video: image exceeds the maximum texture size")
)

// Options tune how a source becomes a VideoInput.
type Options struct {
	PixelWidth     float32
	Stretch        bool
	MaxTextureSize int
	// MaxSide downsizes images whose longest side is larger. Zero keeps the
	// native size.
	MaxSide int
}

func DefaultOptions() Options {
	return Options{PixelWidth: 1, MaxTextureSize: 16384}
}

// Load decodes the file at path.
func Load(path string, viewport crt.Size, opts Options) (sim.VideoInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return sim.VideoInput{}, err
	}
	defer f.Close()

	v, err := Decode(f, viewport, opts)
	if err != nil {
		return sim.VideoInput{}, fmt.Errorf("video: %s: %w", path, err)
	}
	return v, nil
}

// Decode reads a still image or an animated GIF from r.
func Decode(r io.Reader, viewport crt.Size, opts Options) (sim.VideoInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return sim.VideoInput{}, err
	}

	var frames []image.Image
	var delays []float64
	if bytes.HasPrefix(data, []byte("GIF8")) {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return sim.VideoInput{}, err
		}
		frames = composeGIF(g)
		delays = gifDelays(g)
	} else {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return sim.VideoInput{}, err
		}
		frames = []image.Image{img}
		delays = []float64{0}
	}
	return fromFrames(frames, delays, viewport, opts)
}

// FromImages builds an input from already decoded frames. delays are in
// milliseconds and must match frames in length.
func FromImages(frames []image.Image, delays []float64, viewport crt.Size, opts Options) (sim.VideoInput, error) {
	if len(frames) != len(delays) {
		return sim.VideoInput{}, fmt.Errorf("video: %d frames but %d delays", len(frames), len(delays))
	}
	return fromFrames(frames, delays, viewport, opts)
}

func fromFrames(frames []image.Image, delays []float64, viewport crt.Size, opts Options) (sim.VideoInput, error) {
	if len(frames) == 0 {
		return sim.VideoInput{}, sim.ErrNoFrames
	}
	if opts.PixelWidth <= 0 {
		opts.PixelWidth = 1
	}

	b := frames[0].Bounds()
	size := crt.Size{Width: b.Dx(), Height: b.Dy()}
	if size.Width <= 0 || size.Height <= 0 {
		return sim.VideoInput{}, ErrEmptyImage
	}
	size = fitSide(size, opts.MaxSide)
	if opts.MaxTextureSize > 0 && (size.Width > opts.MaxTextureSize || size.Height > opts.MaxTextureSize) {
		return sim.VideoInput{}, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, size.Width, size.Height, opts.MaxTextureSize)
	}

	pixels := convertAll(frames, size)
	steps := make([]sim.AnimationStep, len(frames))
	for i := range frames {
		steps[i] = sim.AnimationStep{Pixels: pixels[i], Delay: delays[i]}
	}

	return sim.VideoInput{
		Steps:          steps,
		ImageSize:      size,
		BackgroundSize: size,
		ViewportSize:   viewport,
		PixelWidth:     opts.PixelWidth,
		Stretch:        opts.Stretch,
		MaxTextureSize: opts.MaxTextureSize,
	}, nil
}

// fitSide scales size down so its longest side is at most max, keeping the
// aspect ratio.
func fitSide(size crt.Size, max int) crt.Size {
	if max <= 0 || (size.Width <= max && size.Height <= max) {
		return size
	}
	if size.Width >= size.Height {
		h := size.Height * max / size.Width
		return crt.Size{Width: max, Height: maxInt(h, 1)}
	}
	w := size.Width * max / size.Height
	return crt.Size{Width: maxInt(w, 1), Height: max}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
