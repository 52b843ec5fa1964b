package video

import (
	"image"
	"image/gif"

	xdraw "golang.org/x/image/draw"
)

// composeGIF renders every frame of g onto the logical screen, applying the
// disposal method of the previous frame before drawing the next.
func composeGIF(g *gif.GIF) []image.Image {
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		for _, f := range g.Image {
			r := f.Bounds()
			w, h = maxInt(w, r.Max.X), maxInt(h, r.Max.Y)
		}
	}
	bounds := image.Rect(0, 0, w, h)
	canvas := image.NewRGBA(bounds)
	out := make([]image.Image, len(g.Image))

	for i, frame := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = image.NewRGBA(bounds)
			copy(previous.Pix, canvas.Pix)
		}

		xdraw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, xdraw.Over)
		snapshot := image.NewRGBA(bounds)
		copy(snapshot.Pix, canvas.Pix)
		out[i] = snapshot

		switch disposal {
		case gif.DisposalBackground:
			xdraw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, xdraw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}
	return out
}

// gifDelays converts hundredths of a second to milliseconds.
func gifDelays(g *gif.GIF) []float64 {
	delays := make([]float64, len(g.Image))
	for i := range delays {
		d := 0
		if i < len(g.Delay) {
			d = g.Delay[i]
		}
		if d <= 1 {
			delays[i] = DefaultGIFDelay
			continue
		}
		delays[i] = float64(d * 10)
	}
	return delays
}
