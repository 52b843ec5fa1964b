package video

import (
	"image"
	"runtime"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/san-kum/crtsim/internal/crt"
)

// minFramesPerWorker keeps tiny animations on a single goroutine.
const minFramesPerWorker = 4

// ToRGBA scales img to size and returns its RGBA bytes, bottom row first.
func ToRGBA(img image.Image, size crt.Size) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	src := img.Bounds()
	if src.Dx() == size.Width && src.Dy() == size.Height {
		xdraw.Draw(dst, dst.Bounds(), img, src.Min, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, src, xdraw.Src, nil)
	}
	return flipRows(dst.Pix, size.Width*4)
}

// flipRows reverses the row order of a packed buffer in place.
func flipRows(pix []byte, stride int) []byte {
	rows := len(pix) / stride
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
	return pix
}

// FlipRows returns a copy of pix with the row order reversed.
func FlipRows(pix []byte, width int) []byte {
	out := make([]byte, len(pix))
	copy(out, pix)
	return flipRows(out, width*4)
}

// convertAll converts frames in parallel chunks.
func convertAll(frames []image.Image, size crt.Size) [][]byte {
	out := make([][]byte, len(frames))
	parallelFor(len(frames), minFramesPerWorker, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = ToRGBA(frames[i], size)
		}
	})
	return out
}

func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
