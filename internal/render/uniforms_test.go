package render

import (
	"math"
	"testing"

	"github.com/san-kum/crtsim/internal/crt"
)

func approx(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestPixelScaleAndGap(t *testing.T) {
	f := crt.NewFilters(2)
	f.PixelScaleX = 1
	f.PixelScaleY = 0.5
	f.PixelGap = 1
	if got := PixelScale(&f); !approx(got, [3]float32{1, 1.5, 2}) {
		t.Errorf("unexpected scale %v", got)
	}
	if got := PixelGap(&f); got != [2]float32{4, 2} {
		t.Errorf("unexpected gap %v", got)
	}
}

func TestForegroundPass(t *testing.T) {
	tests := []struct {
		name     string
		channels crt.ColorChannels
		lines    int
		line     int
		split    int
		offset   [3]float32
		scale    [3]float32
		light    [3]float32
	}{
		{"combined", crt.Combined, 1, 0, 0, [3]float32{}, [3]float32{1, 1, 1}, [3]float32{1, 1, 1}},
		{"horizontal red", crt.SplitHorizontal, 1, 0, 0, [3]float32{-1.0 / 3, 0, 0}, [3]float32{3, 1, 1}, [3]float32{1, 0, 0}},
		{"horizontal blue", crt.SplitHorizontal, 1, 0, 2, [3]float32{1.0 / 3, 0, 0}, [3]float32{3, 1, 1}, [3]float32{0, 0, 1}},
		{"overlapping green", crt.Overlapping, 1, 0, 1, [3]float32{}, [3]float32{1.5, 1, 1}, [3]float32{0, 1, 0}},
		{"vertical blue", crt.SplitVertical, 1, 0, 2, [3]float32{0, 1.0 / 3, 0}, [3]float32{1, 3, 1}, [3]float32{0, 0, 1}},
		{"two lines second", crt.Combined, 2, 1, 0, [3]float32{0.25, 0, 0}, [3]float32{2, 1, 1}, [3]float32{1, 1, 1}},
		{"two lines split", crt.SplitHorizontal, 2, 0, 0, [3]float32{-1.0/6 - 0.25, 0, 0}, [3]float32{6, 1, 1}, [3]float32{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := crt.NewFilters(1)
			f.ColorChannels = tt.channels
			f.LinesPerPixel = tt.lines
			offset, scale, light := ForegroundPass(&f, tt.line, tt.split)
			if !approx(offset, tt.offset) {
				t.Errorf("offset: expected %v, got %v", tt.offset, offset)
			}
			if !approx(scale, tt.scale) {
				t.Errorf("scale: expected %v, got %v", tt.scale, scale)
			}
			if !approx(light, tt.light) {
				t.Errorf("light: expected %v, got %v", tt.light, light)
			}
		})
	}
}

func TestLineCenterTable(t *testing.T) {
	prev := float32(-1)
	for n := 1; n <= 20; n++ {
		c := lineCenter(n)
		if c < prev {
			t.Errorf("centre offset should not decrease: f(%d)=%v < %v", n, c, prev)
		}
		prev = c
	}
	if lineCenter(20) != 0.45 {
		t.Errorf("large counts use 0.45, got %v", lineCenter(20))
	}
}

func TestBackgroundLight(t *testing.T) {
	f := crt.NewFilters(1)
	f.LightColor = 0xFF0000
	if got := BackgroundLight(&f); !approx(got, [3]float32{0.5, 0, 0}) {
		t.Errorf("unexpected background light %v", got)
	}
}
