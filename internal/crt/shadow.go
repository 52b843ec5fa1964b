package crt

import "math"

// ShadowShape is one selectable shadow-mask pattern. Mask maps local pixel
// coordinates in [0,1]² to a light transmission factor in [0,1].
type ShadowShape struct {
	Index int
	Name  string
	Mask  func(u, v float64) float64
}

func (s ShadowShape) String() string { return s.Name }

// Texture rasterises the mask into a size×size single-channel buffer.
func (s ShadowShape) Texture(size int) []byte {
	buf := make([]byte, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := (float64(x) + 0.5) / float64(size)
			v := (float64(y) + 0.5) / float64(size)
			m := math.Max(0, math.Min(1, s.Mask(u, v)))
			buf[y*size+x] = byte(math.Round(m * 255))
		}
	}
	return buf
}

// ShadowRegistry is the ordered list of shadow shapes known to a session.
// Index 0 always means "no shadow".
type ShadowRegistry []ShadowShape

func DefaultShadows() ShadowRegistry {
	shapes := []struct {
		name string
		mask func(u, v float64) float64
	}{
		{"none", func(u, v float64) float64 { return 1 }},
		{"soft ellipse", func(u, v float64) float64 {
			return math.Exp(-4 * (sq(u-0.5) + sq(v-0.5)))
		}},
		{"hard ellipse", func(u, v float64) float64 {
			return 1 - smoothstep(0.2, 0.25, sq(u-0.5)+sq(v-0.5))
		}},
		{"aperture grille", func(u, v float64) float64 {
			return math.Pow(math.Sin(math.Pi*u), 2)
		}},
		{"slot mask", func(u, v float64) float64 {
			slot := 1 - smoothstep(0.40, 0.48, math.Abs(v-0.5))
			return math.Pow(math.Sin(math.Pi*u), 2) * slot
		}},
		{"dot", func(u, v float64) float64 {
			return 1 - smoothstep(0.30, 0.40, math.Hypot(u-0.5, v-0.5))
		}},
		{"scanline", func(u, v float64) float64 {
			return 0.5 + 0.5*math.Cos(2*math.Pi*(v-0.5))
		}},
	}
	reg := make(ShadowRegistry, len(shapes))
	for i, s := range shapes {
		reg[i] = ShadowShape{Index: i, Name: s.name, Mask: s.mask}
	}
	return reg
}

// Get returns the shape at idx, falling back to "no shadow".
func (r ShadowRegistry) Get(idx int) ShadowShape {
	if idx < 0 || idx >= len(r) {
		return r[0]
	}
	return r[idx]
}

func sq(x float64) float64 { return x * x }

func smoothstep(edge0, edge1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
