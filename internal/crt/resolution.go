package crt

import "fmt"

type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

var resolutionMultipliers = []float64{0.25, 0.5, 1, 2, 3, 4}

// InternalResolution is the off-screen render size, expressed as a multiplier
// of the viewport and limited by the largest texture the device accepts.
type InternalResolution struct {
	Multiplier     float64
	Viewport       Size
	MaxTextureSize int
}

func NewInternalResolution(multiplier float64) InternalResolution {
	return InternalResolution{Multiplier: multiplier}
}

func (r *InternalResolution) SetViewport(viewport Size, maxTextureSize int) {
	r.Viewport = viewport
	r.MaxTextureSize = maxTextureSize
}

func (r InternalResolution) Width() int  { return r.scale(r.Viewport.Width) }
func (r InternalResolution) Height() int { return r.scale(r.Viewport.Height) }

func (r InternalResolution) scale(v int) int {
	n := int(float64(v) * r.Multiplier)
	if r.MaxTextureSize > 0 && n > r.MaxTextureSize {
		n = r.MaxTextureSize
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (r InternalResolution) fits(multiplier float64) bool {
	if r.MaxTextureSize <= 0 {
		return true
	}
	longest := r.Viewport.Width
	if r.Viewport.Height > longest {
		longest = r.Viewport.Height
	}
	return float64(longest)*multiplier <= float64(r.MaxTextureSize)
}

// Next selects the following multiplier that fits the texture limit, wrapping
// to the smallest one.
func (r InternalResolution) Next() InternalResolution {
	idx := -1
	for i, m := range resolutionMultipliers {
		if m == r.Multiplier {
			idx = i
			break
		}
	}
	for step := 1; step <= len(resolutionMultipliers); step++ {
		m := resolutionMultipliers[(idx+step+len(resolutionMultipliers))%len(resolutionMultipliers)]
		if r.fits(m) {
			r.Multiplier = m
			return r
		}
	}
	return r
}

func (r InternalResolution) String() string {
	return fmt.Sprintf("%dx%d (%gx)", r.Width(), r.Height(), r.Multiplier)
}

// ValidMultiplier reports whether m is one of the selectable multipliers.
func ValidMultiplier(m float64) bool {
	for _, v := range resolutionMultipliers {
		if v == m {
			return true
		}
	}
	return false
}
