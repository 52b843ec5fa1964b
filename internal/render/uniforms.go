package render

import (
	"github.com/san-kum/crtsim/internal/crt"
)

// BackgroundLightFactor dims the light used for the blurred bleed layer.
const BackgroundLightFactor = 0.5

// PixelScale is the base instance scale before any colour split.
func PixelScale(f *crt.Filters) [3]float32 {
	return [3]float32{
		(f.PixelScaleX + 1) / f.PixelWidth,
		f.PixelScaleY + 1,
		(f.PixelScaleX+f.PixelScaleX)*0.5 + 1,
	}
}

func PixelGap(f *crt.Filters) [2]float32 {
	return [2]float32{
		(1 + f.PixelGap) * f.PixelWidth,
		1 + f.PixelGap,
	}
}

// lineCenter is the empirical centring offset for n lines per pixel.
func lineCenter(n int) float32 {
	switch n {
	case 1:
		return 0
	case 2:
		return 0.25
	case 3:
		return 1.0 / 3.0
	case 4:
		return 0.375
	case 5:
		return 0.4
	case 6:
		return 0.4 + 0.1/6.0
	case 7:
		return 0.4 + 0.1/6.0 + 0.1/8.4
	case 8:
		return 0.4 + 0.1/6.0 + 0.1/8.4 + 0.00892575
	case 9:
		return 0.4 + 0.1/6.0 + 0.1/8.4 + 0.00892575 + 0.006945
	}
	return 0.45
}

// ForegroundPass returns offset, scale and light colour for line group line
// and colour split split.
func ForegroundPass(f *crt.Filters, line, split int) (offset, scale, light [3]float32) {
	scale = PixelScale(f)
	light = crt.ColorFromInt(f.LightColor)
	columnWidth := f.PixelWidth / (f.PixelScaleX + 1)
	third := (float32(split) - 1) / 3

	if f.ColorChannels != crt.Combined {
		light[(split+1)%3] = 0
		light[(split+2)%3] = 0
		switch f.ColorChannels {
		case crt.SplitHorizontal:
			offset[0] = third * columnWidth
			scale[0] *= 3
		case crt.Overlapping:
			offset[0] = third * columnWidth
			scale[0] *= 1.5
		case crt.SplitVertical:
			offset[1] = third * (1 - f.PixelScaleY)
			scale[1] *= 3
		}
	}

	if n := f.LinesPerPixel; n > 1 {
		offset[0] /= float32(n)
		offset[0] += (float32(line)/float32(n) - lineCenter(n)) * columnWidth
		scale[0] *= float32(n)
	}
	return offset, scale, light
}

func BackgroundLight(f *crt.Filters) [3]float32 {
	return crt.ScaleColor(crt.ColorFromInt(f.LightColor), BackgroundLightFactor)
}
