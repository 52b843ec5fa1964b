package crt

import (
	"strconv"
	"strings"
	"unicode"
)

type ColorChannels int

const (
	Combined ColorChannels = iota
	Overlapping
	SplitHorizontal
	SplitVertical
)

var colorChannelsVariants = []ColorChannels{Combined, Overlapping, SplitHorizontal, SplitVertical}

func (c ColorChannels) String() string {
	switch c {
	case Combined:
		return "combined"
	case Overlapping:
		return "horizontal overlapping"
	case SplitHorizontal:
		return "horizontal split"
	case SplitVertical:
		return "vertical split"
	}
	return "unknown"
}

func (c ColorChannels) Next() ColorChannels { return nextVariant(colorChannelsVariants, c) }

// Splits is the number of draw passes a colour mode needs per line group.
func (c ColorChannels) Splits() int {
	if c == Combined {
		return 1
	}
	return 3
}

func ParseColorChannels(s string) (ColorChannels, bool) {
	return parseVariant(colorChannelsVariants, s, map[string]ColorChannels{
		"overlapping":     Overlapping,
		"splithorizontal": SplitHorizontal,
		"splitvertical":   SplitVertical,
	})
}

type PixelsGeometryKind int

const (
	Squares PixelsGeometryKind = iota
	Cubes
)

var geometryVariants = []PixelsGeometryKind{Squares, Cubes}

func (g PixelsGeometryKind) String() string {
	if g == Cubes {
		return "cubes"
	}
	return "squares"
}

func (g PixelsGeometryKind) Next() PixelsGeometryKind { return nextVariant(geometryVariants, g) }

// AmbientStrength is the flat light term used by the pixel shader.
func (g PixelsGeometryKind) AmbientStrength() float32 {
	if g == Cubes {
		return 0.5
	}
	return 1.0
}

func ParsePixelsGeometryKind(s string) (PixelsGeometryKind, bool) {
	return parseVariant(geometryVariants, s, nil)
}

type ScreenLayeringKind int

const (
	ShadowOnly ScreenLayeringKind = iota
	SolidOnly
	ShadowWithSolidBackground75
	ShadowWithSolidBackground50
	ShadowWithSolidBackground25
)

var layeringVariants = []ScreenLayeringKind{
	ShadowOnly,
	SolidOnly,
	ShadowWithSolidBackground75,
	ShadowWithSolidBackground50,
	ShadowWithSolidBackground25,
}

func (l ScreenLayeringKind) String() string {
	switch l {
	case ShadowOnly:
		return "Shadow only"
	case SolidOnly:
		return "Solid only"
	case ShadowWithSolidBackground75:
		return "Shadow with 75% Solid background"
	case ShadowWithSolidBackground50:
		return "Shadow with 50% Solid background"
	case ShadowWithSolidBackground25:
		return "Shadow with 25% Solid background"
	}
	return "unknown"
}

func (l ScreenLayeringKind) Next() ScreenLayeringKind { return nextVariant(layeringVariants, l) }

// Layers reports which layers the kind shows and the weight of the solid one.
func (l ScreenLayeringKind) Layers() (shadow, solid bool, solidWeight float32) {
	switch l {
	case SolidOnly:
		return false, true, 1.0
	case ShadowWithSolidBackground75:
		return true, true, 0.75
	case ShadowWithSolidBackground50:
		return true, true, 0.5
	case ShadowWithSolidBackground25:
		return true, true, 0.25
	}
	return true, false, 0.75
}

func ParseScreenLayeringKind(s string) (ScreenLayeringKind, bool) {
	return parseVariant(layeringVariants, s, map[string]ScreenLayeringKind{
		"shadow":   ShadowOnly,
		"solid":    SolidOnly,
		"shadow75": ShadowWithSolidBackground75,
		"shadow50": ShadowWithSolidBackground50,
		"shadow25": ShadowWithSolidBackground25,
	})
}

type ScreenCurvatureKind int

const (
	Flat ScreenCurvatureKind = iota
	Curved1
	Curved2
	Curved3
)

var curvatureVariants = []ScreenCurvatureKind{Flat, Curved1, Curved2, Curved3}

func (c ScreenCurvatureKind) String() string {
	switch c {
	case Flat:
		return "flat"
	case Curved1:
		return "curved 1"
	case Curved2:
		return "curved 2"
	case Curved3:
		return "curved 3"
	}
	return "unknown"
}

func (c ScreenCurvatureKind) Next() ScreenCurvatureKind { return nextVariant(curvatureVariants, c) }

func (c ScreenCurvatureKind) Factor() float32 {
	switch c {
	case Curved1:
		return 0.15
	case Curved2:
		return 0.3
	case Curved3:
		return 0.45
	}
	return 0
}

func ParseScreenCurvatureKind(s string) (ScreenCurvatureKind, bool) {
	return parseVariant(curvatureVariants, s, nil)
}

type TextureInterpolation int

const (
	Linear TextureInterpolation = iota
	Nearest
)

var interpolationVariants = []TextureInterpolation{Linear, Nearest}

func (t TextureInterpolation) String() string {
	if t == Nearest {
		return "nearest"
	}
	return "linear"
}

func (t TextureInterpolation) Next() TextureInterpolation {
	return nextVariant(interpolationVariants, t)
}

func ParseTextureInterpolation(s string) (TextureInterpolation, bool) {
	return parseVariant(interpolationVariants, s, nil)
}

// nextVariant cycles through an explicit variant list. A value missing from
// the list restarts at the first variant.
func nextVariant[T comparable](variants []T, cur T) T {
	for i, v := range variants {
		if v == cur {
			return variants[(i+1)%len(variants)]
		}
	}
	return variants[0]
}

// parseVariant accepts the variant index, its display name or an alias.
// Names are compared ignoring case, spaces, dashes, underscores and '%'.
func parseVariant[T interface {
	comparable
	String() string
}](variants []T, s string, aliases map[string]T) (T, bool) {
	var zero T
	s = strings.TrimSpace(s)
	if idx, err := strconv.Atoi(s); err == nil {
		if idx >= 0 && idx < len(variants) {
			return variants[idx], true
		}
		return zero, false
	}
	key := normalizeName(s)
	for _, v := range variants {
		if normalizeName(v.String()) == key {
			return v, true
		}
	}
	if v, ok := aliases[key]; ok {
		return v, true
	}
	return zero, false
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '%':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}
