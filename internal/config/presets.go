package config

import "sort"

func ptr[T any](v T) *T { return &v }

// Presets are named filter looks, applied before a config's own filters.
var Presets = map[string]*FiltersConfig{
	"default": {},
	"arcade": {
		ColorChannels: ptr("combined"),
		Geometry:      ptr("squares"),
		Shadow:        ptr(2),
		Layering:      ptr("shadow50"),
		BlurPasses:    ptr(1),
		Curvature:     ptr("curved 1"),
	},
	"trinitron": {
		ColorChannels: ptr("splithorizontal"),
		Shadow:        ptr(3),
		Layering:      ptr("shadow75"),
		BlurPasses:    ptr(2),
		VerticalGap:   ptr(float32(0.2)),
	},
	"pvm": {
		LinesPerPixel: ptr(2),
		Shadow:        ptr(6),
		BlurPasses:    ptr(1),
		Contrast:      ptr(float32(1.2)),
	},
	"slot-mask": {
		ColorChannels: ptr("overlapping"),
		Shadow:        ptr(4),
		Curvature:     ptr("curved 2"),
		BlurPasses:    ptr(3),
	},
	"sharp": {
		Shadow:        ptr(0),
		BlurPasses:    ptr(0),
		Interpolation: ptr("nearest"),
		Background:    ptr(false),
	},
	"cubes": {
		Geometry:   ptr("cubes"),
		Shadow:     ptr(0),
		BlurPasses: ptr(0),
		Spread:     ptr(float32(0.5)),
	},
	"amber": {
		LightColor: ptr("#FFB000"),
		Layering:   ptr("solid"),
		BlurPasses: ptr(2),
		Curvature:  ptr("curved 3"),
	},
}

// GetPreset returns the named preset or nil.
func GetPreset(name string) *FiltersConfig {
	return Presets[name]
}

// ListPresets returns the preset names in alphabetical order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
