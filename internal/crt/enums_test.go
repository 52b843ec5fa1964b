package crt

import "testing"

func TestColorChannelsCycle(t *testing.T) {
	c := Combined
	want := []ColorChannels{Overlapping, SplitHorizontal, SplitVertical, Combined}
	for i, w := range want {
		c = c.Next()
		if c != w {
			t.Fatalf("step %d: expected %s, got %s", i, w, c)
		}
	}
}

func TestLayeringCycleVisitsAllVariants(t *testing.T) {
	seen := map[ScreenLayeringKind]bool{}
	l := ShadowOnly
	for i := 0; i < len(layeringVariants); i++ {
		seen[l] = true
		l = l.Next()
	}
	if l != ShadowOnly {
		t.Errorf("expected cycle to return to shadow only, got %s", l)
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct variants, got %d", len(seen))
	}
}

func TestNextUnknownVariantRestarts(t *testing.T) {
	if got := ColorChannels(42).Next(); got != Combined {
		t.Errorf("expected combined, got %s", got)
	}
}

func TestLayers(t *testing.T) {
	tests := []struct {
		kind   ScreenLayeringKind
		shadow bool
		solid  bool
		weight float32
	}{
		{ShadowOnly, true, false, 0.75},
		{SolidOnly, false, true, 1.0},
		{ShadowWithSolidBackground75, true, true, 0.75},
		{ShadowWithSolidBackground50, true, true, 0.5},
		{ShadowWithSolidBackground25, true, true, 0.25},
	}
	for _, tt := range tests {
		shadow, solid, weight := tt.kind.Layers()
		if shadow != tt.shadow || solid != tt.solid || weight != tt.weight {
			t.Errorf("%s: got (%v, %v, %v)", tt.kind, shadow, solid, weight)
		}
	}
}

func TestParseVariants(t *testing.T) {
	if c, ok := ParseColorChannels("horizontal-split"); !ok || c != SplitHorizontal {
		t.Errorf("expected horizontal split, got %s (%v)", c, ok)
	}
	if c, ok := ParseColorChannels("1"); !ok || c != Overlapping {
		t.Errorf("expected index 1 to parse as overlapping, got %s", c)
	}
	if _, ok := ParseColorChannels("9"); ok {
		t.Error("out of range index should not parse")
	}
	if l, ok := ParseScreenLayeringKind("Shadow with 50% Solid background"); !ok || l != ShadowWithSolidBackground50 {
		t.Errorf("expected 50%% layering, got %s", l)
	}
	if l, ok := ParseScreenLayeringKind("solid"); !ok || l != SolidOnly {
		t.Errorf("expected solid alias, got %s", l)
	}
	if g, ok := ParsePixelsGeometryKind("CUBES"); !ok || g != Cubes {
		t.Errorf("expected cubes, got %s", g)
	}
	if _, ok := ParseTextureInterpolation("bicubic"); ok {
		t.Error("unknown interpolation should not parse")
	}
}

func TestCurvatureFactor(t *testing.T) {
	want := map[ScreenCurvatureKind]float32{Flat: 0, Curved1: 0.15, Curved2: 0.3, Curved3: 0.45}
	for k, f := range want {
		if k.Factor() != f {
			t.Errorf("%s: expected %v, got %v", k, f, k.Factor())
		}
	}
}
