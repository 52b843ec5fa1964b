package crt

import "testing"

func TestInternalResolutionScale(t *testing.T) {
	r := NewInternalResolution(2)
	r.SetViewport(Size{Width: 800, Height: 600}, 4096)
	if r.Width() != 1600 || r.Height() != 1200 {
		t.Errorf("expected 1600x1200, got %dx%d", r.Width(), r.Height())
	}

	r.SetViewport(Size{Width: 800, Height: 600}, 1000)
	if r.Width() != 1000 {
		t.Errorf("width should clamp to max texture size, got %d", r.Width())
	}
}

func TestInternalResolutionNextSkipsOversized(t *testing.T) {
	r := NewInternalResolution(1)
	r.SetViewport(Size{Width: 1000, Height: 500}, 2500)

	r = r.Next()
	if r.Multiplier != 2 {
		t.Fatalf("expected 2x, got %gx", r.Multiplier)
	}
	r = r.Next()
	if r.Multiplier != 0.25 {
		t.Errorf("3x and 4x exceed the limit, expected wrap to 0.25x, got %gx", r.Multiplier)
	}
}

func TestValidMultiplier(t *testing.T) {
	if !ValidMultiplier(0.5) {
		t.Error("0.5 should be valid")
	}
	if ValidMultiplier(1.5) {
		t.Error("1.5 should be invalid")
	}
}

func TestShadowRegistry(t *testing.T) {
	reg := DefaultShadows()
	if reg.Get(0).Name != "none" {
		t.Errorf("index 0 should be none, got %s", reg.Get(0).Name)
	}
	if reg.Get(-1).Index != 0 || reg.Get(len(reg)).Index != 0 {
		t.Error("out of range lookups should fall back to none")
	}

	tex := reg.Get(0).Texture(4)
	for i, b := range tex {
		if b != 255 {
			t.Fatalf("none mask texel %d = %d, want 255", i, b)
		}
	}
	dot := reg.Get(5).Texture(16)
	if dot[0] >= dot[8*16+8] {
		t.Error("dot mask should be brighter in the centre than at the corner")
	}
}

func TestNewFilters(t *testing.T) {
	f := NewFilters(1.5)
	if f.BlurPasses != 1 || f.LinesPerPixel != 1 {
		t.Errorf("unexpected defaults blur=%d lpp=%d", f.BlurPasses, f.LinesPerPixel)
	}
	if !f.ShowingDiffuseForeground || f.ShowingSolidBackground {
		t.Error("default layering should show only the shadow layer")
	}
	if f.PixelHaveDepth() {
		t.Error("squares should not need depth")
	}
	f.PixelsGeometryKind = Cubes
	if !f.PixelHaveDepth() {
		t.Error("cubes need depth")
	}
}
