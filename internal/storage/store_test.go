package storage

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
)

// bottomUp returns a 1x2 shot: red on the bottom row, green on top.
func bottomUp() events.Screenshot {
	return events.Screenshot{
		Pixels:     []byte{255, 0, 0, 255, 0, 255, 0, 255},
		Width:      1,
		Height:     2,
		Multiplier: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	st.now = func() time.Time { return time.Unix(1700000000, 0) }

	f := crt.NewFilters(1)
	summary := Summarize(&f, crt.DefaultShadows())
	id, err := st.Save("seiken.png", bottomUp(), summary)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id != "shot_1700000000000" {
		t.Errorf("unexpected id %q", id)
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Source != "seiken.png" || meta.Width != 1 || meta.Height != 2 || meta.Multiplier != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Filters.LightColor != "#FFFFFF" || meta.Filters.Shadow != "soft ellipse" {
		t.Errorf("unexpected filter summary %+v", meta.Filters)
	}

	img, err := st.LoadImage(id)
	if err != nil {
		t.Fatalf("load image failed: %v", err)
	}
	top := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA)
	if top.G != 255 || top.R != 0 {
		t.Errorf("saved image should be top-down, got %v at the top", top)
	}
}

func TestStoreIDsDoNotCollide(t *testing.T) {
	st := New(t.TempDir())
	st.now = func() time.Time { return time.Unix(42, 0) }

	first, err := st.Save("a", bottomUp(), FilterSummary{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save("b", bottomUp(), FilterSummary{})
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("both shots got id %q", first)
	}

	shots, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) != 2 || shots[0].ID != first || shots[1].ID != second {
		t.Errorf("unexpected listing %+v", shots)
	}
}

func TestStoreRejectsBadBuffers(t *testing.T) {
	st := New(t.TempDir())
	shot := bottomUp()
	shot.Height = 3
	if _, err := st.Save("x", shot, FilterSummary{}); !errors.Is(err, ErrBadScreenshot) {
		t.Errorf("expected ErrBadScreenshot, got %v", err)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	shots, err := st.List()
	if err != nil || len(shots) != 0 {
		t.Errorf("expected an empty listing, got %v, %v", shots, err)
	}
}
