package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/input"
	"github.com/san-kum/crtsim/internal/video"
)

const (
	metadataFile = "metadata.json"
	imageFile    = "screenshot.png"
)

var ErrBadScreenshot = errors.New("storage: screenshot buffer does not match its size")

// Store keeps one directory per screenshot under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// FilterSummary is the human readable filter state saved next to a shot.
type FilterSummary struct {
	ColorChannels string  `json:"color_channels"`
	Geometry      string  `json:"geometry"`
	Shadow        string  `json:"shadow"`
	Layering      string  `json:"layering"`
	Curvature     string  `json:"curvature"`
	Interpolation string  `json:"interpolation"`
	BlurPasses    int     `json:"blur_passes"`
	LinesPerPixel int     `json:"lines_per_pixel"`
	Brightness    float32 `json:"brightness"`
	Contrast      float32 `json:"contrast"`
	LightColor    string  `json:"light_color"`
	Background    bool    `json:"background"`
}

func Summarize(f *crt.Filters, shadows crt.ShadowRegistry) FilterSummary {
	return FilterSummary{
		ColorChannels: f.ColorChannels.String(),
		Geometry:      f.PixelsGeometryKind.String(),
		Shadow:        shadows.Get(f.ShadowShape).String(),
		Layering:      f.LayeringKind.String(),
		Curvature:     f.ScreenCurvatureKind.String(),
		Interpolation: f.TextureInterpolation.String(),
		BlurPasses:    f.BlurPasses,
		LinesPerPixel: f.LinesPerPixel,
		Brightness:    f.ExtraBright,
		Contrast:      f.ExtraContrast,
		LightColor:    input.FormatColor(f.LightColor),
		Background:    f.ShowingBackground,
	}
}

type ShotMetadata struct {
	ID         string        `json:"id"`
	Source     string        `json:"source"`
	Timestamp  time.Time     `json:"timestamp"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Multiplier float64       `json:"multiplier"`
	Filters    FilterSummary `json:"filters"`
}

// Save writes shot as a top-down PNG plus its metadata and returns the new
// shot id.
func (s *Store) Save(source string, shot events.Screenshot, filters FilterSummary) (string, error) {
	if shot.Width <= 0 || shot.Height <= 0 || len(shot.Pixels) != shot.Width*shot.Height*4 {
		return "", fmt.Errorf("%w: %d bytes for %dx%d", ErrBadScreenshot, len(shot.Pixels), shot.Width, shot.Height)
	}

	now := s.now()
	id, dir, err := s.reserve(now)
	if err != nil {
		return "", err
	}

	img := &image.NRGBA{
		Pix:    video.FlipRows(shot.Pixels, shot.Width),
		Stride: shot.Width * 4,
		Rect:   image.Rect(0, 0, shot.Width, shot.Height),
	}
	imgFile, err := os.Create(filepath.Join(dir, imageFile))
	if err != nil {
		return "", err
	}
	defer imgFile.Close()
	if err := png.Encode(imgFile, img); err != nil {
		return "", err
	}

	meta := ShotMetadata{
		ID:         id,
		Source:     source,
		Timestamp:  now,
		Width:      shot.Width,
		Height:     shot.Height,
		Multiplier: shot.Multiplier,
		Filters:    filters,
	}
	metaFile, err := os.Create(filepath.Join(dir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return id, nil
}

// reserve creates a fresh directory for a shot taken at t.
func (s *Store) reserve(t time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("shot_%d", t.UnixMilli())
	for n := 0; ; n++ {
		id := base
		if n > 0 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
	}
}

// List returns every readable shot, oldest first.
func (s *Store) List() ([]ShotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ShotMetadata{}, nil
		}
		return nil, err
	}

	shots := make([]ShotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		shots = append(shots, *meta)
	}
	sort.Slice(shots, func(i, j int) bool {
		if shots[i].Timestamp.Equal(shots[j].Timestamp) {
			return shots[i].ID < shots[j].ID
		}
		return shots[i].Timestamp.Before(shots[j].Timestamp)
	})
	return shots, nil
}

func (s *Store) Load(id string) (*ShotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta ShotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadImage(id string) (image.Image, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, imageFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
