package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/crtsim/internal/input"
)

// messageSeconds is how long a top message stays on screen.
const messageSeconds = 2.5

func (a *App) DrawHUD() {
	if a.Message != "" {
		age := rl.GetTime() - a.MessageTime
		if age < messageSeconds {
			alpha := uint8(255 * (1 - age/messageSeconds))
			col := ColSelect
			col.A = alpha
			w := rl.MeasureText(a.Message, 20)
			rl.DrawText(a.Message, (int32(rl.GetScreenWidth())-w)/2, 20, 20, col)
		}
	}

	if !a.ShowInfo {
		return
	}

	res := a.s.Resources
	f := &res.Filters
	mode := "free"
	if a.Locked {
		mode = "locked"
	}
	lines := []string{
		fmt.Sprintf("colors      %s", f.ColorChannels),
		fmt.Sprintf("geometry    %s", f.PixelsGeometryKind),
		fmt.Sprintf("shadow      %s", res.Shadows.Get(f.ShadowShape)),
		fmt.Sprintf("layering    %s", f.LayeringKind),
		fmt.Sprintf("curvature   %s", f.ScreenCurvatureKind),
		fmt.Sprintf("resolution  %s", f.InternalResolution),
		fmt.Sprintf("blur %d  lines %d", f.BlurPasses, f.LinesPerPixel),
		fmt.Sprintf("bright %.2f  contrast %.2f", f.ExtraBright, f.ExtraContrast),
		fmt.Sprintf("light %s", input.FormatColor(f.LightColor)),
		fmt.Sprintf("camera %s  zoom %.1f", mode, res.Camera.Zoom),
	}

	rl.DrawRectangle(10, 50, 300, int32(len(lines)*18+36), rl.NewColor(ColBg.R, ColBg.G, ColBg.B, 200))
	rl.DrawText("crtsim", 20, 58, 20, ColSelect)
	for i, l := range lines {
		rl.DrawText(l, 20, int32(84+i*18), 14, ColText)
	}
	if a.Limit != "" {
		rl.DrawText(a.Limit, 20, int32(84+len(lines)*18), 14, ColTextDim)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 20, h-30, 14, ColTextDim)
	rl.DrawText("[SPACE] PANEL  [F4] SHOT  [CLICK] DRAG  [ESC] QUIT", 120, h-30, 14, ColTextDim)
}
