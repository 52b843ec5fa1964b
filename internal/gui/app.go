package gui

import (
	"fmt"
	"log/slog"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/events"
	"github.com/san-kum/crtsim/internal/render/glrender"
	"github.com/san-kum/crtsim/internal/session"
	"github.com/san-kum/crtsim/internal/sim"
	"github.com/san-kum/crtsim/internal/storage"
)

// scrollZoomStep is the zoom change per wheel notch.
const scrollZoomStep = 2

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

// Loader builds the video input once the window and the GL limits are known.
type Loader func(viewport crt.Size, maxTextureSize int) (sim.VideoInput, error)

type Options struct {
	Source string
	Load   Loader
	Config *config.Config
	Store  *storage.Store
	Logger *slog.Logger
}

type App struct {
	s   *session.Session
	log *slog.Logger

	ShowInfo    bool
	Locked      bool
	FPS         float32
	Message     string
	MessageTime float64
	Limit       string
}

func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.TargetFPS))
	rl.SetExitKey(0)
}

// Run opens the window and plays the session until it ends or the window
// closes. It must be called from the main goroutine.
func Run(opts Options) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	initWindow(opts.Config.Window)
	defer rl.CloseWindow()

	backend, err := glrender.New(crt.DefaultShadows(), opts.Logger)
	if err != nil {
		return err
	}
	defer backend.Release()

	maxTex := opts.Config.Video.MaxTextureSize
	if maxTex <= 0 {
		maxTex = glrender.MaxTextureSize()
	}
	viewport := crt.Size{Width: rl.GetRenderWidth(), Height: rl.GetRenderHeight()}
	video, err := opts.Load(viewport, maxTex)
	if err != nil {
		return err
	}

	a := &App{log: opts.Logger, ShowInfo: true}
	s, err := session.New(video, backend, session.Options{
		Source:   opts.Source,
		Config:   opts.Config,
		Store:    opts.Store,
		Logger:   opts.Logger,
		Observer: a.observer(),
	}, now())
	if err != nil {
		return err
	}
	defer s.Release()
	a.s = s

	return a.RunLoop()
}

func now() float64 { return rl.GetTime() * 1000 }

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		a.pollInput()
		if rl.IsWindowResized() {
			a.s.Resize(rl.GetRenderWidth(), rl.GetRenderHeight())
		}

		rl.BeginDrawing()
		running, err := a.s.Frame(now())
		if err != nil {
			rl.EndDrawing()
			return err
		}
		if !running {
			rl.EndDrawing()
			return nil
		}
		a.DrawHUD()
		rl.EndDrawing()
	}
	a.log.Info("window closed")
	return nil
}

func (a *App) pollInput() {
	for _, kb := range keyTable {
		if rl.IsKeyPressed(kb.key) {
			a.s.Key(kb.name, true)
		}
		if rl.IsKeyReleased(kb.key) {
			a.s.Key(kb.name, false)
		}
	}

	in := a.s.Input
	a.s.Key("mouse-click", rl.IsMouseButtonDown(rl.MouseButtonLeft))
	delta := rl.GetMouseDelta()
	in.MousePositionX = delta.X
	in.MousePositionY = delta.Y
	in.MouseScrollY = -rl.GetMouseWheelMove() * scrollZoomStep
}

// observer reacts to the notifications a browser page would handle.
func (a *App) observer() events.Dispatcher {
	return events.Func(func(e events.Event) {
		switch e.Kind {
		case events.TopMessage:
			a.Message = e.Value.(string)
			a.MessageTime = rl.GetTime()
			a.Limit = ""
		case events.MinimumValue:
			a.Limit = fmt.Sprintf("minimum reached: %g", e.Value)
		case events.MaximumValue:
			a.Limit = fmt.Sprintf("maximum reached: %g", e.Value)
		case events.ToggleInfoPanel:
			a.ShowInfo = !a.ShowInfo
		case events.FPS:
			a.FPS = e.Value.(float32)
		case events.CameraMovementMode:
			a.Locked = e.Value.(bool)
		case events.RequestPointerLock:
			rl.DisableCursor()
		case events.ExitPointerLock:
			rl.EnableCursor()
		}
	})
}
