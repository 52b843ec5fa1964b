package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/crtsim/internal/config"
	"github.com/san-kum/crtsim/internal/crt"
	"github.com/san-kum/crtsim/internal/gui"
	"github.com/san-kum/crtsim/internal/render"
	"github.com/san-kum/crtsim/internal/session"
	"github.com/san-kum/crtsim/internal/sim"
	"github.com/san-kum/crtsim/internal/storage"
	"github.com/san-kum/crtsim/internal/tui"
	"github.com/san-kum/crtsim/internal/video"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	logFile    string
	preset     string

	pixelWidth float32
	stretch    bool
	maxSide    int
	width      int
	height     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "crtsim",
		Short:         "CRT display simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "screenshot directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "CRT preset (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "simulate an image or GIF in a window",
		Args:  cobra.ExactArgs(1),
		RunE:  runWindow,
	}
	addVideoFlags(runCmd)

	inspectCmd := &cobra.Command{
		Use:   "inspect [image]",
		Short: "run the simulation headless with a terminal inspector",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspector,
	}
	addVideoFlags(inspectCmd)
	inspectCmd.Flags().IntVar(&width, "width", 0, "virtual viewport width (default: window width)")
	inspectCmd.Flags().IntVar(&height, "height", 0, "virtual viewport height (default: window height)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available CRT presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	shotsCmd := &cobra.Command{
		Use:   "shots",
		Short: "list saved screenshots",
		Args:  cobra.NoArgs,
		RunE:  listShots,
	}

	rootCmd.AddCommand(runCmd, inspectCmd, presetsCmd, configCmd, shotsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addVideoFlags(cmd *cobra.Command) {
	cmd.Flags().Float32Var(&pixelWidth, "pixel-width", 0, "horizontal pixel aspect (overrides config)")
	cmd.Flags().BoolVar(&stretch, "stretch", false, "fill the viewport without integer scaling")
	cmd.Flags().IntVar(&maxSide, "max-side", 0, "downscale images larger than this (overrides config)")
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("pixel-width") {
		cfg.Video.PixelWidth = pixelWidth
	}
	if flags.Changed("stretch") {
		cfg.Video.Stretch = stretch
	}
	if flags.Changed("max-side") {
		cfg.Video.MaxSide = maxSide
	}
	return cfg, nil
}

// newLogger logs text to stderr, or to --log-file. quiet discards output
// when no file is given, for hosts that own the terminal.
func newLogger(cfg *config.Config, quiet bool) (*slog.Logger, func(), error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w, closer = f, func() { f.Close() }
	case quiet:
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

func videoOptions(cfg *config.Config, maxTextureSize int) video.Options {
	return video.Options{
		PixelWidth:     cfg.Video.PixelWidth,
		Stretch:        cfg.Video.Stretch,
		MaxTextureSize: maxTextureSize,
		MaxSide:        cfg.Video.MaxSide,
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	path := args[0]
	return gui.Run(gui.Options{
		Source: filepath.Base(path),
		Config: cfg,
		Store:  storage.New(cfg.DataDir),
		Logger: logger,
		Load: func(viewport crt.Size, maxTextureSize int) (sim.VideoInput, error) {
			return video.Load(path, viewport, videoOptions(cfg, maxTextureSize))
		},
	})
}

func runInspector(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	viewport := crt.Size{Width: cfg.Window.Width, Height: cfg.Window.Height}
	if width > 0 {
		viewport.Width = width
	}
	if height > 0 {
		viewport.Height = height
	}
	maxTex := cfg.Video.MaxTextureSize
	if maxTex <= 0 {
		maxTex = video.DefaultOptions().MaxTextureSize
	}

	path := args[0]
	input, err := video.Load(path, viewport, videoOptions(cfg, maxTex))
	if err != nil {
		return err
	}

	nb := render.NewNullBackend()
	inspector := tui.New(nb)
	s, err := session.New(input, nb, session.Options{
		Source:   filepath.Base(path),
		Config:   cfg,
		Store:    storage.New(cfg.DataDir),
		Logger:   logger,
		Observer: inspector.Observer(),
	}, 0)
	if err != nil {
		return err
	}
	defer s.Release()
	inspector.Attach(s)
	return inspector.Run()
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, p := range config.ListPresets() {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func listShots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	shots, err := st.List()
	if err != nil {
		return err
	}
	if len(shots) == 0 {
		fmt.Println("no screenshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSIZE\tSCALE\tCOLORS\tSHADOW\tBLUR")
	for _, s := range shots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%gx\t%s\t%s\t%d\n",
			s.ID,
			s.Source,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Width, s.Height,
			s.Multiplier,
			s.Filters.ColorChannels,
			s.Filters.Shadow,
			s.Filters.BlurPasses,
		)
	}
	return w.Flush()
}
