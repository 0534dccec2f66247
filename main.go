// modeline composes editor status lines from cached segments.
//
// The default mode launches a demo editor host: a terminal split into
// panes, each with a simulated buffer and a live modeline underneath,
// driven by the same engine an embedding editor would use. Background
// pollers (system metrics, git, Kubernetes, Tailscale) feed the
// infrastructure segments.
//
// Usage:
//
//	modeline [flags]
//
// Flags:
//
//	-config string     Path to configuration file
//	-theme string      Theme name override
//	-preset string     Default preset override
//	-cache-dir string  Snapshot cache directory override
//	-render            Print one assembled modeline and exit
//	-width int         Width for -render (0 = auto-detect)
//	-emacs             Print Emacs propertized segments and exit
//	-emacs-json        Print segment JSON for Elisp consumption and exit
//	-elisp             Print the modeline.el package source and exit
//	-no-pollers        Disable background pollers
//	-verbose           Enable verbose logging
//	-version           Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/modeline/pkg/bar"
	"gitlab.com/tinyland/lab/modeline/pkg/cache"
	"gitlab.com/tinyland/lab/modeline/pkg/config"
	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/emacs"
	"gitlab.com/tinyland/lab/modeline/pkg/engine"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/kube"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/sysmetrics"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/tailnet"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/vcs"
	"gitlab.com/tinyland/lab/modeline/pkg/preset"
	"gitlab.com/tinyland/lab/modeline/pkg/segments"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
	"gitlab.com/tinyland/lab/modeline/pkg/tui"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		themeName   = flag.String("theme", "", "Theme name override")
		presetName  = flag.String("preset", "", "Default preset override")
		cacheDir    = flag.String("cache-dir", "", "Snapshot cache directory override")
		renderOnce  = flag.Bool("render", false, "Print one assembled modeline and exit")
		renderWidth = flag.Int("width", 0, "Width for -render (0 = auto-detect)")
		emacsProp   = flag.Bool("emacs", false, "Print Emacs propertized segments and exit")
		emacsJSON   = flag.Bool("emacs-json", false, "Print segment JSON for Elisp consumption and exit")
		elispPkg    = flag.Bool("elisp", false, "Print the modeline.el package source and exit")
		noPollers   = flag.Bool("no-pollers", false, "Disable background pollers")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("modeline %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if *elispPkg {
		fmt.Print(emacs.GenerateElispPackage())
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *themeName != "" {
		cfg.Theme.Name = *themeName
	}
	if *presetName != "" {
		cfg.Modeline.Preset = *presetName
	}
	if *cacheDir != "" {
		cfg.General.CacheDir = *cacheDir
	}

	// Emacs exporters read the snapshot cache only; no engine needed.
	if *emacsJSON {
		out, err := emacs.RenderJSON(cfg.General.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
	if *emacsProp {
		out, err := emacs.RenderPropertized(cfg.General.CacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		os.Exit(0)
	}

	logger, logClose, err := setupLogging(cfg, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logClose()

	// Degrade theme colors to the terminal's depth up front; everything
	// downstream then works with the adapted palette by name.
	adaptThemes()
	loadUserDefinitions(cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal")
		cancel()
	}()

	bus := event.NewBus()
	sim := editor.NewSim(bus)

	eng := engine.New(engine.Options{
		State:         sim,
		Bus:           bus,
		Theme:         cfg.Theme.Name,
		Bar:           barConfig(cfg),
		DefaultPreset: cfg.Modeline.Preset,
	})
	segments.RegisterAll(eng.Registry())
	for _, p := range loadPresets(cfg, logger) {
		eng.DefinePreset(p)
	}

	var updates <-chan pollers.Update
	if !*noPollers {
		runner, err := setupPollers(cfg, logger)
		if err != nil {
			logger.Warn("pollers disabled", "err", err)
		} else {
			runner.Start(ctx)
			updates = runner.Updates()
		}
	}

	if *renderOnce {
		runRenderOnce(eng, sim, updates, *renderWidth)
		os.Exit(0)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -render or -emacs for non-interactive output")
		os.Exit(1)
	}

	model := tui.New(tui.Options{
		Engine:  eng,
		Sim:     sim,
		Bus:     bus,
		Updates: updates,
	})
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("tui error", "err", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config from an explicit path or the standard
// search locations.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// setupLogging builds the slog logger per config. Interactive mode must
// not write to stderr (it corrupts the TUI), so without a log file the
// logs are discarded.
func setupLogging(cfg *config.Config, verbose bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	switch cfg.General.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	if cfg.General.LogFile == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.General.LogFile), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.General.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { f.Close() }, nil
}

// adaptThemes re-registers every built-in theme degraded to the
// terminal's color depth.
func adaptThemes() {
	var depth int
	switch termenv.ColorProfile() {
	case termenv.TrueColor:
		return
	case termenv.ANSI256:
		depth = 8
	default:
		depth = 4
	}
	for _, name := range theme.Names() {
		theme.Install(theme.Adapt(theme.Get(name), depth))
	}
}

// loadUserDefinitions registers theme files from config.
func loadUserDefinitions(cfg *config.Config, logger *slog.Logger) {
	for _, path := range cfg.Theme.ThemeFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read theme file", "path", path, "err", err)
			continue
		}
		if _, err := theme.Register(data); err != nil {
			logger.Warn("register theme", "path", path, "err", err)
		}
	}
}

// loadPresets reads extra preset files (.toml or .yaml) from config.
func loadPresets(cfg *config.Config, logger *slog.Logger) []preset.Preset {
	var out []preset.Preset
	for _, path := range cfg.Modeline.PresetFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("read preset file", "path", path, "err", err)
			continue
		}
		var ps []preset.Preset
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			ps, err = preset.LoadFromYAML(data)
		default:
			ps, err = preset.LoadFromTOML(data)
		}
		if err != nil {
			logger.Warn("parse preset file", "path", path, "err", err)
			continue
		}
		out = append(out, ps...)
	}
	return out
}

// barConfig translates the config section into a bar.Config.
func barConfig(cfg *config.Config) bar.Config {
	bc := bar.DefaultConfig()
	bc.Visible = cfg.Modeline.BarVisible
	if cfg.Modeline.BarWidth > 0 {
		bc.Width = cfg.Modeline.BarWidth
	}
	if cfg.Modeline.BarPlacement == "end" {
		bc.Placement = bar.PlaceEnd
	}
	return bc
}

// setupPollers registers the enabled pollers and their snapshot store.
func setupPollers(cfg *config.Config, logger *slog.Logger) (*pollers.Runner, error) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: cfg.General.CacheDir})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	reg := pollers.NewRegistry()
	if cfg.Pollers.System.Enabled {
		_ = reg.Register(sysmetrics.New(cfg.Pollers.System.Interval.Duration))
	}
	if cfg.Pollers.VCS.Enabled {
		dir := cfg.Pollers.VCS.Dir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		_ = reg.Register(vcs.New(vcs.Config{
			Interval: cfg.Pollers.VCS.Interval.Duration,
			Dir:      dir,
		}))
	}
	if cfg.Pollers.Kube.Enabled {
		_ = reg.Register(kube.New(kube.Config{
			Interval:   cfg.Pollers.Kube.Interval.Duration,
			Kubeconfig: cfg.Pollers.Kube.Kubeconfig,
			Context:    cfg.Pollers.Kube.Context,
			Namespace:  cfg.Pollers.Kube.Namespace,
		}))
	}
	if cfg.Pollers.Tailnet.Enabled {
		tcfg := tailnet.Config{
			Interval:   cfg.Pollers.Tailnet.Interval.Duration,
			SocketPath: cfg.Pollers.Tailnet.Socket,
		}
		_ = reg.Register(tailnet.New(tcfg, tailnet.NewLocalClient(tcfg.SocketPath)))
	}

	return pollers.NewRunner(reg, store, logger), nil
}

// runRenderOnce drains any immediately available snapshots, renders one
// modeline for a synthetic surface at terminal width, and prints it.
func runRenderOnce(eng *engine.Engine, sim *editor.Sim, updates <-chan pollers.Update, width int) {
	if width <= 0 {
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			width = w
		} else {
			width = 80
		}
	}

	if updates != nil {
	drain:
		for {
			select {
			case u, ok := <-updates:
				if !ok {
					break drain
				}
				if u.Err == nil && u.Data != nil {
					sim.PublishSnapshot(u.Source, u.Data, u.Refresh)
				}
			default:
				break drain
			}
		}
	}

	wd, _ := os.Getwd()
	name := filepath.Base(wd)
	sim.OpenBuffer(editor.BufferInfo{
		ID: editor.BufferID(name), Name: name, Path: wd,
		Mode: "Dired", Encoding: "utf-8", EOL: "LF",
	})
	s := editor.Surface{ID: "shell", Buffer: editor.BufferID(name), Width: width}
	eng.Bus().Emit(event.Event{
		Type:      event.SurfaceEntered,
		SurfaceID: string(s.ID),
		Data:      s,
	})
	eng.BeginRedraw()
	fmt.Println(eng.Render(s))
}
