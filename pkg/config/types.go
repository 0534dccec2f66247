package config

// Config is the root configuration structure.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Modeline ModelineConfig `toml:"modeline"`
	Theme    ThemeConfig    `toml:"theme"`
	Pollers  PollersConfig  `toml:"pollers"`
}

// GeneralConfig holds application-wide settings.
type GeneralConfig struct {
	// CacheDir is where poller snapshots are persisted between runs.
	CacheDir string `toml:"cache_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives structured logs; empty disables file logging.
	LogFile string `toml:"log_file"`
}

// ModelineConfig controls segment composition and the window bar.
type ModelineConfig struct {
	// Preset names the segment arrangement applied to new surfaces.
	// Empty means pick by surface width.
	Preset string `toml:"preset"`

	// PresetFiles are extra preset definition files (.toml or .yaml)
	// loaded on top of the built-ins.
	PresetFiles []string `toml:"preset_files"`

	// BarWidth is the window bar width in cells; 0 uses the default.
	BarWidth int `toml:"bar_width"`

	// BarPlacement is "start" or "end".
	BarPlacement string `toml:"bar_placement"`

	// BarVisible toggles the window bar.
	BarVisible bool `toml:"bar_visible"`
}

// ThemeConfig selects and extends the color theme.
type ThemeConfig struct {
	Name string `toml:"name"`

	// ThemeFiles are extra theme definition files (.toml) registered on
	// top of the built-ins.
	ThemeFiles []string `toml:"theme_files"`
}

// PollersConfig holds per-poller settings.
type PollersConfig struct {
	System  SystemPollerConfig  `toml:"system"`
	Kube    KubePollerConfig    `toml:"kube"`
	Tailnet TailnetPollerConfig `toml:"tailnet"`
	VCS     VCSPollerConfig     `toml:"vcs"`
}

// SystemPollerConfig configures the host-metrics poller.
type SystemPollerConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
}

// KubePollerConfig configures the Kubernetes poller.
type KubePollerConfig struct {
	Enabled    bool     `toml:"enabled"`
	Interval   Duration `toml:"interval"`
	Kubeconfig string   `toml:"kubeconfig"`
	Context    string   `toml:"context"`
	Namespace  string   `toml:"namespace"`
}

// TailnetPollerConfig configures the Tailscale poller.
type TailnetPollerConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Socket   string   `toml:"socket"`
}

// VCSPollerConfig configures the version-control poller.
type VCSPollerConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval Duration `toml:"interval"`
	Dir      string   `toml:"dir"`
}
