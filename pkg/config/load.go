package config

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/modeline/config.toml
//  2. ~/.config/modeline/config.toml
//
// If no file exists, returns DefaultConfig().
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	cacheDir := filepath.Join(xdgCacheHome(home), "modeline")

	return &Config{
		General: GeneralConfig{
			CacheDir: cacheDir,
			LogLevel: "info",
		},
		Modeline: ModelineConfig{
			Preset:       "",
			BarPlacement: "start",
			BarVisible:   true,
		},
		Theme: ThemeConfig{
			Name: "default",
		},
		Pollers: PollersConfig{
			System: SystemPollerConfig{
				Enabled:  true,
				Interval: Duration{5 * time.Second},
			},
			Kube: KubePollerConfig{
				Enabled:  false,
				Interval: Duration{60 * time.Second},
			},
			Tailnet: TailnetPollerConfig{
				Enabled:  false,
				Interval: Duration{30 * time.Second},
			},
			VCS: VCSPollerConfig{
				Enabled:  true,
				Interval: Duration{10 * time.Second},
			},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MODELINE_THEME"); v != "" {
		cfg.Theme.Name = v
	}
	if v := os.Getenv("MODELINE_PRESET"); v != "" {
		cfg.Modeline.Preset = v
	}
	if v := os.Getenv("MODELINE_CACHE_DIR"); v != "" {
		cfg.General.CacheDir = v
	}
	if v := os.Getenv("KUBECONFIG"); v != "" && cfg.Pollers.Kube.Kubeconfig == "" {
		cfg.Pollers.Kube.Kubeconfig = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, "modeline", "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, "modeline", "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgCacheHome returns XDG_CACHE_HOME or ~/.cache as fallback.
func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}
