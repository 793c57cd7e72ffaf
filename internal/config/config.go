package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Defaults
const (
	DefaultHost              = "localhost"
	DefaultPort              = 8080
	DefaultBranchConcurrency = 8
	DefaultKeepaliveInterval = time.Second
	DefaultKeepaliveTimeout  = 5 * time.Second
	DefaultTheme             = "default"
)

// ValidThemeNames lists the color themes of the CLI tables.
var ValidThemeNames = []string{"default", "none", "dracula", "nord"}

// ErrConfigExists is returned by [Init] when the file exists and force is false.
var ErrConfigExists = errors.New("config file already exists")

// DefaultExclude is the reserved directory name of the dashboard bundle.
var DefaultExclude = []string{"start.app"}

// KeepaliveConfig controls automatic shutdown when the client goes away.
type KeepaliveConfig struct {
	Interval time.Duration
	Timeout  time.Duration // 0 disables automatic shutdown
}

// Enabled reports whether the service should shut itself down when idle.
func (k KeepaliveConfig) Enabled() bool {
	return k.Timeout > 0
}

// Config holds the repodash configuration
type Config struct {
	RootDir           string
	Host              string
	Port              int
	StaticDir         string
	Exclude           []string
	Fetch             bool
	BranchConcurrency int
	Keepalive         KeepaliveConfig
	Theme             string
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		Exclude:           append([]string(nil), DefaultExclude...),
		Fetch:             true,
		BranchConcurrency: DefaultBranchConcurrency,
		Keepalive: KeepaliveConfig{
			Interval: DefaultKeepaliveInterval,
			Timeout:  DefaultKeepaliveTimeout,
		},
		Theme: DefaultTheme,
	}
}

// rawKeepalive keeps durations as strings so "unset" and "0s" differ.
type rawKeepalive struct {
	Interval string `toml:"interval"`
	Timeout  string `toml:"timeout"`
}

// rawConfig is used for initial TOML parsing before applying defaults
type rawConfig struct {
	RootDir           string       `toml:"root_dir"`
	Host              string       `toml:"host"`
	Port              int          `toml:"port"`
	StaticDir         string       `toml:"static_dir"`
	Exclude           []string     `toml:"exclude"`
	Fetch             *bool        `toml:"fetch"`
	BranchConcurrency int          `toml:"branch_concurrency"`
	Theme             string       `toml:"theme"`
	Keepalive         rawKeepalive `toml:"keepalive"`
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location.
// REPODASH_CONFIG overrides ~/.config/repodash/config.toml.
func Path() (string, error) {
	if p := os.Getenv("REPODASH_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "repodash", "config.toml"), nil
}

// Load reads the config file and applies environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return cfg, applyEnv(&cfg)
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Default(), err
	}
	if err := applyEnv(&cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes and validates TOML config data, filling in defaults.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()

	if err := ValidatePath(raw.RootDir, "root_dir"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(raw.StaticDir, "static_dir"); err != nil {
		return Default(), err
	}

	root, err := expandPath(raw.RootDir)
	if err != nil {
		return Default(), fmt.Errorf("expand root_dir: %w", err)
	}
	cfg.RootDir = root

	static, err := expandPath(raw.StaticDir)
	if err != nil {
		return Default(), fmt.Errorf("expand static_dir: %w", err)
	}
	cfg.StaticDir = static

	if raw.Host != "" {
		cfg.Host = raw.Host
	}
	if raw.Port != 0 {
		if err := ValidatePort(raw.Port); err != nil {
			return Default(), err
		}
		cfg.Port = raw.Port
	}
	if raw.Exclude != nil {
		if err := validateExclude(raw.Exclude); err != nil {
			return Default(), err
		}
		cfg.Exclude = raw.Exclude
	}
	if raw.Fetch != nil {
		cfg.Fetch = *raw.Fetch
	}
	if raw.BranchConcurrency != 0 {
		if raw.BranchConcurrency < 0 {
			return Default(), fmt.Errorf("invalid branch_concurrency %d: must be positive", raw.BranchConcurrency)
		}
		cfg.BranchConcurrency = raw.BranchConcurrency
	}

	if raw.Theme != "" {
		if !slices.Contains(ValidThemeNames, raw.Theme) {
			return Default(), fmt.Errorf("invalid theme %q: must be one of %s", raw.Theme, strings.Join(ValidThemeNames, ", "))
		}
		cfg.Theme = raw.Theme
	}

	if raw.Keepalive.Interval != "" {
		d, err := parseDuration(raw.Keepalive.Interval, "keepalive.interval")
		if err != nil {
			return Default(), err
		}
		if d == 0 {
			return Default(), fmt.Errorf("invalid keepalive.interval %q: must be greater than zero", raw.Keepalive.Interval)
		}
		cfg.Keepalive.Interval = d
	}
	if raw.Keepalive.Timeout != "" {
		d, err := parseDuration(raw.Keepalive.Timeout, "keepalive.timeout")
		if err != nil {
			return Default(), err
		}
		cfg.Keepalive.Timeout = d
	}

	return cfg, nil
}

// applyEnv applies REPODASH_ROOT and REPODASH_PORT.
func applyEnv(cfg *Config) error {
	if root := os.Getenv("REPODASH_ROOT"); root != "" {
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("expand REPODASH_ROOT: %w", err)
		}
		cfg.RootDir = expanded
	}
	if port := os.Getenv("REPODASH_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REPODASH_PORT %q: %w", port, err)
		}
		if err := ValidatePort(p); err != nil {
			return err
		}
		cfg.Port = p
	}
	return nil
}

const defaultConfig = `# repodash configuration

# Directory scanned for git repositories
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# Defaults to the directory repodash is started in.
# root_dir = "~/Code"

# Listen address of the dashboard server
host = "localhost"
port = 8080

# Directory with the dashboard page (index.html), served at /
# static_dir = "~/Code/start.app"

# Directory names that are never listed or descended into
exclude = ["start.app"]

# Run "git fetch --all --prune" before each status query
# Disable when working offline to keep status requests fast.
fetch = true

# Number of branches whose upstream is queried in parallel per repository
branch_concurrency = 8

# Color theme of CLI tables: default, none, dracula, nord
theme = "default"

# Automatic shutdown when the dashboard page stops sending keepalives
[keepalive]
interval = "1s"   # how often to check
timeout = "5s"    # idle time before shutdown; "0s" disables
`

// Init creates a default config file at [Path].
// If force is true, overwrites existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	// Write to a temp file and rename so a crash never leaves half a config
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tempPath, path); err != nil {
		return "", err
	}

	return path, nil
}
