package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so config values can be written as "30s", "2m", etc.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CommandsConfig holds the external command lines run against a repository.
// These are opaque to pkgnav; they are executed in the repository directory
// and their exit status is reported as-is.
type CommandsConfig struct {
	Pull  string `yaml:"pull"`
	Build string `yaml:"build"`
	Clean string `yaml:"clean"`
}

// LoggingConfig controls the log sink and verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the top-level pkgnav configuration.
type Config struct {
	// Root is the directory whose immediate subdirectories are the managed
	// package-build repositories.
	Root string `yaml:"root"`

	// BuildFile is the name of the build-descriptor file expected in each
	// repository (e.g. PKGBUILD). Its presence is reported, never parsed.
	BuildFile string `yaml:"build_file"`

	// FetchTimeout bounds each remote inspection during a status probe.
	FetchTimeout Duration `yaml:"fetch_timeout"`

	// PollInterval is how often the TUI re-reads the status snapshot.
	PollInterval Duration `yaml:"poll_interval"`

	// Watch enables the filesystem watcher that re-probes a repository
	// after local changes.
	Watch *bool `yaml:"watch"`

	Commands CommandsConfig `yaml:"commands"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default values applied by ApplyDefaults.
const (
	DefaultRoot         = "~/pkgbuilds"
	DefaultBuildFile    = "PKGBUILD"
	DefaultFetchTimeout = 30 * time.Second
	DefaultPollInterval = 400 * time.Millisecond

	DefaultPullCommand  = "git pull --ff-only"
	DefaultBuildCommand = "makepkg -si --noconfirm"
	DefaultCleanCommand = "git clean -fdx"
)

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.BuildFile == "" {
		c.BuildFile = DefaultBuildFile
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = Duration(DefaultFetchTimeout)
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(DefaultPollInterval)
	}
	if c.Watch == nil {
		enabled := true
		c.Watch = &enabled
	}
	if c.Commands.Pull == "" {
		c.Commands.Pull = DefaultPullCommand
	}
	if c.Commands.Build == "" {
		c.Commands.Build = DefaultBuildCommand
	}
	if c.Commands.Clean == "" {
		c.Commands.Clean = DefaultCleanCommand
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// WatchEnabled reports whether the filesystem watcher should run.
func (c *Config) WatchEnabled() bool {
	return c.Watch == nil || *c.Watch
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be positive")
	}
	if c.PollInterval.Std() < 50*time.Millisecond {
		return fmt.Errorf("poll_interval must be at least 50ms")
	}
	return nil
}
