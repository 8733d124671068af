// Package config holds the options of a svut run: built-in defaults,
// an optional .svut/config.yaml file, and command line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harrison/svut/internal/logger"
	"github.com/harrison/svut/internal/models"
)

// AllTests is the test selector that triggers discovery.
const AllTests = "all"

// Defaults for the command line options.
const (
	DefaultSimulator = "icarus"
	DefaultDotfile   = "files.f"
	DefaultMain      = "sim_main.cpp"
	DefaultLogLevel  = "info"
)

// Config represents svut configuration options
type Config struct {
	// Simulator selects the toolchain (icarus, iverilog, verilator)
	Simulator string `yaml:"simulator"`

	// Tests lists the test files to run; empty or ["all"] runs discovery
	Tests []string `yaml:"-"`

	// Dotfiles are simulator command files (*.f), used when present
	Dotfiles []string `yaml:"dotfiles"`

	// Includes are include directories passed to the compiler
	Includes []string `yaml:"includes"`

	// Defines is a semicolon separated define list, e.g. "DEF1=2;DEF2"
	Defines string `yaml:"defines"`

	// VPI is passed as is to vvp, e.g. "-M. -mMyVPI"
	VPI string `yaml:"vpi"`

	// Main is the Verilator C++ driver file
	Main string `yaml:"main"`

	// GUI enables the LXT dump and opens GTKWave (Icarus only)
	GUI bool `yaml:"gui"`

	// DryRun prints the commands instead of running them
	DryRun bool `yaml:"dry_run"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Strict fails the run when any test fails, not only the last one
	Strict bool `yaml:"strict"`

	// WorkDir is the directory tests are discovered and run in
	WorkDir string `yaml:"-"`

	// Home is the svut install directory holding svut_h.sv
	Home string `yaml:"-"`
}

// DefaultConfig returns a Config with the command line defaults
func DefaultConfig() *Config {
	return &Config{
		Simulator: DefaultSimulator,
		Tests:     []string{AllTests},
		Dotfiles:  []string{DefaultDotfile},
		Main:      DefaultMain,
		LogLevel:  DefaultLogLevel,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if fileCfg.Simulator != "" {
		cfg.Simulator = fileCfg.Simulator
	}
	if fileCfg.Dotfiles != nil {
		cfg.Dotfiles = fileCfg.Dotfiles
	}
	if fileCfg.Includes != nil {
		cfg.Includes = fileCfg.Includes
	}
	if fileCfg.Defines != "" {
		cfg.Defines = fileCfg.Defines
	}
	if fileCfg.VPI != "" {
		cfg.VPI = fileCfg.VPI
	}
	if fileCfg.Main != "" {
		cfg.Main = fileCfg.Main
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.GUI {
		cfg.GUI = true
	}
	if fileCfg.DryRun {
		cfg.DryRun = true
	}
	if fileCfg.Strict {
		cfg.Strict = true
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .svut/config.yaml in the specified directory
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".svut", "config.yaml"))
}

// Overrides carries command line values. Nil fields were not given on the
// command line and leave the configuration untouched.
type Overrides struct {
	Simulator *string
	Tests     []string
	Dotfiles  []string
	Includes  []string
	Defines   *string
	VPI       *string
	Main      *string
	GUI       *bool
	DryRun    *bool
	LogLevel  *string
	Strict    *bool
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Simulator != nil {
		c.Simulator = *o.Simulator
	}
	if o.Tests != nil {
		c.Tests = o.Tests
	}
	if o.Dotfiles != nil {
		c.Dotfiles = o.Dotfiles
	}
	if o.Includes != nil {
		c.Includes = o.Includes
	}
	if o.Defines != nil {
		c.Defines = *o.Defines
	}
	if o.VPI != nil {
		c.VPI = *o.VPI
	}
	if o.Main != nil {
		c.Main = *o.Main
	}
	if o.GUI != nil {
		c.GUI = *o.GUI
	}
	if o.DryRun != nil {
		c.DryRun = *o.DryRun
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.Strict != nil {
		c.Strict = *o.Strict
	}
}

// Validate checks that the configuration values are usable.
// The simulator name is not checked here; it is resolved per test.
func (c *Config) Validate() error {
	if !logger.IsValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of trace, debug, info, warn, error", c.LogLevel)
	}

	if strings.TrimSpace(c.Simulator) == "" {
		return fmt.Errorf("simulator must not be empty")
	}

	if c.WorkDir != "" {
		info, err := os.Stat(c.WorkDir)
		if err != nil {
			return fmt.Errorf("invalid working directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("working directory is not a directory: %s", c.WorkDir)
		}
	}

	return nil
}

// RunsAllTests reports whether the test selection asks for discovery.
func (c *Config) RunsAllTests() bool {
	return len(c.Tests) == 0 || (len(c.Tests) == 1 && c.Tests[0] == AllTests)
}

// ExitPolicy returns how per-test results combine into the exit code.
func (c *Config) ExitPolicy() models.ExitPolicy {
	if c.Strict {
		return models.ExitPolicyAll
	}
	return models.ExitPolicyLast
}
