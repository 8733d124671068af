package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/svut/internal/config"
	"github.com/harrison/svut/internal/executor"
	"github.com/harrison/svut/internal/logger"
	"github.com/harrison/svut/internal/models"
	"github.com/harrison/svut/internal/version"
)

func addRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArray("test", nil, `Unit test to run, repeatable (default "all": discover tests)`)
	flags.StringArrayP("dotfile", "f", nil, `Dot file (*.f) with incdir, define and files (default "files.f")`)
	flags.String("sim", config.DefaultSimulator, "Simulator to use: icarus or verilator")
	flags.String("main", config.DefaultMain, "Verilator main C++ file")
	flags.String("define", "", `Defines separated by ";", e.g. "DEF1=2;DEF2;DEF3=3"`)
	flags.String("vpi", "", `Arguments passed as is to vvp, e.g. "-M. -mMyVPI"`)
	flags.Bool("gui", false, "Dump LXT waveforms and open GTKWave")
	flags.Bool("dry-run", false, "Print the commands without executing them")
	flags.StringArray("include", nil, "Include directory, repeatable")
	flags.String("config", "", "Path to config file (default: .svut/config.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "Log level: trace, debug, info, warn, error")
	flags.Bool("strict", false, "Exit non-zero if any test fails, not only the last one")
	flags.String("workdir", ".", "Directory holding the unit tests")
}

// runCommand implements the test run
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logger.NewConsoleLogger(out, cfg.LogLevel)

	runner := executor.NewProcessRunner(cfg.WorkDir, log)
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = out
	runner.Stderr = cmd.ErrOrStderr()
	driver := executor.NewDriver(
		cfg,
		runner,
		log,
		version.NewResolver(cfg.Home, nil, log),
		executor.NewHeaderSync(cfg.Home, cfg.WorkDir),
	)

	summary, err := driver.Run(cmd.Context())
	if err != nil {
		log.LogError(err.Error())
		return &ExitError{Code: models.ExitFailure}
	}

	if summary.ExitCode != models.ExitSuccess {
		return &ExitError{Code: summary.ExitCode}
	}
	return nil
}

// loadConfig merges defaults, the config file, flags, and positional tests.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := cmd.Flags()

	workDirFlag, _ := flags.GetString("workdir")
	workDir, err := filepath.Abs(workDirFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory %s: %w", workDirFlag, err)
	}

	configPath, _ := flags.GetString("config")
	var cfg *config.Config
	if configPath != "" {
		// a file named on the command line must exist
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(workDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var o config.Overrides
	if flags.Changed("test") || len(args) > 0 {
		tests, _ := flags.GetStringArray("test")
		o.Tests = append(append([]string{}, tests...), args...)
	}
	if flags.Changed("dotfile") {
		o.Dotfiles, _ = flags.GetStringArray("dotfile")
	}
	if flags.Changed("include") {
		o.Includes, _ = flags.GetStringArray("include")
	}
	o.Simulator = changedString(cmd, "sim")
	o.Main = changedString(cmd, "main")
	o.Defines = changedString(cmd, "define")
	o.VPI = changedString(cmd, "vpi")
	o.LogLevel = changedString(cmd, "log-level")
	o.GUI = changedBool(cmd, "gui")
	o.DryRun = changedBool(cmd, "dry-run")
	o.Strict = changedBool(cmd, "strict")

	cfg.MergeWithFlags(o)

	cfg.WorkDir = workDir
	cfg.Home, err = config.GetSVUTHome()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}
