// Package executor runs unit tests: it builds each test's command list,
// executes the commands in order, and reports timing and exit codes.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harrison/svut/internal/config"
	"github.com/harrison/svut/internal/fileutil"
	"github.com/harrison/svut/internal/models"
	"github.com/harrison/svut/internal/simulator"
)

// Logger is the output surface the driver reports through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogEvent(event, tag string)
	LogCommand(cmd models.Command)
	LogCommandFailed(cmd models.Command, err error)
	LogElapsed(d time.Duration)
	LogDryRun(tag string, test string, cmds []models.Command)
	LogSummary(summary models.RunSummary)
}

// TagResolver provides the version tag shown in banners.
type TagResolver interface {
	Tag(ctx context.Context) string
}

// Driver runs a set of unit tests one after another.
type Driver struct {
	cfg    *config.Config
	runner CommandRunner
	logger Logger
	tags   TagResolver
	header HeaderSyncer
	now    func() time.Time
}

// NewDriver creates a Driver. cfg must not be modified afterwards.
func NewDriver(cfg *config.Config, runner CommandRunner, logger Logger, tags TagResolver, header HeaderSyncer) *Driver {
	return &Driver{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		tags:   tags,
		header: header,
		now:    time.Now,
	}
}

// ResolveTests returns the configured tests, or the tests discovered in the
// working directory when the selection is "all".
func (d *Driver) ResolveTests() ([]string, error) {
	if !d.cfg.RunsAllTests() {
		return d.cfg.Tests, nil
	}

	dir := d.cfg.WorkDir
	if dir == "" {
		dir = "."
	}
	tests, err := fileutil.FindUnitTests(dir)
	if err != nil {
		return nil, fmt.Errorf("discover unit tests: %w", err)
	}
	d.logger.LogDebug(fmt.Sprintf("Discovered %d unit test(s) in %s", len(tests), dir))
	return tests, nil
}

// Run executes every selected test in order.
//
// A failing command only ends its own test; later tests still run. The
// summary's exit code follows the configured exit policy, which by default
// reports only the last test processed. Configuration errors (unsupported
// simulator or extension) stop the run and are returned as errors.
// In dry-run mode the first test's commands are printed and the run ends.
func (d *Driver) Run(ctx context.Context) (models.RunSummary, error) {
	summary := models.RunSummary{}

	tests, err := d.ResolveTests()
	if err != nil {
		summary.ExitCode = models.ExitFailure
		return summary, err
	}

	for _, test := range tests {
		result, err := d.RunTest(ctx, test)
		if err != nil {
			summary.ExitCode = models.ExitFailure
			return summary, err
		}
		summary.Results = append(summary.Results, result)

		if result.DryRun {
			break
		}
	}

	summary.ExitCode = models.ComputeExitCode(summary.Results, d.cfg.ExitPolicy())
	d.logger.LogSummary(summary)
	return summary, nil
}

// RunTest builds and runs the commands of a single test.
func (d *Driver) RunTest(ctx context.Context, test string) (models.TestResult, error) {
	result := models.TestResult{Test: test}

	builder, err := simulator.Select(d.cfg.Simulator, d.builderOptions())
	if err != nil {
		return result, NewTestError(test, "cannot select simulator", err)
	}
	result.Simulator = builder.Name()

	cmds, err := builder.Build(test)
	if err != nil {
		return result, NewTestError(test, "cannot build commands", err)
	}
	d.logger.LogTrace(fmt.Sprintf("%s: %d command(s) for %s", test, len(cmds), builder.Name()))

	d.syncHeader()

	tag := d.tags.Tag(ctx)

	if d.cfg.DryRun {
		d.logger.LogDryRun(tag, test, cmds)
		result.DryRun = true
		return result, nil
	}

	start := d.now()
	d.logger.LogEvent("Start", tag)

	cmdResults, err := RunCommands(ctx, d.runner, cmds, d.logger.LogCommand)
	result.Commands = cmdResults

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result, err
		}
		failed := cmdResults[len(cmdResults)-1]
		result.FailedCommand = &failed.Command
		result.ExitCode = models.ExitFailure
		d.logger.LogCommandFailed(failed.Command, failed.Error)
	}

	result.Elapsed = d.now().Sub(start)
	d.logger.LogElapsed(result.Elapsed)
	d.logger.LogEvent("Stop", tag)

	return result, nil
}

func (d *Driver) syncHeader() {
	if d.header == nil {
		return
	}
	copied, err := d.header.Sync()
	if err != nil {
		d.logger.LogWarn(fmt.Sprintf("Can't refresh %s: %v", HeaderFile, err))
		return
	}
	if copied {
		d.logger.LogInfo("Copy newest version of " + HeaderFile)
		return
	}
	d.logger.LogTrace(HeaderFile + " is up to date")
}

func (d *Driver) builderOptions() simulator.Options {
	return simulator.Options{
		WorkDir:  d.cfg.WorkDir,
		Dotfiles: d.cfg.Dotfiles,
		Includes: d.cfg.Includes,
		Defines:  d.cfg.Defines,
		VPI:      d.cfg.VPI,
		GUI:      d.cfg.GUI,
		Main:     d.cfg.Main,
	}
}
