package executor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/harrison/svut/internal/models"
)

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, cmd models.Command) error
}

// Warner receives diagnostics that do not fail a test.
type Warner interface {
	LogWarn(message string)
}

// ProcessRunner executes commands as child processes of svut.
// Output goes straight to the configured writers so simulator logs stream
// to the terminal while the test runs.
type ProcessRunner struct {
	WorkDir string    // Working directory for commands (empty = current dir)
	Stdin   io.Reader // nil = os.Stdin
	Stdout  io.Writer // nil = os.Stdout
	Stderr  io.Writer // nil = os.Stderr
	Logger  Warner    // nil = background launch failures are dropped
}

// NewProcessRunner creates a ProcessRunner for workDir attached to the
// terminal.
func NewProcessRunner(workDir string, logger Warner) *ProcessRunner {
	return &ProcessRunner{WorkDir: workDir, Logger: logger}
}

// Run starts cmd and, unless it is a background command, waits for it.
// Glob patterns in arguments are expanded against WorkDir the way a shell
// would; a pattern with no match is passed through unchanged.
// Background commands are detached and never fail: a launch error is
// reported through Logger and their exit status is ignored.
func (r *ProcessRunner) Run(ctx context.Context, c models.Command) error {
	args := expandGlobs(r.WorkDir, c.Args)

	var cmd *exec.Cmd
	if c.Background {
		// Not bound to ctx: the viewer outlives the run
		cmd = exec.Command(c.Program, args...)
	} else {
		cmd = exec.CommandContext(ctx, c.Program, args...)
	}
	cmd.Dir = r.WorkDir
	cmd.Stdin = orReader(r.Stdin, os.Stdin)
	cmd.Stdout = orWriter(r.Stdout, os.Stdout)
	cmd.Stderr = orWriter(r.Stderr, os.Stderr)

	if c.Background {
		if err := cmd.Start(); err != nil {
			r.warn(fmt.Sprintf("Can't launch %s: %v", c.Program, err))
			return nil
		}
		if err := cmd.Process.Release(); err != nil {
			r.warn(fmt.Sprintf("Can't detach %s: %v", c.Program, err))
		}
		return nil
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.Program, err)
	}
	return nil
}

func (r *ProcessRunner) warn(message string) {
	if r.Logger != nil {
		r.Logger.LogWarn(message)
	}
}

func expandGlobs(dir string, args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}

		pattern := arg
		if dir != "" && !filepath.IsAbs(arg) {
			pattern = filepath.Join(dir, arg)
		}
		matches, err := filepath.Glob(pattern)
		if err != nil || len(matches) == 0 {
			out = append(out, arg)
			continue
		}

		for _, m := range matches {
			if dir != "" && !filepath.IsAbs(arg) {
				if rel, err := filepath.Rel(dir, m); err == nil {
					m = rel
				}
			}
			out = append(out, m)
		}
	}
	return out
}

func orReader(r io.Reader, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
