package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/harrison/svut/internal/models"
)

// FakeCommandRunner records commands and returns configured errors.
type FakeCommandRunner struct {
	errors     map[string]error
	callErrors map[int]error
	commands   []models.Command
}

// NewFakeCommandRunner creates a FakeCommandRunner where every command succeeds.
func NewFakeCommandRunner() *FakeCommandRunner {
	return &FakeCommandRunner{
		errors:     make(map[string]error),
		callErrors: make(map[int]error),
	}
}

// SetError makes every run of the command rendered as cmd fail with err.
func (f *FakeCommandRunner) SetError(cmd string, err error) {
	f.errors[cmd] = err
}

// FailCall makes the n-th call (0-based) fail with err.
func (f *FakeCommandRunner) FailCall(n int, err error) {
	f.callErrors[n] = err
}

// Run records the command and returns the configured error, if any.
func (f *FakeCommandRunner) Run(ctx context.Context, cmd models.Command) error {
	call := len(f.commands)
	f.commands = append(f.commands, cmd)

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err, ok := f.callErrors[call]; ok {
		return err
	}
	return f.errors[cmd.String()]
}

// Commands returns all executed commands rendered as strings.
func (f *FakeCommandRunner) Commands() []string {
	out := make([]string, len(f.commands))
	for i, c := range f.commands {
		out[i] = c.String()
	}
	return out
}

var (
	cmdCompile = models.NewCommand("iverilog", "-o", "icarus.out", "tb.sv")
	cmdRun     = models.NewCommand("vvp", "icarus.out")
)

func TestRunCommands_AllPass(t *testing.T) {
	runner := NewFakeCommandRunner()

	var started []string
	results, err := RunCommands(context.Background(), runner, []models.Command{cmdCompile, cmdRun},
		func(c models.Command) { started = append(started, c.String()) })
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if !r.Passed || r.Error != nil {
			t.Errorf("result[%d] expected pass, got %+v", i, r)
		}
	}

	cmds := runner.Commands()
	if len(cmds) != 2 || cmds[0] != cmdCompile.String() || cmds[1] != cmdRun.String() {
		t.Errorf("commands not executed in order: %v", cmds)
	}
	if len(started) != 2 || started[0] != cmds[0] || started[1] != cmds[1] {
		t.Errorf("onStart not called before each command: %v", started)
	}
}

func TestRunCommands_FailureStopsExecution(t *testing.T) {
	runner := NewFakeCommandRunner()
	runner.SetError(cmdCompile.String(), errors.New("exit status 1"))

	results, err := RunCommands(context.Background(), runner, []models.Command{cmdCompile, cmdRun}, nil)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}

	if cmds := runner.Commands(); len(cmds) != 1 {
		t.Errorf("expected 1 command (stopped on failure), got %d: %v", len(cmds), cmds)
	}
	if len(results) != 1 || results[0].Passed {
		t.Errorf("expected a single failed result, got %+v", results)
	}
}

func TestRunCommands_SecondCommandFails(t *testing.T) {
	runner := NewFakeCommandRunner()
	runner.SetError(cmdRun.String(), errors.New("exit status 2"))

	results, err := RunCommands(context.Background(), runner, []models.Command{cmdCompile, cmdRun}, nil)
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Error("first result should pass")
	}
	if results[1].Passed || results[1].Command.String() != cmdRun.String() {
		t.Errorf("last result should be the failing command, got %+v", results[1])
	}
}

func TestRunCommands_Empty(t *testing.T) {
	results, err := RunCommands(context.Background(), NewFakeCommandRunner(), nil, nil)
	if err != nil || results != nil {
		t.Errorf("expected nil results and error, got %v, %v", results, err)
	}
}

func TestRunCommands_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewFakeCommandRunner()
	_, err := RunCommands(ctx, runner, []models.Command{cmdCompile}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(runner.Commands()) != 0 {
		t.Error("no command should run after cancellation")
	}
}
