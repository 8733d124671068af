// Package simulator builds the command lists that compile and run a unit
// test under a supported HDL simulator.
//
// Two toolchains are supported: Icarus Verilog (iverilog + vvp, optionally
// GTKWave) and Verilator (verilate, make, run the generated binary). Select
// picks one from a free-form simulator name. Builders only construct
// commands; the executor package runs them.
package simulator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anmitsu/go-shlex"

	"github.com/harrison/svut/internal/models"
)

var (
	// ErrUnsupportedSimulator indicates the simulator name matches no known toolchain.
	ErrUnsupportedSimulator = errors.New("simulator not supported")
	// ErrUnsupportedExtension indicates a test file is neither *.v nor *.sv.
	ErrUnsupportedExtension = errors.New("failed to find supported extension, must use either *.v or *.sv")
)

// Options carries the configuration shared by every builder.
type Options struct {
	// WorkDir is the directory commands run in; relative paths resolve against it
	WorkDir string
	// Dotfiles are command files (*.f) passed with -f when they exist
	Dotfiles []string
	// Includes are include directories
	Includes []string
	// Defines is a semicolon separated define list, e.g. "DEF1=2;DEF2"
	Defines string
	// VPI is a raw argument string spliced into the vvp command line (Icarus only)
	VPI string
	// GUI enables the waveform dump and launches the viewer (Icarus only)
	GUI bool
	// Main is the C++ testbench driver compiled with the model (Verilator only)
	Main string
}

// Builder constructs the ordered command list for one test file.
type Builder interface {
	// Name returns the toolchain name, e.g. "icarus"
	Name() string
	// Build returns the commands that clean, compile, and run test.
	Build(test string) ([]models.Command, error)
}

// Select returns the builder for name. Matching is a case-insensitive
// substring test: any name containing "iverilog" or "icarus" selects Icarus,
// any name containing "verilator" selects Verilator.
func Select(name string, opts Options) (Builder, error) {
	lowered := strings.ToLower(name)
	switch {
	case strings.Contains(lowered, "iverilog") || strings.Contains(lowered, "icarus"):
		return NewIcarus(opts), nil
	case strings.Contains(lowered, "verilator"):
		return NewVerilator(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (use icarus or verilator)", ErrUnsupportedSimulator, name)
	}
}

// HasValidExtension reports whether test ends in ".v" or ".sv".
// This is a plain suffix check on the path, not an extension parse.
func HasValidExtension(test string) bool {
	return strings.HasSuffix(test, ".v") || strings.HasSuffix(test, ".sv")
}

func checkExtension(test string) error {
	if !HasValidExtension(test) {
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, test)
	}
	return nil
}

// FormatDefines renders a define list as a flag string ready to drop on a
// command line: "A=1;B;;C=3" becomes "-DA=1 -DB -DC=3 ". Empty entries are
// skipped and every flag carries a trailing space.
func FormatDefines(defines string) string {
	var sb strings.Builder
	for _, flag := range DefineFlags(defines) {
		sb.WriteString(flag)
		sb.WriteString(" ")
	}
	return sb.String()
}

// DefineFlags returns the define list as individual -D arguments.
func DefineFlags(defines string) []string {
	if defines == "" {
		return nil
	}
	var flags []string
	for _, def := range strings.Split(defines, ";") {
		if def == "" {
			continue
		}
		flags = append(flags, "-D"+def)
	}
	return flags
}

// existingDotfiles keeps the dot files that are regular files relative to workDir.
func existingDotfiles(workDir string, dotfiles []string) []string {
	var found []string
	for _, dot := range dotfiles {
		if dot == "" {
			continue
		}
		if fileExists(resolve(workDir, dot)) {
			found = append(found, dot)
		}
	}
	return found
}

// dotfileArgs returns "-f a.f b.f" as arguments, or nothing when no dot file exists.
func dotfileArgs(workDir string, dotfiles []string) []string {
	found := existingDotfiles(workDir, dotfiles)
	if len(found) == 0 {
		return nil
	}
	return append([]string{"-f"}, found...)
}

// splitVPI splits a raw VPI argument string with POSIX shell quoting rules.
func splitVPI(vpi string) ([]string, error) {
	if strings.TrimSpace(vpi) == "" {
		return nil, nil
	}
	args, err := shlex.Split(vpi, true)
	if err != nil {
		return nil, fmt.Errorf("invalid vpi arguments %q: %w", vpi, err)
	}
	return args, nil
}

func resolve(workDir, path string) string {
	if workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
