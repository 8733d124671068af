package models

import (
	"strings"
)

// Command is a single external program invocation produced by a simulator builder.
// Commands are executed directly (no shell), so Args must already be split.
type Command struct {
	// Program is the executable name or path (e.g., "iverilog")
	Program string

	// Args are the arguments passed to Program, in order
	Args []string

	// Background launches the program without waiting for it to exit.
	// Used for the waveform viewer, which must not block the run.
	Background bool
}

// NewCommand creates a foreground Command.
func NewCommand(program string, args ...string) Command {
	return Command{Program: program, Args: args}
}

// String renders the command the way it would be typed in a shell.
// Arguments containing whitespace or quotes are single-quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	parts = append(parts, quoteArg(c.Program))
	for _, arg := range c.Args {
		parts = append(parts, quoteArg(arg))
	}
	if c.Background {
		parts = append(parts, "&")
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsAny(arg, " \t\n'\"") {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// FormatCommandList renders a command list, one command per line.
func FormatCommandList(cmds []Command) string {
	var sb strings.Builder
	for _, c := range cmds {
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
