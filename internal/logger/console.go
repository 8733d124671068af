// Package logger provides console output for svut runs.
//
// ConsoleLogger writes leveled, timestamped diagnostics plus the run
// banners, command echoes, and timing lines printed around each test.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/svut/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

const bannerRule = "------------------------------------------------"

// ConsoleLogger logs run progress to a writer.
// Leveled messages are prefixed with [HH:MM:SS] [LEVEL]; banners, echoed
// commands, and dry-run listings are written as-is.
// Color output is enabled only when writing to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive); anything
// else falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a TTY that supports colors.
// NO_COLOR (honored by fatih/color) disables colors even on a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	if !IsValidLogLevel(level) {
		return "info"
	}
	return strings.ToLower(strings.TrimSpace(level))
}

// IsValidLogLevel reports whether level is one of the supported levels.
func IsValidLogLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.write(formatted)
}

func colorLevel(level string) string {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogEvent prints the banner framing a test run:
//
//	------------------------------------------------
//	SVUT v1.6.0
//	Start @ 14:03:05
//	------------------------------------------------
func (cl *ConsoleLogger) LogEvent(event, tag string) {
	if cl.writer == nil {
		return
	}

	title := "SVUT " + tag
	if cl.colorOutput {
		title = color.New(color.Bold).Sprint(title)
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(bannerRule + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(fmt.Sprintf("%s @ %s\n", event, timestamp()))
	sb.WriteString(bannerRule + "\n")
	sb.WriteString("\n")

	cl.write(sb.String())
}

// LogCommand echoes a command just before it runs.
func (cl *ConsoleLogger) LogCommand(cmd models.Command) {
	if cl.writer == nil {
		return
	}
	cl.write(cmd.String() + "\n")
}

// LogCommandFailed reports the command that stopped a test.
func (cl *ConsoleLogger) LogCommandFailed(cmd models.Command, err error) {
	msg := "Command failed: " + cmd.String()
	if err != nil {
		cl.LogDebug(fmt.Sprintf("%s (%v)", msg, err))
	}
	cl.LogError(msg)
}

// LogElapsed prints the wall-clock time of a test's command list.
// Format: "Elapsed time: H:MM:SS.ffffff"
func (cl *ConsoleLogger) LogElapsed(d time.Duration) {
	if cl.writer == nil {
		return
	}
	cl.write(fmt.Sprintf("Elapsed time: %s\n", FormatElapsed(d)))
}

// LogDryRun prints the version header and the commands that would run.
func (cl *ConsoleLogger) LogDryRun(tag string, test string, cmds []models.Command) {
	if cl.writer == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SVUT %s dry-run: %s\n", tag, test))
	sb.WriteString(models.FormatCommandList(cmds))
	cl.write(sb.String())
}

// LogSummary logs per-test outcomes at DEBUG level once all tests ran.
func (cl *ConsoleLogger) LogSummary(summary models.RunSummary) {
	if cl.writer == nil || !cl.shouldLog("debug") {
		return
	}

	for _, r := range summary.Results {
		status := "PASS"
		if r.Failed() {
			status = "FAIL"
		}
		cl.LogDebug(fmt.Sprintf("%s %s (%s, %s)", status, r.Test, r.Simulator, FormatElapsed(r.Elapsed)))
	}
	cl.LogDebug(fmt.Sprintf("Exit code: %d", summary.ExitCode))
}

func (cl *ConsoleLogger) write(s string) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.writer.Write([]byte(s))
}

// timestamp returns the current time formatted as HH:MM:SS.
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// FormatElapsed renders a duration as H:MM:SS.ffffff.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	micros := d / time.Microsecond
	return fmt.Sprintf("%d:%02d:%02d.%06d", hours, minutes, seconds, micros)
}
