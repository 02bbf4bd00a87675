// Package logger provides the leveled console logger used by the smtprogress CLI.
//
// Messages are prefixed with [HH:MM:SS] timestamps and filtered by level.
// Implementations are safe for concurrent use.
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
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs to a writer with timestamps and thread safety.
// Color output is enabled when the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY that should receive color codes.
// NO_COLOR (via color.NoColor) always wins.
func isTerminal(w io.Writer) bool {
	if w == nil || color.NoColor {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
// Format: "[HH:MM:SS] [DEBUG] <message>"
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
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
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, colorLevel(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}

	cl.writer.Write([]byte(formatted))
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

// RunSummary describes one finished run of the run command.
type RunSummary struct {
	RunID    string
	Name     string
	Total    uint64
	Done     uint64
	Workers  int
	Lanes    int
	Duration time.Duration
}

// LogRunSummary logs the closing summary of a run at INFO level.
func (cl *ConsoleLogger) LogRunSummary(s RunSummary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	header := "=== Run Summary ==="
	done := fmt.Sprintf("Completed: %d/%d units", s.Done, s.Total)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		if s.Done >= s.Total {
			done = color.New(color.FgGreen).Sprint(done)
		} else {
			done = color.New(color.FgYellow).Sprint(done)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Run: %s (%s)\n", ts, s.RunID, s.Name)
	fmt.Fprintf(&b, "[%s] %s\n", ts, done)
	fmt.Fprintf(&b, "[%s] Workers: %d on %d lanes\n", ts, s.Workers, s.Lanes)
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(s.Duration))

	cl.writer.Write([]byte(b.String()))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		remainder := d % time.Hour
		if remainder == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		minutes := remainder / time.Minute
		remainder = remainder % time.Minute
		if remainder < time.Second {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh%dm%ds", hours, minutes, remainder/time.Second)
	case d >= time.Minute:
		minutes := d / time.Minute
		remainder := d % time.Minute
		if remainder < time.Second {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, remainder/time.Second)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogInfo is a no-op implementation.
func (n *NoOpLogger) LogInfo(message string) {}

// LogWarn is a no-op implementation.
func (n *NoOpLogger) LogWarn(message string) {}

// LogRunSummary is a no-op implementation.
func (n *NoOpLogger) LogRunSummary(s RunSummary) {}
