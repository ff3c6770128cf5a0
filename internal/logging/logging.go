// Package logging writes single-line, severity-tagged console messages.
//
// Every line has the layout
//
//	TAG     [module                                  ]: message
//
// INFO and WARNING go to stdout, DEBUG and ERROR to stderr. Tags are colored
// with lipgloss, so color disappears when the writer is not a terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultModuleWidth is the width of the bracketed module column.
const DefaultModuleWidth = 40

// tagWidth fits the longest tag ("WARNING") plus one space.
const tagWidth = 8

// Level identifies one of the four severities.
type Level int

const (
	// LevelInfo is a green tag on stdout.
	LevelInfo Level = iota
	// LevelWarning is a bright red tag on stdout.
	LevelWarning
	// LevelDebug is a cyan tag on stderr.
	LevelDebug
	// LevelError is a tag on a red background on stderr.
	LevelError
)

var tags = map[Level]string{
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelDebug:   "DEBUG",
	LevelError:   "ERROR",
}

// String returns the tag printed for the level.
func (l Level) String() string {
	return tags[l]
}

// Colors holds ANSI color codes ("32", "91", ...) for each tag.
// Error is applied as a background color.
type Colors struct {
	Info    string
	Warning string
	Debug   string
	Error   string
}

// DefaultColors matches the classic terminal palette of the analysis scripts.
var DefaultColors = Colors{Info: "32", Warning: "91", Debug: "36", Error: "31"}

// Option customises a Logger.
type Option func(*Logger)

// WithModuleWidth sets the module column width.
func WithModuleWidth(width int) Option {
	return func(l *Logger) {
		if width > 0 {
			l.moduleWidth = width
		}
	}
}

// WithColors overrides the tag colors.
func WithColors(c Colors) Option {
	return func(l *Logger) {
		l.colors = c
	}
}

// Logger writes tagged lines to a stdout and a stderr writer.
type Logger struct {
	mu          sync.Mutex
	stdout      io.Writer
	stderr      io.Writer
	moduleWidth int
	colors      Colors
	styles      map[Level]lipgloss.Style
}

// New creates a Logger. Each writer gets its own lipgloss renderer so color
// detection follows the actual destination.
func New(stdout, stderr io.Writer, opts ...Option) *Logger {
	l := &Logger{
		stdout:      stdout,
		stderr:      stderr,
		moduleWidth: DefaultModuleWidth,
		colors:      DefaultColors,
	}
	for _, opt := range opts {
		opt(l)
	}

	outR := lipgloss.NewRenderer(stdout)
	errR := lipgloss.NewRenderer(stderr)
	l.styles = map[Level]lipgloss.Style{
		LevelInfo:    outR.NewStyle().Foreground(ParseANSIColor(l.colors.Info)),
		LevelWarning: outR.NewStyle().Foreground(ParseANSIColor(l.colors.Warning)),
		LevelDebug:   errR.NewStyle().Foreground(ParseANSIColor(l.colors.Debug)),
		LevelError:   errR.NewStyle().Background(ParseANSIColor(l.colors.Error)),
	}
	return l
}

// Log writes one line for the given level.
func (l *Logger) Log(level Level, module, msg string) {
	w := l.stdout
	if level == LevelDebug || level == LevelError {
		w = l.stderr
	}

	tag := level.String()
	pad := strings.Repeat(" ", max(tagWidth-len(tag), 1))
	line := fmt.Sprintf("%s%s[%-*s]: %s\n", l.styles[level].Render(tag), pad, l.moduleWidth, module, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(w, line)
}

// Info writes an INFO line to stdout.
func (l *Logger) Info(module, msg string) { l.Log(LevelInfo, module, msg) }

// Warning writes a WARNING line to stdout.
func (l *Logger) Warning(module, msg string) { l.Log(LevelWarning, module, msg) }

// Debug writes a DEBUG line to stderr.
func (l *Logger) Debug(module, msg string) { l.Log(LevelDebug, module, msg) }

// Error writes an ERROR line to stderr.
func (l *Logger) Error(module, msg string) { l.Log(LevelError, module, msg) }

// Infof is Info with a format string.
func (l *Logger) Infof(module, format string, args ...any) {
	l.Info(module, fmt.Sprintf(format, args...))
}

// Warningf is Warning with a format string.
func (l *Logger) Warningf(module, format string, args ...any) {
	l.Warning(module, fmt.Sprintf(format, args...))
}

// Debugf is Debug with a format string.
func (l *Logger) Debugf(module, format string, args ...any) {
	l.Debug(module, fmt.Sprintf(format, args...))
}

// Errorf is Error with a format string.
func (l *Logger) Errorf(module, format string, args ...any) {
	l.Error(module, fmt.Sprintf(format, args...))
}

// ParseANSIColor converts ANSI color codes to lipgloss colors. Codes that
// are not classic ANSI codes are passed through as 256-color values.
func ParseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
		// background codes map onto the same palette
		"40": "0", "41": "1", "42": "2", "43": "3",
		"44": "4", "45": "5", "46": "6", "47": "7",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(os.Stdout, os.Stderr)
)

// Default returns the process-wide logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Info writes an INFO line with the default logger.
func Info(module, msg string) { Default().Info(module, msg) }

// Warning writes a WARNING line with the default logger.
func Warning(module, msg string) { Default().Warning(module, msg) }

// Debug writes a DEBUG line with the default logger.
func Debug(module, msg string) { Default().Debug(module, msg) }

// Error writes an ERROR line with the default logger.
func Error(module, msg string) { Default().Error(module, msg) }
