package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainOutput makes the renderers fall back to uncolored output even when
// the environment forces color.
func plainOutput(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
}

func TestLogRouting(t *testing.T) {
	tests := []struct {
		name     string
		log      func(l *Logger)
		toStdout bool
		expected string
	}{
		{
			name:     "info",
			log:      func(l *Logger) { l.Info("xsec", "loaded") },
			toStdout: true,
			expected: "INFO    [xsec]: loaded\n",
		},
		{
			name:     "warning",
			log:      func(l *Logger) { l.Warning("xsec", "careful") },
			toStdout: true,
			expected: "WARNING [xsec]: careful\n",
		},
		{
			name:     "debug",
			log:      func(l *Logger) { l.Debug("xsec", "details") },
			expected: "DEBUG   [xsec]: details\n",
		},
		{
			name:     "error",
			log:      func(l *Logger) { l.Error("xsec", "Could not open f.dat") },
			expected: "ERROR   [xsec]: Could not open f.dat\n",
		},
		{
			name:     "infof",
			log:      func(l *Logger) { l.Infof("xsec", "loaded %d records", 3) },
			toStdout: true,
			expected: "INFO    [xsec]: loaded 3 records\n",
		},
		{
			name:     "warningf",
			log:      func(l *Logger) { l.Warningf("xsec", "skipping %q", "a.dat") },
			toStdout: true,
			expected: "WARNING [xsec]: skipping \"a.dat\"\n",
		},
		{
			name:     "debugf",
			log:      func(l *Logger) { l.Debugf("xsec", "mV=%d mDM=%d", 1000, 100) },
			expected: "DEBUG   [xsec]: mV=1000 mDM=100\n",
		},
		{
			name:     "errorf",
			log:      func(l *Logger) { l.Errorf("xsec", "Could not open %s", "f.dat") },
			expected: "ERROR   [xsec]: Could not open f.dat\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plainOutput(t)
			var stdout, stderr bytes.Buffer
			l := New(&stdout, &stderr, WithModuleWidth(4))
			tt.log(l)

			if tt.toStdout {
				assert.Equal(t, tt.expected, stdout.String())
				assert.Empty(t, stderr.String())
			} else {
				assert.Equal(t, tt.expected, stderr.String())
				assert.Empty(t, stdout.String())
			}
		})
	}
}

// forceColor makes the renderers emit ANSI sequences into plain buffers.
func forceColor(t *testing.T) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "1")
}

func TestColoredTags(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		colors   Colors
		toStdout bool
		expected string
	}{
		{
			name:     "info green",
			level:    LevelInfo,
			colors:   DefaultColors,
			toStdout: true,
			expected: "\x1b[32mINFO\x1b[0m    [xsec]: msg\n",
		},
		{
			name:     "warning bright red",
			level:    LevelWarning,
			colors:   DefaultColors,
			toStdout: true,
			expected: "\x1b[91mWARNING\x1b[0m [xsec]: msg\n",
		},
		{
			name:     "debug cyan",
			level:    LevelDebug,
			colors:   DefaultColors,
			expected: "\x1b[36mDEBUG\x1b[0m   [xsec]: msg\n",
		},
		{
			name:     "error red background",
			level:    LevelError,
			colors:   DefaultColors,
			expected: "\x1b[41mERROR\x1b[0m   [xsec]: msg\n",
		},
		{
			name:     "configured error background",
			level:    LevelError,
			colors:   Colors{Info: "34", Warning: "33", Debug: "35", Error: "34"},
			expected: "\x1b[44mERROR\x1b[0m   [xsec]: msg\n",
		},
		{
			name:     "configured info foreground",
			level:    LevelInfo,
			colors:   Colors{Info: "34", Warning: "33", Debug: "35", Error: "34"},
			toStdout: true,
			expected: "\x1b[34mINFO\x1b[0m    [xsec]: msg\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forceColor(t)
			var stdout, stderr bytes.Buffer
			l := New(&stdout, &stderr, WithModuleWidth(4), WithColors(tt.colors))
			l.Log(tt.level, "xsec", "msg")

			got, other := stderr.String(), stdout.String()
			if tt.toStdout {
				got, other = other, got
			}
			assert.Equal(t, tt.expected, got)
			assert.Empty(t, other)
		})
	}
}

func TestModuleColumnWidth(t *testing.T) {
	plainOutput(t)
	var stdout bytes.Buffer
	l := New(&stdout, &bytes.Buffer{})
	l.Info("PandaCore.Tools", "hello")

	line := stdout.String()
	start := strings.Index(line, "[")
	end := strings.Index(line, "]")
	require.True(t, start >= 0 && end > start)
	assert.Equal(t, DefaultModuleWidth, end-start-1)
	assert.True(t, strings.HasSuffix(line, "]: hello\n"))
}

func TestLongModuleNotTruncated(t *testing.T) {
	plainOutput(t)
	var stdout bytes.Buffer
	l := New(&stdout, &bytes.Buffer{}, WithModuleWidth(3))
	l.Info("module", "m")
	assert.Equal(t, "INFO    [module]: m\n", stdout.String())
}

func TestDefaultLogger(t *testing.T) {
	plainOutput(t)
	prev := Default()
	t.Cleanup(func() { SetDefault(prev) })

	var stdout, stderr bytes.Buffer
	SetDefault(New(&stdout, &stderr, WithModuleWidth(1)))
	Info("a", "one")
	Warning("a", "two")
	Debug("a", "three")
	Error("a", "four")

	assert.Equal(t, "INFO    [a]: one\nWARNING [a]: two\n", stdout.String())
	assert.Equal(t, "DEBUG   [a]: three\nERROR   [a]: four\n", stderr.String())

	SetDefault(nil)
	assert.NotNil(t, Default())
}

func TestParseANSIColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("2"), ParseANSIColor("32"))
	assert.Equal(t, lipgloss.Color("9"), ParseANSIColor("91"))
	assert.Equal(t, lipgloss.Color("1"), ParseANSIColor("41"))
	assert.Equal(t, lipgloss.Color("212"), ParseANSIColor("212"))
}
