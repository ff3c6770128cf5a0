package output

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gubarz/pandatools/internal/config"
)

// ============================================================================
// Clipboard Interface
// ============================================================================

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// systemClipboard implements Clipboard using system commands
type systemClipboard struct {
	fallback io.Writer
}

// Copy copies text to the system clipboard
func (c *systemClipboard) Copy(text string) error {
	cmd := c.findClipboardCommand()
	if cmd == nil {
		// No clipboard tool found, just print
		_, err := fmt.Fprintln(c.fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// findClipboardCommand returns the appropriate clipboard command for the system
func (c *systemClipboard) findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ============================================================================
// Writer
// ============================================================================

// Mode represents how a result should be handled
type Mode string

const (
	ModePrint Mode = "print"
	ModeCopy  Mode = "copy"
)

// ParseMode validates an output mode name
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModePrint, "":
		return ModePrint, nil
	case ModeCopy:
		return ModeCopy, nil
	default:
		return "", fmt.Errorf("unsupported output mode: %s (supported: print, copy)", s)
	}
}

// Writer emits CLI results, either to stdout or to the clipboard
type Writer struct {
	out       io.Writer
	clipboard Clipboard
}

// NewWriter creates a writer printing to out
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		clipboard: &systemClipboard{fallback: out},
	}
}

// WithClipboard sets a custom clipboard implementation (useful for testing)
func (w *Writer) WithClipboard(c Clipboard) *Writer {
	w.clipboard = c
	return w
}

// Output handles a result based on the configured mode
func (w *Writer) Output(text string) error {
	mode, err := ParseMode(config.GetOutput())
	if err != nil {
		return err
	}
	return w.OutputWithMode(text, mode)
}

// OutputWithMode handles a result with an explicit mode
func (w *Writer) OutputWithMode(text string, mode Mode) error {
	switch mode {
	case ModeCopy:
		return w.clipboard.Copy(text)
	default: // print
		_, err := fmt.Fprintln(w.out, text)
		return err
	}
}
