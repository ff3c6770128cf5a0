package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/pandatools/internal/xsec"
)

// columnWidth fits the formatted floats of a table line
const columnWidth = 10

var columnTitles = []string{"m_V", "m_DM", "gV_DM", "gA_DM", "gV_q", "gA_q", "sigma", "delta"}

// ============================================================================
// Model Item
// ============================================================================

// modelItem wraps a ModelParams with its rendered row and search text
type modelItem struct {
	params     xsec.ModelParams
	row        table.Row
	searchText string
}

func newModelItem(p xsec.ModelParams) modelItem {
	fields := strings.Split(p.String(), "\t")
	return modelItem{
		params:     p,
		row:        table.Row(fields),
		searchText: strings.Join(fields, " ") + " " + p.Couplings().String(),
	}
}

// matchesQuery checks if the item contains all search words
func (item *modelItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.searchText, word) {
			return false
		}
	}
	return true
}

// ============================================================================
// Browse Model
// ============================================================================

// browseModel is the Bubble Tea model listing the records of one table
type browseModel struct {
	width     int
	height    int
	title     string
	table     table.Model
	textInput textinput.Model
	quitting  bool

	items    []modelItem
	filtered []modelItem
	selected *xsec.ModelParams
}

// newBrowseModel creates a browseModel over the given records
func newBrowseModel(models []xsec.ModelParams, title string) browseModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.PromptStyle = styles.Cursor
	ti.Cursor.Style = styles.Cursor
	ti.Focus()
	ti.CharLimit = 128
	ti.Width = 50

	columns := make([]table.Column, len(columnTitles))
	for i, t := range columnTitles {
		columns[i] = table.Column{Title: t, Width: columnWidth}
	}

	items := make([]modelItem, len(models))
	for i, p := range models {
		items[i] = newModelItem(p)
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(styles.TableStyles()),
	)

	m := browseModel{
		title:     title,
		table:     tbl,
		textInput: ti,
		items:     items,
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model
func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-6, 3))
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	prevQuery := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != prevQuery {
		m.applyFilter()
	}
	return m, cmd
}

// handleKey processes navigation and selection keys. Everything else goes to
// the filter input.
func (m *browseModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true
	case "enter":
		if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.filtered) {
			p := m.filtered[cursor].params
			m.selected = &p
			return tea.Quit, true
		}
		return nil, true
	case "up", "ctrl+p":
		m.table.MoveUp(1)
	case "down", "ctrl+n":
		m.table.MoveDown(1)
	case "pgup":
		m.table.MoveUp(10)
	case "pgdown":
		m.table.MoveDown(10)
	case "home":
		m.table.GotoTop()
	case "end":
		m.table.GotoBottom()
	default:
		return nil, false
	}
	return nil, true
}

// applyFilter rebuilds the table rows from the current query
func (m *browseModel) applyFilter() {
	query := strings.TrimSpace(m.textInput.Value())
	if query == "" {
		m.filtered = m.items
	} else {
		words := strings.Fields(query)
		m.filtered = make([]modelItem, 0, len(m.items))
		for i := range m.items {
			if m.items[i].matchesQuery(words) {
				m.filtered = append(m.filtered, m.items[i])
			}
		}
	}

	rows := make([]table.Row, len(m.filtered))
	for i, item := range m.filtered {
		rows[i] = item.row
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// View implements tea.Model
func (m browseModel) View() string {
	if m.quitting {
		return ""
	}

	width := max(m.width, columnWidth*len(columnTitles))

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  %d/%d", len(m.filtered), len(m.items))))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("Enter select"))
	b.WriteString(" • ")
	b.WriteString(styles.Dim.Render("ESC exit"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Run
// ============================================================================

// isTerminal reports whether f is a character device. A file that cannot be
// stat'ed is not a terminal.
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode()&os.ModeCharDevice != 0
}

// getTTY returns file handles for TUI input/output
// Uses /dev/tty to bypass shell pipes and command substitution
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	// If stdout is captured (e.g. by $()), draw on the terminal instead
	if !isTerminal(os.Stdout) {
		out, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			out = os.Stderr // Last resort fallback
		} else {
			closers = append(closers, func() { out.Close() })
		}

		in, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
		if err != nil {
			in = os.Stdin
		} else {
			closers = append(closers, func() { in.Close() })
		}

		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))

		return in, out, func() {
			for _, c := range closers {
				c()
			}
		}
	}

	return os.Stdin, os.Stdout, func() {}
}

// Run shows the records in an interactive table and returns the one picked
// by the user, or nil when the browser was closed without a selection.
func Run(models []xsec.ModelParams, title string) (*xsec.ModelParams, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("no models to browse")
	}

	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()
	RefreshStyles() // Refresh after getTTY sets up the renderer

	m := newBrowseModel(models, title)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(browseModel)
	return result.selected, nil
}
