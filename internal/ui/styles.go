package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/pandatools/internal/config"
	"github.com/gubarz/pandatools/internal/logging"
)

// StyleManager encapsulates all TUI styles and provides methods for style operations
type StyleManager struct {
	Title   lipgloss.Style
	Dim     lipgloss.Style
	Divider lipgloss.Style
	Cursor  lipgloss.Style

	// Table styles
	TableHeader   lipgloss.Style
	TableCell     lipgloss.Style
	TableSelected lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Title:         lipgloss.NewStyle().Bold(true),
		Dim:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:        lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		TableHeader:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		TableCell:     lipgloss.NewStyle().Padding(0, 1),
		TableSelected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := logging.ParseANSIColor(config.GetColorHeader())
	borderColor := lipgloss.Color(config.GetColorBorder())
	selectedBg := lipgloss.Color(config.GetColorSelected())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.Cursor = lipgloss.NewStyle().Foreground(headerColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)

	s.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(headerColor).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(borderColor)
	s.TableCell = lipgloss.NewStyle().Padding(0, 1)
	s.TableSelected = lipgloss.NewStyle().Background(selectedBg)
}

// TableStyles returns the bubbles table styles built from the manager
func (s *StyleManager) TableStyles() table.Styles {
	return table.Styles{
		Header:   s.TableHeader,
		Cell:     s.TableCell,
		Selected: s.TableSelected,
	}
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
