// Package ui provides the interactive bug browser for bugnotes.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors
var (
	colorPrimary = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("#6c7a89")
	colorBorder  = lipgloss.Color("#2a3850")
	colorError   = lipgloss.Color("#e53935")
	colorInfo    = lipgloss.Color("#2196F3")
)

// Styles holds the styled components used by the browser.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Content lipgloss.Style

	FocusedBorder lipgloss.Color
	BlurredBorder lipgloss.Color
}

// DefaultStyles returns the stock style set.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colorInfo),

		Muted: lipgloss.NewStyle().
			Foreground(colorMuted),

		Success: lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		FocusedBorder: colorPrimary,
		BlurredBorder: colorBorder,
	}
}

// RenderDivider returns a horizontal divider.
func (s Styles) RenderDivider(width int) string {
	return s.Muted.Render(strings.Repeat("─", width))
}
