// Package ui provides the Bubbletea TUI for mpvtui.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the UI.
var (
	ColorPrimary = lipgloss.Color("#7571F9")
	ColorMuted   = lipgloss.Color("#606060")
	ColorSubtle  = lipgloss.Color("#383838")

	// State colors
	ColorPlaying = lipgloss.Color("#04B575")
	ColorPaused  = lipgloss.Color("#FFA500")
	ColorStopped = lipgloss.Color("#FF5555")

	// Text colors
	ColorText      = lipgloss.Color("#FAFAFA")
	ColorTextMuted = lipgloss.Color("#A0A0A0")
)

// Styles contains all the styles used in the UI.
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	Text      lipgloss.Style
	TextMuted lipgloss.Style
	TextBold  lipgloss.Style

	StatusPlaying lipgloss.Style
	StatusPaused  lipgloss.Style
	StatusStopped lipgloss.Style

	// Footer/help styles
	FooterKey  lipgloss.Style
	FooterDesc lipgloss.Style
	FooterSep  lipgloss.Style
}

// DefaultStyles returns the default styles for the UI.
func DefaultStyles() Styles {
	bold := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	plain := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return Styles{
		Title:      bold(ColorPrimary),
		TitleMuted: plain(ColorTextMuted),

		Text:      plain(ColorText),
		TextMuted: plain(ColorTextMuted),
		TextBold:  bold(ColorText),

		StatusPlaying: bold(ColorPlaying),
		StatusPaused:  bold(ColorPaused),
		StatusStopped: bold(ColorStopped),

		FooterKey:  bold(ColorPrimary),
		FooterDesc: plain(ColorTextMuted),
		FooterSep:  plain(ColorSubtle),
	}
}

// HelpStyles maps the footer styles onto the bubbles help component.
func (s Styles) HelpStyles() help.Styles {
	return help.Styles{
		Ellipsis:       s.FooterSep,
		ShortKey:       s.FooterKey,
		ShortDesc:      s.FooterDesc,
		ShortSeparator: s.FooterSep,
		FullKey:        s.FooterKey,
		FullDesc:       s.FooterDesc,
		FullSeparator:  s.FooterSep,
	}
}

// PanelStyle returns a bordered panel style with the given dimensions.
// width and height are the TOTAL outer dimensions including border.
func (s Styles) PanelStyle(focused bool, width, height int) lipgloss.Style {
	borderColor := ColorMuted
	if focused {
		borderColor = ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(max(1, width-2)).
		Height(max(1, height-2))
}

// RenderPanel renders content in a panel with a title, clipping or padding
// content to the panel height.
func (s Styles) RenderPanel(title, content string, focused bool, width, height int) string {
	titleStyle := s.TitleMuted
	if focused {
		titleStyle = s.Title
	}

	// Inner height after border (2 lines) and title (1 line)
	maxLines := max(1, height-3)
	lines := strings.Split(content, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for len(lines) < maxLines {
		lines = append(lines, "")
	}

	body := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), strings.Join(lines, "\n"))
	return s.PanelStyle(focused, width, height).Render(body)
}
