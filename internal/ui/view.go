package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dewi-tim/mpvtui/internal/player"
	"github.com/dewi-tim/mpvtui/internal/ui/components"
)

const (
	// Minimum dimensions
	minWidth  = 60
	minHeight = 15

	// Panel proportions
	libraryWidthPercent = 35
)

// layout hands panel sizes to the components after a resize.
func (m *Model) layout() {
	libraryWidth, rightWidth, mainHeight := m.panelSizes()
	// Panel border (2) and title (1)
	m.browser.SetSize(libraryWidth-4, mainHeight-2-3)
	m.playlist.SetSize(rightWidth-2, mainHeight*50/100-2)
	m.progress.SetWidth(rightWidth - 6)
}

func (m Model) panelSizes() (library, right, height int) {
	library = m.width * libraryWidthPercent / 100
	right = m.width - library - 3 // 3 for spacing/borders
	height = m.height - 4         // footer
	return library, right, height
}

// View renders the entire UI.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width < minWidth || m.height < minHeight {
		return m.renderTooSmall()
	}

	libraryWidth, rightWidth, mainHeight := m.panelSizes()

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLibrary(libraryWidth, mainHeight),
		" ",
		m.renderRightPane(rightWidth, mainHeight),
	)

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, m.renderFooter())
}

// renderTooSmall renders a message when the terminal is too small.
func (m Model) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small\nNeed at least %dx%d\nCurrent: %dx%d",
		minWidth, minHeight, m.width, m.height)
	return lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Render(msg)
}

// renderLibrary renders the left library panel.
func (m Model) renderLibrary(width, height int) string {
	focused := m.focus == FocusLibrary
	return m.styles.RenderPanel("Library", m.browser.View(), focused, width-2, height-2)
}

// renderRightPane renders the playlist, now-playing info and progress.
func (m Model) renderRightPane(width, height int) string {
	playlistHeight := height * 50 / 100
	trackInfoHeight := height * 25 / 100

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderPlaylist(width, playlistHeight),
		m.renderTrackInfo(width, trackInfoHeight),
		m.renderProgress(width),
	)
}

// renderPlaylist renders the playlist panel.
func (m Model) renderPlaylist(width, height int) string {
	focused := m.focus == FocusPlaylist
	return m.styles.RenderPanel(m.playlist.Title(), m.playlist.View(), focused, width-2, height-2)
}

// renderTrackInfo renders the now-playing panel.
func (m Model) renderTrackInfo(width, height int) string {
	var content strings.Builder

	if t := m.currentTrack; t != nil {
		field := func(label, value string) {
			if value == "" {
				value = "(Unknown)"
			}
			fmt.Fprintf(&content, "%s %s\n",
				m.styles.TextMuted.Render(label),
				m.styles.Text.Render(value))
		}
		fmt.Fprintf(&content, "%s %s\n",
			m.styles.TextMuted.Render("Title:"),
			m.styles.TextBold.Render(t.Title))
		field("Artist:", t.Artist)
		field("Album:", t.Album)
		content.WriteString(m.styles.TextMuted.Render(fmt.Sprintf("%s  %s", t.Format, t.Path)))
	} else {
		content.WriteString(m.styles.TextMuted.Render("Nothing playing"))
		content.WriteString("\n")
		content.WriteString(m.styles.TextMuted.Render("Select a file from the library"))
	}

	style := lipgloss.NewStyle().
		Width(width-4).
		Height(max(1, height-1)).
		MaxHeight(max(1, height-1)).
		Padding(0, 1)

	return style.Render(content.String())
}

// renderProgress renders the progress bar and playback status.
func (m Model) renderProgress(width int) string {
	var statusStyle lipgloss.Style
	var statusIcon string

	switch m.playback.State {
	case player.StatePlaying:
		statusStyle = m.styles.StatusPlaying
		statusIcon = ">"
	case player.StatePaused:
		statusStyle = m.styles.StatusPaused
		statusIcon = "||"
	default:
		statusStyle = m.styles.StatusStopped
		statusIcon = "[]"
	}

	settings := fmt.Sprintf(" | Vol %.0f%%", m.playback.Volume)
	if m.playback.Muted {
		settings = " | Muted"
	}
	if m.playback.Speed != 0 && m.playback.Speed != 1 {
		settings += fmt.Sprintf(" | %.2gx", m.playback.Speed)
	}

	var content strings.Builder
	fmt.Fprintf(&content, "%s %s%s\n",
		statusStyle.Render(statusIcon),
		statusStyle.Render(m.playback.State.String()),
		m.styles.TextMuted.Render(settings))

	m.progress.SetElapsed(m.playback.Position)
	m.progress.SetDuration(m.playback.Duration)
	content.WriteString(m.progress.View())

	style := lipgloss.NewStyle().
		Width(width-4).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)

	return style.Render(content.String())
}

// renderFooter renders the error line and key hints.
func (m Model) renderFooter() string {
	var content strings.Builder

	if m.lastError != "" && time.Since(m.errorTime) < errorDisplayTime {
		errorStyle := lipgloss.NewStyle().
			Foreground(ColorStopped).
			Bold(true)
		content.WriteString(errorStyle.Render("Error: " + m.lastError))
		content.WriteString("\n")
	}

	content.WriteString(m.help.View(m.keyMap))
	return content.String()
}

// Elapsed is exported for status lines outside the TUI.
func Elapsed(info player.PlaybackInfo) string {
	return components.FormatDuration(info.Position) + " / " + components.FormatDuration(info.Duration)
}
