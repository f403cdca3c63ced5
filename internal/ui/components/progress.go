package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders elapsed and total time around a bubbles progress bar.
type ProgressBar struct {
	bar      progress.Model
	elapsed  time.Duration
	duration time.Duration
	width    int

	TimeStyle lipgloss.Style
}

// NewProgressBar creates a new progress bar with default styling.
func NewProgressBar() ProgressBar {
	return ProgressBar{
		bar: progress.New(
			progress.WithoutPercentage(),
			progress.WithSolidFill("#7571F9"),
			progress.WithFillCharacters('█', '░'),
		),
		width:     40,
		TimeStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")),
	}
}

// SetWidth sets the total width available for the progress bar.
func (p *ProgressBar) SetWidth(width int) {
	p.width = width
}

// SetElapsed sets the current elapsed time.
func (p *ProgressBar) SetElapsed(d time.Duration) {
	p.elapsed = d
}

// SetDuration sets the total duration. Zero means unknown, e.g. a stream.
func (p *ProgressBar) SetDuration(d time.Duration) {
	p.duration = d
}

// Percent returns the filled fraction between 0.0 and 1.0.
func (p ProgressBar) Percent() float64 {
	if p.duration <= 0 {
		return 0
	}
	return min(max(float64(p.elapsed)/float64(p.duration), 0), 1)
}

// View renders the progress bar with time display.
// Format: "01:23 ██████░░░░ 03:45"
func (p ProgressBar) View() string {
	elapsedStr := FormatDuration(p.elapsed)
	durationStr := "--:--"
	if p.duration > 0 {
		durationStr = FormatDuration(p.duration)
	}

	bar := p.bar
	bar.Width = max(5, p.width-len(elapsedStr)-len(durationStr)-2)

	return fmt.Sprintf("%s %s %s",
		p.TimeStyle.Render(elapsedStr),
		bar.ViewAs(p.Percent()),
		p.TimeStyle.Render(durationStr),
	)
}

// FormatDuration formats a duration as MM:SS, or H:MM:SS from an hour up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
