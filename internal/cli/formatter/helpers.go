package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatPrice renders a unit price with two decimals.
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.2f", p)
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// FormatRange renders an inclusive day range. Single-day ranges show one date.
func FormatRange(start, end time.Time) string {
	if domain.DateOf(start).Equal(domain.DateOf(end)) {
		return FormatDate(start)
	}
	return FormatDate(start) + " → " + FormatDate(end)
}

// DaysLabel renders an inclusive day count, e.g. "1 day", "14 days".
func DaysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// DaysLeftLabel colors the remaining days of an active card: red for the
// last two days, yellow within a week.
func DaysLeftLabel(status domain.CardStatus, daysLeft int) string {
	if status != domain.StatusActive {
		return Dim("--")
	}
	text := DaysLabel(daysLeft) + " left"
	switch {
	case daysLeft <= 2:
		return StyleRed.Render(text)
	case daysLeft <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp renders an audit timestamp relative to now when recent.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("2006-01-02 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("2006-01-02 15:04")
	}
}
