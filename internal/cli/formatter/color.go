package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleToday  = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorHeader).Bold(true)
)

// Bar fills by card status. Overlap and preview take precedence.
var (
	barActive   = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorGreen)
	barUpcoming = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorBlue)
	barExpired  = lipgloss.NewStyle().Foreground(ColorFg).Background(ColorDim)
	barOverlap  = lipgloss.NewStyle().Foreground(ColorFg).Background(ColorRed)
	barPreview  = lipgloss.NewStyle().Foreground(ColorBg).Background(ColorYellow).Bold(true)
)

// StatusColor returns the text style for a card status.
func StatusColor(status domain.CardStatus) lipgloss.Style {
	switch status {
	case domain.StatusActive:
		return StyleGreen
	case domain.StatusUpcoming:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "● Active".
func StatusPill(status domain.CardStatus) string {
	switch status {
	case domain.StatusActive:
		return StyleGreen.Render("● Active")
	case domain.StatusUpcoming:
		return StyleBlue.Render("○ Upcoming")
	case domain.StatusExpired:
		return StyleDim.Render("✖ Expired")
	default:
		return StyleDim.Render(string(status))
	}
}

// OverlapChip marks a card that shares days with another card of the
// same product.
func OverlapChip(overlapping bool) string {
	if !overlapping {
		return ""
	}
	return StyleRed.Render("▲ overlap")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
