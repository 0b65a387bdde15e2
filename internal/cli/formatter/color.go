package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyplanner/internal/domain"
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
)

// LoadStyle colors cognitive load: high red, medium yellow, low green.
func LoadStyle(load domain.LoadLevel) lipgloss.Style {
	switch load {
	case domain.LoadHigh:
		return StyleRed
	case domain.LoadMedium:
		return StyleYellow
	case domain.LoadLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// LoadBadge renders a load level such as "● HIGH".
func LoadBadge(load domain.LoadLevel) string {
	if load == "" {
		return StyleDim.Render("● --")
	}
	return LoadStyle(load).Render("● " + strings.ToUpper(string(load)))
}

// ChangeIndicator renders an adaptation change type with a direction glyph.
func ChangeIndicator(c domain.ChangeType) string {
	switch c {
	case domain.ChangeTimeIncreased:
		return StyleRed.Render("▲ more time")
	case domain.ChangeTimeDecreased:
		return StyleGreen.Render("▼ less time")
	case domain.ChangePriorityAdjusted:
		return StyleYellow.Render("◆ priority")
	case domain.ChangeReordered:
		return StyleBlue.Render("↻ reordered")
	default:
		return StyleDim.Render(string(c))
	}
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
