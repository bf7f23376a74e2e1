package ui

import (
	"gitref/model"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primary   = lipgloss.Color("99")  // purple
	secondary = lipgloss.Color("240") // gray
	accent    = lipgloss.Color("86")  // green
	danger    = lipgloss.Color("196") // red

	// Tier badge colors
	tierColors = map[model.Tier]lipgloss.Color{
		model.TierEssential:    lipgloss.Color("#E74C3C"),
		model.TierIntermediate: lipgloss.Color("#F39C12"),
		model.TierAdvanced:     lipgloss.Color("#3498DB"),
		model.TierTechnical:    lipgloss.Color("#27AE60"),
		model.TierSpecific:     lipgloss.Color("#8E44AD"),
	}

	// App container
	appStyle = lipgloss.NewStyle().
			Padding(1, 2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Borders
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1).
			MarginRight(1)

	// Title
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondary)

	// List items
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	rankStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	// Detail pane
	commandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedExampleStyle = lipgloss.NewStyle().
				Foreground(accent).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(danger)

	// Help bar
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	// Form
	labelStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	// Status messages
	successStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// tierBadge renders "Importance #N" on the color of the rank's tier.
func tierBadge(rank int) string {
	color, ok := tierColors[model.TierOf(rank)]
	if !ok {
		color = secondary
	}
	return badgeStyle.Background(color).Render(importanceLabel(rank))
}
