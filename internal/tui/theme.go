package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pipedeck/internal/crm"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// ---------------------------------------------------------------------------
// Shared styles
// ---------------------------------------------------------------------------

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	errStyle   = lipgloss.NewStyle().Foreground(colorError)
	okStyle    = lipgloss.NewStyle().Foreground(colorSuccess)

	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSubtext0)
	cursorRowStyle = lipgloss.NewStyle().Foreground(colorBase).Background(colorFocus)
	activeChip     = lipgloss.NewStyle().Foreground(colorBase).Background(colorAccent).Padding(0, 1)
	inactiveChip   = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFocus).
			Padding(1, 3)
)

// statusColor maps a lead status to its badge color.
func statusColor(s crm.LeadStatus) lipgloss.Color {
	switch s {
	case crm.StatusNew:
		return colorBlue
	case crm.StatusContacted:
		return colorYellow
	case crm.StatusQualified:
		return colorGreen
	case crm.StatusUnqualified:
		return colorRed
	default:
		return colorOverlay1
	}
}

// stageColor maps an opportunity stage to its badge color.
func stageColor(s crm.Stage) lipgloss.Color {
	switch s {
	case crm.StageQualification:
		return colorSky
	case crm.StageProposal:
		return colorMauve
	case crm.StageNegotiation:
		return colorPeach
	case crm.StageClosedWon:
		return colorGreen
	case crm.StageClosedLost:
		return colorRed
	default:
		return colorOverlay1
	}
}

func badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
