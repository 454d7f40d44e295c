package ui

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaBackground = "#282A36"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	help     lipgloss.Style
	errBox   lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	muted    lipgloss.Style
	widget   lipgloss.Style
	widgetHd lipgloss.Style
	bigNum   lipgloss.Style
	selected lipgloss.Style
	tableHd  lipgloss.Style
	panel    lipgloss.Style
	app      lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		errBox: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaOrange)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		widget: lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaPurple)),
		widgetHd: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)).
			Bold(true),
		bigNum: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaBackground)).
			Background(lipgloss.Color(draculaPurple)),
		tableHd: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPurple)).
			Bold(true).
			Underline(true),
		panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)),
		app: lipgloss.NewStyle().
			Padding(1, 2),
	}
}

// statusColor maps a device status onto its display color.
func statusColor(status string) lipgloss.Color {
	switch status {
	case "online":
		return lipgloss.Color(draculaGreen)
	case "offline":
		return lipgloss.Color(draculaRed)
	case "warning":
		return lipgloss.Color(draculaOrange)
	case "critical":
		return lipgloss.Color(draculaPink)
	default:
		return lipgloss.Color(draculaComment)
	}
}

// deviceGlyph maps a device type onto its map marker.
func deviceGlyph(deviceType string) string {
	switch deviceType {
	case "router":
		return "R"
	case "switch":
		return "S"
	case "firewall":
		return "F"
	case "access_point":
		return "A"
	case "server":
		return "V"
	case "workstation":
		return "W"
	case "printer":
		return "P"
	default:
		return "?"
	}
}
