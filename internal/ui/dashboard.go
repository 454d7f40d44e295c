package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/netdash/netdash/internal/model"
)

// summary is the widget data derived from the device collection.
type summary struct {
	Total     int
	Online    int
	Offline   int
	Warning   int
	Critical  int
	Monitored int
}

// summarize derives the widget counters from a device snapshot.
func summarize(devs []model.Device) summary {
	s := summary{Total: len(devs)}
	for _, d := range devs {
		switch d.Status {
		case model.StatusOnline:
			s.Online++
		case model.StatusOffline:
			s.Offline++
		case model.StatusWarning:
			s.Warning++
		case model.StatusCritical:
			s.Critical++
		}
		if d.IsMonitored {
			s.Monitored++
		}
	}
	return s
}

func (a *App) dashboardView() string {
	state := a.devices.Snapshot()

	var b strings.Builder
	if state.Loading && len(state.Devices) == 0 {
		b.WriteString(a.styles.muted.Render("Loading devices..."))
		return b.String()
	}

	if state.Error != "" {
		b.WriteString(a.styles.errBox.Render("Error loading data: "+state.Error) + "\n")
		if len(state.Devices) > 0 {
			b.WriteString(a.styles.muted.Render("Showing last known data. Press r to retry.") + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(a.widgetsView(state.Devices) + "\n\n")
	b.WriteString(a.styles.widgetHd.Render("Network Map") + "\n")
	b.WriteString(renderMap(state.Devices, "", a.styles))

	return b.String()
}

func (a *App) widgetsView(devs []model.Device) string {
	s := summarize(devs)

	devicesWidget := a.styles.widget.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.styles.widgetHd.Render("Total Devices"),
		a.styles.bigNum.Render(fmt.Sprintf("%d", s.Total)),
		a.styles.muted.Render(fmt.Sprintf("Online: %d | Offline: %d", s.Online, s.Offline)),
	))

	// Alert counts come from a backend surface that is not wired yet; the
	// widget mirrors the placeholder the web dashboard shows.
	alertsWidget := a.styles.widget.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.styles.widgetHd.Render("Active Alerts"),
		a.styles.bigNum.Render("0"),
		a.styles.muted.Render(fmt.Sprintf("Warning: %d | Critical: %d", s.Warning, s.Critical)),
	))

	trafficWidget := a.styles.widget.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		a.styles.widgetHd.Render("Network Traffic"),
		a.styles.bigNum.Render("--"),
		a.styles.muted.Render(fmt.Sprintf("Monitored: %d", s.Monitored)),
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, devicesWidget, " ", alertsWidget, " ", trafficWidget)
}
