package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/netdash/netdash/internal/model"
)

type inventoryModel struct {
	cursor     int
	showDetail bool
	styles     styles
}

func newInventoryModel(st styles) inventoryModel {
	return inventoryModel{styles: st}
}

func (m *inventoryModel) reset() {
	m.cursor = 0
	m.showDetail = false
}

func (m *inventoryModel) update(msg tea.Msg, a *App) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	devs := a.devices.Snapshot().Devices
	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(devs)-1 {
			m.cursor++
		}
	case "enter":
		if len(devs) > 0 {
			m.showDetail = true
		}
	case "esc":
		m.showDetail = false
	}
	return nil
}

func (m *inventoryModel) view(a *App) string {
	state := a.devices.Snapshot()

	var b strings.Builder
	b.WriteString(m.styles.widgetHd.Render("Device Inventory") + "\n\n")

	if state.Loading && len(state.Devices) == 0 {
		b.WriteString(m.styles.muted.Render("Loading devices..."))
		return b.String()
	}
	if state.Error != "" {
		b.WriteString(m.styles.errBox.Render("Error loading data: "+state.Error) + "\n")
		if len(state.Devices) > 0 {
			b.WriteString(m.styles.muted.Render("Showing last known data. Press r to retry.") + "\n")
		}
		b.WriteString("\n")
	}
	if len(state.Devices) == 0 {
		b.WriteString(m.styles.muted.Render("No devices found."))
		return b.String()
	}

	if m.cursor >= len(state.Devices) {
		m.cursor = len(state.Devices) - 1
	}

	b.WriteString(m.tableView(state.Devices))

	if m.showDetail {
		b.WriteString("\n\n")
		b.WriteString(m.detailView(state.Devices[m.cursor]))
	} else {
		b.WriteString("\n\n" + m.styles.help.Render("↑/↓ select · enter details"))
	}

	return b.String()
}

func (m *inventoryModel) tableView(devs []model.Device) string {
	header := fmt.Sprintf("%-18s %-15s %-18s %-12s %-9s %-4s %s",
		"HOSTNAME", "IP", "MAC", "TYPE", "STATUS", "MON", "LAST SEEN")

	var b strings.Builder
	b.WriteString(m.styles.tableHd.Render(header) + "\n")

	for i, d := range devs {
		hostname := d.Hostname
		if hostname == "" {
			hostname = "-"
		}
		monitored := "no"
		if d.IsMonitored {
			monitored = "yes"
		}

		row := fmt.Sprintf("%-18s %-15s %-18s %-12s %-9s %-4s %s",
			truncate(hostname, 18),
			d.IPAddress,
			orDash(d.MACAddress),
			truncate(orDash(d.DeviceType), 12),
			d.Status,
			monitored,
			d.LastSeen.Format("2006-01-02 15:04"),
		)

		if i == m.cursor {
			b.WriteString(m.styles.selected.Render(row))
		} else {
			b.WriteString(row)
		}
		if i < len(devs)-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func (m *inventoryModel) detailView(d model.Device) string {
	var b strings.Builder

	title := d.Hostname
	if title == "" {
		title = d.IPAddress
	}
	statusStyle := lipgloss.NewStyle().Foreground(statusColor(string(d.Status))).Bold(true)

	b.WriteString(m.styles.widgetHd.Render(title) + "  " + statusStyle.Render(string(d.Status)) + "\n\n")
	b.WriteString(detailRow("IP address", d.IPAddress))
	b.WriteString(detailRow("MAC address", orDash(d.MACAddress)))
	b.WriteString(detailRow("Type", orDash(d.DeviceType)))
	if d.LastResponseTime > 0 {
		b.WriteString(detailRow("Response time", fmt.Sprintf("%.1f ms", d.LastResponseTime)))
	}
	b.WriteString(detailRow("Monitored", fmt.Sprintf("%t", d.IsMonitored)))
	b.WriteString(detailRow("First discovered", d.FirstDiscovered.Format("2006-01-02 15:04:05")))
	b.WriteString(detailRow("Last seen", d.LastSeen.Format("2006-01-02 15:04:05")))
	b.WriteString(detailRow("Created", d.CreatedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(detailRow("Updated", d.UpdatedAt.Format("2006-01-02 15:04:05")))
	if d.Notes != "" {
		b.WriteString(detailRow("Notes", d.Notes))
	}
	b.WriteString("\n" + m.styles.help.Render("esc close"))

	return m.styles.panel.Render(strings.TrimRight(b.String(), "\n"))
}

func detailRow(label, value string) string {
	return fmt.Sprintf("%-18s %s\n", label+":", value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
