package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/netdash/netdash/internal/model"
)

// Map canvas dimensions in character cells. Height is halved relative to
// width because terminal cells are roughly twice as tall as wide.
const (
	mapWidth  = 64
	mapHeight = 16
)

type mapCell struct {
	ch    rune
	style *lipgloss.Style
}

// renderMap draws the schematic network map: devices on a ring, markers
// colored by status, dashed links between ring neighbors. selectedID, when
// set, brackets that device's marker.
func renderMap(devs []model.Device, selectedID string, st styles) string {
	if len(devs) == 0 {
		return st.muted.Render("No devices found.\nStart by discovering devices on your network.")
	}

	grid := make([][]mapCell, mapHeight)
	for y := range grid {
		grid[y] = make([]mapCell, mapWidth)
		for x := range grid[y] {
			grid[y][x] = mapCell{ch: ' '}
		}
	}

	centerX := float64(mapWidth) / 2
	centerY := float64(mapHeight) / 2
	radiusX := centerX - 8
	radiusY := centerY - 2

	type node struct {
		x, y   int
		device model.Device
	}
	nodes := make([]node, len(devs))
	for i, d := range devs {
		angle := float64(i) * 2 * math.Pi / float64(len(devs))
		nodes[i] = node{
			x:      int(centerX + radiusX*math.Cos(angle)),
			y:      int(centerY + radiusY*math.Sin(angle)),
			device: d,
		}
	}

	// Dashed links between ring neighbors, drawn first so markers and
	// labels overwrite them.
	linkStyle := st.muted
	if len(nodes) > 1 {
		for i := range nodes {
			next := nodes[(i+1)%len(nodes)]
			drawDashedLine(grid, nodes[i].x, nodes[i].y, next.x, next.y, &linkStyle)
		}
	}

	for _, n := range nodes {
		color := statusColor(string(n.device.Status))
		markerStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
		marker := deviceGlyph(n.device.DeviceType)

		label := n.device.Hostname
		if label == "" {
			label = n.device.IPAddress
		}

		if n.device.ID == selectedID && selectedID != "" {
			setCell(grid, n.x-1, n.y, '[', &markerStyle)
			setCell(grid, n.x, n.y, rune(marker[0]), &markerStyle)
			setCell(grid, n.x+1, n.y, ']', &markerStyle)
		} else {
			setCell(grid, n.x, n.y, rune(marker[0]), &markerStyle)
		}

		labelStyle := st.muted
		drawLabel(grid, n.x, n.y+1, label, &labelStyle)
	}

	var b strings.Builder
	for y := range grid {
		for x := range grid[y] {
			cell := grid[y][x]
			if cell.style != nil {
				b.WriteString(cell.style.Render(string(cell.ch)))
			} else {
				b.WriteRune(cell.ch)
			}
		}
		if y < mapHeight-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func setCell(grid [][]mapCell, x, y int, ch rune, style *lipgloss.Style) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = mapCell{ch: ch, style: style}
}

// drawLabel writes text centered on x, clipped to the canvas.
func drawLabel(grid [][]mapCell, x, y int, text string, style *lipgloss.Style) {
	start := x - len(text)/2
	for i, r := range text {
		setCell(grid, start+i, y, r, style)
	}
}

// drawDashedLine walks the segment from (x0,y0) to (x1,y1) placing a dot on
// every other step.
func drawDashedLine(grid [][]mapCell, x0, y0, x1, y1 int, style *lipgloss.Style) {
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i += 2 {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(x1-x0)))
		y := int(math.Round(float64(y0) + t*float64(y1-y0)))
		if grid[clampInt(y, 0, len(grid)-1)][clampInt(x, 0, len(grid[0])-1)].ch == ' ' {
			setCell(grid, x, y, '·', style)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
