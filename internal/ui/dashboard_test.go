package ui

import (
	"strings"
	"testing"

	"github.com/netdash/netdash/internal/model"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		devs []model.Device
		want summary
	}{
		{
			name: "empty",
			devs: nil,
			want: summary{},
		},
		{
			name: "mixed statuses",
			devs: []model.Device{
				{Status: model.StatusOnline, IsMonitored: true},
				{Status: model.StatusOnline},
				{Status: model.StatusOffline, IsMonitored: true},
				{Status: model.StatusWarning},
				{Status: model.StatusCritical, IsMonitored: true},
			},
			want: summary{Total: 5, Online: 2, Offline: 1, Warning: 1, Critical: 1, Monitored: 3},
		},
		{
			name: "unknown status still counted in total",
			devs: []model.Device{
				{Status: model.StatusUnknown},
				{Status: "bogus"},
			},
			want: summary{Total: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(tt.devs)
			if got != tt.want {
				t.Errorf("summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderMapEmpty(t *testing.T) {
	out := renderMap(nil, "", newStyles())
	if !strings.Contains(out, "No devices found") {
		t.Errorf("empty map output missing placeholder, got %q", out)
	}
}

func TestRenderMapShowsDevices(t *testing.T) {
	devs := []model.Device{
		{ID: "a", Hostname: "router-gateway", IPAddress: "192.168.1.1", DeviceType: "router", Status: model.StatusOnline},
		{ID: "b", Hostname: "server-01", IPAddress: "192.168.1.10", DeviceType: "server", Status: model.StatusOffline},
	}

	out := renderMap(devs, "b", newStyles())
	for _, want := range []string{"router-gateway", "server-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("map output missing hostname %q", want)
		}
	}
	// selected device marker is bracketed
	if !strings.Contains(out, "[") || !strings.Contains(out, "]") {
		t.Error("selected device not highlighted with brackets")
	}
}

func TestDeviceGlyph(t *testing.T) {
	tests := []struct {
		deviceType string
		want       string
	}{
		{"router", "R"},
		{"server", "V"},
		{"switch", "S"},
		{"workstation", "W"},
		{"printer", "P"},
		{"toaster", "?"},
		{"", "?"},
	}
	for _, tt := range tests {
		if got := deviceGlyph(tt.deviceType); got != tt.want {
			t.Errorf("deviceGlyph(%q) = %q, want %q", tt.deviceType, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	got := truncate("a-very-long-hostname-indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate long = %q, want 10 runes ending in ellipsis", got)
	}
}
