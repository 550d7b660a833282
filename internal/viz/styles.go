package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadY, canvasPadX)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	statusRunning   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusRecording = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	sparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	sparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	sparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// gauge renders frac in [0, 1] as a bar.
func gauge(frac float64, width int) string {
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case frac > 0.8:
		return sparkLow.Render(bar)
	case frac > 0.4:
		return sparkMid.Render(bar)
	}
	return sparkHigh.Render(bar)
}

// sparkline renders the most recent `width` values with block glyphs.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var sb strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteRune(chars[idx])
	}
	return sb.String()
}
