package viz

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/boxdrop/internal/scene"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	StatusOff = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// hex converts a scene color to a lipgloss color.
func hex(c scene.Color3) lipgloss.Color {
	r, g, b, _ := c.RGBA8()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

func metric(label, value string) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(value)
}
