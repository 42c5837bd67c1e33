package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one key/value line in a header or result box. Params keep their
// order, unlike a map.
type Param struct {
	Key   string
	Value string
}

// Header represents a program header with title, command, and parameters.
type Header struct {
	Title   string  // e.g., "simplr"
	Command string  // e.g., "simplr run --simulate"
	Params  []Param // e.g., {"Companion", "ws://127.0.0.1:8765/companion"}
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := clampWidth(h.Width)

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	content := topSection
	if len(h.Params) > 0 {
		dividerWidth := width - 6 // Account for border and padding
		divider := lipgloss.NewStyle().
			Foreground(PrimaryColor).
			PaddingLeft(2).
			Render(strings.Repeat("─", dividerWidth))
		content = lipgloss.JoinVertical(lipgloss.Left, topSection, divider, renderParams(h.Params, HeaderParamKeyStyle, HeaderParamValueStyle))
	}

	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

func renderParams(params []Param, keyStyle, valueStyle lipgloss.Style) string {
	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, keyStyle.Render(p.Key+":")+" "+valueStyle.Render(p.Value))
	}
	return strings.Join(lines, "\n")
}
