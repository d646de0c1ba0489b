package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bp4sp4/korhrd-landing/internal/admin"
)

var (
	colorPrimary = lipgloss.Color("#1F4E79")
	colorSuccess = lipgloss.Color("#2E7D32")
	colorError   = lipgloss.Color("#C62828")
	colorMuted   = lipgloss.Color("#757575")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(colorPrimary)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	plainStyle   = lipgloss.NewStyle()
)

func levelStyle(level admin.Level) lipgloss.Style {
	switch level {
	case admin.LevelSuccess:
		return successStyle
	case admin.LevelError:
		return errorStyle
	default:
		return plainStyle
	}
}

// renderTable 按显示宽度对齐（한글占两列）
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = pad(cell, widths[i])
		}
		sb.WriteString(style.Render(strings.TrimRight(strings.Join(parts, "  "), " ")))
		sb.WriteString("\n")
	}

	writeRow(headers, headerStyle)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(mutedStyle.Render(strings.Join(sep, "  ")))
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(row, plainStyle)
	}
	return sb.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate 按显示宽度截断，超出部分以 … 结尾
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) <= width {
		return s
	}
	var sb strings.Builder
	used := 0
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > width-1 {
			break
		}
		sb.WriteRune(r)
		used += w
	}
	return sb.String() + "…"
}
