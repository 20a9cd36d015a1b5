package view

import (
	"strings"

	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderHelpOverlay(m *model.Model) string {
	title := design.HelpTitleStyle.Render("Keyboard shortcuts")
	body := m.Help.FullHelpView(m.Keys.FullHelp())
	digits := design.DimStyle.Render("1-9 jump to tab")
	return design.CenteredOverlayContainerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", digits))
}

func renderConfirm(m *model.Model) string {
	prompt := "Are you sure?"
	if m.Confirm != nil {
		prompt = m.Confirm.Prompt
	}
	hint := design.DimStyle.Render("y confirm • n cancel")
	return design.ConfirmStyle.Render(lipgloss.JoinVertical(lipgloss.Left, prompt, "", hint))
}

// renderNotice draws the blocking notice shown after a mutation.
func renderNotice(m *model.Model) string {
	style := design.NoticeSuccessStyle
	text := m.Notice.Text
	switch m.Notice.Type {
	case model.StatusBarError:
		style = design.NoticeErrorStyle
		text = "❌ " + text
	case model.StatusBarSuccess:
		text = "✅ " + text
	}
	hint := design.DimStyle.Render("enter to dismiss")
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, text, "", hint))
}

func renderLogOverlay(m *model.Model, width, height int) string {
	title := design.LogPanelTitleStyle.Render("Activity Log  (↑/↓ scroll  •  y copy  •  Esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.LogViewport.View())
	return design.LogOverlayStyle.
		Width(width - design.LogOverlayStyle.GetHorizontalBorderSize()).
		Height(height - design.LogOverlayStyle.GetVerticalBorderSize()).
		Render(content)
}

// LogOverlaySize returns the viewport dimensions inside the log overlay.
func LogOverlaySize(width, height int) (int, int) {
	w := width - design.LogOverlayStyle.GetHorizontalFrameSize()
	// title line plus its bottom margin
	h := height - design.LogOverlayStyle.GetVerticalFrameSize() - 2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// PrepareLogContent applies color styles based on log level markers.
func PrepareLogContent(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = styleLogLine(l)
	}
	return strings.Join(out, "\n")
}

func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
