package view

import (
	"fmt"
	"strings"

	"reliefctl/internal/tui/components"
	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Render draws the whole dashboard for the current mode.
func Render(m *model.Model) string {
	if m.CurrentAppMode == model.ModeQuitting {
		return m.QuittingMessage + "\n"
	}

	width, height := m.Width, m.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	switch m.CurrentAppMode {
	case model.ModeHelpOverlay:
		return place(width, height, renderHelpOverlay(m))
	case model.ModeLogOverlay:
		return renderLogOverlay(m, width, height)
	case model.ModeConfirm:
		return place(width, height, renderConfirm(m))
	case model.ModeNotice:
		return place(width, height, renderNotice(m))
	}

	header := renderHeader(m, width)
	tabs := renderTabBar(m, width)
	status := renderStatusBar(m, width)
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(status)

	body := components.NewPanel(m.ActiveTabID().Title()).
		WithContent(renderActiveTab(m, width-4)).
		WithFooter(tabHint(m)).
		WithDimensions(width, bodyHeight).
		SetFocused(m.CurrentAppMode == model.ModeEditing).
		WithType(panelType(m.StatusBarMessage, m.StatusBarMessageType)).
		Render()

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, status)
}

// panelType tints the body border while a status message is showing.
func panelType(message string, t model.MessageType) components.PanelType {
	if message == "" {
		return components.PanelTypeDefault
	}
	switch t {
	case model.StatusBarError:
		return components.PanelTypeError
	case model.StatusBarWarning:
		return components.PanelTypeWarning
	case model.StatusBarSuccess:
		return components.PanelTypeSuccess
	default:
		return components.PanelTypeDefault
	}
}

func place(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderHeader(m *model.Model, width int) string {
	title := design.HeaderStyle.Render("Disaster Relief · " + m.Kind.String())
	return lipgloss.NewStyle().Width(width).Render(title)
}

func renderStatusBar(m *model.Model, width int) string {
	return components.NewStatusBar(width).
		WithLeftText(components.FormatSessionInfo(m.UserName, m.Kind)).
		WithRightText("? help  L log  q quit").
		WithMessage(m.StatusBarMessage, m.StatusBarMessageType).
		Render()
}

// renderTabBar shows every tab with its number; exactly one is highlighted.
func renderTabBar(m *model.Model, width int) string {
	parts := make([]string, 0, len(m.Tabs))
	for i, tab := range m.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		if i == m.ActiveTab {
			parts = append(parts, design.TabActiveStyle.Render(label))
		} else {
			parts = append(parts, design.TabStyle.Render(label))
		}
	}
	bar := strings.Join(parts, " ")
	return lipgloss.NewStyle().Width(width).MarginBottom(0).Render(bar)
}

func renderActiveTab(m *model.Model, width int) string {
	switch m.ActiveTabID() {
	case model.TabAddSupplies:
		return renderForm(m.SupplyForm, "Add supplies to the government inventory.")
	case model.TabInventory:
		return renderInventory(m, width)
	case model.TabReports:
		return renderReports(m, width)
	case model.TabAidCentres:
		return renderAidCentres(m, width)
	case model.TabFileReport:
		return renderForm(m.ReportForm, "Report a disaster in your area.")
	case model.TabRequestAid:
		return renderSupplyRows(m, width)
	case model.TabHelpStations:
		return renderHelpStations(m, width)
	case model.TabMentalHealth:
		return renderMentalHealth(m, width)
	}
	return ""
}

func tabHint(m *model.Model) string {
	if m.CurrentAppMode == model.ModeEditing {
		if m.ActiveTabID() == model.TabRequestAid {
			return "type quantity • enter request • esc done"
		}
		return "tab next field • enter next/submit • esc done"
	}
	switch m.ActiveTabID() {
	case model.TabAddSupplies, model.TabFileReport:
		return "enter edit • ←/→ tabs"
	case model.TabReports:
		return "↑/↓ select • d delete • r reload • ←/→ tabs"
	case model.TabAidCentres:
		return "enter add centre • ↑/↓ select • d delete • r reload • ←/→ tabs"
	case model.TabRequestAid:
		return "↑/↓ select • enter set quantity • r reload • ←/→ tabs"
	case model.TabMentalHealth:
		return "enter type • c copy transcript • r recheck • ←/→ tabs"
	default:
		return "↑/↓ scroll • r reload • ←/→ tabs"
	}
}
