package view

import (
	"fmt"
	"strings"

	"reliefctl/internal/api"
	"reliefctl/internal/tui/design"
	"reliefctl/internal/tui/model"
	"reliefctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// listState is the part of model.ListState the renderers need.
type listState struct {
	loaded bool
	err    error
	empty  bool
}

func stateOf[T any](l model.ListState[T]) listState {
	return listState{loaded: l.Loaded, err: l.Err, empty: len(l.Items) == 0}
}

// placeholder returns the text shown instead of cards, or "" when cards
// should be drawn. A failed reload keeps the previous cards.
func placeholder(s listState, what, emptyText string) string {
	switch {
	case !s.loaded && s.err != nil:
		return design.TextErrorStyle.Render(fmt.Sprintf("Could not load %s.", what))
	case !s.loaded:
		return design.DimStyle.Render(fmt.Sprintf("Loading %s…", what))
	case s.empty:
		return design.DimStyle.Render(emptyText)
	}
	return ""
}

// visibleLines is how many content lines fit in the body panel.
func visibleLines(m *model.Model) int {
	h := m.Height
	if h <= 0 {
		h = defaultHeight
	}
	// header, tab bar, status bar, panel border, title and footer
	n := h - 3 - 2 - 2 - 2
	if n < 3 {
		n = 3
	}
	return n
}

// windowBlocks joins card blocks, scrolled so the block at cursor is shown.
func windowBlocks(blocks [][]string, cursor, maxLines int) string {
	if len(blocks) == 0 {
		return ""
	}
	start := 0
	for {
		used := 0
		for i := start; i <= cursor && i < len(blocks); i++ {
			used += len(blocks[i])
		}
		if used <= maxLines || start >= cursor {
			break
		}
		start++
	}
	var lines []string
	for i := start; i < len(blocks); i++ {
		if len(lines)+len(blocks[i]) > maxLines && i > cursor {
			break
		}
		lines = append(lines, blocks[i]...)
	}
	return strings.Join(lines, "\n")
}

func cursorPrefix(selected bool) string {
	if selected {
		return "› "
	}
	return "  "
}

func cardTitle(text string, selected bool, width int) string {
	text = utils.Ellipsize(text, width)
	if selected {
		return design.ListItemSelectedStyle.Render(cursorPrefix(true) + text)
	}
	return design.CardTitleStyle.Render(cursorPrefix(false) + text)
}

func cardBody(text string, width int) string {
	return design.CardBodyStyle.Render(utils.Ellipsize(text, width-design.SpaceSM))
}

func supplyCard(s api.Supply, selected bool, width int) []string {
	return []string{
		cardTitle(strings.ToUpper(s.Name), selected, width-2),
		cardBody(fmt.Sprintf("%d %s", s.Quantity, s.DisplayUnit()), width),
	}
}

func renderInventory(m *model.Model, width int) string {
	if p := placeholder(stateOf(m.Inventory), "inventory", model.EmptyInventoryText); p != "" {
		return p
	}
	blocks := make([][]string, 0, len(m.Inventory.Items))
	for i, s := range m.Inventory.Items {
		blocks = append(blocks, supplyCard(s, i == m.Inventory.Cursor, width))
	}
	return windowBlocks(blocks, m.Inventory.Cursor, visibleLines(m))
}

func renderReports(m *model.Model, width int) string {
	if p := placeholder(stateOf(m.Reports), "reports", model.EmptyReportsText); p != "" {
		return p
	}
	blocks := make([][]string, 0, len(m.Reports.Items))
	for i, r := range m.Reports.Items {
		ref, _ := api.ReportRef(m.Reports.Items, i)
		title := strings.ToUpper(r.DisasterType)
		if m.RowInFlight["report:"+ref] {
			title += "  (deleting…)"
		}
		meta := "Reported by " + r.Name
		if r.Timestamp != "" {
			meta += " at " + r.Timestamp
		}
		blocks = append(blocks, []string{
			cardTitle(title, i == m.Reports.Cursor, width-2),
			cardBody(meta, width),
			cardBody(r.Details, width),
		})
	}
	return windowBlocks(blocks, m.Reports.Cursor, visibleLines(m))
}

func stationBlocks(items []api.Station, cursor int, inFlight map[string]bool, width int) [][]string {
	blocks := make([][]string, 0, len(items))
	for i, s := range items {
		title := strings.ToUpper(string(s))
		if inFlight != nil && inFlight["station:"+string(s)] {
			title += "  (deleting…)"
		}
		blocks = append(blocks, []string{cardTitle(title, i == cursor, width-2)})
	}
	return blocks
}

func renderAidCentres(m *model.Model, width int) string {
	form := renderForm(m.StationForm, "")
	var list string
	if p := placeholder(stateOf(m.Stations), "aid centres", model.EmptyStationsText); p != "" {
		list = p
	} else {
		max := visibleLines(m) - lipgloss.Height(form) - 1
		if max < 1 {
			max = 1
		}
		list = windowBlocks(stationBlocks(m.Stations.Items, m.Stations.Cursor, m.RowInFlight, width), m.Stations.Cursor, max)
	}
	return form + "\n\n" + list
}

func renderHelpStations(m *model.Model, width int) string {
	if p := placeholder(stateOf(m.HelpStations), "help stations", model.EmptyHelpStationsText); p != "" {
		return p
	}
	blocks := stationBlocks(m.HelpStations.Items, m.HelpStations.Cursor, nil, width)
	return windowBlocks(blocks, m.HelpStations.Cursor, visibleLines(m))
}

// renderSupplyRows draws one card per requestable supply with its quantity
// input and the bound it is checked against.
func renderSupplyRows(m *model.Model, width int) string {
	if p := placeholder(stateOf(m.Supplies), "supplies", model.EmptySuppliesText); p != "" {
		return p
	}
	blocks := make([][]string, 0, len(m.Supplies.Items))
	for i := range m.Supplies.Items {
		row := m.Supplies.Items[i]
		selected := i == m.Supplies.Cursor
		line := fmt.Sprintf("%d %s available · quantity (1-%d): ", row.Supply.Quantity, row.Supply.DisplayUnit(), row.Max)
		qty := row.Qty.View()
		if row.Qty.Focused() {
			qty = design.LabelFocusedStyle.UnsetWidth().Render("[") + qty + design.LabelFocusedStyle.UnsetWidth().Render("]")
		}
		body := design.CardBodyStyle.Render(line) + qty
		if row.InFlight {
			body += design.DimStyle.Render("  requesting…")
		}
		blocks = append(blocks, []string{
			cardTitle(strings.ToUpper(row.Supply.Name), selected, width-2),
			body,
		})
	}
	return windowBlocks(blocks, m.Supplies.Cursor, visibleLines(m))
}

// renderForm draws a label and input per field.
func renderForm(f *model.Form, intro string) string {
	if f == nil {
		return ""
	}
	var lines []string
	if intro != "" {
		lines = append(lines, design.TextSecondaryStyle.Render(intro), "")
	}
	for i, in := range f.Inputs {
		label := design.LabelStyle
		if in.Focused() {
			label = design.LabelFocusedStyle
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			label.Render(cursorPrefix(in.Focused() && i == f.Focus)+f.Fields[i].Label),
			in.View(),
		))
	}
	if f.InFlight {
		lines = append(lines, "", design.DimStyle.Render("Submitting…"))
	}
	return strings.Join(lines, "\n")
}

func renderMentalHealth(m *model.Model, width int) string {
	s := m.Mental
	switch s.Phase {
	case model.MentalChecking:
		return design.DimStyle.Render("Checking availability…")
	case model.MentalUnavailable:
		return design.TextWarningStyle.Render(model.UnavailableMentalText)
	case model.MentalNeedsConfiguration:
		return renderForm(s.KeyForm, "The support chat needs an AI provider key before it can be used.")
	}

	input := renderForm(s.ChatForm, "")
	max := visibleLines(m) - lipgloss.Height(input) - 1
	if max < 1 {
		max = 1
	}
	var entries []string
	for _, e := range s.Transcript {
		entries = append(entries, chatLine(e, width))
	}
	if len(entries) == 0 {
		entries = append(entries, design.DimStyle.Render("Say hello. Messages are not stored after you leave this tab."))
	}
	lines := strings.Split(strings.Join(entries, "\n"), "\n")
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return strings.Join(lines, "\n") + "\n\n" + input
}

// chatLine renders one transcript entry, wrapped to width.
func chatLine(e model.ChatEntry, width int) string {
	wrap := lipgloss.NewStyle().Width(width)
	switch e.Role {
	case model.RoleUser:
		suffix := ""
		switch e.Status {
		case model.ChatPending:
			suffix = design.DimStyle.Render(" (sending…)")
		case model.ChatFailed:
			suffix = design.TextErrorStyle.Render(" (not sent)")
		}
		return wrap.Render(design.ChatUserStyle.Render("You: ") + e.Text + suffix)
	case model.RoleBot:
		return wrap.Render(design.ChatBotStyle.Render("Support: ") + e.Text)
	default:
		return wrap.Render(design.ChatSystemStyle.Render("! " + e.Text))
	}
}
