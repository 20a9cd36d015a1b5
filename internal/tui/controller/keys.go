package controller

import (
	"strings"

	"reliefctl/internal/tui/model"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const keySubsystem = "KeyHandler"

func handleKeyMsg(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return quit(m)
	}

	switch m.CurrentAppMode {
	case model.ModeConfirm:
		return m, handleConfirmKeys(m, msg)
	case model.ModeNotice:
		return m, handleNoticeKeys(m, msg)
	case model.ModeHelpOverlay:
		if key.Matches(msg, m.Keys.Esc) || key.Matches(msg, m.Keys.Help) || key.Matches(msg, m.Keys.Quit) {
			m.CurrentAppMode = model.ModeDashboard
		}
		return m, nil
	case model.ModeLogOverlay:
		return m, handleLogOverlayKeys(m, msg)
	case model.ModeEditing:
		return m, handleEditingKeys(m, msg)
	case model.ModeQuitting:
		return m, nil
	}
	return handleDashboardKeys(m, msg)
}

func quit(m *model.Model) (*model.Model, tea.Cmd) {
	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Closing dashboard..."
	return m, tea.Quit
}

func handleDashboardKeys(m *model.Model, msg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return quit(m)

	case key.Matches(msg, m.Keys.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil

	case key.Matches(msg, m.Keys.ToggleLog):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.Keys.NextTab):
		return m, cycleTab(m, 1)

	case key.Matches(msg, m.Keys.PrevTab):
		return m, cycleTab(m, -1)

	case key.Matches(msg, m.Keys.Up):
		moveCursor(m, -1)
		return m, nil

	case key.Matches(msg, m.Keys.Down):
		moveCursor(m, 1)
		return m, nil

	case key.Matches(msg, m.Keys.Reload):
		return m, loaderFor(m, m.ActiveTabID())

	case key.Matches(msg, m.Keys.Edit):
		startEditing(m)
		return m, nil

	case key.Matches(msg, m.Keys.Delete):
		return m, requestDelete(m)

	case key.Matches(msg, m.Keys.CopyLogs) && m.ActiveTabID() == model.TabMentalHealth:
		return m, copyTranscript(m)
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return m, activateTab(m, int(s[0]-'1'))
	}
	return m, nil
}

func moveCursor(m *model.Model, delta int) {
	switch m.ActiveTabID() {
	case model.TabInventory:
		m.Inventory.Move(delta)
	case model.TabReports:
		m.Reports.Move(delta)
	case model.TabAidCentres:
		m.Stations.Move(delta)
	case model.TabRequestAid:
		m.Supplies.Move(delta)
	case model.TabHelpStations:
		m.HelpStations.Move(delta)
	}
}

// startEditing hands keyboard input to the active tab's form, or to the
// quantity input of the selected supply on the request-aid tab.
func startEditing(m *model.Model) {
	if m.ActiveTabID() == model.TabRequestAid {
		if m.Supplies.Cursor >= len(m.Supplies.Items) {
			return
		}
		m.Supplies.Items[m.Supplies.Cursor].Qty.Focus()
		m.CurrentAppMode = model.ModeEditing
		return
	}
	form := m.ActiveForm()
	if form == nil {
		return
	}
	form.FocusField(form.Focus)
	m.CurrentAppMode = model.ModeEditing
}

func stopEditing(m *model.Model) {
	if form := m.ActiveForm(); form != nil {
		form.Blur()
	}
	blurSupplyRows(m)
	m.CurrentAppMode = model.ModeDashboard
}

func blurSupplyRows(m *model.Model) {
	for i := range m.Supplies.Items {
		m.Supplies.Items[i].Qty.Blur()
	}
}

func handleEditingKeys(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.Keys.Esc) {
		stopEditing(m)
		return nil
	}

	if m.ActiveTabID() == model.TabRequestAid {
		if m.Supplies.Cursor >= len(m.Supplies.Items) {
			stopEditing(m)
			return nil
		}
		if key.Matches(msg, m.Keys.Submit) {
			return submitAidRequest(m)
		}
		row := &m.Supplies.Items[m.Supplies.Cursor]
		var cmd tea.Cmd
		row.Qty, cmd = row.Qty.Update(msg)
		return cmd
	}

	form := m.ActiveForm()
	if form == nil {
		stopEditing(m)
		return nil
	}

	switch {
	case key.Matches(msg, m.Keys.Submit):
		if !form.OnLastField() {
			form.Next()
			return nil
		}
		return submitActiveForm(m)
	case key.Matches(msg, m.Keys.NextField):
		form.Next()
		return nil
	case key.Matches(msg, m.Keys.PrevField):
		form.Prev()
		return nil
	}
	return form.Update(msg)
}

func handleConfirmKeys(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	pending := m.Confirm
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		m.Confirm = nil
		m.CurrentAppMode = model.ModeDashboard
		if pending == nil {
			return nil
		}
		if m.RowInFlight[pending.Key] {
			LogDebug(m, keySubsystem, "Dropping %s: already in flight", pending.Key)
			return nil
		}
		m.RowInFlight[pending.Key] = true
		return pending.Run
	case key.Matches(msg, m.Keys.Cancel):
		m.Confirm = nil
		m.CurrentAppMode = model.ModeDashboard
		if pending != nil {
			LogDebug(m, keySubsystem, "Cancelled %s", pending.Key)
		}
	}
	return nil
}

func handleNoticeKeys(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc", " ", "q":
		m.Notice = model.Notice{}
		m.CurrentAppMode = model.ModeDashboard
		if m.LastAppMode == model.ModeEditing {
			startEditing(m)
		}
	}
	return nil
}

func handleLogOverlayKeys(m *model.Model, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.ToggleLog), key.Matches(msg, m.Keys.Esc):
		m.CurrentAppMode = model.ModeDashboard
		return nil
	case key.Matches(msg, m.Keys.CopyLogs):
		if err := clipboard.WriteAll(strings.Join(m.ActivityLog, "\n")); err != nil {
			LogError(keySubsystem, err, "Failed to copy logs")
			return m.SetStatusMessage("Copy logs failed", model.StatusBarError, m.NoticeTimeout)
		}
		return m.SetStatusMessage("Logs copied to clipboard", model.StatusBarSuccess, m.NoticeTimeout)
	}
	var cmd tea.Cmd
	m.LogViewport, cmd = m.LogViewport.Update(msg)
	return cmd
}

func copyTranscript(m *model.Model) tea.Cmd {
	if len(m.Mental.Transcript) == 0 {
		return nil
	}
	lines := make([]string, 0, len(m.Mental.Transcript))
	for _, e := range m.Mental.Transcript {
		lines = append(lines, string(e.Role)+": "+e.Text)
	}
	if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		LogError(keySubsystem, err, "Failed to copy transcript")
		return m.SetStatusMessage("Copy transcript failed", model.StatusBarError, m.NoticeTimeout)
	}
	return m.SetStatusMessage("Transcript copied to clipboard", model.StatusBarSuccess, m.NoticeTimeout)
}
