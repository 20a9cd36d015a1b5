package controller

import (
	"reliefctl/internal/tui/model"
	"reliefctl/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update is the central message routing function for the dashboard. Every
// mutation of the model happens here, on the Bubble Tea update goroutine.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg.(type) {
	case tea.MouseMsg, model.NewLogEntryMsg, model.ClearStatusBarMsg:
	default:
		LogDebug(m, controllerDispatchSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return handleWindowSizeMsg(m, msg)

	case tea.KeyMsg:
		return handleKeyMsg(m, msg)

	case tea.MouseMsg:
		if m.CurrentAppMode == model.ModeLogOverlay {
			var cmd tea.Cmd
			m.LogViewport, cmd = m.LogViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	// List loads
	case model.InventoryLoadedMsg:
		cmds = append(cmds, applyLoad(m, &m.Inventory, msg.Seq, msg.Items, msg.Err, "inventory"))
	case model.ReportsLoadedMsg:
		cmds = append(cmds, applyLoad(m, &m.Reports, msg.Seq, msg.Items, msg.Err, "reports"))
	case model.StationsLoadedMsg:
		cmds = append(cmds, applyLoad(m, &m.Stations, msg.Seq, msg.Items, msg.Err, "aid centres"))
	case model.SuppliesLoadedMsg:
		cmds = append(cmds, applyLoad(m, &m.Supplies, msg.Seq, model.SupplyRows(msg.Items), msg.Err, "supplies"))
	case model.HelpStationsLoadedMsg:
		cmds = append(cmds, applyLoad(m, &m.HelpStations, msg.Seq, msg.Items, msg.Err, "help stations"))
	case model.MentalHealthCheckedMsg:
		cmds = append(cmds, handleMentalHealthChecked(m, msg))

	// Mutations
	case model.SupplyAddedMsg:
		cmds = append(cmds, handleSupplyAdded(m, msg))
	case model.ReportFiledMsg:
		cmds = append(cmds, handleReportFiled(m, msg))
	case model.ReportDeletedMsg:
		cmds = append(cmds, handleReportDeleted(m, msg))
	case model.StationAddedMsg:
		cmds = append(cmds, handleStationAdded(m, msg))
	case model.StationDeletedMsg:
		cmds = append(cmds, handleStationDeleted(m, msg))
	case model.AidRequestedMsg:
		cmds = append(cmds, handleAidRequested(m, msg))
	case model.MentalHealthConfiguredMsg:
		cmds = append(cmds, handleMentalHealthConfigured(m, msg))
	case model.ChatReplyMsg:
		handleChatReply(m, msg)

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		m.StatusBarMessageType = model.StatusBarInfo
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}

	case model.NewLogEntryMsg:
		m = handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))
	}

	if m.ActivityLogDirty {
		m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
		if m.CurrentAppMode == model.ModeLogOverlay && m.LogViewport.AtBottom() {
			m.LogViewport.GotoBottom()
		}
		m.ActivityLogDirty = false
	}

	return m, tea.Batch(cmds...)
}

func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = msg.Width

	w, h := view.LogOverlaySize(msg.Width, msg.Height)
	m.LogViewport.Width = w
	m.LogViewport.Height = h
	m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog))
	return m, nil
}
