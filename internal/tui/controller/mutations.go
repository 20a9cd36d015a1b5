package controller

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"reliefctl/internal/api"
	"reliefctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

const mutationSubsystem = "Mutation"

// Notice texts shown after mutations.
const (
	SupplyAddedText      = "Supplies added successfully!"
	SupplyAddFailedText  = "Failed to add supplies."
	ReportFiledText      = "Report filed successfully!"
	ReportFileFailedText = "Failed to file report. Please try again."
	ReportDeletedText    = "Report deleted."
	ReportDeleteFailText = "Failed to delete report."
	StationAddedText     = "Aid centre added successfully!"
	StationAddFailedText = "Failed to add aid centre."
	StationDeletedText   = "Centre deleted."
	StationDeleteFail    = "Failed to delete centre."
	AidRequestedText     = "Aid request submitted."
	AidRequestFailedText = "Failed to request aid."
	AIConfiguredText     = "AI configured successfully!"
	AIConfigFailedText   = "Failed to configure AI."
	ChatFailedPrefix     = "Failed to send message"
)

// serverMessageOr returns the backend's {message} when err carries one.
func serverMessageOr(err error, fallback string) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

func notify(m *model.Model, text string, msgType model.MessageType) {
	if msgType == model.StatusBarError {
		LogWarn(mutationSubsystem, "%s", text)
	} else {
		LogInfo(mutationSubsystem, "%s", text)
	}
	m.ShowNotice(text, msgType)
}

func submitActiveForm(m *model.Model) tea.Cmd {
	switch m.ActiveTabID() {
	case model.TabAddSupplies:
		return submitSupplyForm(m)
	case model.TabAidCentres:
		return submitStationForm(m)
	case model.TabFileReport:
		return submitReportForm(m)
	case model.TabMentalHealth:
		if m.Mental.Phase == model.MentalNeedsConfiguration {
			return submitAPIKey(m)
		}
		return submitChat(m)
	}
	return nil
}

func guard(m *model.Model, f *model.Form, what string) bool {
	if f.InFlight {
		LogDebug(m, mutationSubsystem, "Dropping %s submission: already in flight", what)
		return false
	}
	f.InFlight = true
	return true
}

func submitSupplyForm(m *model.Model) tea.Cmd {
	f := m.SupplyForm
	if !guard(m, f, "add-supply") {
		return nil
	}
	name := strings.TrimSpace(f.Value(0))
	// The input only admits digits; a blank value is sent as 0.
	qty, _ := strconv.Atoi(f.Value(1))
	return m.AddSuppliesCmd(name, qty)
}

func handleSupplyAdded(m *model.Model, msg model.SupplyAddedMsg) tea.Cmd {
	m.SupplyForm.InFlight = false
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Adding %d of %q failed", msg.Quantity, msg.Supply)
		notify(m, SupplyAddFailedText, model.StatusBarError)
		return nil
	}
	m.SupplyForm.Reset()
	notify(m, SupplyAddedText, model.StatusBarSuccess)
	return m.LoadInventoryCmd()
}

func submitReportForm(m *model.Model) tea.Cmd {
	f := m.ReportForm
	if !guard(m, f, "file-report") {
		return nil
	}
	v := f.Values()
	return m.FileReportCmd(api.ReportSubmission{
		DisasterType: strings.TrimSpace(v[0]),
		Details:      strings.TrimSpace(v[1]),
		Address:      strings.TrimSpace(v[2]),
		City:         strings.TrimSpace(v[3]),
		Country:      strings.TrimSpace(v[4]),
	})
}

func handleReportFiled(m *model.Model, msg model.ReportFiledMsg) tea.Cmd {
	m.ReportForm.InFlight = false
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Filing report failed")
		notify(m, ReportFileFailedText, model.StatusBarError)
		return nil
	}
	m.ReportForm.Reset()
	notify(m, ReportFiledText, model.StatusBarSuccess)
	return nil
}

func submitStationForm(m *model.Model) tea.Cmd {
	f := m.StationForm
	if !guard(m, f, "add-station") {
		return nil
	}
	return m.AddStationCmd(strings.TrimSpace(f.Value(0)))
}

func handleStationAdded(m *model.Model, msg model.StationAddedMsg) tea.Cmd {
	m.StationForm.InFlight = false
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Adding aid centre %q failed", msg.Name)
		notify(m, serverMessageOr(msg.Err, StationAddFailedText), model.StatusBarError)
		return nil
	}
	m.StationForm.Reset()
	notify(m, StationAddedText, model.StatusBarSuccess)
	return m.LoadStationsCmd()
}

func reportKey(ref string) string   { return "report:" + ref }
func stationKey(name string) string { return "station:" + name }

// requestDelete asks for confirmation of the delete bound to the active tab.
func requestDelete(m *model.Model) tea.Cmd {
	var c *model.Confirmation
	switch m.ActiveTabID() {
	case model.TabReports:
		ref, ok := api.ReportRef(m.Reports.Items, m.Reports.Cursor)
		if !ok {
			return nil
		}
		report := m.Reports.Items[m.Reports.Cursor]
		c = &model.Confirmation{
			Prompt: fmt.Sprintf("Delete the %s report filed by %s?", strings.ToUpper(report.DisasterType), report.Name),
			Key:    reportKey(ref),
			Run:    m.DeleteReportCmd(ref),
		}
	case model.TabAidCentres:
		name, ok := m.Stations.Selected()
		if !ok {
			return nil
		}
		c = &model.Confirmation{
			Prompt: fmt.Sprintf("Delete aid centre %q?", string(name)),
			Key:    stationKey(string(name)),
			Run:    m.DeleteStationCmd(string(name)),
		}
	default:
		return nil
	}

	if m.RowInFlight[c.Key] {
		LogDebug(m, mutationSubsystem, "Dropping delete of %s: already in flight", c.Key)
		return nil
	}
	if !m.ConfirmDeletes {
		m.RowInFlight[c.Key] = true
		return c.Run
	}
	m.Confirm = c
	m.LastAppMode = m.CurrentAppMode
	m.CurrentAppMode = model.ModeConfirm
	return nil
}

func handleReportDeleted(m *model.Model, msg model.ReportDeletedMsg) tea.Cmd {
	delete(m.RowInFlight, reportKey(msg.Ref))
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Deleting report %s failed", msg.Ref)
		notify(m, ReportDeleteFailText, model.StatusBarError)
		return nil
	}
	notify(m, ReportDeletedText, model.StatusBarSuccess)
	return m.LoadReportsCmd()
}

func handleStationDeleted(m *model.Model, msg model.StationDeletedMsg) tea.Cmd {
	delete(m.RowInFlight, stationKey(msg.Name))
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Deleting aid centre %q failed", msg.Name)
		notify(m, StationDeleteFail, model.StatusBarError)
		return nil
	}
	notify(m, StationDeletedText, model.StatusBarSuccess)
	return m.LoadStationsCmd()
}

// submitAidRequest checks the selected row's quantity against the bound
// captured when the list was loaded before calling the backend.
func submitAidRequest(m *model.Model) tea.Cmd {
	if m.Supplies.Cursor >= len(m.Supplies.Items) {
		return nil
	}
	row := &m.Supplies.Items[m.Supplies.Cursor]
	if row.InFlight {
		LogDebug(m, mutationSubsystem, "Dropping aid request for %q: already in flight", row.Supply.Name)
		return nil
	}
	qty, err := api.ValidateAidQuantity(row.Qty.Value(), row.Max)
	if err != nil {
		notify(m, err.Error(), model.StatusBarError)
		return nil
	}
	row.InFlight = true
	return m.RequestAidCmd(row.Supply.Name, qty)
}

func handleAidRequested(m *model.Model, msg model.AidRequestedMsg) tea.Cmd {
	for i := range m.Supplies.Items {
		if m.Supplies.Items[i].Supply.Name == msg.Supply {
			m.Supplies.Items[i].InFlight = false
		}
	}
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Requesting %d of %q failed", msg.Quantity, msg.Supply)
		notify(m, serverMessageOr(msg.Err, AidRequestFailedText), model.StatusBarError)
		return nil
	}
	text := strings.TrimSpace(msg.Message)
	if text == "" {
		text = AidRequestedText
	}
	notify(m, text, model.StatusBarSuccess)
	return m.LoadSuppliesCmd()
}

func submitAPIKey(m *model.Model) tea.Cmd {
	f := m.Mental.KeyForm
	if !guard(m, f, "configure-ai") {
		return nil
	}
	return m.ConfigureMentalHealthCmd(strings.TrimSpace(f.Value(0)))
}

func handleMentalHealthConfigured(m *model.Model, msg model.MentalHealthConfiguredMsg) tea.Cmd {
	if msg.Seq != m.Mental.Seq {
		LogDebug(m, mutationSubsystem, "Ignoring configure result from an earlier visit")
		return nil
	}
	m.Mental.KeyForm.InFlight = false
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Configuring mental-health AI failed")
		notify(m, serverMessageOr(msg.Err, AIConfigFailedText), model.StatusBarError)
		return nil
	}
	notify(m, AIConfiguredText, model.StatusBarSuccess)
	// The editing target changes with the phase, so the notice returns to
	// the dashboard rather than back into the key form.
	m.LastAppMode = model.ModeDashboard
	return m.CheckMentalHealthCmd()
}

// submitChat appends the user entry before the call is made. Blank input is
// ignored.
func submitChat(m *model.Model) tea.Cmd {
	f := m.Mental.ChatForm
	text := strings.TrimSpace(f.Value(0))
	if text == "" {
		return nil
	}
	if !guard(m, f, "chat") {
		return nil
	}
	id := m.Mental.AppendUser(text)
	f.Reset()
	f.FocusField(0)
	return m.SendChatCmd(id, text)
}

func handleChatReply(m *model.Model, msg model.ChatReplyMsg) {
	if msg.Seq != m.Mental.Seq {
		LogDebug(m, mutationSubsystem, "Ignoring chat reply from an earlier visit")
		return
	}
	m.Mental.ChatForm.InFlight = false
	if msg.Err != nil {
		LogError(mutationSubsystem, msg.Err, "Sending chat message failed")
		reason := serverMessageOr(msg.Err, msg.Err.Error())
		if errors.Is(msg.Err, api.ErrEmptyMessage) {
			reason = "message was empty"
		}
		m.Mental.FailEntry(msg.EntryID, ChatFailedPrefix+": "+reason)
		return
	}
	m.Mental.Deliver(msg.EntryID, msg.Reply)
}
