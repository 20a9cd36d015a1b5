package model

import (
	"context"

	"reliefctl/internal/api"
	"reliefctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// The commands below capture everything they need before returning, so the
// returned tea.Cmd never touches the model from its own goroutine.

// LoadInventoryCmd starts a new inventory load.
func (m *Model) LoadInventoryCmd() tea.Cmd {
	seq := m.Inventory.Begin()
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		items, err := gov.ListInventory(ctx)
		return InventoryLoadedMsg{Seq: seq, Items: items, Err: err}
	})
}

// LoadReportsCmd starts a new reports load.
func (m *Model) LoadReportsCmd() tea.Cmd {
	seq := m.Reports.Begin()
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		items, err := gov.ListReports(ctx)
		return ReportsLoadedMsg{Seq: seq, Items: items, Err: err}
	})
}

// LoadStationsCmd starts a new aid-centre load.
func (m *Model) LoadStationsCmd() tea.Cmd {
	seq := m.Stations.Begin()
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		items, err := gov.ListStations(ctx)
		return StationsLoadedMsg{Seq: seq, Items: items, Err: err}
	})
}

// LoadSuppliesCmd starts a new available-supplies load.
func (m *Model) LoadSuppliesCmd() tea.Cmd {
	seq := m.Supplies.Begin()
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		items, err := pub.ListAvailableSupplies(ctx)
		return SuppliesLoadedMsg{Seq: seq, Items: items, Err: err}
	})
}

// LoadHelpStationsCmd starts a new help-station load.
func (m *Model) LoadHelpStationsCmd() tea.Cmd {
	seq := m.HelpStations.Begin()
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		items, err := pub.ListHelpStations(ctx)
		return HelpStationsLoadedMsg{Seq: seq, Items: items, Err: err}
	})
}

// CheckMentalHealthCmd restarts the mental-health tab and checks availability.
func (m *Model) CheckMentalHealthCmd() tea.Cmd {
	seq := m.Mental.Begin()
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		status, err := pub.CheckMentalHealth(ctx)
		return MentalHealthCheckedMsg{Seq: seq, Status: status, Err: err}
	})
}

// AddSuppliesCmd posts a new supply line.
func (m *Model) AddSuppliesCmd(supply string, quantity int) tea.Cmd {
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		err := gov.AddSupplies(ctx, supply, quantity)
		return SupplyAddedMsg{Supply: supply, Quantity: quantity, Err: err}
	})
}

// DeleteReportCmd deletes the report identified by ref.
func (m *Model) DeleteReportCmd(ref string) tea.Cmd {
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		return ReportDeletedMsg{Ref: ref, Err: gov.DeleteReport(ctx, ref)}
	})
}

// AddStationCmd registers an aid centre.
func (m *Model) AddStationCmd(name string) tea.Cmd {
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		return StationAddedMsg{Name: name, Err: gov.AddStation(ctx, name)}
	})
}

// DeleteStationCmd removes an aid centre.
func (m *Model) DeleteStationCmd(name string) tea.Cmd {
	gov := m.GovAPI
	return m.call(func(ctx context.Context) tea.Msg {
		return StationDeletedMsg{Name: name, Err: gov.DeleteStation(ctx, name)}
	})
}

// FileReportCmd submits a disaster report.
func (m *Model) FileReportCmd(r api.ReportSubmission) tea.Cmd {
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		return ReportFiledMsg{Err: pub.FileReport(ctx, r)}
	})
}

// RequestAidCmd requests quantity of supply.
func (m *Model) RequestAidCmd(supply string, quantity int) tea.Cmd {
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		msg, err := pub.RequestAid(ctx, supply, quantity)
		return AidRequestedMsg{Supply: supply, Quantity: quantity, Message: msg, Err: err}
	})
}

// ConfigureMentalHealthCmd hands the AI key to the backend.
func (m *Model) ConfigureMentalHealthCmd(apiKey string) tea.Cmd {
	seq := m.Mental.Seq
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		return MentalHealthConfiguredMsg{Seq: seq, Err: pub.ConfigureMentalHealth(ctx, apiKey)}
	})
}

// SendChatCmd sends the text of transcript entry id.
func (m *Model) SendChatCmd(id, text string) tea.Cmd {
	seq := m.Mental.Seq
	pub := m.PublicAPI
	return m.call(func(ctx context.Context) tea.Msg {
		reply, err := pub.SendMentalHealthMessage(ctx, text)
		return ChatReplyMsg{Seq: seq, EntryID: id, Reply: reply, Err: err}
	})
}

func (m *Model) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	parent, timeout := m.callContext()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		return fn(ctx)
	}
}

// ListenForLogEntriesCmd waits for the next log entry. It returns nil once
// the channel is closed.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
