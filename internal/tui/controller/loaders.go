package controller

import (
	"fmt"

	"reliefctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

const loaderSubsystem = "Loader"

// applyLoad installs a load result into its panel. Results that do not
// answer the panel's latest load are dropped.
func applyLoad[T any](m *model.Model, l *model.ListState[T], seq uint64, items []T, err error, what string) tea.Cmd {
	if !l.Current(seq) {
		LogDebug(m, loaderSubsystem, "Dropping stale %s load #%d (latest #%d)", what, seq, l.Seq)
		return nil
	}
	if err != nil {
		l.Fail(err)
		LogError(loaderSubsystem, err, "Failed to load %s", what)
		return m.SetStatusMessage(fmt.Sprintf("Failed to load %s: %v", what, err), model.StatusBarError, m.NoticeTimeout)
	}
	l.Replace(items)
	LogDebug(m, loaderSubsystem, "Loaded %d %s", len(items), what)
	return nil
}

// loaderFor returns the loader bound to tab, or nil for form-only tabs.
func loaderFor(m *model.Model, tab model.TabID) tea.Cmd {
	switch tab {
	case model.TabInventory:
		return m.LoadInventoryCmd()
	case model.TabReports:
		return m.LoadReportsCmd()
	case model.TabAidCentres:
		return m.LoadStationsCmd()
	case model.TabRequestAid:
		return m.LoadSuppliesCmd()
	case model.TabHelpStations:
		return m.LoadHelpStationsCmd()
	case model.TabMentalHealth:
		return m.CheckMentalHealthCmd()
	default:
		return nil
	}
}

// activateTab makes tab i the only active tab and runs its loader. The
// loader runs even when i is already active.
func activateTab(m *model.Model, i int) tea.Cmd {
	if i < 0 || i >= len(m.Tabs) {
		return nil
	}
	if form := m.ActiveForm(); form != nil {
		form.Blur()
	}
	blurSupplyRows(m)
	m.ActiveTab = i
	LogDebug(m, controllerSubsystem, "Activated tab %s", m.Tabs[i])
	return loaderFor(m, m.Tabs[i])
}

func cycleTab(m *model.Model, delta int) tea.Cmd {
	n := len(m.Tabs)
	if n == 0 {
		return nil
	}
	return activateTab(m, ((m.ActiveTab+delta)%n+n)%n)
}
