package model

import (
	"context"
	"fmt"
	"time"

	"reliefctl/internal/api"
	"reliefctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultKeyMap returns a KeyMap with the default bindings used by the TUI.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "navigate up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "navigate down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "]"),
			key.WithHelp("→/]", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "["),
			key.WithHelp("←/[", "previous tab"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter/i", "edit form"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next field/submit"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle log overlay"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y", "c"),
			key.WithHelp("y/c", "copy log/transcript"),
		),
	}
}

// Options configures InitializeModel.
type Options struct {
	Kind           Dashboard
	UserName       string
	Gov            api.GovernmentAPI
	Public         api.PublicAPI
	Ctx            context.Context
	DebugMode      bool
	ConfirmDeletes bool
	NoticeTimeout  time.Duration
	RequestTimeout time.Duration
	LogChannel     <-chan logging.LogEntry
}

// InitializeModel builds the model for one dashboard.
func InitializeModel(opts Options) (*Model, error) {
	m := &Model{
		Kind:           opts.Kind,
		UserName:       opts.UserName,
		Ctx:            opts.Ctx,
		GovAPI:         opts.Gov,
		PublicAPI:      opts.Public,
		CurrentAppMode: ModeDashboard,
		LastAppMode:    ModeDashboard,
		DebugMode:      opts.DebugMode,
		ConfirmDeletes: opts.ConfirmDeletes,
		NoticeTimeout:  opts.NoticeTimeout,
		RequestTimeout: opts.RequestTimeout,
		RowInFlight:    make(map[string]bool),
		ActivityLog:    make([]string, 0),
		LogViewport:    viewport.New(0, 0),
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		LogChannel:     opts.LogChannel,
	}
	if m.NoticeTimeout <= 0 {
		m.NoticeTimeout = DefaultNoticeTimeout
	}

	switch opts.Kind {
	case DashboardGovernment:
		if opts.Gov == nil {
			return nil, fmt.Errorf("government dashboard requires a government API")
		}
		m.Tabs = GovernmentTabs
		m.SupplyForm = NewForm(
			FormField{Label: "Supply", Placeholder: "e.g. bottled water", CharLimit: 120},
			FormField{Label: "Quantity", Placeholder: "0", CharLimit: 9, Digits: true},
		)
		m.StationForm = NewForm(
			FormField{Label: "Aid centre", Placeholder: "Centre name", CharLimit: 120},
		)
	case DashboardPublic:
		if opts.Public == nil {
			return nil, fmt.Errorf("public dashboard requires a public API")
		}
		m.Tabs = PublicTabs
		m.ReportForm = NewForm(
			FormField{Label: "Disaster type", Placeholder: "flood, fire, earthquake...", CharLimit: 60},
			FormField{Label: "Details", Placeholder: "What happened?", CharLimit: 1000},
			FormField{Label: "Address", CharLimit: 200},
			FormField{Label: "City", CharLimit: 100},
			FormField{Label: "Country", CharLimit: 100},
		)
		m.Mental = NewMentalHealthState()
	default:
		return nil, fmt.Errorf("unknown dashboard %d", opts.Kind)
	}
	return m, nil
}

// Init loads the dashboard's primary list and starts draining the log channel.
func (m *Model) Init() tea.Cmd {
	var primary tea.Cmd
	if m.Kind == DashboardGovernment {
		primary = m.LoadInventoryCmd()
	} else {
		primary = m.LoadSuppliesCmd()
	}
	return tea.Batch(primary, ListenForLogEntriesCmd(m.LogChannel))
}

// ActiveForm returns the form edited on the active tab, if any.
func (m *Model) ActiveForm() *Form {
	switch m.ActiveTabID() {
	case TabAddSupplies:
		return m.SupplyForm
	case TabAidCentres:
		return m.StationForm
	case TabFileReport:
		return m.ReportForm
	case TabMentalHealth:
		switch m.Mental.Phase {
		case MentalNeedsConfiguration:
			return m.Mental.KeyForm
		case MentalChatActive:
			return m.Mental.ChatForm
		}
	}
	return nil
}
