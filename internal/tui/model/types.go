package model

import (
	"context"
	"time"

	"reliefctl/internal/api"
	"reliefctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeDashboard AppMode = iota
	ModeEditing
	ModeHelpOverlay
	ModeLogOverlay
	ModeConfirm
	ModeNotice
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeDashboard:
		return "Dashboard"
	case ModeEditing:
		return "Editing"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeConfirm:
		return "Confirm"
	case ModeNotice:
		return "Notice"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// Dashboard selects which of the two views the model drives.
type Dashboard int

const (
	DashboardGovernment Dashboard = iota
	DashboardPublic
)

func (d Dashboard) String() string {
	if d == DashboardPublic {
		return "Public Dashboard"
	}
	return "Government Dashboard"
}

// TabID identifies a tab in either dashboard.
type TabID string

const (
	TabAddSupplies  TabID = "add-supplies"
	TabInventory    TabID = "inventory"
	TabReports      TabID = "reports"
	TabAidCentres   TabID = "aid-centres"
	TabFileReport   TabID = "file-report"
	TabRequestAid   TabID = "request-aid"
	TabHelpStations TabID = "help-stations"
	TabMentalHealth TabID = "mental-health"
)

// Title is the label shown in the tab bar.
func (t TabID) Title() string {
	switch t {
	case TabAddSupplies:
		return "Add Supplies"
	case TabInventory:
		return "Inventory"
	case TabReports:
		return "Reports"
	case TabAidCentres:
		return "Aid Centres"
	case TabFileReport:
		return "File Report"
	case TabRequestAid:
		return "Request Aid"
	case TabHelpStations:
		return "Help Stations"
	case TabMentalHealth:
		return "Mental Health"
	default:
		return string(t)
	}
}

// GovernmentTabs and PublicTabs list the tabs in display order; the first
// entry is active on startup.
var (
	GovernmentTabs = []TabID{TabAddSupplies, TabInventory, TabReports, TabAidCentres}
	PublicTabs     = []TabID{TabFileReport, TabRequestAid, TabHelpStations, TabMentalHealth}
)

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Empty-list messages.
const (
	EmptyInventoryText    = "No supplies in inventory."
	EmptyReportsText      = "No reports filed yet."
	EmptyStationsText     = "No aid centres registered."
	EmptySuppliesText     = "No supplies available at this time."
	EmptyHelpStationsText = "No help stations registered yet."
	UnavailableMentalText = "Mental health support is not available at this time."
)

// Constants for UI
const (
	MaxActivityLogLines   = 1000
	DefaultNoticeTimeout  = 4 * time.Second
	DefaultRequestTimeout = 15 * time.Second
)

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Edit      key.Binding
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Esc       key.Binding
	Delete    key.Binding
	Reload    key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	Help      key.Binding
	ToggleLog key.Binding
	CopyLogs  key.Binding
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Edit, k.Delete, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.Up, k.Down},
		{k.Edit, k.Submit, k.NextField, k.PrevField, k.Esc},
		{k.Delete, k.Reload, k.Confirm, k.Cancel},
		{k.ToggleLog, k.CopyLogs, k.Help, k.Quit},
	}
}

// Notice is a blocking message shown after a mutation completes.
type Notice struct {
	Text string
	Type MessageType
}

// Confirmation is a pending destructive action awaiting y/n.
type Confirmation struct {
	Prompt string
	// Key identifies the row action in Model.RowInFlight.
	Key string
	Run tea.Cmd
}

// Model represents the state of one dashboard session.
type Model struct {
	// Terminal dimensions
	Width  int
	Height int

	Kind      Dashboard
	UserName  string
	Tabs      []TabID
	ActiveTab int

	CurrentAppMode AppMode
	LastAppMode    AppMode
	DebugMode      bool
	ConfirmDeletes bool
	NoticeTimeout  time.Duration
	RequestTimeout time.Duration

	// Ctx bounds every backend call issued by the dashboard.
	Ctx       context.Context
	GovAPI    api.GovernmentAPI
	PublicAPI api.PublicAPI

	// Government panels
	Inventory   ListState[api.Supply]
	Reports     ListState[api.Report]
	Stations    ListState[api.Station]
	SupplyForm  *Form
	StationForm *Form

	// Public panels
	ReportForm   *Form
	Supplies     ListState[SupplyRow]
	HelpStations ListState[api.Station]
	Mental       MentalHealthState

	// RowInFlight guards row actions (delete report, delete station) by key.
	RowInFlight map[string]bool
	Confirm     *Confirmation
	Notice      Notice

	// UI State & Output
	ActivityLog          []string
	ActivityLogDirty     bool
	LogViewport          viewport.Model
	Keys                 KeyMap
	Help                 help.Model
	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}
	QuittingMessage      string

	// Logging
	LogChannel <-chan logging.LogEntry
}

// ActiveTabID returns the currently active tab.
func (m *Model) ActiveTabID() TabID {
	if m.ActiveTab < 0 || m.ActiveTab >= len(m.Tabs) {
		return ""
	}
	return m.Tabs[m.ActiveTab]
}

func (m *Model) callContext() (context.Context, time.Duration) {
	ctx := m.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := m.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return ctx, timeout
}
