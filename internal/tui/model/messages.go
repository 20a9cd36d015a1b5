package model

import (
	"reliefctl/internal/api"
	"reliefctl/pkg/logging"
)

// ---- List load results ----
// Seq echoes the sequence number the load was issued with.

type InventoryLoadedMsg struct {
	Seq   uint64
	Items []api.Supply
	Err   error
}

type ReportsLoadedMsg struct {
	Seq   uint64
	Items []api.Report
	Err   error
}

type StationsLoadedMsg struct {
	Seq   uint64
	Items []api.Station
	Err   error
}

type SuppliesLoadedMsg struct {
	Seq   uint64
	Items []api.Supply
	Err   error
}

type HelpStationsLoadedMsg struct {
	Seq   uint64
	Items []api.Station
	Err   error
}

type MentalHealthCheckedMsg struct {
	Seq    uint64
	Status api.MentalHealthStatus
	Err    error
}

// ---- Mutation results ----

type SupplyAddedMsg struct {
	Supply   string
	Quantity int
	Err      error
}

type ReportFiledMsg struct {
	Err error
}

type ReportDeletedMsg struct {
	Ref string
	Err error
}

type StationAddedMsg struct {
	Name string
	Err  error
}

type StationDeletedMsg struct {
	Name string
	Err  error
}

type AidRequestedMsg struct {
	Supply   string
	Quantity int
	Message  string
	Err      error
}

type MentalHealthConfiguredMsg struct {
	Seq uint64
	Err error
}

type ChatReplyMsg struct {
	Seq     uint64
	EntryID string
	Reply   string
	Err     error
}

// ---- Misc overlay / status bar ----

type ClearStatusBarMsg struct{}

// NewLogEntryMsg carries one entry from the logging channel.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}
