package controller

import (
	"fmt"

	"reliefctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

const mentalSubsystem = "MentalHealth"

// handleMentalHealthChecked settles the tab into one of its three phases.
// A failed check is shown as unavailable.
func handleMentalHealthChecked(m *model.Model, msg model.MentalHealthCheckedMsg) tea.Cmd {
	if msg.Seq != m.Mental.Seq {
		LogDebug(m, mentalSubsystem, "Dropping stale availability check #%d", msg.Seq)
		return nil
	}
	if msg.Err != nil {
		m.Mental.Phase = model.MentalUnavailable
		m.Mental.Err = msg.Err
		LogError(mentalSubsystem, msg.Err, "Availability check failed")
		return m.SetStatusMessage(fmt.Sprintf("Mental health check failed: %v", msg.Err), model.StatusBarError, m.NoticeTimeout)
	}
	m.Mental.Apply(msg.Status)
	LogDebug(m, mentalSubsystem, "Support chat is %s", m.Mental.Phase)
	return nil
}
