package controller

import (
	"reliefctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the Bubble Tea program for one dashboard.
func NewProgram(opts model.Options) (*tea.Program, error) {
	m, err := model.InitializeModel(opts)
	if err != nil {
		return nil, err
	}

	app := NewAppModel(m)

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if opts.Ctx != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Ctx))
	}
	return tea.NewProgram(app, programOpts...), nil
}
