package main

import tea "github.com/charmbracelet/bubbletea"

// MainViewModel wraps the main UI for use as overlay background
type MainViewModel struct {
	model *Model
}

func NewMainViewModel(m *Model) *MainViewModel {
	return &MainViewModel{model: m}
}

func (m *MainViewModel) Init() tea.Cmd {
	return nil
}

func (m *MainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Updates are handled in the parent Model's Update
	return m, nil
}

func (m *MainViewModel) View() string {
	return m.model.renderMain()
}

// HelpViewModel renders the help box as overlay foreground
type HelpViewModel struct {
	model *Model
}

func (h *HelpViewModel) Init() tea.Cmd {
	return nil
}

func (h *HelpViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return h, nil
}

func (h *HelpViewModel) View() string {
	return h.model.renderHelp()
}
