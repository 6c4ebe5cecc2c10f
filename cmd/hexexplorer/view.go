package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/gael12334/hexchunk/chunk"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		// Recreated each render; stored pointers would go stale as Update
		// returns new models.
		helpOverlay := overlay.New(
			&HelpViewModel{model: &m},
			NewMainViewModel(&m),
			overlay.Center, // horizontal position
			overlay.Center, // vertical position
			0,
			0,
		)
		return helpOverlay.View()
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title, file name and window position
func (m Model) renderHeader() string {
	title := headerStyle.Render("Hex Chunk Explorer")
	file := pathStyle.Render(m.sess.Path())

	badge := zeroBadgeStyle.Render("ZERO")
	if m.class == chunk.ClassData {
		badge = dataBadgeStyle.Render("DATA")
	}
	pos := fmt.Sprintf("[0x%x, 0x%x) of %d bytes", m.window.Offset, m.window.End(), m.sess.Size())

	return lipgloss.JoinHorizontal(lipgloss.Top, title, " ", file, "  ", pos, " ", badge)
}

// renderContent renders the hex rows of the current window
func (m Model) renderContent() string {
	var b strings.Builder
	b.WriteString(m.printer.Header())
	rows := m.printer.Rows(m.window)
	if len(rows) == 0 {
		b.WriteString("\n(empty)")
	}
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(row)
	}
	return paneStyle.Render(b.String())
}

// renderStatus renders the status message or the short key help
func (m Model) renderStatus() string {
	if m.statusMessage != "" {
		return statusMessageStyle.Render(m.statusMessage)
	}
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return statusStyle.Render(strings.Join(parts, " • "))
}

// renderHelp renders the help box shown over the main view
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	// Key column width for alignment
	const keyWidth = 12

	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			h := k.Help()
			b.WriteString(helpKeyStyle.Width(keyWidth).Render(h.Key))
			b.WriteString("  ")
			b.WriteString(helpDescStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("Press ? or esc to close"))
	return helpBoxStyle.Render(b.String())
}
