package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/internal/logger"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.load(m.window.Offset)
		return m, nil

	case tea.KeyMsg:
		// If help is showing, only keys that close it do anything
		if m.showHelp {
			if key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}

		m.statusMessage = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.Forward):
			m.forward()
		case key.Matches(msg, m.keys.Backward):
			m.backward()
		case key.Matches(msg, m.keys.Home):
			m.load(0)
		case key.Matches(msg, m.keys.End):
			m.load(m.lastPage())
		case key.Matches(msg, m.keys.NextData):
			m.seek(chunk.ClassData)
		case key.Matches(msg, m.keys.NextZero):
			m.seek(chunk.ClassZero)
		case key.Matches(msg, m.keys.Copy):
			m.copyOffset()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) forward() {
	next := m.window.End()
	if next >= m.sess.Size() {
		m.statusMessage = "End of file"
		return
	}
	m.load(next)
}

// backward shows the bytes just before the current window with a backward
// read, which moves the cursor to the start of the new window.
func (m *Model) backward() {
	off := m.window.Offset
	if off == 0 {
		m.statusMessage = "Start of file"
		return
	}
	w, err := m.sess.Next(-min(m.pageSize(), off))
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.window = w
	m.class = chunk.Classify(w)
}

// lastPage returns the page-aligned start of the last page.
func (m Model) lastPage() int64 {
	size := m.sess.Size()
	if size == 0 {
		return 0
	}
	page := m.pageSize()
	return (size - 1) / page * page
}

// seek moves to the next page, after the current one, whose class is want.
func (m *Model) seek(want chunk.Class) {
	page := m.pageSize()
	size := m.sess.Size()
	for pos := m.window.End(); pos < size; {
		w, err := m.sess.Window(pos, min(page, size-pos))
		if err != nil {
			m.statusMessage = err.Error()
			return
		}
		if chunk.Classify(w) == want {
			m.load(w.Offset)
			m.statusMessage = fmt.Sprintf("Found %s window at 0x%x", want, w.Offset)
			logger.Debug("seek", "class", want.String(), "offset", w.Offset)
			return
		}
		pos = w.End()
	}
	m.statusMessage = fmt.Sprintf("No %s window after 0x%x", want, m.window.Offset)
}

func (m *Model) copyOffset() {
	text := fmt.Sprintf("0x%x", m.window.Offset)
	if err := copyToClipboard(text); err != nil {
		logger.Warn("clipboard write failed", "error", err)
		m.statusMessage = "Copy failed: " + err.Error()
		return
	}
	m.statusMessage = "Copied " + text + " to clipboard"
}
