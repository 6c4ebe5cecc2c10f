package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/internal/source"
	"github.com/gael12334/hexchunk/pkg/session"
)

// TestHelper provides utilities for testing TUI components
type TestHelper struct {
	model Model
	cmd   tea.Cmd
}

// NewTestHelper creates a test helper over an in-memory file
func NewTestHelper(data []byte, chunkSize int) *TestHelper {
	sess := session.New(session.Options{ChunkSize: chunkSize})
	_ = sess.Attach("test.bin", source.FromBytes(data))
	opts := printer.DefaultOptions()
	opts.Color = false
	p, _ := printer.New(io.Discard, opts)
	return &TestHelper{model: NewModel(sess, p)}
}

// SendKey simulates a key press
func (h *TestHelper) SendKey(keyType tea.KeyType) *TestHelper {
	return h.send(tea.KeyMsg{Type: keyType})
}

// SendKeyRune simulates a character key press
func (h *TestHelper) SendKeyRune(r rune) *TestHelper {
	return h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// SendWindowSize simulates a window resize
func (h *TestHelper) SendWindowSize(width, height int) *TestHelper {
	return h.send(tea.WindowSizeMsg{Width: width, Height: height})
}

func (h *TestHelper) send(msg tea.Msg) *TestHelper {
	updated, cmd := h.model.Update(msg)
	h.model = updated.(Model)
	h.cmd = cmd
	return h
}

// GetModel returns the current model
func (h *TestHelper) GetModel() Model {
	return h.model
}

// GetView returns the rendered view
func (h *TestHelper) GetView() string {
	return h.model.View()
}

// LastCmd returns the command produced by the last message
func (h *TestHelper) LastCmd() tea.Cmd {
	return h.cmd
}
