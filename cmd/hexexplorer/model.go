package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/pkg/session"
)

// Layout constants
const (
	chromeHeight = 6 // header, pane borders and status line
	minRows      = 1
)

// Model is the main application model
type Model struct {
	sess    *session.Session
	printer *printer.Printer
	keys    KeyMap

	window chunk.Window
	class  chunk.Class

	width  int
	height int

	// Help overlay
	showHelp bool

	// Status message for temporary feedback
	statusMessage string

	err error
}

// NewModel creates a model over an open session and shows its first window.
func NewModel(sess *session.Session, p *printer.Printer) Model {
	m := Model{
		sess:    sess,
		printer: p,
		keys:    DefaultKeyMap(),
	}
	m.load(0)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the file.
func (m Model) Close() error {
	if m.sess.IsOpen() {
		return m.sess.Close()
	}
	return nil
}

// pageSize is the number of bytes shown at once: one session window,
// shortened to the rows the terminal can hold.
func (m Model) pageSize() int64 {
	size := m.sess.ChunkSize()
	if m.height <= 0 {
		return size
	}
	rows := int64(max(m.height-chromeHeight, minRows))
	per := int64(m.printer.Options().BytesPerRow)
	return min(size, rows*per)
}

// load shows the page starting at offset. The session cursor is kept at the
// start of the displayed window.
func (m *Model) load(offset int64) {
	if err := m.sess.Set(offset); err != nil {
		m.statusMessage = err.Error()
		return
	}
	n := min(m.pageSize(), m.sess.Size()-offset)
	w, err := m.sess.Next(n)
	_ = m.sess.Set(offset)
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.window = w
	m.class = chunk.Classify(w)
}

// Offset returns the start of the displayed window.
func (m Model) Offset() int64 { return m.window.Offset }
