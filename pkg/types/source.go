package types

import "io"

// Source is an opened, fixed-length, random-access byte sequence. Its
// contents must not change while a scan is running.
type Source interface {
	io.ReaderAt
	Size() int64
}

// Confirmer approves replacing an existing report file.
type Confirmer interface {
	ConfirmOverwrite(path string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(path string) bool

// ConfirmOverwrite calls f(path).
func (f ConfirmFunc) ConfirmOverwrite(path string) bool { return f(path) }

var (
	// AlwaysOverwrite approves every replacement (the --force path).
	AlwaysOverwrite Confirmer = ConfirmFunc(func(string) bool { return true })
	// NeverOverwrite declines every replacement.
	NeverOverwrite Confirmer = ConfirmFunc(func(string) bool { return false })
)
