package chunk

import "github.com/gael12334/hexchunk/internal/buf"

// Class is the classification of a window.
type Class uint8

const (
	// ClassUnknown is the sentinel held before the first window of a scan.
	ClassUnknown Class = iota
	// ClassZero marks a window whose bytes are all 0x00 (or that is empty).
	ClassZero
	// ClassData marks a window holding at least one non-zero byte.
	ClassData
)

func (c Class) String() string {
	switch c {
	case ClassZero:
		return "zero"
	case ClassData:
		return "data"
	default:
		return "unknown"
	}
}

// Classify reports whether every valid byte of w is zero. An empty window
// classifies as ClassZero.
func Classify(w Window) Class {
	if buf.AllZero(w.Bytes()) {
		return ClassZero
	}
	return ClassData
}
