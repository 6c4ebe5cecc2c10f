package chunk

// DefaultSize is the nominal window size in bytes.
const DefaultSize = 1024

// Window is a transient view of bytes read from a fixed logical offset.
type Window struct {
	// Offset is the position in the source of Data[0].
	Offset int64
	// Used is the number of valid bytes; it never reaches past the end of
	// the source.
	Used int64
	// Data holds exactly Used bytes and is owned by the caller.
	Data []byte
}

// End returns the offset one past the last byte of the window.
func (w Window) End() int64 { return w.Offset + w.Used }

// Bytes returns the valid bytes of the window.
func (w Window) Bytes() []byte { return w.Data[:w.Used] }

// Empty reports whether the window holds no bytes.
func (w Window) Empty() bool { return w.Used == 0 }
