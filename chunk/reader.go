package chunk

import (
	"errors"
	"io"

	"github.com/gael12334/hexchunk/internal/buf"
	"github.com/gael12334/hexchunk/pkg/types"
)

// Reader reads bounded windows from a fixed-length source and keeps the
// session's forward cursor.
type Reader struct {
	src       types.Source
	size      int64
	chunkSize int64
	pos       int64
}

// NewReader creates a Reader over src. A non-positive chunkSize selects
// DefaultSize. The source size is captured once; the source must not
// change length while the Reader is in use.
func NewReader(src types.Source, chunkSize int) *Reader {
	if chunkSize <= 0 {
		chunkSize = DefaultSize
	}
	return &Reader{src: src, size: src.Size(), chunkSize: int64(chunkSize)}
}

// Size returns the total length of the source.
func (r *Reader) Size() int64 { return r.size }

// ChunkSize returns the maximum window length.
func (r *Reader) ChunkSize() int64 { return r.chunkSize }

// Position returns the forward cursor.
func (r *Reader) Position() int64 { return r.pos }

// Seek moves the cursor to off, which must lie in [0, Size()].
func (r *Reader) Seek(off int64) error {
	if off < 0 || off > r.size {
		return types.NewRangeError(off, 0, 0, r.size)
	}
	r.pos = off
	return nil
}

// Skip moves the cursor by n bytes (negative moves backward). The result
// must lie in [0, Size()].
func (r *Reader) Skip(n int64) error {
	if !buf.InRange(r.pos, n, 0, r.size) {
		return types.NewRangeError(r.pos, n, 0, r.size)
	}
	r.pos += n
	return nil
}

// Next fills a window of the given signed length at the cursor.
func (r *Reader) Next(length int64) (Window, error) {
	return r.Fill(r.pos, length)
}

// Fill reads a window at position.
//
// With length >= 0 the window covers [position, position+length) and the
// cursor moves to its end. With length < 0 the window covers
// [position+length, position) and the cursor moves to its start, so
// repeated backward reads walk toward the beginning of the source.
//
// |length| may not exceed ChunkSize, and the covered range must lie in
// [0, Size()]; otherwise a *types.RangeError is returned and nothing is
// read. The range is never clamped.
func (r *Reader) Fill(position, length int64) (Window, error) {
	if length > r.chunkSize || length < -r.chunkSize {
		return Window{}, types.NewRangeError(0, length, -r.chunkSize, r.chunkSize)
	}
	if position < 0 || position > r.size || !buf.SpanWithin(position, length, r.size) {
		return Window{}, types.NewRangeError(position, length, 0, r.size)
	}

	start, end, _ := buf.Span(position, length)
	data := make([]byte, end-start)
	n, err := r.src.ReadAt(data, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return Window{}, types.IO("read window", err)
	}
	w := Window{Offset: start, Used: int64(n), Data: data[:n]}
	if length >= 0 {
		r.pos = w.End()
	} else {
		r.pos = w.Offset
	}
	return w, nil
}
