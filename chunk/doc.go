// Package chunk implements the windowed reader and the zero-run scanner at
// the heart of the inspector.
//
// # Overview
//
// A Reader serves bounded windows of at most ChunkSize bytes from a
// fixed-length Source. Each call to Fill returns a freshly allocated Window
// recording the logical offset of its first byte and how many bytes it
// holds:
//
//	r := chunk.NewReader(src, chunk.DefaultSize)
//	w, err := r.Fill(4096, 512)   // bytes [4096, 4608)
//	w, err = r.Fill(4096, -512)   // bytes [3584, 4096), cursor at 3584
//
// # Scanning
//
// A Scanner walks a Reader from a start offset to a limit one chunk at a
// time, classifies every window as all-zero or containing data, and emits
// a Record to a Sink on each classification change:
//
//	s := chunk.NewScanner(r, chunk.Options{})
//	res, err := s.Scan(ctx, 0, 0, sink) // whole source
//
// The emitted sequence alternates ZeroRunEnd and DataStart records in
// increasing offset order, so reading it back partitions the scanned range
// into zero and data extents.
//
// # Ranges
//
// Every window request is checked against [0, Size()] before any read and
// reported as a *types.RangeError when it falls outside. The scanner
// truncates its final window to the bytes remaining before the limit.
package chunk
