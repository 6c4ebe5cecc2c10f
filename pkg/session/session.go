// Package session holds the state of one inspection: the open file, its
// cursor, and the settings scans run with. Sessions are independent of one
// another; nothing is shared between them.
package session

import (
	"context"
	"io"
	"log/slog"

	"github.com/zeebo/blake3"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/report"
	"github.com/gael12334/hexchunk/internal/source"
	"github.com/gael12334/hexchunk/pkg/types"
)

// Options configures a Session.
type Options struct {
	ChunkSize        int
	Mmap             bool
	ReportFormat     report.Format
	NominalByteCount bool
	Logger           *slog.Logger
	// Confirm approves replacing an existing report. Nil declines.
	Confirm types.Confirmer
	// OnWindow sees every window a scan reads.
	OnWindow func(chunk.Window)
}

// Session is a single open file plus its cursor.
type Session struct {
	opts   Options
	log    *slog.Logger
	path   string
	src    source.Source
	reader *chunk.Reader
}

// New creates a session with no file loaded.
func New(opts Options) *Session {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = chunk.DefaultSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{opts: opts, log: log}
}

// SetConfirmer replaces the overwrite confirmation collaborator.
func (s *Session) SetConfirmer(c types.Confirmer) { s.opts.Confirm = c }

// SetOnWindow installs a scan progress callback. Nil removes it.
func (s *Session) SetOnWindow(fn func(chunk.Window)) { s.opts.OnWindow = fn }

// ChunkSize returns the window size.
func (s *Session) ChunkSize() int64 { return int64(s.opts.ChunkSize) }

// Open loads path, closing any file already open. The cursor starts at 0.
func (s *Session) Open(path string) error {
	if s.IsOpen() {
		if err := s.Close(); err != nil {
			return err
		}
	}
	src, err := source.Open(path, s.opts.Mmap)
	if err != nil {
		return err
	}
	s.attach(path, src)
	s.log.Info("file opened", "path", path, "size", src.Size(), "mmap", s.opts.Mmap)
	return nil
}

// Attach loads an already open source under the given name.
func (s *Session) Attach(name string, src source.Source) error {
	if s.IsOpen() {
		if err := s.Close(); err != nil {
			return err
		}
	}
	s.attach(name, src)
	return nil
}

func (s *Session) attach(name string, src source.Source) {
	s.path = name
	s.src = src
	s.reader = chunk.NewReader(src, s.opts.ChunkSize)
}

// Close releases the open file.
func (s *Session) Close() error {
	if !s.IsOpen() {
		return types.ErrNoSource
	}
	err := s.src.Close()
	s.log.Info("file closed", "path", s.path)
	s.src, s.reader, s.path = nil, nil, ""
	if err != nil {
		return types.IO("close", err)
	}
	return nil
}

// IsOpen reports whether a file is loaded.
func (s *Session) IsOpen() bool { return s.src != nil }

// Path returns the name the open file was loaded under.
func (s *Session) Path() string { return s.path }

// Size returns the length of the open file, or 0.
func (s *Session) Size() int64 {
	if s.reader == nil {
		return 0
	}
	return s.reader.Size()
}

// Position returns the cursor, or 0 when nothing is open.
func (s *Session) Position() int64 {
	if s.reader == nil {
		return 0
	}
	return s.reader.Position()
}

// Set moves the cursor to off.
func (s *Session) Set(off int64) error {
	if !s.IsOpen() {
		return types.ErrNoSource
	}
	return s.reader.Seek(off)
}

// Skip moves the cursor by n.
func (s *Session) Skip(n int64) error {
	if !s.IsOpen() {
		return types.ErrNoSource
	}
	return s.reader.Skip(n)
}

// Next reads a window of n bytes at the cursor. A negative n reads the
// bytes just before the cursor and moves the cursor back to their start.
func (s *Session) Next(n int64) (chunk.Window, error) {
	if !s.IsOpen() {
		return chunk.Window{}, types.ErrNoSource
	}
	return s.reader.Next(n)
}

// Window reads a window at an explicit position without regard for the
// cursor, which is left unchanged.
func (s *Session) Window(pos, n int64) (chunk.Window, error) {
	if !s.IsOpen() {
		return chunk.Window{}, types.ErrNoSource
	}
	cur := s.reader.Position()
	defer func() { _ = s.reader.Seek(cur) }()
	return s.reader.Fill(pos, n)
}

// BeginScan scans [start, start+length) (length 0 = to end) into a new
// report at reportPath and returns the number of records written.
//
// The range is validated before the report is created, so a bad request
// never touches an existing file. The cursor is unchanged afterwards.
func (s *Session) BeginScan(ctx context.Context, start, length int64, reportPath string) (int64, error) {
	if !s.IsOpen() {
		return 0, types.ErrNoSource
	}
	if _, err := chunk.ScanLimit(s.Size(), start, length); err != nil {
		return 0, err
	}

	sink, err := report.Open(reportPath, report.Options{
		Format:  s.opts.ReportFormat,
		Confirm: s.opts.Confirm,
	})
	if err != nil {
		return 0, err
	}

	res, err := s.ScanTo(ctx, start, length, sink)
	if cerr := sink.Close(); err == nil && cerr != nil {
		err = cerr
	}
	s.log.Info("report written", "path", reportPath, "records", res.Records, "error", err)
	return res.Records, err
}

// ScanTo scans [start, start+length) into sink. The cursor is unchanged
// afterwards.
func (s *Session) ScanTo(ctx context.Context, start, length int64, sink chunk.Sink) (chunk.Result, error) {
	if !s.IsOpen() {
		return chunk.Result{}, types.ErrNoSource
	}
	if seq, ok := s.src.(source.Sequential); ok {
		if err := seq.AdviseSequential(); err != nil {
			s.log.Debug("madvise failed", "error", err)
		}
	}

	cur := s.reader.Position()
	defer func() { _ = s.reader.Seek(cur) }()

	scanner := chunk.NewScanner(s.reader, chunk.Options{
		NominalByteCount: s.opts.NominalByteCount,
		Logger:           s.log,
		OnWindow:         s.opts.OnWindow,
	})
	return scanner.Scan(ctx, start, length, sink)
}

// Digest returns the BLAKE3-256 hash of [start, start+length), hashing one
// window at a time. A length of 0 hashes to the end of the file.
func (s *Session) Digest(ctx context.Context, start, length int64) ([32]byte, error) {
	var sum [32]byte
	if !s.IsOpen() {
		return sum, types.ErrNoSource
	}
	limit, err := chunk.ScanLimit(s.Size(), start, length)
	if err != nil {
		return sum, err
	}

	cur := s.reader.Position()
	defer func() { _ = s.reader.Seek(cur) }()

	h := blake3.New()
	for pos := start; pos < limit; {
		select {
		case <-ctx.Done():
			return sum, ctx.Err()
		default:
		}
		w, err := s.reader.Fill(pos, min(s.reader.ChunkSize(), limit-pos))
		if err != nil {
			return sum, err
		}
		if w.Empty() {
			return sum, types.IO("digest", io.ErrUnexpectedEOF)
		}
		_, _ = h.Write(w.Bytes())
		pos = w.End()
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
