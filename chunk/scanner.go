package chunk

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gael12334/hexchunk/internal/buf"
	"github.com/gael12334/hexchunk/pkg/types"
)

// State is the lifecycle state of a Scanner.
type State uint8

const (
	StateIdle State = iota
	StateScanning
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Options tunes a Scanner.
type Options struct {
	// ChunkSize overrides the step size. Zero, or a value above the
	// reader's chunk size, uses the reader's chunk size.
	ChunkSize int64
	// NominalByteCount reports a zero-run's byte count as
	// chunks*ChunkSize instead of the bytes actually covered. This
	// overstates runs that end on a truncated final window.
	NominalByteCount bool
	// Logger receives scan progress. Nil discards.
	Logger *slog.Logger
	// OnWindow, if set, sees every window after it is read.
	OnWindow func(Window)
}

// Result summarises a completed or aborted scan.
type Result struct {
	Records  int64 // records successfully appended to the sink
	Chunks   int64 // windows read
	Bytes    int64 // bytes covered
	DataRuns int64
	ZeroRuns int64
}

// Scanner walks a Reader and emits run boundaries.
type Scanner struct {
	r     *Reader
	opts  Options
	log   *slog.Logger
	step  int64
	state State
}

// NewScanner creates a scanner over r.
func NewScanner(r *Reader, opts Options) *Scanner {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	step := r.ChunkSize()
	if opts.ChunkSize > 0 && opts.ChunkSize < step {
		step = opts.ChunkSize
	}
	return &Scanner{r: r, opts: opts, log: log, step: step}
}

// State returns the scanner's current state.
func (s *Scanner) State() State { return s.state }

// ScanLimit resolves a start offset and a length cap (0 = to end) into the
// exclusive limit of a scan over a source of the given size.
func ScanLimit(size, start, length int64) (int64, error) {
	if start < 0 || start > size {
		return 0, types.NewRangeError(start, 0, 0, size)
	}
	if length < 0 {
		return 0, types.NewRangeError(start, length, start, size)
	}
	if length == 0 {
		return size, nil
	}
	if length > size-start {
		return 0, types.NewRangeError(start, length, 0, size)
	}
	return start + length, nil
}

// run tracks the zero-run in progress.
type run struct {
	start  int64
	chunks int64
	bytes  int64
}

// Scan classifies [start, start+length) window by window and appends a
// record to sink on every classification change. A length of 0 scans to
// the end of the source.
//
// The reader's cursor is left at the end of the last window read.
// Records appended before an error remain valid. Cancellation is checked
// between windows.
func (s *Scanner) Scan(ctx context.Context, start, length int64, sink Sink) (Result, error) {
	var res Result

	limit, err := ScanLimit(s.r.Size(), start, length)
	if err != nil {
		s.state = StateFailed
		return res, err
	}

	s.state = StateScanning
	s.log.Info("scan started", "start", start, "limit", limit, "chunk_size", s.step)

	emit := func(rec Record) error {
		if err := sink.Append(rec); err != nil {
			return types.SinkIO("append record", err)
		}
		res.Records++
		s.log.Debug("record", "kind", rec.Kind.String(), "offset", rec.Offset, "chunks", rec.Chunks)
		return nil
	}
	fail := func(err error) (Result, error) {
		s.state = StateFailed
		s.log.Warn("scan failed", "position", start+res.Bytes, "error", err)
		return res, err
	}

	var (
		prev = ClassUnknown
		zero run
		pos  = start
	)
	for pos < limit {
		select {
		case <-ctx.Done():
			return fail(ctx.Err())
		default:
		}

		step := min(s.step, limit-pos)
		w, err := s.r.Fill(pos, step)
		if err != nil {
			return fail(err)
		}
		if w.Used == 0 {
			return fail(types.IO(fmt.Sprintf("read at %d", pos), io.ErrUnexpectedEOF))
		}
		if s.opts.OnWindow != nil {
			s.opts.OnWindow(w)
		}
		res.Chunks++
		res.Bytes += w.Used

		cls := Classify(w)
		switch NextTransition(prev, cls) {
		case TransitionOpenZero, TransitionDataToZero:
			zero = run{start: w.Offset, chunks: 1, bytes: w.Used}
			res.ZeroRuns++
		case TransitionZeroToZero:
			zero.chunks++
			zero.bytes += w.Used
		case TransitionZeroToData:
			if err := emit(s.zeroRunEnd(zero)); err != nil {
				return fail(err)
			}
			zero = run{}
			fallthrough
		case TransitionOpenData:
			if err := emit(Record{Kind: DataStart, Offset: w.Offset}); err != nil {
				return fail(err)
			}
			res.DataRuns++
		case TransitionDataToData:
		}

		pos = w.End()
		prev = cls
	}

	if prev == ClassZero {
		if err := emit(s.zeroRunEnd(zero)); err != nil {
			return fail(err)
		}
	}

	s.state = StateDone
	s.log.Info("scan finished", "records", res.Records, "chunks", res.Chunks,
		"data_runs", res.DataRuns, "zero_runs", res.ZeroRuns)
	return res, nil
}

func (s *Scanner) zeroRunEnd(z run) Record {
	bytes := z.bytes
	if s.opts.NominalByteCount {
		if n, ok := buf.MulOverflowSafe(z.chunks, s.step); ok {
			bytes = n
		}
	}
	return Record{Kind: ZeroRunEnd, Offset: z.start, Chunks: z.chunks, Bytes: bytes}
}
