// Package report persists the run records produced by a scan.
//
// Two formats are supported: a plain text log with one record per line,
// and a SQLite database holding a single runs table. Both make every record
// durable as soon as it is appended, so a scan that fails half way leaves a
// usable partial report.
//
// Opening a report over an existing file requires approval from a
// types.Confirmer; a refusal returns types.ErrOverwriteDeclined and leaves
// the file untouched.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/pkg/types"
)

// Format selects the on-disk report layout.
type Format string

const (
	FormatText   Format = "text"
	FormatSQLite Format = "sqlite"
)

// ParseFormat validates a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatSQLite:
		return FormatSQLite, nil
	}
	return "", fmt.Errorf("unknown report format %q (want text or sqlite)", s)
}

// Sink is an open report.
type Sink interface {
	chunk.Sink
	Close() error
}

// Options configures Open.
type Options struct {
	Format Format
	// Confirm approves replacing an existing file. Nil declines.
	Confirm types.Confirmer
}

// Open creates the report at path.
func Open(path string, opts Options) (Sink, error) {
	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, types.SinkIO("open report", err)
	}
	if err := prepare(path, opts.Confirm); err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		s, err := createSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	t, err := createText(path)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// prepare checks the target and obtains approval to replace it.
func prepare(path string, confirm types.Confirmer) error {
	if path == "" {
		return types.SinkIO("open report", errors.New("report path required"))
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return types.SinkIO("stat '"+path+"'", err)
	case info.IsDir():
		return types.SinkIO("open report", fmt.Errorf("'%s' is a directory", path))
	}
	if confirm == nil {
		confirm = types.NeverOverwrite
	}
	if !confirm.ConfirmOverwrite(path) {
		return &types.Error{
			Kind: types.ErrKindOverwriteDeclined,
			Msg:  "overwrite of '" + path + "' declined",
		}
	}
	return nil
}

// Collector keeps records in memory. It is the sink used when only the
// summary of a scan is wanted.
type Collector struct {
	Records []chunk.Record
}

// Append implements chunk.Sink.
func (c *Collector) Append(rec chunk.Record) error {
	c.Records = append(c.Records, rec)
	return nil
}

// Close implements Sink.
func (c *Collector) Close() error { return nil }

// Summary totals the zero-runs in a record sequence over a range of the
// given length.
type Summary struct {
	DataRuns   int
	ZeroRuns   int
	ZeroBytes  int64
	DataBytes  int64
	LargestRun chunk.Record
	// TrailingZeroBytes is the length of a zero-run that reaches the end
	// of the scanned range, or 0.
	TrailingZeroBytes int64
}

// Summarize totals recs, which must come from a single scan of total bytes.
func Summarize(recs []chunk.Record, total int64) Summary {
	var s Summary
	for _, rec := range recs {
		switch rec.Kind {
		case chunk.DataStart:
			s.DataRuns++
		case chunk.ZeroRunEnd:
			s.ZeroRuns++
			s.ZeroBytes += rec.Bytes
			if rec.Bytes > s.LargestRun.Bytes {
				s.LargestRun = rec
			}
		}
	}
	s.DataBytes = max(total-s.ZeroBytes, 0)
	if n := len(recs); n > 0 && recs[n-1].Kind == chunk.ZeroRunEnd && recs[n-1].End() >= total {
		s.TrailingZeroBytes = total - recs[n-1].Offset
	}
	return s
}
