package report

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/pkg/types"
)

// TextSink writes one record per line.
type TextSink struct {
	f *os.File
	w *bufio.Writer
}

func createText(path string) (*TextSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, types.SinkIO("create '"+path+"'", err)
	}
	return &TextSink{f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes rec and flushes it to the file.
func (s *TextSink) Append(rec chunk.Record) error {
	if s.f == nil {
		return types.SinkIO("append", os.ErrClosed)
	}
	if _, err := fmt.Fprintln(s.w, rec.String()); err != nil {
		return types.SinkIO("write record", err)
	}
	if err := s.w.Flush(); err != nil {
		return types.SinkIO("flush record", err)
	}
	return nil
}

// Close flushes and closes the file. Closing twice is a no-op.
func (s *TextSink) Close() error {
	if s.f == nil {
		return nil
	}
	ferr := s.w.Flush()
	cerr := s.f.Close()
	s.f = nil
	if ferr != nil {
		return types.SinkIO("flush report", ferr)
	}
	return types.SinkIO("close report", cerr)
}
