// Package source opens files as fixed-length, random-access byte sources.
//
// Two backings are provided: an *os.File read through ReadAt, and a
// read-only memory mapping. Both report the size captured at open time;
// the inspector never writes to the file.
package source

import (
	"fmt"
	"io"
	"os"

	"github.com/gael12334/hexchunk/internal/buf"
	"github.com/gael12334/hexchunk/internal/mmfile"
	"github.com/gael12334/hexchunk/pkg/types"
)

// Source is an opened byte source that must be closed.
type Source interface {
	types.Source
	io.Closer
}

// Sequential is implemented by sources that can be told a front-to-back
// pass is about to start.
type Sequential interface {
	AdviseSequential() error
}

// Open opens path for inspection, memory-mapping it when mmap is true.
func Open(path string, mmap bool) (Source, error) {
	if mmap {
		return OpenMapped(path)
	}
	return OpenFile(path)
}

// File reads through an *os.File.
type File struct {
	f    *os.File
	size int64
}

// OpenFile opens path read-only and records its size.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IO("fopen: failed to open '"+path+"'", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, types.IO("stat", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, types.IO("fopen: failed to open '"+path+"'", fmt.Errorf("is a directory"))
	}
	return &File{f: f, size: info.Size()}, nil
}

// ReadAt implements io.ReaderAt.
func (s *File) ReadAt(p []byte, off int64) (int, error) {
	if s.f == nil {
		return 0, os.ErrClosed
	}
	return s.f.ReadAt(p, off)
}

// Size returns the length captured at open time.
func (s *File) Size() int64 { return s.size }

// Close closes the file. Closing twice is a no-op.
func (s *File) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

// Mapped serves reads from a read-only memory mapping.
type Mapped struct {
	data  []byte
	unmap func() error
}

// OpenMapped maps path into memory.
func OpenMapped(path string) (*Mapped, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, types.IO("fopen: failed to map '"+path+"'", err)
	}
	return &Mapped{data: data, unmap: unmap}, nil
}

// FromBytes wraps an in-memory buffer as a Source.
func FromBytes(data []byte) *Mapped {
	return &Mapped{data: data}
}

// ReadAt implements io.ReaderAt.
func (m *Mapped) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("source: negative offset %d", off)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	want := int64(len(p))
	if rest := int64(len(m.data)) - off; want > rest {
		want = rest
	}
	src, _ := buf.Slice(m.data, off, want)
	n := copy(p, src)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the mapped length.
func (m *Mapped) Size() int64 { return int64(len(m.data)) }

// AdviseSequential forwards a sequential-access hint to the kernel.
func (m *Mapped) AdviseSequential() error {
	if m.unmap == nil {
		return nil
	}
	return mmfile.AdviseSequential(m.data)
}

// Close releases the mapping.
func (m *Mapped) Close() error {
	if m.unmap == nil {
		m.data = nil
		return nil
	}
	err := m.unmap()
	m.data = nil
	m.unmap = nil
	return err
}
