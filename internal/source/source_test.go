package source

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gael12334/hexchunk/pkg/types"
)

func writeFixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestOpenBackings(t *testing.T) {
	data := []byte("0123456789")
	path := writeFixture(t, data)

	for _, mmap := range []bool{false, true} {
		name := "file"
		if mmap {
			name = "mmap"
		}
		t.Run(name, func(t *testing.T) {
			src, err := Open(path, mmap)
			require.NoError(t, err)
			defer src.Close()

			assert.Equal(t, int64(len(data)), src.Size())

			p := make([]byte, 4)
			n, err := src.ReadAt(p, 3)
			require.NoError(t, err)
			assert.Equal(t, 4, n)
			assert.Equal(t, []byte("3456"), p)

			n, err = src.ReadAt(p, 8)
			assert.ErrorIs(t, err, io.EOF)
			assert.Equal(t, 2, n)
			assert.Equal(t, []byte("89"), p[:n])

			require.NoError(t, src.Close())
			require.NoError(t, src.Close())
		})
	}
}

func TestOpenMissingIsIOError(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"), false)
	require.Error(t, err)
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindIO, kind)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "fopen: failed to open")
}

func TestOpenDirectoryRejected(t *testing.T) {
	_, err := OpenFile(t.TempDir())
	require.Error(t, err)
}

func TestFromBytes(t *testing.T) {
	m := FromBytes([]byte{1, 2, 3})
	assert.Equal(t, int64(3), m.Size())

	p := make([]byte, 3)
	_, err := m.ReadAt(p, -1)
	require.Error(t, err)

	n, err := m.ReadAt(p, 3)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)

	require.NoError(t, m.AdviseSequential())
	require.NoError(t, m.Close())
	assert.Equal(t, int64(0), m.Size())
}

func TestMappedAdvise(t *testing.T) {
	path := writeFixture(t, make([]byte, 8192))
	m, err := OpenMapped(path)
	require.NoError(t, err)
	defer m.Close()

	var seq Sequential = m
	require.NoError(t, seq.AdviseSequential())
}
