package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/report"
	"github.com/gael12334/hexchunk/internal/source"
	"github.com/gael12334/hexchunk/pkg/types"
)

func fixture(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// zeroThenData is 1024 zero bytes followed by 1024 bytes of 0xFF.
func zeroThenData() []byte {
	data := make([]byte, 2048)
	for i := 1024; i < len(data); i++ {
		data[i] = 0xFF
	}
	return data
}

func TestRequiresOpenFile(t *testing.T) {
	s := New(Options{})
	ctx := context.Background()

	assert.False(t, s.IsOpen())
	require.ErrorIs(t, s.Close(), types.ErrNoSource)
	require.ErrorIs(t, s.Set(0), types.ErrNoSource)
	require.ErrorIs(t, s.Skip(1), types.ErrNoSource)
	_, err := s.Next(16)
	require.ErrorIs(t, err, types.ErrNoSource)
	_, err = s.BeginScan(ctx, 0, 0, filepath.Join(t.TempDir(), "r.txt"))
	require.ErrorIs(t, err, types.ErrNoSource)
	_, err = s.Digest(ctx, 0, 0)
	require.ErrorIs(t, err, types.ErrNoSource)
}

func TestOpenAndNavigate(t *testing.T) {
	for _, mmap := range []bool{false, true} {
		t.Run(map[bool]string{false: "file", true: "mmap"}[mmap], func(t *testing.T) {
			data := zeroThenData()
			s := New(Options{Mmap: mmap})
			require.NoError(t, s.Open(fixture(t, data)))
			defer s.Close()

			assert.Equal(t, int64(2048), s.Size())
			assert.Equal(t, int64(0), s.Position())

			require.NoError(t, s.Set(1020))
			w, err := s.Next(8)
			require.NoError(t, err)
			assert.Equal(t, data[1020:1028], w.Bytes())
			assert.Equal(t, int64(1028), s.Position())

			w, err = s.Next(-8)
			require.NoError(t, err)
			assert.Equal(t, int64(1020), w.Offset)
			assert.Equal(t, int64(1020), s.Position())

			require.NoError(t, s.Skip(-20))
			assert.Equal(t, int64(1000), s.Position())
			require.ErrorIs(t, s.Skip(2000), types.ErrRange)
			require.ErrorIs(t, s.Set(2049), types.ErrRange)

			_, err = s.Next(1025)
			require.ErrorIs(t, err, types.ErrRange)
		})
	}
}

func TestOpenReplacesPreviousFile(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.Open(fixture(t, make([]byte, 10))))
	require.NoError(t, s.Set(5))

	second := fixture(t, make([]byte, 20))
	require.NoError(t, s.Open(second))
	assert.Equal(t, second, s.Path())
	assert.Equal(t, int64(20), s.Size())
	assert.Equal(t, int64(0), s.Position())

	require.NoError(t, s.Close())
	assert.False(t, s.IsOpen())
	assert.Equal(t, int64(0), s.Size())
}

func TestOpenMissingFile(t *testing.T) {
	s := New(Options{})
	err := s.Open(filepath.Join(t.TempDir(), "nope"))
	kind, ok := types.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindIO, kind)
	assert.False(t, s.IsOpen())
}

func TestBeginScanWritesReport(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.Open(fixture(t, zeroThenData())))
	defer s.Close()
	require.NoError(t, s.Set(100))

	out := filepath.Join(t.TempDir(), "runs.txt")
	n, err := s.BeginScan(context.Background(), 0, 0, out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, int64(100), s.Position(), "scan must not move the cursor")

	recs, err := report.ReadTextFile(out)
	require.NoError(t, err)
	assert.Equal(t, []chunk.Record{
		{Kind: chunk.ZeroRunEnd, Offset: 0, Chunks: 1, Bytes: 1024},
		{Kind: chunk.DataStart, Offset: 1024},
	}, recs)
}

func TestBeginScanSQLite(t *testing.T) {
	s := New(Options{ReportFormat: report.FormatSQLite, ChunkSize: 256})
	require.NoError(t, s.Open(fixture(t, zeroThenData())))
	defer s.Close()

	out := filepath.Join(t.TempDir(), "runs.db")
	n, err := s.BeginScan(context.Background(), 512, 1024, out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recs, err := report.ReadSQLite(context.Background(), out)
	require.NoError(t, err)
	assert.Equal(t, []chunk.Record{
		{Kind: chunk.ZeroRunEnd, Offset: 512, Chunks: 2, Bytes: 512},
		{Kind: chunk.DataStart, Offset: 1024},
	}, recs)
}

func TestBeginScanOverwriteDeclined(t *testing.T) {
	s := New(Options{Confirm: types.NeverOverwrite})
	require.NoError(t, s.Open(fixture(t, zeroThenData())))
	defer s.Close()

	out := filepath.Join(t.TempDir(), "runs.txt")
	require.NoError(t, os.WriteFile(out, []byte("previous report\n"), 0o644))

	n, err := s.BeginScan(context.Background(), 0, 0, out)
	require.ErrorIs(t, err, types.ErrOverwriteDeclined)
	assert.Zero(t, n)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous report\n", string(raw))

	s.SetConfirmer(types.AlwaysOverwrite)
	n, err = s.BeginScan(context.Background(), 0, 0, out)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestBeginScanBadRangeSkipsReport(t *testing.T) {
	asked := false
	s := New(Options{Confirm: types.ConfirmFunc(func(string) bool {
		asked = true
		return true
	})})
	require.NoError(t, s.Open(fixture(t, make([]byte, 10))))
	defer s.Close()

	out := filepath.Join(t.TempDir(), "runs.txt")
	require.NoError(t, os.WriteFile(out, []byte("keep"), 0o644))

	_, err := s.BeginScan(context.Background(), 5, 10, out)
	require.ErrorIs(t, err, types.ErrRange)
	assert.False(t, asked)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(raw))
}

func TestBeginScanEmptyFile(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.Open(fixture(t, nil)))
	defer s.Close()

	out := filepath.Join(t.TempDir(), "runs.txt")
	n, err := s.BeginScan(context.Background(), 0, 0, out)
	require.NoError(t, err)
	assert.Zero(t, n)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestScanToCollector(t *testing.T) {
	s := New(Options{ChunkSize: 16, NominalByteCount: true})
	require.NoError(t, s.Attach("mem", source.FromBytes(make([]byte, 40))))

	c := &report.Collector{}
	res, err := s.ScanTo(context.Background(), 0, 0, c)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Chunks)
	assert.Equal(t, []chunk.Record{{Kind: chunk.ZeroRunEnd, Offset: 0, Chunks: 3, Bytes: 48}}, c.Records)
}

func TestDigest(t *testing.T) {
	data := make([]byte, 5000)
	for i := range data {
		data[i] = byte(i * 7)
	}
	s := New(Options{ChunkSize: 1024})
	require.NoError(t, s.Open(fixture(t, data)))
	defer s.Close()
	require.NoError(t, s.Set(42))

	sum, err := s.Digest(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, blake3.Sum256(data), sum)

	sum, err = s.Digest(context.Background(), 1000, 2500)
	require.NoError(t, err)
	assert.Equal(t, blake3.Sum256(data[1000:3500]), sum)
	assert.Equal(t, int64(42), s.Position())

	_, err = s.Digest(context.Background(), 4000, 2000)
	require.ErrorIs(t, err, types.ErrRange)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Digest(ctx, 0, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWindowLeavesCursor(t *testing.T) {
	s := New(Options{ChunkSize: 16})
	require.NoError(t, s.Attach("mem", source.FromBytes([]byte("0123456789abcdef"))))
	require.NoError(t, s.Set(3))

	w, err := s.Window(10, 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(w.Bytes()))
	assert.Equal(t, int64(3), s.Position())
}

func TestScanToReportsWindows(t *testing.T) {
	s := New(Options{})
	require.NoError(t, s.Open(fixture(t, zeroThenData())))
	defer s.Close()

	var ends []int64
	s.SetOnWindow(func(w chunk.Window) { ends = append(ends, w.End()) })
	_, err := s.ScanTo(context.Background(), 0, 0, &report.Collector{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1024, 2048}, ends)

	s.SetOnWindow(nil)
	ends = nil
	_, err = s.ScanTo(context.Background(), 0, 0, &report.Collector{})
	require.NoError(t, err)
	assert.Empty(t, ends)
}
