package printer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gael12334/hexchunk/chunk"
)

func win(off int64, b []byte) chunk.Window {
	return chunk.Window{Offset: off, Used: int64(len(b)), Data: b}
}

func TestPrintWindow(t *testing.T) {
	var out bytes.Buffer
	p, err := New(&out, DefaultOptions())
	require.NoError(t, err)

	data := append([]byte("Hello, world!\x00\x01\x7f"), 0x41, 0x42)
	require.NoError(t, p.PrintWindow(win(0x400, data)))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "address    .0 .1 .2 .3 .4 .5 .6 .7 .8 .9 .A .B .C .D .E .F", lines[0])
	assert.Equal(t, "0000000400 48 65 6C 6C 6F 2C 20 77 6F 72 6C 64 21 00 01 7F  Hello, world!...", lines[1])
	assert.Equal(t, "0000000410 41 42"+strings.Repeat("   ", 14)+"  AB", lines[2])
}

func TestRowsEmptyWindow(t *testing.T) {
	p, err := New(&bytes.Buffer{}, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, p.Rows(win(0, nil)))
}

func TestRowsUseOnlyValidBytes(t *testing.T) {
	p, err := New(&bytes.Buffer{}, Options{BytesPerRow: 4})
	require.NoError(t, err)

	w := chunk.Window{Offset: 8, Used: 2, Data: []byte{1, 2, 3, 4}}
	rows := p.Rows(w)
	require.Len(t, rows, 1)
	assert.True(t, strings.HasPrefix(rows[0], "0000000008 01 02 "))
	assert.NotContains(t, rows[0], "03")
}

func TestCharsets(t *testing.T) {
	high := []byte{0xE9, 0x80, 0x1B}

	tests := []struct {
		charset Charset
		want    string
	}{
		{CharsetASCII, "..."},
		{CharsetLatin1, "é.."},
		{CharsetWindows1252, "é€."},
		{CharsetCP437, "ΘÇ."},
	}
	for _, tt := range tests {
		t.Run(string(tt.charset), func(t *testing.T) {
			p, err := New(&bytes.Buffer{}, Options{Charset: tt.charset})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.ASCII(high))
		})
	}
}

func TestParseCharset(t *testing.T) {
	c, err := ParseCharset("")
	require.NoError(t, err)
	assert.Equal(t, CharsetASCII, c)

	c, err = ParseCharset("CP437")
	require.NoError(t, err)
	assert.Equal(t, CharsetCP437, c)

	_, err = ParseCharset("ebcdic")
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, Options{Charset: "ebcdic"})
	require.Error(t, err)
}

func TestColorKeepsContent(t *testing.T) {
	p, err := New(&bytes.Buffer{}, Options{Color: true})
	require.NoError(t, err)
	rows := p.Rows(win(0, []byte("AB\x00")))
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "0000000000")
	assert.Contains(t, rows[0], "AB.")
}
