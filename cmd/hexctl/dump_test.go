package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gael12334/hexchunk/pkg/types"
)

func TestDumpCommand(t *testing.T) {
	data := []byte("Hello, world! This file is a little longer than one row.")

	tests := []struct {
		name        string
		offset      int64
		length      int64
		wantErr     bool
		wantContain []string
		wantRows    int
	}{
		{
			name:        "default window",
			wantContain: []string{"address    .0", "0000000000 48 65 6C 6C 6F", "Hello, world! Th"},
			wantRows:    4,
		},
		{
			name:        "offset and length",
			offset:      7,
			length:      5,
			wantContain: []string{"0000000007 77 6F 72 6C 64", "world"},
			wantRows:    1,
		},
		{
			name:    "past end",
			offset:  50,
			length:  10,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			dumpOffset, dumpLength = tt.offset, tt.length
			img := testFile(t, "a.bin", data)

			output, err := captureOutput(t, func() error {
				return runDump([]string{img})
			})
			if tt.wantErr {
				require.ErrorIs(t, err, types.ErrRange)
				return
			}
			require.NoError(t, err)
			assertContains(t, output, tt.wantContain)

			lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
			assert.Len(t, lines, tt.wantRows+1)
		})
	}
}

func TestDumpSpansWindows(t *testing.T) {
	resetFlags(t)
	t.Setenv("HEXCHUNK_CHUNK_SIZE", "16")
	dumpLength = 40
	img := testFile(t, "a.bin", make([]byte, 64))

	output, err := captureOutput(t, func() error {
		return runDump([]string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"0000000000 ", "0000000010 ", "0000000020 00 00 00 00 00 00 00 00  "})
	assert.Equal(t, 1, strings.Count(output, "address"))
}
