package main

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	resetFlags(t)
	verbose = true

	output, err := captureOutput(t, runVersion)
	require.NoError(t, err)
	assertContains(t, output, []string{
		"hexctl ",
		runtime.Version(),
		"commit: ",
		"default window: 1024 bytes",
	})

	jsonOut = true
	output, err = captureOutput(t, runVersion)
	require.NoError(t, err)

	var got buildDetails
	assertJSON(t, output, &got)
	assert.Equal(t, runtime.Version(), got.GoVersion)
	assert.Equal(t, 1024, got.ChunkSize)
	assert.NotEmpty(t, got.Version)
}
