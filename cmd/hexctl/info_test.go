package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoCommand(t *testing.T) {
	resetFlags(t)
	data := make([]byte, 5*1024)
	data[10] = 1   // window 0 holds data
	data[4100] = 2 // window 4 holds data
	img := testFile(t, "a.bin", data)

	output, err := captureOutput(t, func() error {
		return runInfo(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"File Information:",
		"Size: 5.0 KB",
		"Windows: 5 x 1024 bytes",
		"Data runs: 2 (2.0 KB)",
		"Zero runs: 1 (3.0 KB)",
		"Largest zero run: 3.0 KB at 0x400",
	})

	jsonOut = true
	output, err = captureOutput(t, func() error {
		return runInfo(context.Background(), []string{img})
	})
	require.NoError(t, err)

	var got fileInfo
	assertJSON(t, output, &got)
	assert.Equal(t, fileInfo{
		File:          img,
		Size:          5120,
		ChunkSize:     1024,
		Chunks:        5,
		DataRuns:      2,
		ZeroRuns:      1,
		ZeroBytes:     3072,
		DataBytes:     2048,
		LargestOffset: 1024,
		LargestBytes:  3072,
	}, got)
}

func TestInfoEmptyFile(t *testing.T) {
	resetFlags(t)
	img := testFile(t, "empty.bin", nil)

	output, err := captureOutput(t, func() error {
		return runInfo(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Size: 0 bytes", "Windows: 0 x 1024 bytes", "Zero runs: 0"})
}

func TestInfoTrailingZeros(t *testing.T) {
	resetFlags(t)
	data := make([]byte, 3*1024)
	data[0] = 1
	img := testFile(t, "tail.bin", data)

	output, err := captureOutput(t, func() error {
		return runInfo(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Zero runs: 1 (2.0 KB)", "Trailing zeros: 2.0 KB"})
}
