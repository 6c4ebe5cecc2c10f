package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/report"
	"github.com/gael12334/hexchunk/pkg/types"
)

func zeroThenData() []byte {
	data := make([]byte, 2048)
	for i := 1024; i < len(data); i++ {
		data[i] = 0xFF
	}
	return data
}

func TestScanCommand(t *testing.T) {
	resetFlags(t)
	img := testFile(t, "disk.img", zeroThenData())
	scanReport = filepath.Join(t.TempDir(), "disk.runs")

	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Wrote 2 records to " + scanReport})

	recs, err := report.ReadTextFile(scanReport)
	require.NoError(t, err)
	assert.Equal(t, []chunk.Record{
		{Kind: chunk.ZeroRunEnd, Offset: 0, Chunks: 1, Bytes: 1024},
		{Kind: chunk.DataStart, Offset: 1024},
	}, recs)
}

func TestScanCommandSQLiteJSON(t *testing.T) {
	resetFlags(t)
	img := testFile(t, "disk.img", zeroThenData())
	scanReport = filepath.Join(t.TempDir(), "disk.db")
	scanFormat = "sqlite"
	scanStart = 1024
	jsonOut = true

	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.NoError(t, err)

	var got scanSummary
	assertJSON(t, output, &got)
	assert.Equal(t, "sqlite", got.Format)
	assert.Equal(t, int64(1), got.Records)

	recs, err := report.ReadSQLite(context.Background(), scanReport)
	require.NoError(t, err)
	assert.Equal(t, []chunk.Record{{Kind: chunk.DataStart, Offset: 1024}}, recs)
}

func TestScanCommandOverwrite(t *testing.T) {
	resetFlags(t)
	orig := confirmOverwrite
	confirmOverwrite = types.NeverOverwrite
	t.Cleanup(func() { confirmOverwrite = orig })

	img := testFile(t, "disk.img", zeroThenData())
	scanReport = testFile(t, "existing.runs", []byte("keep\n"))

	_, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.NoError(t, err, "a declined overwrite is not a failure")
	raw, err := os.ReadFile(scanReport)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(raw))

	scanForce = true
	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{"Wrote 2 records"})
}

func TestScanCommandErrors(t *testing.T) {
	resetFlags(t)
	img := testFile(t, "small.img", make([]byte, 10))
	scanReport = filepath.Join(t.TempDir(), "r.runs")

	scanStart, scanLength = 5, 10
	_, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.ErrorIs(t, err, types.ErrRange)
	_, statErr := os.Stat(scanReport)
	assert.True(t, os.IsNotExist(statErr))

	scanStart, scanLength = 0, 0
	scanFormat = "xml"
	_, err = captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.Error(t, err)

	scanFormat = ""
	_, err = captureOutput(t, func() error {
		return runScan(context.Background(), []string{filepath.Join(t.TempDir(), "missing")})
	})
	require.Error(t, err)
}

func TestScanCommandVerboseProgress(t *testing.T) {
	resetFlags(t)
	img := testFile(t, "disk.img", zeroThenData())
	scanReport = filepath.Join(t.TempDir(), "disk.runs")
	verbose = true

	output, err := captureOutput(t, func() error {
		return runScan(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assertContains(t, output, []string{
		"Scanned 50% (1.0 KB)",
		"Scanned 100% (2.0 KB)",
		"Wrote 2 records",
	})
}
