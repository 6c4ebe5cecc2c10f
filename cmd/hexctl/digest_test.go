package main

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestDigestCommand(t *testing.T) {
	resetFlags(t)
	data := make([]byte, 3000)
	for i := range data {
		data[i] = byte(i % 251)
	}
	img := testFile(t, "a.bin", data)

	whole := blake3.Sum256(data)
	output, err := captureOutput(t, func() error {
		return runDigest(context.Background(), []string{img})
	})
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(whole[:])+"  "+img+"\n", output)

	digestOffset, digestLength = 100, 1500
	jsonOut = true
	part := blake3.Sum256(data[100:1600])
	output, err = captureOutput(t, func() error {
		return runDigest(context.Background(), []string{img})
	})
	require.NoError(t, err)

	var got map[string]interface{}
	assertJSON(t, output, &got)
	assert.Equal(t, hex.EncodeToString(part[:]), got["blake3"])
	assert.Equal(t, float64(1600), got["end"])

	digestOffset, digestLength = 2999, 2
	_, err = captureOutput(t, func() error {
		return runDigest(context.Background(), []string{img})
	})
	require.Error(t, err)
}
