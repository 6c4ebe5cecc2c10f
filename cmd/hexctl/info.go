package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk/report"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarise the zero and data runs of a file",
		Long: `The info command scans a file without writing a report and displays its
size, the number of windows, and totals for the zero and data runs found.

Example:
  hexctl info disk.img
  hexctl info disk.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), args)
		},
	}
	return cmd
}

type fileInfo struct {
	File          string `json:"file"`
	Size          int64  `json:"size"`
	ChunkSize     int64  `json:"chunk_size"`
	Chunks        int64  `json:"chunks"`
	DataRuns      int    `json:"data_runs"`
	ZeroRuns      int    `json:"zero_runs"`
	ZeroBytes     int64  `json:"zero_bytes"`
	DataBytes     int64  `json:"data_bytes"`
	LargestOffset int64  `json:"largest_zero_run_offset"`
	LargestBytes  int64  `json:"largest_zero_run_bytes"`
	TrailingZeros int64  `json:"trailing_zero_bytes"`
}

func runInfo(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	printVerbose("Opening file: %s\n", path)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess := newSession(cfg, "")
	if err := sess.Open(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer sess.Close()

	var c report.Collector
	res, err := sess.ScanTo(ctx, 0, 0, &c)
	if err != nil {
		logError("info", err)
		return fmt.Errorf("scan failed: %w", err)
	}
	sum := report.Summarize(c.Records, res.Bytes)

	info := fileInfo{
		File:          path,
		Size:          sess.Size(),
		ChunkSize:     sess.ChunkSize(),
		Chunks:        res.Chunks,
		DataRuns:      sum.DataRuns,
		ZeroRuns:      sum.ZeroRuns,
		ZeroBytes:     sum.ZeroBytes,
		DataBytes:     sum.DataBytes,
		LargestOffset: sum.LargestRun.Offset,
		LargestBytes:  sum.LargestRun.Bytes,
		TrailingZeros: sum.TrailingZeroBytes,
	}

	// Output as JSON if requested
	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nFile Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Size: %s\n", formatSize(info.Size))
	printInfo("  Windows: %d x %d bytes\n", info.Chunks, info.ChunkSize)

	printInfo("\nRuns:\n")
	printInfo("  Data runs: %d (%s)\n", info.DataRuns, formatSize(info.DataBytes))
	printInfo("  Zero runs: %d (%s)\n", info.ZeroRuns, formatSize(info.ZeroBytes))
	if info.ZeroRuns > 0 {
		printInfo("  Largest zero run: %s at 0x%x\n", formatSize(info.LargestBytes), info.LargestOffset)
	}
	if info.TrailingZeros > 0 {
		printInfo("  Trailing zeros: %s\n", formatSize(info.TrailingZeros))
	}
	return nil
}
