package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/report"
	"github.com/gael12334/hexchunk/pkg/session"
	"github.com/gael12334/hexchunk/pkg/types"
)

var (
	scanReport string
	scanStart  int64
	scanLength int64
	scanFormat string
	scanForce  bool
)

func init() {
	cmd := newScanCmd()
	cmd.Flags().StringVarP(&scanReport, "report", "r", "", "Report file to write (required)")
	cmd.Flags().Var(newOffsetValue(&scanStart, 0), "start", "Offset to start scanning from")
	cmd.Flags().Var(newOffsetValue(&scanLength, 0), "length", "Bytes to scan (0 = to end of file)")
	cmd.Flags().StringVar(&scanFormat, "format", "", "Report format: text or sqlite (default from config)")
	cmd.Flags().BoolVarP(&scanForce, "force", "f", false, "Overwrite an existing report without asking")
	cmd.Flags().BoolVarP(&scanForce, "yes", "y", false, "Alias for --force")
	_ = cmd.MarkFlagRequired("report")
	rootCmd.AddCommand(cmd)
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Report the zero-filled runs of a file",
		Long: `The scan command reads a file one window at a time, classifies each
window as all-zero or containing data, and writes a record to the report on
every change: where each data run starts and how long each zero run was.

Example:
  hexctl scan disk.img --report disk.runs
  hexctl scan disk.img --report disk.db --format sqlite --force
  hexctl scan disk.img -r tail.runs --start 1048576 --length 4096`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), args)
		},
	}
	return cmd
}

type scanSummary struct {
	File    string `json:"file"`
	Report  string `json:"report"`
	Format  string `json:"format"`
	Start   int64  `json:"start"`
	Length  int64  `json:"length"`
	Records int64  `json:"records"`
}

func runScan(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := cfg.Format()
	if scanFormat != "" {
		if format, err = report.ParseFormat(scanFormat); err != nil {
			return err
		}
	}

	sess := newSession(cfg, format)
	if scanForce {
		sess.SetConfirmer(types.AlwaysOverwrite)
	}
	if verbose && !jsonOut {
		sess.SetOnWindow(scanProgress(sess))
	}

	printVerbose("Opening file: %s\n", path)
	if err := sess.Open(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer sess.Close()

	printVerbose("Scanning %s in %d-byte windows\n", formatSize(sess.Size()), sess.ChunkSize())
	records, err := sess.BeginScan(ctx, scanStart, scanLength, scanReport)
	logError("scan", err)
	if errors.Is(err, types.ErrOverwriteDeclined) {
		printError("%s exists; scan aborted, report left unchanged\n", scanReport)
		return nil
	}
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if jsonOut {
		return printJSON(scanSummary{
			File:    path,
			Report:  scanReport,
			Format:  string(format),
			Start:   scanStart,
			Length:  scanLength,
			Records: records,
		})
	}
	printInfo("Wrote %d records to %s\n", records, scanReport)
	return nil
}

// scanProgress prints a verbose line each time the scan passes another
// tenth of the file.
func scanProgress(sess *session.Session) func(chunk.Window) {
	next := int64(10)
	return func(w chunk.Window) {
		size := sess.Size()
		if size == 0 {
			return
		}
		pct := w.End() * 100 / size
		if pct < next {
			return
		}
		printVerbose("Scanned %d%% (%s)\n", pct, formatSize(w.End()))
		next = pct/10*10 + 10
	}
}
