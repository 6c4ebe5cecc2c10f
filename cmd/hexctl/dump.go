package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/printer"
)

var (
	dumpOffset int64
	dumpLength int64
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().Var(newOffsetValue(&dumpOffset, 0), "offset", "Offset of the first byte")
	cmd.Flags().Var(newOffsetValue(&dumpLength, 0), "length", "Bytes to show (0 = one window)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a range of a file as hex and text",
		Long: `The dump command prints bytes as rows of sixteen, with the address on the
left and the printable characters on the right. Long ranges are read one
window at a time.

Example:
  hexctl dump disk.img
  hexctl dump disk.img --offset 512 --length 64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := cfg.PrinterOptions()
	if jsonOut {
		opts.Color = false
	}
	p, err := printer.New(os.Stdout, opts)
	if err != nil {
		return err
	}

	sess := newSession(cfg, "")
	if err := sess.Open(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer sess.Close()

	length := dumpLength
	if length == 0 {
		length = min(sess.ChunkSize(), max(sess.Size()-dumpOffset, 0))
	}
	if length < 0 {
		return fmt.Errorf("length must not be negative")
	}

	printVerbose("Dumping %d bytes at offset %d\n", length, dumpOffset)
	if _, err := chunk.ScanLimit(sess.Size(), dumpOffset, length); err != nil {
		logError("dump", err)
		return err
	}
	fmt.Fprintln(os.Stdout, p.Header())
	for pos, end := dumpOffset, dumpOffset+length; pos < end; {
		w, err := sess.Window(pos, min(sess.ChunkSize(), end-pos))
		if err != nil {
			logError("dump", err)
			return err
		}
		for _, row := range p.Rows(w) {
			fmt.Fprintln(os.Stdout, row)
		}
		pos = w.End()
	}
	return nil
}
