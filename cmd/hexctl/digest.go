package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	digestOffset int64
	digestLength int64
)

func init() {
	cmd := newDigestCmd()
	cmd.Flags().Var(newOffsetValue(&digestOffset, 0), "offset", "Offset of the first byte")
	cmd.Flags().Var(newOffsetValue(&digestLength, 0), "length", "Bytes to hash (0 = to end of file)")
	rootCmd.AddCommand(cmd)
}

func newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest <file>",
		Short: "Print the BLAKE3 hash of a range of a file",
		Long: `The digest command hashes a byte range with BLAKE3-256, reading it one
window at a time.

Example:
  hexctl digest disk.img
  hexctl digest disk.img --offset 1048576 --length 4096 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd.Context(), args)
		},
	}
	return cmd
}

func runDigest(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess := newSession(cfg, "")
	if err := sess.Open(path); err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer sess.Close()

	sum, err := sess.Digest(ctx, digestOffset, digestLength)
	if err != nil {
		logError("digest", err)
		return fmt.Errorf("digest failed: %w", err)
	}
	end := sess.Size()
	if digestLength > 0 {
		end = digestOffset + digestLength
	}
	digest := hex.EncodeToString(sum[:])

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":   path,
			"start":  digestOffset,
			"end":    end,
			"blake3": digest,
		})
	}
	printVerbose("Range: [%d, %d)\n", digestOffset, end)
	printInfo("%s  %s\n", digest, path)
	return nil
}
