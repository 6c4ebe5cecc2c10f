package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/internal/logger"
	"github.com/gael12334/hexchunk/internal/shell"
)

func init() {
	rootCmd.AddCommand(newReplCmd())
}

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl [file]",
		Short: "Start the interactive prompt",
		Long: `The repl command starts an interactive prompt for moving through a file
and scanning it. Type help at the prompt for the list of commands.

Example:
  hexctl repl
  hexctl repl disk.img`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.Context(), args)
		},
	}
	return cmd
}

func runRepl(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p, err := printer.New(os.Stdout, cfg.PrinterOptions())
	if err != nil {
		return err
	}

	sess := newSession(cfg, "")
	sh := shell.New(sess, os.Stdin, os.Stdout, shell.Options{
		Printer: p,
		Logger:  logger.L,
	})
	if len(args) == 1 {
		if err := sess.Open(args[0]); err != nil {
			return err
		}
		printInfo("open: file %s loaded\n", args[0])
	}
	return sh.Run(ctx)
}
