// Package shell implements the interactive command prompt.
//
// Each input line is split on whitespace; the first word names a command
// and the rest are its arguments. Lines are dispatched through a cobra
// command tree built from the command table, so every command gets the
// same argument checking and help text. After every command the shell
// reports success or the error that stopped it.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/pkg/session"
)

// Prompt is printed before each line is read.
const Prompt = "command > "

// Options configures a Shell.
type Options struct {
	Printer *printer.Printer
	Logger  *slog.Logger
	// Prompt overrides the default prompt. Use a single space to keep the
	// prompt but make it unobtrusive.
	Prompt string
}

// Shell reads commands from an input and applies them to a session.
type Shell struct {
	sess    *session.Session
	in      *bufio.Reader
	out     io.Writer
	printer *printer.Printer
	log     *slog.Logger
	prompt  string
	done    bool
}

// New creates a shell over sess. The shell becomes the session's overwrite
// confirmer and asks on out, reading the answer from in.
func New(sess *session.Session, in io.Reader, out io.Writer, opts Options) *Shell {
	p := opts.Printer
	if p == nil {
		p, _ = printer.New(out, printer.DefaultOptions())
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = Prompt
	}
	sh := &Shell{
		sess:    sess,
		in:      bufio.NewReader(in),
		out:     out,
		printer: p,
		log:     log,
		prompt:  prompt,
	}
	sess.SetConfirmer(sh)
	return sh
}

// Run reads and executes lines until quit or end of input, then closes any
// open file.
func (sh *Shell) Run(ctx context.Context) error {
	defer func() {
		if sh.sess.IsOpen() {
			_ = sh.sess.Close()
		}
	}()

	for !sh.done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(sh.out, sh.prompt)
		line, err := sh.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			sh.Exec(ctx, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out)
				return nil
			}
			return err
		}
	}
	return nil
}

// Done reports whether quit was executed.
func (sh *Shell) Done() bool { return sh.done }

// Exec runs a single command line and prints its outcome.
func (sh *Shell) Exec(ctx context.Context, line string) {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return
	}
	name := argv[0]

	if name == "quit" {
		sh.done = true
		return
	}
	if _, ok := lookup(name); !ok {
		fmt.Fprintf(sh.out, "error: unrecognised command %s.\n", name)
		return
	}

	root := sh.commandTree()
	root.SetArgs(argv)
	err := root.ExecuteContext(ctx)
	sh.log.Debug("command", "name", name, "args", argv[1:], "error", err)

	if err != nil {
		fmt.Fprintf(sh.out, "error: command %s failed: %v.\n", name, err)
		return
	}
	fmt.Fprintf(sh.out, "info: command %s succeeded.\n", name)
}

// ConfirmOverwrite asks on the shell's output and reads the answer from
// its input. Anything but y or yes declines.
func (sh *Shell) ConfirmOverwrite(path string) bool {
	fmt.Fprintf(sh.out, "file %s exists, overwrite? [y/N] ", path)
	answer, err := sh.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (sh *Shell) commandTree() *cobra.Command {
	root := &cobra.Command{
		Use:           "hexchunk",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(sh.out)
	root.SetErr(sh.out)

	for _, c := range commands {
		cmd := &cobra.Command{
			Use:                c.name,
			Short:              c.desc,
			DisableFlagParsing: true,
			Args: func(_ *cobra.Command, args []string) error {
				return c.checkArgs(args)
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.run(cmd.Context(), sh, args)
			},
		}
		if c.name == "help" {
			root.SetHelpCommand(cmd)
			continue
		}
		root.AddCommand(cmd)
	}
	return root
}
