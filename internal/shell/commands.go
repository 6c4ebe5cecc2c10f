package shell

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/gael12334/hexchunk/internal/numarg"
	"github.com/gael12334/hexchunk/pkg/types"
)

// command is one entry of the command table. Argument counts include the
// command name itself, as shown in error messages.
type command struct {
	name    string
	args    string
	desc    string
	minArgc int
	maxArgc int
	run     func(ctx context.Context, sh *Shell, args []string) error
}

func (c command) checkArgs(args []string) error {
	argc := len(args) + 1
	switch {
	case argc < c.minArgc:
		return types.InvalidArgs(argc, c.minArgc)
	case argc > c.maxArgc:
		return types.InvalidArgs(argc, c.maxArgc)
	}
	return nil
}

var commands []command

func init() {
	commands = []command{
		{name: "open", args: "P", desc: "open P file.", minArgc: 2, maxArgc: 2, run: cmdOpen},
		{name: "close", desc: "close file.", minArgc: 1, maxArgc: 1, run: cmdClose},
		{name: "skip", args: "N", desc: "skip N bytes.", minArgc: 2, maxArgc: 2, run: cmdSkip},
		{name: "next", args: "N", desc: "show next N bytes.", minArgc: 2, maxArgc: 2, run: cmdNext},
		{name: "set", args: "X", desc: "set offset to X.", minArgc: 2, maxArgc: 2, run: cmdSet},
		{name: "tell", desc: "show current offset.", minArgc: 1, maxArgc: 1, run: cmdTell},
		{name: "scan", args: "P [X]", desc: "report zero runs from the offset to P.", minArgc: 2, maxArgc: 3, run: cmdScan},
		{name: "scanall", args: "P [X]", desc: "report zero runs of the whole file to P.", minArgc: 2, maxArgc: 3, run: cmdScanAll},
		{name: "sum", args: "[X]", desc: "show BLAKE3 of X bytes from the offset.", minArgc: 1, maxArgc: 2, run: cmdSum},
		{name: "help", desc: "show this list.", minArgc: 1, maxArgc: 2, run: cmdHelp},
		{name: "quit", desc: "leave.", minArgc: 1, maxArgc: 1, run: cmdQuit},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func cmdOpen(_ context.Context, sh *Shell, args []string) error {
	if err := sh.sess.Open(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "open: file %s loaded\n", args[0])
	return nil
}

func cmdClose(_ context.Context, sh *Shell, _ []string) error {
	path := sh.sess.Path()
	if err := sh.sess.Close(); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "close: file %s unloaded\n", path)
	return nil
}

func cmdSet(_ context.Context, sh *Shell, args []string) error {
	off, err := numarg.Offset(args[0])
	if err != nil {
		return err
	}
	return sh.sess.Set(off)
}

func cmdSkip(_ context.Context, sh *Shell, args []string) error {
	n, err := numarg.Length(args[0])
	if err != nil {
		return err
	}
	return sh.sess.Skip(n)
}

func cmdNext(_ context.Context, sh *Shell, args []string) error {
	n, err := numarg.Length(args[0])
	if err != nil {
		return err
	}
	w, err := sh.sess.Next(n)
	if err != nil {
		return err
	}
	return sh.printer.PrintWindow(w)
}

func cmdTell(_ context.Context, sh *Shell, _ []string) error {
	if !sh.sess.IsOpen() {
		return types.ErrNoSource
	}
	pos := sh.sess.Position()
	fmt.Fprintf(sh.out, "current offset: %d (%X)\n", pos, pos)
	return nil
}

func cmdScan(ctx context.Context, sh *Shell, args []string) error {
	return scanFrom(ctx, sh, sh.sess.Position(), args)
}

func cmdScanAll(ctx context.Context, sh *Shell, args []string) error {
	return scanFrom(ctx, sh, 0, args)
}

func scanFrom(ctx context.Context, sh *Shell, start int64, args []string) error {
	if !sh.sess.IsOpen() {
		return types.ErrNoSource
	}
	var length int64
	if len(args) == 2 {
		n, err := numarg.Offset(args[1])
		if err != nil {
			return err
		}
		length = n
	}
	n, err := sh.sess.BeginScan(ctx, start, length, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "scan: %d records written to %s\n", n, args[0])
	return nil
}

func cmdSum(ctx context.Context, sh *Shell, args []string) error {
	if !sh.sess.IsOpen() {
		return types.ErrNoSource
	}
	var length int64
	if len(args) == 1 {
		n, err := numarg.Offset(args[0])
		if err != nil {
			return err
		}
		length = n
	}
	start := sh.sess.Position()
	sum, err := sh.sess.Digest(ctx, start, length)
	if err != nil {
		return err
	}
	end := sh.sess.Size()
	if length > 0 {
		end = start + length
	}
	fmt.Fprintf(sh.out, "sum: blake3 [%d, %d) %s\n", start, end, hex.EncodeToString(sum[:]))
	return nil
}

func cmdHelp(_ context.Context, sh *Shell, _ []string) error {
	for _, c := range commands {
		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}
		fmt.Fprintf(sh.out, "%-14s %s\n", usage, c.desc)
	}
	fmt.Fprint(sh.out, "Note:\n"+
		"P = argument is a path\n"+
		"N = argument is a signed number\n"+
		"X = argument is a non-negative number\n"+
		"[.] = argument is optional\n")
	return nil
}

func cmdQuit(_ context.Context, sh *Shell, _ []string) error {
	sh.done = true
	return nil
}
