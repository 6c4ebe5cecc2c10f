package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/internal/config"
	"github.com/gael12334/hexchunk/internal/logger"
	"github.com/gael12334/hexchunk/pkg/session"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("hexexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	if _, err := logger.Init(logger.Options{
		Enabled: debugMode || cfg.Debug,
		LogDir:  cfg.LogDir,
		Debug:   true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	defer logger.Close()

	path := filteredArgs[0]
	logger.Info("starting hexexplorer", "path", path, "debug", debugMode)

	sess := session.New(session.Options{
		ChunkSize: cfg.ChunkSize,
		Mmap:      cfg.Mmap,
		Logger:    logger.L,
	})
	if err := sess.Open(path); err != nil {
		logger.Error("open failed", "path", path, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p, err := printer.New(io.Discard, cfg.PrinterOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create the Bubbletea program
	prog := tea.NewProgram(
		NewModel(sess, p),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := prog.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		_ = sess.Close()
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("hexexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: hexexplorer [options] <file>\n")
	fmt.Fprintf(os.Stderr, "Try 'hexexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("hexexplorer - Interactive TUI for paging through binary files")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  hexexplorer [options] <file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Shows a file one window at a time as hex and text, marking each")
	fmt.Println("  window as all-zero or holding data.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↓/j/space   Next window")
	fmt.Println("    ↑/k         Previous window")
	fmt.Println("    g, G        Start / end of file")
	fmt.Println("    n, z        Next data / all-zero window")
	fmt.Println("    y           Copy the window offset")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.hexchunk/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("For scans and reports, use the 'hexctl' command instead.")
}
