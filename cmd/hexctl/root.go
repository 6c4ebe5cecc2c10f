package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk/report"
	"github.com/gael12334/hexchunk/internal/config"
	"github.com/gael12334/hexchunk/internal/logger"
	"github.com/gael12334/hexchunk/pkg/session"
	"github.com/gael12334/hexchunk/pkg/types"
)

var (
	// Global flags
	cfgPath string
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
	debug   bool
)

// confirmOverwrite asks before a report replaces an existing file.
var confirmOverwrite types.Confirmer = types.ConfirmFunc(stdinConfirm)

var rootCmd = &cobra.Command{
	Use:   "hexctl",
	Short: "Inspect binary files and report their zero-filled regions",
	Long: `hexctl pages through binary files in fixed-size windows, prints them as
hex and text, and scans them for zero-filled runs, writing a compact report of
where data starts and where each zero run ends.`,
	Version:           version,
	PersistentPreRunE: setupLogging,
	SilenceUsage:      true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs")
}

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logger.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := logger.Init(logger.Options{
		Enabled: cfg.Debug,
		LogDir:  cfg.LogDir,
		Debug:   cfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	if path != "" {
		printVerbose("Logging to %s\n", path)
	}
	logger.Debug("command started", "command", cmd.Name(), "args", args)
	return nil
}

// loadConfig resolves the config file, environment and global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if noColor {
		cfg.Color = false
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// newSession builds a session from the resolved configuration.
func newSession(cfg *config.Config, format report.Format) *session.Session {
	if format == "" {
		format = cfg.Format()
	}
	return session.New(session.Options{
		ChunkSize:        cfg.ChunkSize,
		Mmap:             cfg.Mmap,
		ReportFormat:     format,
		NominalByteCount: cfg.NominalByteCount,
		Logger:           logger.L,
		Confirm:          confirmOverwrite,
	})
}

// stdinConfirm prompts on stderr and reads a y/N answer from stdin.
func stdinConfirm(path string) bool {
	fmt.Fprintf(os.Stderr, "file %s exists, overwrite? [y/N] ", path)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// formatSize renders a byte count the way info and scan summaries show it.
func formatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// logError records a failed command in the debug log.
func logError(op string, err error) {
	if err != nil {
		logger.L.LogAttrs(context.Background(), slog.LevelWarn, op+" failed", slog.String("error", err.Error()))
	}
}
