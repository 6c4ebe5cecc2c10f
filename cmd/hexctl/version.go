package main

import (
	"runtime"
	rtdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/gael12334/hexchunk/chunk"
)

// Set through -ldflags "-X main.version=..." at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func init() {
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion()
		},
	}
}

type buildDetails struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Built     string `json:"built"`
	GoVersion string `json:"go_version"`
	ChunkSize int    `json:"default_chunk_size"`
}

// currentBuild fills in module and VCS details from the binary when the
// release flags were not set.
func currentBuild() buildDetails {
	b := buildDetails{
		Version:   version,
		Commit:    commit,
		Built:     date,
		GoVersion: runtime.Version(),
		ChunkSize: chunk.DefaultSize,
	}
	info, ok := rtdebug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "none":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Built == "unknown":
			b.Built = s.Value
		}
	}
	return b
}

func runVersion() error {
	b := currentBuild()
	if jsonOut {
		return printJSON(b)
	}
	printInfo("hexctl %s (%s)\n", b.Version, b.GoVersion)
	printInfo("  commit: %s\n", b.Commit)
	printInfo("  built:  %s\n", b.Built)
	printVerbose("  default window: %d bytes\n", b.ChunkSize)
	return nil
}
