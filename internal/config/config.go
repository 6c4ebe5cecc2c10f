// Package config loads inspector settings from defaults, an optional TOML
// file, and HEXCHUNK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/chunk/printer"
	"github.com/gael12334/hexchunk/chunk/report"
)

const (
	MinChunkSize = 16
	MaxChunkSize = 1 << 24
)

// Config holds the resolved settings.
type Config struct {
	ChunkSize        int
	ReportFormat     string
	NominalByteCount bool
	Charset          string
	Color            bool
	Mmap             bool
	LogDir           string
	Debug            bool
}

// file mirrors the TOML layout. Pointers distinguish absent keys from zero
// values.
type file struct {
	ChunkSize *int `toml:"chunk_size"`
	Report    struct {
		Format           *string `toml:"format"`
		NominalByteCount *bool   `toml:"nominal_byte_count"`
	} `toml:"report"`
	Display struct {
		Charset *string `toml:"charset"`
		Color   *bool   `toml:"color"`
	} `toml:"display"`
	Source struct {
		Mmap *bool `toml:"mmap"`
	} `toml:"source"`
	Log struct {
		Dir   *string `toml:"dir"`
		Debug *bool   `toml:"debug"`
	} `toml:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ChunkSize:    chunk.DefaultSize,
		ReportFormat: string(report.FormatText),
		Charset:      string(printer.CharsetASCII),
		Color:        true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hexchunk/config.toml, falling back
// to ~/.config. It returns "" when neither can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexchunk", "config.toml")
}

// Load resolves settings. A missing file at path is not an error; an
// unreadable or malformed one is. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	var raw file
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	setInt(&c.ChunkSize, raw.ChunkSize)
	setString(&c.ReportFormat, raw.Report.Format)
	setBool(&c.NominalByteCount, raw.Report.NominalByteCount)
	setString(&c.Charset, raw.Display.Charset)
	setBool(&c.Color, raw.Display.Color)
	setBool(&c.Mmap, raw.Source.Mmap)
	setString(&c.LogDir, raw.Log.Dir)
	setBool(&c.Debug, raw.Log.Debug)
	return nil
}

func (c *Config) applyEnv() {
	overrideInt(&c.ChunkSize, "HEXCHUNK_CHUNK_SIZE")
	overrideString(&c.ReportFormat, "HEXCHUNK_REPORT_FORMAT")
	overrideBool(&c.NominalByteCount, "HEXCHUNK_NOMINAL_BYTES")
	overrideString(&c.Charset, "HEXCHUNK_CHARSET")
	overrideBool(&c.Color, "HEXCHUNK_COLOR")
	overrideBool(&c.Mmap, "HEXCHUNK_MMAP")
	overrideString(&c.LogDir, "HEXCHUNK_LOG_DIR")
	overrideBool(&c.Debug, "HEXCHUNK_DEBUG")
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.ChunkSize < MinChunkSize || c.ChunkSize > MaxChunkSize {
		return fmt.Errorf("config: chunk_size %d outside [%d, %d]", c.ChunkSize, MinChunkSize, MaxChunkSize)
	}
	if _, err := report.ParseFormat(c.ReportFormat); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := printer.ParseCharset(c.Charset); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Format returns the parsed report format. Validate must have succeeded.
func (c *Config) Format() report.Format {
	f, _ := report.ParseFormat(c.ReportFormat)
	return f
}

// PrinterOptions derives row rendering options.
func (c *Config) PrinterOptions() printer.Options {
	opts := printer.DefaultOptions()
	opts.Charset, _ = printer.ParseCharset(c.Charset)
	opts.Color = c.Color
	return opts
}

func setInt(dest *int, v *int) {
	if v != nil {
		*dest = *v
	}
}

func setString(dest *string, v *string) {
	if v != nil {
		*dest = *v
	}
}

func setBool(dest *bool, v *bool) {
	if v != nil {
		*dest = *v
	}
}

func overrideString(dest *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dest = val
	}
}

func overrideBool(dest *bool, key string) {
	if val := os.Getenv(key); val != "" {
		switch strings.ToLower(val) {
		case "1", "true", "yes", "y", "on":
			*dest = true
		case "0", "false", "no", "n", "off":
			*dest = false
		}
	}
}

func overrideInt(dest *int, key string) {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			*dest = parsed
		}
	}
}
