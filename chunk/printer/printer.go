// Package printer renders windows as hex/ASCII rows.
//
//	address    .0 .1 .2 .3 .4 .5 .6 .7 .8 .9 .A .B .C .D .E .F
//	0000000400 48 65 6C 6C 6F 00 00 00 00 00 00 00 00 00 00 00  Hello...........
//
// The ASCII column prints bytes 0x20-0x7E as themselves and everything else
// as '.', unless a code page is selected, in which case bytes 0x80-0xFF are
// decoded through it.
package printer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/encoding/charmap"

	"github.com/gael12334/hexchunk/chunk"
)

// Charset selects how the ASCII column shows high bytes.
type Charset string

const (
	CharsetASCII       Charset = "ascii"
	CharsetCP437       Charset = "cp437"
	CharsetLatin1      Charset = "latin1"
	CharsetWindows1252 Charset = "windows1252"
)

var charmaps = map[Charset]*charmap.Charmap{
	CharsetCP437:       charmap.CodePage437,
	CharsetLatin1:      charmap.ISO8859_1,
	CharsetWindows1252: charmap.Windows1252,
}

// ParseCharset validates a charset name. The empty string selects ASCII.
func ParseCharset(s string) (Charset, error) {
	c := Charset(strings.ToLower(s))
	if c == "" || c == CharsetASCII {
		return CharsetASCII, nil
	}
	if _, ok := charmaps[c]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown charset %q", s)
}

// Options controls row layout.
type Options struct {
	BytesPerRow int
	Charset     Charset
	Color       bool
	Header      bool
}

// DefaultOptions returns the classic 16-byte layout with a header line.
func DefaultOptions() Options {
	return Options{BytesPerRow: 16, Charset: CharsetASCII, Header: true}
}

var (
	addressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D7FF"))
	zeroStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
)

// Printer writes windows to an output.
type Printer struct {
	w    io.Writer
	opts Options
	cm   *charmap.Charmap
}

// New creates a Printer writing to w.
func New(w io.Writer, opts Options) (*Printer, error) {
	if opts.BytesPerRow <= 0 {
		opts.BytesPerRow = 16
	}
	cs, err := ParseCharset(string(opts.Charset))
	if err != nil {
		return nil, err
	}
	opts.Charset = cs
	return &Printer{w: w, opts: opts, cm: charmaps[cs]}, nil
}

// Options returns the effective options.
func (p *Printer) Options() Options { return p.opts }

// Header returns the column header line.
func (p *Printer) Header() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-10s", "address")
	for i := 0; i < p.opts.BytesPerRow; i++ {
		fmt.Fprintf(&sb, " .%X", i%16)
	}
	if p.opts.Color {
		return headerStyle.Render(sb.String())
	}
	return sb.String()
}

// Rows renders the valid bytes of w, one string per row.
func (p *Printer) Rows(w chunk.Window) []string {
	data := w.Bytes()
	per := p.opts.BytesPerRow
	rows := make([]string, 0, (len(data)+per-1)/per)
	for i := 0; i < len(data); i += per {
		end := min(i+per, len(data))
		rows = append(rows, p.row(w.Offset+int64(i), data[i:end]))
	}
	return rows
}

func (p *Printer) row(addr int64, b []byte) string {
	var sb strings.Builder

	a := fmt.Sprintf("%010x", addr)
	if p.opts.Color {
		a = addressStyle.Render(a)
	}
	sb.WriteString(a)

	for _, c := range b {
		h := fmt.Sprintf("%02X", c)
		if p.opts.Color && c == 0 {
			h = zeroStyle.Render(h)
		}
		sb.WriteByte(' ')
		sb.WriteString(h)
	}
	sb.WriteString(strings.Repeat("   ", p.opts.BytesPerRow-len(b)))
	sb.WriteString("  ")
	sb.WriteString(p.ASCII(b))
	return sb.String()
}

// ASCII renders the text column for b.
func (p *Printer) ASCII(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(p.glyph(c))
	}
	return sb.String()
}

func (p *Printer) glyph(c byte) rune {
	switch {
	case c >= 0x20 && c <= 0x7e:
		return rune(c)
	case c >= 0x80 && p.cm != nil:
		if r := p.cm.DecodeByte(c); r != unicode.ReplacementChar && unicode.IsGraphic(r) {
			return r
		}
	}
	return '.'
}

// PrintWindow writes the header (when enabled) and the rows of w.
func (p *Printer) PrintWindow(w chunk.Window) error {
	if p.opts.Header {
		if _, err := fmt.Fprintln(p.w, p.Header()); err != nil {
			return err
		}
	}
	for _, row := range p.Rows(w) {
		if _, err := fmt.Fprintln(p.w, row); err != nil {
			return err
		}
	}
	return nil
}
