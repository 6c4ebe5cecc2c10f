package main

import (
	"strconv"

	"github.com/gael12334/hexchunk/internal/numarg"
)

// offsetValue is a pflag.Value for byte positions and lengths. It parses
// with the same strict rules as the prompt, so "010", "0x400" and "+5" are
// rejected instead of being read as octal, hex or signed input.
type offsetValue struct {
	p *int64
}

func newOffsetValue(p *int64, def int64) *offsetValue {
	*p = def
	return &offsetValue{p: p}
}

func (v *offsetValue) Set(s string) error {
	n, err := numarg.Offset(s)
	if err != nil {
		return err
	}
	*v.p = n
	return nil
}

func (v *offsetValue) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatInt(*v.p, 10)
}

func (v *offsetValue) Type() string { return "bytes" }
