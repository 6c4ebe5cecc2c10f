// Package buf contains overflow-safe offset arithmetic and word-wise byte
// scanning shared by the window reader and the zero-run scanner.
package buf

import (
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative values, returning ok = false on
// overflow or when either operand is negative.
func MulOverflowSafe(a, b int64) (int64, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt64/b {
		return 0, false
	}
	return a * b, true
}

// InRange reports whether low <= pos+length <= high. An overflowing sum is
// never in range.
func InRange(pos, length, low, high int64) bool {
	end, ok := AddOverflowSafe(pos, length)
	if !ok {
		return false
	}
	return low <= end && end <= high
}

// Span converts a signed window request into the half-open byte range it
// covers. A forward request (length >= 0) covers [pos, pos+length); a
// backward request covers [pos+length, pos).
func Span(pos, length int64) (start, end int64, ok bool) {
	other, ok := AddOverflowSafe(pos, length)
	if !ok {
		return 0, 0, false
	}
	if length < 0 {
		return other, pos, true
	}
	return pos, other, true
}

// SpanWithin reports whether the window [pos, pos+length) (or its backward
// form) lies entirely inside [0, size].
func SpanWithin(pos, length, size int64) bool {
	start, end, ok := Span(pos, length)
	if !ok {
		return false
	}
	return 0 <= start && end <= size
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int64) ([]byte, bool) {
	if off < 0 || n < 0 || off > int64(len(b)) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > int64(len(b)) {
		return nil, false
	}
	return b[off:end], true
}
