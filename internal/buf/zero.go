package buf

import "encoding/binary"

const wordSize = 8

// FirstNonZero returns the index of the first non-zero byte in b, or -1 when
// every byte is zero. Full 8-byte words are tested at once and only the
// word containing a hit is rescanned byte by byte.
func FirstNonZero(b []byte) int {
	i := 0
	for ; i+wordSize <= len(b); i += wordSize {
		if binary.LittleEndian.Uint64(b[i:]) != 0 {
			break
		}
	}
	for ; i < len(b); i++ {
		if b[i] != 0 {
			return i
		}
	}
	return -1
}

// AllZero reports whether b holds only zero bytes. An empty slice is all zero.
func AllZero(b []byte) bool {
	return FirstNonZero(b) < 0
}
