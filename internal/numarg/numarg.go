// Package numarg parses the integer arguments typed at the prompt.
//
// Only canonical decimal integers are accepted: digits with no leading
// zero, and a single leading '-' where a signed value makes sense. Anything
// else, including '+', "-0", leading zeros, surrounding spaces, hex
// prefixes and values that overflow int64, is rejected with
// types.ErrInvalidNumber.
package numarg

import (
	"strconv"

	"github.com/gael12334/hexchunk/pkg/types"
)

// Parse converts s. When signed is false a leading '-' is rejected.
func Parse(s string, signed bool) (int64, error) {
	digits := s
	if signed && len(s) > 0 && s[0] == '-' {
		digits = s[1:]
	}
	if digits == "" || (digits[0] == '0' && len(s) > 1) {
		return 0, types.InvalidNumber(s, nil)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, types.InvalidNumber(s, nil)
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, types.InvalidNumber(s, err)
	}
	return n, nil
}

// Offset parses a non-negative position.
func Offset(s string) (int64, error) { return Parse(s, false) }

// Length parses a signed length or displacement.
func Length(s string) (int64, error) { return Parse(s, true) }
