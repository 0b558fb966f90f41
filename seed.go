package corebench

import (
	"fmt"
	"math"
)

// ParseSeed parses a command line value: decimal or 0x-prefixed lower-case
// hex, an optional leading '-', and an optional K (x1024) or M (x1024*1024)
// suffix. Values wrap to 32 bits.
func ParseSeed(s string) (int32, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSeed)
	}
	in := s

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	base := int64(10)
	if len(s) >= 2 && s[0] == '0' && s[1] == 'x' {
		base = 16
		s = s[2:]
	}

	var v int64
	digits := 0
	for ; len(s) > 0; s = s[1:] {
		d, ok := digit(s[0], base)
		if !ok {
			break
		}
		v = (v*base + d) & math.MaxUint32
		digits++
	}
	if digits == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, in)
	}

	switch s {
	case "":
	case "K":
		v <<= 10
	case "M":
		v <<= 20
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, in)
	}

	r := int32(uint32(v)) //nolint:gosec // wraps like a 32-bit accumulator
	if neg {
		r = -r
	}
	return r, nil
}

func digit(c byte, base int64) (int64, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int64(c - '0'), true
	case base == 16 && c >= 'a' && c <= 'f':
		return int64(c-'a') + 10, true
	default:
		return 0, false
	}
}
