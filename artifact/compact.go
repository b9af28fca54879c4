// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package artifact

const (
	COMPACT_DIGITS = "abcd" // Symbols for 0, 1, 2 and 3.
	COMPACT_WIDTH  = 5      // Symbols per field; covers a payload and MEMORY_SIZE.
	COMPACT_BITS   = 2      // Bits per symbol.
)

// Compact renders the low COMPACT_WIDTH*COMPACT_BITS bits of value in base
// 4, most significant pair first.
func Compact(value int) string {
	var buf [COMPACT_WIDTH]byte
	for n := COMPACT_WIDTH - 1; n >= 0; n-- {
		buf[n] = COMPACT_DIGITS[value&3]
		value >>= COMPACT_BITS
	}
	return string(buf[:])
}
