// Package conv provides safe integer conversion helpers for the FDR
// matcher's match reporting path.
//
// These functions bounds-check before narrowing/widening so a corrupt
// pattern index or a negative offset panics loudly at the conversion site
// instead of silently wrapping into a bogus Match.
package conv

import "math"

// IntToUint32 safely converts an int to uint32. Used to convert a
// pattern's original-list index into fdr.Match.PatternID.
//
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint64 safely converts an int to uint64. Used to convert a verified
// candidate's start offset into fdr.Match.Start.
//
// Panics if n < 0.
func IntToUint64(n int) uint64 {
	if n < 0 {
		panic("integer overflow: negative int cannot convert to uint64")
	}
	return uint64(n)
}
