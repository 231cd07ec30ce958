package fdr

import (
	"bytes"

	"github.com/coregx/fdrscan/internal/conv"
)

// NaiveScan reports every (start, pattern_id) pair by a plain double loop:
// for each pattern, scan every offset it could fit at and compare bytes
// directly. It exists purely as the correctness oracle Scan is fuzzed
// against, and is never used on a hot path.
func NaiveScan(patterns [][]byte, buffer []byte) []Match {
	var matches []Match
	for id, p := range patterns {
		if len(p) == 0 || len(p) > len(buffer) {
			continue
		}
		for start := 0; start+len(p) <= len(buffer); start++ {
			if bytes.Equal(buffer[start:start+len(p)], p) {
				matches = append(matches, Match{Start: conv.IntToUint64(start), PatternID: conv.IntToUint32(id)})
			}
		}
	}
	sortMatches(matches)
	return matches
}
