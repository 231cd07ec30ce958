package fdr

// MaxPatternLen is the longest pattern the FDR engine can encode: the
// 128-bit state register has room for only 8 byte-lanes per bucket, so a
// pattern beyond this length has no lane to verify at. Patterns longer
// than this should be rejected by the caller before Compile is called;
// Compile itself also refuses them with ErrPatternTooLong.
const MaxPatternLen = 8

// Pattern is an immutable byte sequence together with the index it held in
// the caller's original pattern list. That index, not the bucket-local
// position, is what match reports surface as the pattern id.
type Pattern struct {
	Bytes []byte
	ID    int
}

func newPatterns(raw [][]byte) []Pattern {
	patterns := make([]Pattern, len(raw))
	for i, p := range raw {
		patterns[i] = Pattern{Bytes: p, ID: i}
	}
	return patterns
}
