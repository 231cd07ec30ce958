package fdr

import (
	"bytes"
	"fmt"

	"github.com/coregx/fdrscan/internal/conv"
	"github.com/coregx/fdrscan/internal/errs"
)

// verifyBucket exactly compares buffer[start:start+bucket.Length] against
// every pattern in bucket, emitting a Match for each equal pattern.
//
// The bit-parallel scanner is exact over super-characters but conflates
// patterns that share all pairwise super-characters; this is the
// disambiguation step. Complexity is bounded by bucket size x pattern
// length, which stays small because buckets are length-partitioned.
//
// start must be >= 0 and start+bucket.Length <= len(buffer); the scanner's
// initial-state suppression and mask padding guarantee this for any
// candidate it reports. A violation indicates a coding defect in the
// compiler or scanner, not a runtime condition callers can trigger, so it
// panics rather than returning an error (scan is documented as infallible
// given a valid Compiled artifact).
func verifyBucket(buffer []byte, start int, bucket Bucket) []Match {
	end := start + bucket.Length
	if start < 0 || end > len(buffer) {
		panic(fmt.Errorf("%w: candidate start=%d length=%d buffer=%d", errs.ErrInternalInvariant, start, bucket.Length, len(buffer)))
	}

	window := buffer[start:end]
	var out []Match
	for _, q := range bucket.Patterns {
		if bytes.Equal(window, q.Bytes) {
			out = append(out, Match{Start: conv.IntToUint64(start), PatternID: conv.IntToUint32(q.ID)})
		}
	}
	return out
}
