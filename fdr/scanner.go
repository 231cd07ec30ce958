package fdr

import "github.com/coregx/fdrscan/bitreg"

// initialState seeds the state register so that, for each non-empty
// bucket b with canonical length L_b >= 2, byte-lanes 0..L_b-2 start
// "inconsistent" (bit set to 1), suppressing false positives at offsets
// where fewer than L_b bytes have been read yet.
func initialState(buckets [NumBuckets]Bucket) bitreg.Register {
	var s bitreg.Register
	for b := 0; b < NumBuckets; b++ {
		l := buckets[b].Length
		if l < 2 {
			continue
		}
		for p := 0; p <= l-2; p++ {
			s = s.SetBit(true, p, b)
		}
	}
	return s
}

// Scan reports every (start, pattern_id) pair where a compiled pattern
// matches the buffer, sorted by (start, pattern_id) with no duplicates.
// Scan is infallible given a valid Compiled artifact: the 128-bit state
// register, mask table, and buckets are all read-only during the call, so
// any number of Scan calls may run concurrently over the same *Compiled.
func Scan(compiled *Compiled, buffer []byte) []Match {
	return scanCore(compiled, buffer)
}

// scanCore runs the main 8-byte-stride loop: build the super-character
// mask for each byte, OR it into the shifted state register, check every
// bucket lane for a surviving candidate, then carry the register across
// the chunk boundary with a 64-bit shift.
func scanCore(compiled *Compiled, buffer []byte) []Match {
	d := compiled.DomainBits
	s := initialState(compiled.Buckets)

	var matches []Match
	n := len(buffer)
	for i := 0; i < n; i += 8 {
		chunkLen := 8
		if n-i < 8 {
			chunkLen = n - i
		}

		for j := 0; j < chunkLen; j++ {
			c1 := superChar(buffer, i+j, d)
			c0 := superCharNullAnchored(buffer[i+j], d)
			m := compiled.MaskTable[c1].And(compiled.MaskTable[c0])
			s = s.Or(m.Shl(uint(j * 8)))
		}

		for b := 0; b < NumBuckets; b++ {
			bucket := compiled.Buckets[b]
			if bucket.Length == 0 {
				continue
			}
			for p := 0; p < chunkLen; p++ {
				if s.Bit(p, b) {
					continue
				}
				start := p + i + 1 - bucket.Length
				matches = append(matches, verifyBucket(buffer, start, bucket)...)
			}
		}

		s = s.Shr(64)
	}

	sortMatches(matches)
	return matches
}
