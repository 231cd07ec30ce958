// Package fdr implements the FDR ("bit-parallel shift-or") multi-literal
// matcher: a bucketed, mask-table-driven 128-bit state register that
// advances 8 bytes per scan step, followed by exact verification of
// survivors.
//
// Typical usage:
//
//	compiled, err := fdr.Compile([][]byte{[]byte("GET "), []byte("POST")}, fdr.DefaultDomainBits, fdr.ByLength)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matches := fdr.Scan(compiled, []byte("GET /index POST /x"))
//	// matches == [{Start:0, PatternID:0}, {Start:11, PatternID:1}]
//
// Compiled state (buckets and the mask table) is deeply immutable once
// returned from Compile and may be shared across any number of concurrent
// Scan calls: each call is single-threaded over its own stack-local state
// register and never mutates the compiled artifact.
package fdr

import (
	"github.com/coregx/fdrscan/bitreg"
	"github.com/coregx/fdrscan/internal/errs"
)

// DefaultDomainBits is the super-character domain width used when the
// caller does not specify one, or specifies one outside [MinDomainBits,
// MaxDomainBits].
const DefaultDomainBits = 9

// MinDomainBits and MaxDomainBits bound the accepted domain_bits range.
const (
	MinDomainBits = 8
	MaxDomainBits = 16
)

// Compiled is the immutable output of Compile: bucket assignments and the
// super-character-indexed mask table the scanner reads from. It holds no
// mutable state and is safe to share across concurrently running Scan
// calls.
type Compiled struct {
	Buckets    [NumBuckets]Bucket
	MaskTable  []maskEntry
	DomainBits int
}

// maskEntry is the mask table's element type, kept as a named type so the
// table's shift-or semantics (0 = consistent with a match in progress, 1 =
// inconsistent) are documented at the field rather than scattered across
// call sites.
type maskEntry = bitreg.Register

// clampDomainBits accepts domain widths in [MinDomainBits, MaxDomainBits]
// and falls back to DefaultDomainBits for anything else, including the
// zero value callers use to mean "use the default".
func clampDomainBits(d int) int {
	if d < MinDomainBits || d > MaxDomainBits {
		return DefaultDomainBits
	}
	return d
}

// superChar computes the d-bit super-character for the two bytes at buf[i]
// and buf[i+1]. Reads past the end of buf yield 0 for the missing byte(s);
// this is the same zero-padding used for pattern-terminal positions during
// compilation and for in-buffer positions near the end of a scan.
func superChar(buf []byte, i, d int) uint32 {
	var b0, b1 uint32
	if i >= 0 && i < len(buf) {
		b0 = uint32(buf[i])
	}
	if i+1 >= 0 && i+1 < len(buf) {
		b1 = uint32(buf[i+1])
	}
	v := b0 | (b1 << 8)
	return v & domainMask(d)
}

// superCharNullAnchored computes the super-character for a single byte
// with the second byte forced to 0, i.e. the super-character of the
// one-byte buffer []byte{b}. ANDing this mask with the primary mask at
// each scan step enforces that a one-byte pattern match at the buffer's
// final position isn't corrupted by whatever byte would have followed it.
func superCharNullAnchored(b byte, d int) uint32 {
	return uint32(b) & domainMask(d)
}

func domainMask(d int) uint32 {
	return (uint32(1) << uint(d)) - 1
}

// Compile builds buckets and a mask table for patterns under the given
// domain width and bucket strategy.
//
// Errors: a *errs.CompileError wrapping ErrNoPatterns if patterns is empty,
// a *errs.CompileError wrapping ErrEmptyPattern if any pattern has zero
// length, a *errs.CompileError
// wrapping ErrPatternTooLong if any pattern exceeds MaxPatternLen bytes, or
// a *errs.CompileError wrapping ErrStrategyMismatch if strategy is Uniform
// and the patterns are not all one length.
func Compile(raw [][]byte, domainBits int, strategy Strategy) (*Compiled, error) {
	if len(raw) == 0 {
		return nil, &errs.CompileError{Err: errs.ErrNoPatterns, Index: -1}
	}
	for i, p := range raw {
		if len(p) == 0 {
			return nil, &errs.CompileError{Pattern: p, Index: i, Err: errs.ErrEmptyPattern}
		}
		if len(p) > MaxPatternLen {
			return nil, &errs.CompileError{Pattern: p, Index: i, Err: errs.ErrPatternTooLong}
		}
	}

	d := clampDomainBits(domainBits)
	patterns := newPatterns(raw)

	buckets, err := assignBuckets(patterns, strategy)
	if err != nil {
		return nil, err
	}

	maskTable := buildMaskTable(buckets, d)

	return &Compiled{
		Buckets:    buckets,
		MaskTable:  maskTable,
		DomainBits: d,
	}, nil
}

// buildMaskTable runs the three compile phases that turn bucket
// assignments into a super-character-indexed mask table:
//
//	Phase A (init): every super-character starts with its low 64 bits
//	  all-ones (every bucket lane "inconsistent" until proven otherwise)
//	  and its high 64 bits all-zero.
//	Phase B (padding clear): positions beyond a bucket's canonical length
//	  are padding and must stay 0 so a pending match survives the shift.
//	Phase C (pattern imprint): for each pattern, clear the bit that marks
//	  "this super-character is consistent with the pattern ending
//	  right_pos lanes from here".
func buildMaskTable(buckets [NumBuckets]Bucket, d int) []maskEntry {
	size := 1 << uint(d)
	table := make([]maskEntry, size)

	// Phase A.
	initEntry := bitreg.FromUint64(^uint64(0))
	for c := range table {
		table[c] = initEntry
	}

	// Phase B.
	for b := 0; b < NumBuckets; b++ {
		bucket := buckets[b]
		if bucket.Length == 0 {
			continue
		}
		for p := bucket.Length; p <= 7; p++ {
			for c := range table {
				table[c] = table[c].SetBit(false, p, b)
			}
		}
	}

	// Phase C.
	for b := 0; b < NumBuckets; b++ {
		bucket := buckets[b]
		for _, q := range bucket.Patterns {
			for pos := 0; pos < len(q.Bytes); pos++ {
				rightPos := len(q.Bytes) - 1 - pos
				c := superChar(q.Bytes, pos, d)
				table[c] = table[c].SetBit(false, rightPos, b)
			}
		}
	}

	return table
}

// Summary describes one bucket's shape after compilation: its canonical
// pattern length and how many patterns it holds. It is diagnostic output
// (a compile-time histogram, the Go counterpart of the original FDR
// reference's post-build bucket report), not part of the match semantics.
type Summary struct {
	BucketID int
	Length   int
	Count    int
}

// Summarize returns one Summary per non-empty bucket, in bucket id order.
func (c *Compiled) Summarize() []Summary {
	var out []Summary
	for _, b := range c.Buckets {
		if b.Length == 0 {
			continue
		}
		out = append(out, Summary{BucketID: b.ID, Length: b.Length, Count: len(b.Patterns)})
	}
	return out
}
