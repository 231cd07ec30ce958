package fdr

import "github.com/coregx/fdrscan/internal/errs"

// NumBuckets is the fixed number of bucket slots the scanner's 128-bit
// state register has room for: one bit per bucket in each byte-lane.
const NumBuckets = 8

// Strategy selects how patterns are assigned to the 8 bucket slots.
type Strategy int

const (
	// ByLength assigns bucket id = len(pattern)-1, so every bucket is
	// uniform in length by construction. This is the default strategy.
	ByLength Strategy = iota

	// Uniform assigns bucket id = pattern index mod NumBuckets. It is
	// only valid when every pattern shares the same length; otherwise
	// the buckets' canonical length is undefined and Compile rejects it.
	Uniform
)

// String implements fmt.Stringer for diagnostic output.
func (s Strategy) String() string {
	switch s {
	case ByLength:
		return "ByLength"
	case Uniform:
		return "Uniform"
	default:
		return "Strategy(unknown)"
	}
}

// Bucket is one of the 8 slots in the scanner's state register. All
// patterns in a non-empty bucket share one canonical Length; Length is 0
// for an empty bucket.
type Bucket struct {
	ID       int
	Length   int
	Patterns []Pattern
}

// assignBuckets groups patterns into the 8 bucket slots per strategy,
// preserving each pattern's compile-time insertion order within its
// bucket.
func assignBuckets(patterns []Pattern, strategy Strategy) ([NumBuckets]Bucket, error) {
	var buckets [NumBuckets]Bucket
	for i := range buckets {
		buckets[i].ID = i
	}

	switch strategy {
	case ByLength:
		for _, p := range patterns {
			id := len(p.Bytes) - 1
			buckets[id].Length = len(p.Bytes)
			buckets[id].Patterns = append(buckets[id].Patterns, p)
		}
	case Uniform:
		if len(patterns) == 0 {
			break
		}
		uniformLen := len(patterns[0].Bytes)
		for _, p := range patterns {
			if len(p.Bytes) != uniformLen {
				return buckets, &errs.CompileError{Err: errs.ErrStrategyMismatch, Index: -1}
			}
		}
		for _, p := range patterns {
			id := p.ID % NumBuckets
			buckets[id].Length = uniformLen
			buckets[id].Patterns = append(buckets[id].Patterns, p)
		}
	default:
		return buckets, &errs.CompileError{Err: errs.ErrStrategyMismatch, Index: -1}
	}

	return buckets, nil
}
