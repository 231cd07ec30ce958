package fdr

import (
	"reflect"
	"testing"
)

func compileOrFatal(t *testing.T, patterns [][]byte) *Compiled {
	t.Helper()
	c, err := Compile(patterns, DefaultDomainBits, ByLength)
	if err != nil {
		t.Fatalf("Compile(%q): %v", patterns, err)
	}
	return c
}

// TestScanScenarios runs a table of end-to-end scenarios covering basic
// matches, overlapping patterns, and adjacent matches in one buffer.
func TestScanScenarios(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		buffer   string
		want     []Match
	}{
		{
			name:     "S1",
			patterns: []string{"abc", "bcd"},
			buffer:   "abcdabc",
			want: []Match{
				{Start: 0, PatternID: 0},
				{Start: 1, PatternID: 1},
				{Start: 4, PatternID: 0},
			},
		},
		{
			name:     "S2",
			patterns: []string{"aa"},
			buffer:   "aaaa",
			want: []Match{
				{Start: 0, PatternID: 0},
				{Start: 1, PatternID: 0},
				{Start: 2, PatternID: 0},
			},
		},
		{
			name:     "S3",
			patterns: []string{"x", "xy", "xyz", "xyzw"},
			buffer:   "xyzw",
			want: []Match{
				{Start: 0, PatternID: 0},
				{Start: 0, PatternID: 1},
				{Start: 0, PatternID: 2},
				{Start: 0, PatternID: 3},
				{Start: 1, PatternID: 0},
				{Start: 2, PatternID: 0},
				{Start: 3, PatternID: 0},
			},
		},
		{
			name:     "S4",
			patterns: []string{"GET ", "POST"},
			buffer:   "GET /index POST /x",
			want: []Match{
				{Start: 0, PatternID: 0},
				{Start: 11, PatternID: 1},
			},
		},
		{
			name:     "S5",
			patterns: []string{"abcdefgh"},
			buffer:   "_abcdefgh_",
			want: []Match{
				{Start: 1, PatternID: 0},
			},
		},
		{
			name:     "S6",
			patterns: []string{"ab", "bc"},
			buffer:   "abc",
			want: []Match{
				{Start: 0, PatternID: 0},
				{Start: 1, PatternID: 1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := make([][]byte, len(tc.patterns))
			for i, p := range tc.patterns {
				raw[i] = []byte(p)
			}
			c := compileOrFatal(t, raw)
			got := Scan(c, []byte(tc.buffer))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Scan(%q) = %v, want %v", tc.buffer, got, tc.want)
			}
		})
	}
}

func TestScanEmptyBuffer(t *testing.T) {
	c := compileOrFatal(t, [][]byte{[]byte("abc")})
	if got := Scan(c, nil); len(got) != 0 {
		t.Errorf("Scan(nil) = %v, want empty", got)
	}
	if got := Scan(c, []byte{}); len(got) != 0 {
		t.Errorf("Scan([]byte{}) = %v, want empty", got)
	}
}

func TestScanBufferShorterThanShortestPattern(t *testing.T) {
	c := compileOrFatal(t, [][]byte{[]byte("abcdef")})
	if got := Scan(c, []byte("ab")); len(got) != 0 {
		t.Errorf("Scan(short buffer) = %v, want empty", got)
	}
}

func TestScanPatternEqualsBuffer(t *testing.T) {
	c := compileOrFatal(t, [][]byte{[]byte("hello")})
	got := Scan(c, []byte("hello"))
	want := []Match{{Start: 0, PatternID: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan(exact buffer) = %v, want %v", got, want)
	}
}

func TestScanBufferNotMultipleOf8(t *testing.T) {
	// 12-byte buffer: exercises the final partial 8-byte chunk.
	patterns := [][]byte{[]byte("xyz")}
	c := compileOrFatal(t, patterns)
	buffer := []byte("0123456xyz89")
	got := Scan(c, buffer)
	want := []Match{{Start: 7, PatternID: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan(%q) = %v, want %v", buffer, got, want)
	}
}

func TestScanMatchStraddlingEightByteBoundary(t *testing.T) {
	// "boundary" spans input offsets 4-11, straddling the first 8-byte
	// chunk boundary at offset 8 - exercises the SHR(64) carry.
	c := compileOrFatal(t, [][]byte{[]byte("boundary")})
	buffer := []byte("xxxxboundaryxxxx")
	got := Scan(c, buffer)
	want := []Match{{Start: 4, PatternID: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan(%q) = %v, want %v", buffer, got, want)
	}
}

func TestScanIsIdempotent(t *testing.T) {
	c := compileOrFatal(t, [][]byte{[]byte("aa"), []byte("ab")})
	buffer := []byte("aaabaab")
	first := Scan(c, buffer)
	second := Scan(c, buffer)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Scan is not idempotent: %v != %v", first, second)
	}
}

func TestScanMatchesNaiveScan(t *testing.T) {
	rawPatterns := [][]byte{[]byte("abc"), []byte("bcd"), []byte("x"), []byte("xy")}
	c := compileOrFatal(t, rawPatterns)
	buffer := []byte("xyabcdbcdxabcxy")

	got := Scan(c, buffer)
	want := NaiveScan(rawPatterns, buffer)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan = %v, NaiveScan = %v", got, want)
	}
}
