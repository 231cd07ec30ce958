package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadRulesetFileIndexesRawLines(t *testing.T) {
	path := writeTempFile(t, "\nabc\n# comment\nbcd\n")

	lines, err := readRulesetFile(path)
	if err != nil {
		t.Fatalf("readRulesetFile: %v", err)
	}

	want := []rulesetLine{
		{Index: 1, Text: []byte("abc")},
		{Index: 3, Text: []byte("bcd")},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, got := range lines {
		if got.Index != want[i].Index || !bytes.Equal(got.Text, want[i].Text) {
			t.Errorf("line %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestReadRulesetFileNoSkippedLines(t *testing.T) {
	path := writeTempFile(t, "abc\nbcd\n")

	lines, err := readRulesetFile(path)
	if err != nil {
		t.Fatalf("readRulesetFile: %v", err)
	}
	for i, got := range lines {
		if got.Index != i {
			t.Errorf("line %d has Index %d, want %d", i, got.Index, i)
		}
	}
}

func TestReadPatternFileSkipsBlankAndComments(t *testing.T) {
	path := writeTempFile(t, "abc\n\n# comment\nbcd\n")

	patterns, err := readPatternFile(path)
	if err != nil {
		t.Fatalf("readPatternFile: %v", err)
	}
	want := [][]byte{[]byte("abc"), []byte("bcd")}
	if len(patterns) != len(want) {
		t.Fatalf("got %d patterns, want %d: %q", len(patterns), len(want), patterns)
	}
	for i := range want {
		if !bytes.Equal(patterns[i], want[i]) {
			t.Errorf("pattern %d = %q, want %q", i, patterns[i], want[i])
		}
	}
}

func TestFilterByMaxLen(t *testing.T) {
	patterns := [][]byte{[]byte("abc"), []byte("toolongpattern"), []byte("x")}
	kept, dropped := filterByMaxLen(patterns, 8)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(kept) != 2 {
		t.Errorf("kept = %q, want 2 entries", kept)
	}
}

func TestTruncateToMax(t *testing.T) {
	patterns := [][]byte{[]byte("a"), []byte("b"), []byte("c")}

	if got := truncateToMax(patterns, 0); len(got) != 3 {
		t.Errorf("truncateToMax(_, 0) = %q, want all 3 kept", got)
	}
	if got := truncateToMax(patterns, 2); len(got) != 2 {
		t.Errorf("truncateToMax(_, 2) = %q, want 2 entries", got)
	}
}
