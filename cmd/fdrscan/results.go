package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/coregx/fdrscan/fdr"
)

// formatMatches renders a match list as a bracketed tuple list:
// "(position,pattern_index)" pairs, comma-separated, no spaces inside a
// tuple, "[]" when empty.
func formatMatches(matches []fdr.Match) string {
	if len(matches) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, m := range matches {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "(%d,%d)", m.Start, m.PatternID)
	}
	b.WriteByte(']')
	return b.String()
}

// writeResultsHeader writes the results.txt TSV header row.
func writeResultsHeader(w *bufio.Writer) error {
	_, err := w.WriteString("ruleset_index\tmatches\ttime_ms\n")
	return err
}

// writeResultRow writes one TSV row: ruleset_index, the bracketed match
// list, and the scan time in milliseconds with six decimal digits.
func writeResultRow(w *bufio.Writer, lineIndex int, matches []fdr.Match, elapsedMS float64) error {
	_, err := fmt.Fprintf(w, "%d\t%s\t%.6f\n", lineIndex, formatMatches(matches), elapsedMS)
	return err
}
