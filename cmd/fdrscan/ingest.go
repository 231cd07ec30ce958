package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// readPatternFile reads one pattern per line from path. Blank lines and
// lines beginning with '#' are ignored; patterns are taken verbatim, with
// no escape decoding.
func readPatternFile(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open patterns file: %w", err)
	}
	defer f.Close()

	var patterns [][]byte
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, []byte(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read patterns file: %w", err)
	}
	return patterns, nil
}

// rulesetLine is one non-blank, non-comment line from the rulesets file,
// carrying the zero-based raw line index (counting every line in the file,
// blank and comment lines included) that results.txt reports as
// ruleset_index.
type rulesetLine struct {
	Index int
	Text  []byte
}

// readRulesetFile reads ruleset lines, numbering every raw line in the file
// from 0 (so ruleset_index always names the line's position in the file
// itself) and skipping blank and '#'-prefixed lines from the returned set.
func readRulesetFile(path string) ([]rulesetLine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rulesets file: %w", err)
	}
	defer f.Close()

	var lines []rulesetLine
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for idx := 0; scanner.Scan(); idx++ {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, rulesetLine{Index: idx, Text: []byte(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rulesets file: %w", err)
	}
	return lines, nil
}

// filterByMaxLen drops patterns longer than maxLen bytes before they ever
// reach Compile, so an oversized pattern in the input file is reported as a
// dropped count rather than aborting the whole run.
func filterByMaxLen(patterns [][]byte, maxLen int) (kept [][]byte, dropped int) {
	for _, p := range patterns {
		if len(p) == 0 || len(p) > maxLen {
			dropped++
			continue
		}
		kept = append(kept, p)
	}
	return kept, dropped
}

// truncateToMax keeps at most maxPatterns entries, used by the --max-patterns
// flag.
func truncateToMax(patterns [][]byte, maxPatterns int) [][]byte {
	if maxPatterns <= 0 || len(patterns) <= maxPatterns {
		return patterns
	}
	return patterns[:maxPatterns]
}

// writeMetadata writes the human-readable metadata.txt header naming the
// two input paths and describing results.txt's columns.
func writeMetadata(w io.Writer, patternsPath, rulesetsPath string, numPatterns int) error {
	_, err := fmt.Fprintf(w,
		"fdrscan results\n"+
			"patterns file:  %s (%d patterns after filtering)\n"+
			"rulesets file:  %s\n"+
			"\n"+
			"results.txt columns:\n"+
			"  ruleset_index  zero-based line index into the rulesets file\n"+
			"  matches        [(position,pattern_index), ...], [] if none\n"+
			"  time_ms        per-line scan time in milliseconds, six decimal digits\n",
		patternsPath, numPatterns, rulesetsPath,
	)
	return err
}
