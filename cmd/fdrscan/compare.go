package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/fdrscan/fdr"
)

// compareFlags mirrors scanFlags for the subset compare needs: it re-runs
// the same (patterns, rulesets) pair the scan subcommand would, but checks
// agreement instead of writing a results file.
type compareFlags struct {
	patternsPath string
	rulesetsPath string
	maxPatterns  int
	domainBits   int
}

func newCompareCommand(logger *logrus.Logger) *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "cross-validate the FDR engine against the naive baseline and an Aho-Corasick automaton",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(logger, flags)
		},
	}

	bindCompareFlagSet(cmd.Flags(), flags)
	cmd.MarkFlagRequired("patterns") //nolint:errcheck
	cmd.MarkFlagRequired("rulesets") //nolint:errcheck

	return cmd
}

// bindCompareFlagSet registers the compare subcommand's flags on fs. See
// bindScanFlagSet for why this takes *pflag.FlagSet explicitly.
func bindCompareFlagSet(fs *pflag.FlagSet, flags *compareFlags) {
	fs.StringVar(&flags.patternsPath, "patterns", "", "path to the pattern file (required)")
	fs.StringVar(&flags.rulesetsPath, "rulesets", "", "path to the rulesets file (required)")
	fs.IntVar(&flags.maxPatterns, "max-patterns", 0, "cap the pattern set to the first N patterns (0 = no cap)")
	fs.IntVar(&flags.domainBits, "domain-bits", fdr.DefaultDomainBits, "super-character domain width (8-16)")
}

func runCompare(logger *logrus.Logger, flags *compareFlags) error {
	log := logger.WithFields(logrus.Fields{
		"patterns_path": flags.patternsPath,
		"rulesets_path": flags.rulesetsPath,
	})

	rawPatterns, err := readPatternFile(flags.patternsPath)
	if err != nil {
		return err
	}
	filtered, dropped := filterByMaxLen(rawPatterns, fdr.MaxPatternLen)
	if dropped > 0 {
		log.Warnf("dropped %d pattern(s) longer than %d bytes", dropped, fdr.MaxPatternLen)
	}
	filtered = truncateToMax(filtered, flags.maxPatterns)
	if len(filtered) == 0 {
		return fmt.Errorf("no patterns remain after filtering %s", flags.patternsPath)
	}

	compiled, err := fdr.Compile(filtered, flags.domainBits, fdr.ByLength)
	if err != nil {
		return fmt.Errorf("compile patterns: %w", err)
	}

	automaton, err := buildAhoCorasick(filtered)
	if err != nil {
		log.Warnf("could not build Aho-Corasick reference automaton: %v; skipping soft cross-check", err)
	}

	lines, err := readRulesetFile(flags.rulesetsPath)
	if err != nil {
		return err
	}

	hardMismatches := 0
	softMismatches := 0
	for _, line := range lines {
		fdrMatches := fdr.Scan(compiled, line.Text)
		naiveMatches := fdr.NaiveScan(filtered, line.Text)
		if !matchSetsEqual(fdrMatches, naiveMatches) {
			hardMismatches++
			log.Errorf("line %d: FDR/naive mismatch: fdr=%v naive=%v", line.Index, fdrMatches, naiveMatches)
		}

		if automaton != nil {
			acSpans := findAllSpans(automaton, line.Text)
			fdrSpans := matchesToSpans(fdrMatches, filtered)
			if !spanSetsEqual(fdrSpans, acSpans) {
				softMismatches++
				log.Warnf("line %d: FDR/Aho-Corasick span mismatch: fdr=%v ac=%v", line.Index, fdrSpans, acSpans)
			}
		}
	}

	log.Infof("compared %d line(s): %d hard mismatch(es) against the naive baseline, %d soft mismatch(es) against Aho-Corasick",
		len(lines), hardMismatches, softMismatches)

	if hardMismatches > 0 {
		return fmt.Errorf("%d line(s) disagreed between FDR and the naive baseline", hardMismatches)
	}
	return nil
}

// buildAhoCorasick builds a github.com/coregx/ahocorasick automaton over
// the same pattern set, used as a third, independently-implemented
// multi-pattern matcher for the soft span cross-check below.
func buildAhoCorasick(patterns [][]byte) (*ahocorasick.Automaton, error) {
	builder := ahocorasick.NewBuilder()
	for _, p := range patterns {
		builder.AddPattern(p)
	}
	return builder.Build()
}

// span is a half-open byte range [Start, End).
type span struct {
	Start, End int
}

// matchesToSpans converts FDR matches into spans so they can be compared
// against Aho-Corasick's per-occurrence results, which carry end offsets
// but no pattern id.
func matchesToSpans(matches []fdr.Match, patterns [][]byte) []span {
	spans := make([]span, 0, len(matches))
	for _, m := range matches {
		start := int(m.Start)
		spans = append(spans, span{Start: start, End: start + len(patterns[m.PatternID])})
	}
	return spans
}

// findAllSpans enumerates every occurrence the automaton finds by
// repeatedly calling Find and advancing past the last candidate's start,
// the same "advance past last candidate" idiom coregex's own
// prefilter/teddy.go Find loop uses for its continuation search. At most
// one span is recorded per start position, so when several patterns match
// at the same start only the one Find returns is included.
func findAllSpans(automaton *ahocorasick.Automaton, haystack []byte) []span {
	var spans []span
	at := 0
	for at <= len(haystack) {
		m := automaton.Find(haystack, at)
		if m == nil {
			break
		}
		spans = append(spans, span{Start: m.Start, End: m.End})
		at = m.Start + 1
	}
	return spans
}

func matchSetsEqual(a, b []fdr.Match) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// spanSetsEqual compares two span lists as multisets, since neither FDR
// nor the automaton guarantees the other's output order for overlapping
// patterns.
func spanSetsEqual(a, b []span) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[span]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}
