package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coregx/fdrscan/fdr"
)

type scanFlags struct {
	patternsPath string
	rulesetsPath string
	outDir       string
	maxPatterns  int
	testNum      int
	domainBits   int
}

func newScanCommand(logger *logrus.Logger) *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "scan a rulesets file against a pattern file and write metadata.txt/results.txt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(logger, flags)
		},
	}

	bindScanFlagSet(cmd.Flags(), flags)
	cmd.MarkFlagRequired("patterns") //nolint:errcheck // cobra reports this itself at parse time
	cmd.MarkFlagRequired("rulesets") //nolint:errcheck
	cmd.MarkFlagRequired("out")      //nolint:errcheck

	return cmd
}

// bindScanFlagSet registers the scan subcommand's flags on fs. Taking
// *pflag.FlagSet explicitly (rather than relying on cobra's returned
// interface value) mirrors grafana-k6's cmd/root.go, which builds its
// persistent flag set the same way.
func bindScanFlagSet(fs *pflag.FlagSet, flags *scanFlags) {
	fs.StringVar(&flags.patternsPath, "patterns", "", "path to the pattern file (required)")
	fs.StringVar(&flags.rulesetsPath, "rulesets", "", "path to the rulesets file (required)")
	fs.StringVar(&flags.outDir, "out", "", "output directory for metadata.txt and results.txt (required)")
	fs.IntVar(&flags.maxPatterns, "max-patterns", 0, "cap the pattern set to the first N patterns (0 = no cap)")
	fs.IntVar(&flags.testNum, "test_num", 0, "scan only the first N ruleset lines (0 = all lines)")
	fs.IntVar(&flags.domainBits, "domain-bits", fdr.DefaultDomainBits, "super-character domain width (8-16)")
}

func runScan(logger *logrus.Logger, flags *scanFlags) error {
	log := logger.WithFields(logrus.Fields{
		"patterns_path": flags.patternsPath,
		"rulesets_path": flags.rulesetsPath,
		"domain_bits":   flags.domainBits,
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
	for _, s := range compiled.Summarize() {
		log.Infof("bucket %d: length=%d patterns=%d", s.BucketID, s.Length, s.Count)
	}

	lines, err := readRulesetFile(flags.rulesetsPath)
	if err != nil {
		return err
	}
	if flags.testNum > 0 && len(lines) > flags.testNum {
		lines = lines[:flags.testNum]
	}

	if err := os.MkdirAll(flags.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := writeRunOutput(flags, filtered, lines, compiled); err != nil {
		return err
	}

	log.Infof("scanned %d ruleset line(s)", len(lines))
	return nil
}

func writeRunOutput(flags *scanFlags, patterns [][]byte, lines []rulesetLine, compiled *fdr.Compiled) error {
	metaPath := filepath.Join(flags.outDir, "metadata.txt")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", metaPath, err)
	}
	defer metaFile.Close()
	if err := writeMetadata(metaFile, flags.patternsPath, flags.rulesetsPath, len(patterns)); err != nil {
		return fmt.Errorf("write %s: %w", metaPath, err)
	}

	resultsPath := filepath.Join(flags.outDir, "results.txt")
	resultsFile, err := os.Create(resultsPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", resultsPath, err)
	}
	defer resultsFile.Close()

	w := bufio.NewWriter(resultsFile)
	if err := writeResultsHeader(w); err != nil {
		return err
	}
	for _, line := range lines {
		result := fdr.ScanTimed(compiled, line.Text)
		elapsedMS := float64(result.Elapsed.Nanoseconds()) / 1e6
		if err := writeResultRow(w, line.Index, result.Matches, elapsedMS); err != nil {
			return fmt.Errorf("write %s: %w", resultsPath, err)
		}
	}
	return w.Flush()
}
