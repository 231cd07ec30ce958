package fdr

import (
	"sort"
	"sync"
	"time"
)

// Match is a single (start_offset, pattern_id) report: buffer[Start :
// Start+len(pattern)] equals the pattern whose index in the original input
// list was PatternID.
type Match struct {
	Start     uint64
	PatternID uint32
}

// sortMatches stably sorts matches by (Start, PatternID). Stability (and
// sorting at all) is required because multiple bucket lanes can report a
// match at the same offset in scan order, and callers' comparison tests
// expect one canonical ordering.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].PatternID < matches[j].PatternID
	})
}

// ScanResult pairs one buffer's matches with the wall-clock time the scan
// took, the unit the driver's TSV output reports per ruleset line.
type ScanResult struct {
	Matches []Match
	Elapsed time.Duration
}

// ScanTimed runs Scan while recording elapsed wall-clock time. It is the
// entry point the driver uses to populate the results.txt "time_ms" column.
func ScanTimed(compiled *Compiled, buffer []byte) ScanResult {
	started := time.Now()
	matches := scanCore(compiled, buffer)
	return ScanResult{Matches: matches, Elapsed: time.Since(started)}
}

// LineResult associates a ScanResult with the zero-based ruleset line it
// came from, the unit the match sink collects across an entire ruleset
// file.
type LineResult struct {
	LineIndex int
	Result    ScanResult
}

// Sink is an ordered collector of per-line scan results. It is safe for
// concurrent use: a driver may fan out one Scan per input buffer across
// worker goroutines, and Sink is where those goroutines' results are
// gathered back together.
type Sink struct {
	mu      sync.Mutex
	results []LineResult
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	return &Sink{}
}

// Record appends one line's scan result. Safe to call from multiple
// goroutines concurrently.
func (s *Sink) Record(lineIndex int, result ScanResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, LineResult{LineIndex: lineIndex, Result: result})
}

// Results returns the collected line results sorted by LineIndex, so
// output order is deterministic regardless of the order workers finished
// in.
func (s *Sink) Results() []LineResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineResult, len(s.results))
	copy(out, s.results)
	sort.Slice(out, func(i, j int) bool { return out[i].LineIndex < out[j].LineIndex })
	return out
}
