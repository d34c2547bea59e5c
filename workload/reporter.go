/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/suparena/cfstress/metrics"
)

// Reporter prints operator timing lines. Lines from concurrent sessions
// never interleave.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewReporter writes to w; a nil w discards everything.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{out: w}
}

func (r *Reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

func msecs(d time.Duration) int64 {
	return d.Milliseconds()
}

// SessionStarted prints "Starting session #n".
func (r *Reporter) SessionStarted(n int) {
	r.printf("Starting session #%d\n", n)
}

// ScanDone prints the size of the scanned index.
func (r *Reporter) ScanDone(n, ids int, elapsed time.Duration) {
	r.printf("[%d] Got index of %d ids in %d msecs\n", n, ids, msecs(elapsed))
}

// FetchDone prints the result count and the session's elapsed time.
func (r *Reporter) FetchDone(n, results int, elapsed time.Duration) {
	r.printf("[%d] Got %d results in %d msecs\n", n, results, msecs(elapsed))
}

// SessionFailed prints the state a session failed in.
func (r *Reporter) SessionFailed(n int, during State, elapsed time.Duration, err error) {
	r.printf("[%d] Failed in %s after %d msecs: %v\n", n, during, msecs(elapsed), err)
}

// Populated prints the outcome of a populate run.
func (r *Reporter) Populated(report *PopulateReport) {
	r.printf("Populated %d rows of %d columns and an index of %d columns in %d msecs\n",
		report.RowsWritten, report.Columns, report.IndexColumns, msecs(report.Elapsed))
}

// Summary prints the end-of-run block.
func (r *Reporter) Summary(report *LoadReport) {
	r.printf(`
=== load %s ===
Duration:        %v
Sessions:        %d ok, %d failed
Fetches:         %d (%d empty)
Fetches/sec:     %.2f
%s%s%s`,
		report.RunID,
		report.Elapsed.Round(time.Millisecond),
		report.SessionsCompleted, report.SessionsFailed,
		report.Fetches, report.EmptyFetches,
		report.Throughput,
		latencyLine("Fetch latency:", report.FetchLatency),
		latencyLine("Scan latency:", report.ScanLatency),
		latencyLine("Session latency:", report.SessionLatency),
	)
}

func latencyLine(label string, s metrics.LatencyStats) string {
	if s.Count == 0 {
		return fmt.Sprintf("%-17sn/a\n", label)
	}
	return fmt.Sprintf("%-17smin %v  avg %v  p50 %v  p95 %v  p99 %v  max %v\n",
		label, s.Min, s.Avg, s.P50, s.P95, s.P99, s.Max)
}
