/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// State is the lifecycle state of a load session.
type State int

const (
	StateCreated State = iota
	StateScanning
	StateFetching
	StateCompleted
	StateFailed
)

var stateNames = map[State]string{
	StateCreated:   "created",
	StateScanning:  "scanning",
	StateFetching:  "fetching",
	StateCompleted: "completed",
	StateFailed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", text)
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// canTransition allows only forward moves: Created -> Scanning ->
// Fetching -> Completed, with Failed reachable from Scanning and Fetching.
func canTransition(from, to State) bool {
	switch from {
	case StateCreated:
		return to == StateScanning
	case StateScanning:
		return to == StateFetching || to == StateFailed
	case StateFetching:
		return to == StateCompleted || to == StateFailed
	default:
		return false
	}
}

// SessionResult is the outcome of one session.
type SessionResult struct {
	Number       int           `json:"number"`
	State        State         `json:"state"`
	ScanSize     int           `json:"scan_size"`
	Fetches      int           `json:"fetches"`
	EmptyFetches int           `json:"empty_fetches"`
	ScanElapsed  time.Duration `json:"scan_elapsed_ns"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Error        string        `json:"error,omitempty"`
	Err          error         `json:"-"`

	fetchLatencies []time.Duration
}

// Session is one scan-then-fan-out cycle. A Session runs once.
type Session struct {
	number  int
	state   State
	scanner *Scanner
	fetcher *Fetcher
	opts    options
}

func newSession(number int, scanner *Scanner, fetcher *Fetcher, opts options) *Session {
	return &Session{
		number:  number,
		state:   StateCreated,
		scanner: scanner,
		fetcher: fetcher,
		opts:    opts,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) transition(to State) error {
	if !canTransition(s.state, to) {
		return fmt.Errorf("session %d: invalid transition %s -> %s", s.number, s.state, to)
	}
	s.state = to
	return nil
}

// Run scans the index and fetches every referenced row.
func (s *Session) Run(ctx context.Context, p LoadParams) SessionResult {
	res := SessionResult{Number: s.number}
	logger := s.opts.logger.With(zap.Int("session", s.number))
	start := time.Now()

	if err := s.transition(StateScanning); err != nil {
		res.State, res.Err, res.Error = s.state, err, err.Error()
		return res
	}
	s.opts.reporter.SessionStarted(s.number)

	ids, err := s.scanner.Scan(ctx, p.Rows)
	res.ScanElapsed = time.Since(start)
	if err != nil {
		return s.fail(res, start, err, logger)
	}
	res.ScanSize = len(ids)
	s.opts.metrics.ObserveScan(res.ScanElapsed)
	s.opts.reporter.ScanDone(s.number, len(ids), res.ScanElapsed)

	_ = s.transition(StateFetching)
	results, err := s.fetcher.Fetch(ctx, ids, p.Columns, p.FetchConcurrency)
	if err != nil {
		return s.fail(res, start, err, logger)
	}

	res.Fetches = len(results)
	res.fetchLatencies = make([]time.Duration, len(results))
	for i, r := range results {
		if r.Empty() {
			res.EmptyFetches++
		}
		res.fetchLatencies[i] = r.Elapsed
	}

	_ = s.transition(StateCompleted)
	res.State = s.state
	res.Elapsed = time.Since(start)
	s.opts.metrics.ObserveSession(res.Elapsed, s.state.String())
	s.opts.reporter.FetchDone(s.number, res.Fetches, res.Elapsed)
	logger.Debug("session completed",
		zap.Int("scan_size", res.ScanSize),
		zap.Int("empty_fetches", res.EmptyFetches),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

func (s *Session) fail(res SessionResult, start time.Time, err error, logger *zap.Logger) SessionResult {
	failedIn := s.state
	_ = s.transition(StateFailed)

	res.State = s.state
	res.Err = err
	res.Error = err.Error()
	res.Elapsed = time.Since(start)
	s.opts.metrics.ObserveSession(res.Elapsed, s.state.String())
	s.opts.reporter.SessionFailed(s.number, failedIn, res.Elapsed, err)
	logger.Warn("session failed", zap.Stringer("during", failedIn), zap.Error(err))
	return res
}
