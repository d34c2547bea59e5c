/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/metrics"
)

// LoadParams sizes a load run.
type LoadParams struct {
	Rows             int `json:"rows"`
	Columns          int `json:"columns"`
	Sessions         int `json:"sessions"`
	FetchConcurrency int `json:"fetch_concurrency"`
}

// Validate checks the numeric parameters.
func (p LoadParams) Validate() error {
	switch {
	case p.Rows < 0:
		return errors.NewConfigurationError("numberOfRows", "must not be negative")
	case p.Columns < 0:
		return errors.NewConfigurationError("numberOfColumns", "must not be negative")
	case p.Sessions < 1:
		return errors.NewConfigurationError("numberOfConcurrentSessions", "must be at least 1")
	case p.FetchConcurrency < 1:
		return errors.NewConfigurationError("numberOfGetThreads", "must be at least 1")
	}
	return nil
}

// Coordinator runs independent load sessions in parallel.
type Coordinator struct {
	scanner *Scanner
	fetcher *Fetcher
	opts    options
}

// NewCoordinator creates a Coordinator. All sessions share client.
func NewCoordinator(client datastore.Client, layout Layout, opts ...Option) *Coordinator {
	o := applyOptions(opts)
	return &Coordinator{
		scanner: NewScanner(client, layout),
		fetcher: &Fetcher{client: client, layout: layout, opts: o},
		opts:    o,
	}
}

// Load runs p.Sessions sessions at once and waits for all of them. No
// session cancels another. When any session failed the report is still
// returned, together with a SessionsFailedError whose cause is the failure
// of the lowest-numbered failed session.
func (c *Coordinator) Load(ctx context.Context, p LoadParams) (*LoadReport, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	report := newLoadReport(p)
	logger := c.opts.logger.With(zap.String("run_id", report.RunID.String()))
	logger.Info("load starting",
		zap.Int("rows", p.Rows),
		zap.Int("columns", p.Columns),
		zap.Int("sessions", p.Sessions),
		zap.Int("fetch_concurrency", p.FetchConcurrency))

	results := make([]SessionResult, p.Sessions)
	start := time.Now()

	var g errgroup.Group
	g.SetLimit(p.Sessions)
	for i := 0; i < p.Sessions; i++ {
		g.Go(func() error {
			results[i] = newSession(i, c.scanner, c.fetcher, c.opts).Run(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	report.Elapsed = time.Since(start)
	report.aggregate(results)
	c.opts.reporter.Summary(report)

	var first error
	for _, r := range results {
		if r.Err != nil {
			first = r.Err
			break
		}
	}
	if first != nil {
		logger.Error("load finished with failures",
			zap.Int("failed", report.SessionsFailed),
			zap.Int("total", p.Sessions),
			zap.Error(first))
		return report, errors.NewSessionsFailedError(report.SessionsFailed, p.Sessions, first)
	}

	logger.Info("load finished",
		zap.Int("fetches", report.Fetches),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

func (r *LoadReport) aggregate(results []SessionResult) {
	fetches := metrics.NewRecorder()
	scans := metrics.NewRecorder()
	sessions := metrics.NewRecorder()

	r.Sessions = results
	for _, res := range results {
		if res.State == StateCompleted {
			r.SessionsCompleted++
			scans.Record(res.ScanElapsed)
			sessions.Record(res.Elapsed)
		} else {
			r.SessionsFailed++
		}
		r.Fetches += res.Fetches
		r.EmptyFetches += res.EmptyFetches
		for _, d := range res.fetchLatencies {
			fetches.Record(d)
		}
	}

	r.FetchLatency = fetches.Stats()
	r.ScanLatency = scans.Stats()
	r.SessionLatency = sessions.Stats()
	if secs := r.Elapsed.Seconds(); secs > 0 {
		r.Throughput = float64(r.Fetches) / secs
	}
}
