/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/metrics"
	"github.com/suparena/cfstress/storagemodels"
	"github.com/suparena/cfstress/worker"
)

// FetchResult is the outcome of one data row read.
type FetchResult struct {
	Index   int
	ID      string
	Columns []storagemodels.Column
	Elapsed time.Duration
}

// Empty reports whether the row had no columns, as for a missing row.
func (r FetchResult) Empty() bool {
	return len(r.Columns) == 0
}

// Fetcher reads data rows through a bounded worker pool.
type Fetcher struct {
	client datastore.Client
	layout Layout
	opts   options
}

// NewFetcher creates a Fetcher.
func NewFetcher(client datastore.Client, layout Layout, opts ...Option) *Fetcher {
	return &Fetcher{client: client, layout: layout, opts: applyOptions(opts)}
}

// Fetch reads up to numberOfColumns columns of each row in ids using a
// pool of concurrency workers that lives for this call only. Results are
// in ids order. The first failure fails the whole fan-out: fetches not yet
// started are skipped and the error is returned once the pool is joined.
func (f *Fetcher) Fetch(ctx context.Context, ids []string, numberOfColumns, concurrency int) ([]FetchResult, error) {
	if concurrency < 1 {
		return nil, errors.NewConfigurationError("numberOfGetThreads", "must be at least 1")
	}
	if numberOfColumns < 0 {
		return nil, errors.NewConfigurationError("numberOfColumns", "must not be negative")
	}
	if len(ids) == 0 {
		return []FetchResult{}, nil
	}

	results := make([]FetchResult, len(ids))
	r := f.layout.columnRange(numberOfColumns)

	var (
		failed   atomic.Bool
		once     sync.Once
		firstErr error
	)
	fail := func(id string, err error) {
		once.Do(func() {
			firstErr = errors.NewReadError(f.layout.DataCollection, id, err)
			failed.Store(true)
		})
	}

	pool := worker.NewPool(concurrency)
	pool.Start()
	defer pool.Stop()

	for i, id := range ids {
		if failed.Load() {
			break
		}
		err := pool.Submit(ctx, func() {
			if failed.Load() {
				return
			}
			if f.opts.limiter != nil {
				if err := f.opts.limiter.Wait(ctx); err != nil {
					fail(id, err)
					return
				}
			}

			start := time.Now()
			cols, err := f.client.ReadRange(ctx, f.layout.DataCollection, id, r)
			elapsed := time.Since(start)
			if err != nil {
				f.opts.metrics.ObserveFetch(elapsed, metrics.ResultError)
				fail(id, err)
				return
			}

			results[i] = FetchResult{Index: i, ID: id, Columns: cols, Elapsed: elapsed}
			if len(cols) == 0 {
				f.opts.metrics.ObserveFetch(elapsed, metrics.ResultEmpty)
			} else {
				f.opts.metrics.ObserveFetch(elapsed, metrics.ResultOK)
			}
		})
		if err != nil {
			fail(id, err)
			break
		}
	}

	// Barrier: every submitted fetch has finished once Stop returns.
	pool.Stop()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
