/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/metrics"
	"github.com/suparena/cfstress/storagemodels"
)

// Layout names the collections, row key and column scheme of a dataset.
type Layout struct {
	IndexCollection   string
	DataCollection    string
	IndexRowKey       string
	IndexColumnPrefix string
	DataColumnPrefix  string
	Placeholder       string
	RangeStart        string
	RangeEnd          string
	ProgressEvery     int
}

// LayoutFromConfig derives a Layout from the store and workload sections.
func LayoutFromConfig(cfg config.Config) Layout {
	return Layout{
		IndexCollection:   cfg.Store.IndexCollection,
		DataCollection:    cfg.Store.DataCollection,
		IndexRowKey:       cfg.Workload.IndexRowKey,
		IndexColumnPrefix: cfg.Workload.IndexColumnPrefix,
		DataColumnPrefix:  cfg.Workload.DataColumnPrefix,
		Placeholder:       cfg.Workload.Placeholder,
		RangeStart:        cfg.Workload.RangeStart,
		RangeEnd:          cfg.Workload.RangeEnd,
		ProgressEvery:     cfg.Workload.ProgressEvery,
	}
}

// DefaultLayout is the INDEXCF/DATACF dataset.
func DefaultLayout() Layout {
	return LayoutFromConfig(config.Default())
}

// IndexColumn returns the name of the i-th index column.
func (l Layout) IndexColumn(i int) string {
	return l.IndexColumnPrefix + strconv.Itoa(i)
}

// DataColumn returns the name of the j-th data column.
func (l Layout) DataColumn(j int) string {
	return l.DataColumnPrefix + strconv.Itoa(j)
}

func (l Layout) columnRange(limit int) storagemodels.ColumnRange {
	return storagemodels.ColumnRange{
		Start: l.RangeStart,
		End:   l.RangeEnd,
		Limit: limit,
	}
}

type options struct {
	logger   *zap.Logger
	metrics  *metrics.Collector
	reporter *Reporter
	limiter  *rate.Limiter
	newID    func() string
}

// Option configures a Writer, Fetcher or Coordinator.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:   zap.NewNop(),
		reporter: NewReporter(nil),
		newID:    uuid.NewString,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records into a Prometheus collector
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = c
	}
}

// WithReporter sets where operator timing lines go
func WithReporter(r *Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithRateLimiter paces fetch issuance. One limiter may be shared by all
// sessions of a run.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithIDGenerator replaces the entity identifier generator
func WithIDGenerator(f func() string) Option {
	return func(o *options) {
		if f != nil {
			o.newID = f
		}
	}
}
