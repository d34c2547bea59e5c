/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cfstress

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/metrics"
	"github.com/suparena/cfstress/registry"
	"github.com/suparena/cfstress/workload"

	// Store backends register themselves with the registry.
	_ "github.com/suparena/cfstress/datastore/cql"
	_ "github.com/suparena/cfstress/datastore/ddb"
	_ "github.com/suparena/cfstress/datastore/memory"
)

// Harness runs populate and load phases against one store session.
type Harness struct {
	cfg      config.Config
	client   datastore.Client
	logger   *zap.Logger
	metrics  *metrics.Collector
	reporter *workload.Reporter
	limiter  *rate.Limiter
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the structured logger
func WithLogger(logger *zap.Logger) Option {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics records run metrics into c
func WithMetrics(c *metrics.Collector) Option {
	return func(h *Harness) {
		h.metrics = c
	}
}

// WithOutput sets where operator timing lines are printed (default stdout)
func WithOutput(w io.Writer) Option {
	return func(h *Harness) {
		h.reporter = workload.NewReporter(w)
	}
}

// WithClient uses an already open client instead of opening one from the
// store configuration. The Harness takes ownership and closes it.
func WithClient(client datastore.Client) Option {
	return func(h *Harness) {
		h.client = client
	}
}

// New validates cfg and opens the configured store.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	h := &Harness{
		cfg:      cfg,
		logger:   zap.NewNop(),
		reporter: workload.NewReporter(os.Stdout),
	}
	for _, opt := range opts {
		opt(h)
	}

	if cfg.Workload.FetchRate > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.Workload.FetchRate), 1)
	}

	if h.client == nil {
		h.logger.Info("opening store",
			zap.String("backend", cfg.Store.Backend),
			zap.Strings("hosts", cfg.Store.Hosts),
			zap.String("keyspace", cfg.Store.Keyspace))

		client, err := registry.Open(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		h.client = client
	}
	return h, nil
}

func (h *Harness) options() []workload.Option {
	return []workload.Option{
		workload.WithLogger(h.logger),
		workload.WithMetrics(h.metrics),
		workload.WithReporter(h.reporter),
		workload.WithRateLimiter(h.limiter),
	}
}

// Populate seeds n data rows of numberOfColumns columns and the index row.
func (h *Harness) Populate(ctx context.Context, n, numberOfColumns int) (*workload.PopulateReport, error) {
	w := workload.NewWriter(h.client, workload.LayoutFromConfig(h.cfg), h.options()...)

	report, err := w.Populate(ctx, n, numberOfColumns)
	if err != nil {
		return report, err
	}
	h.reporter.Populated(report)
	return report, h.writeReport(report)
}

// Load runs the load sessions described by p. The report is returned and
// written out even when sessions failed.
func (h *Harness) Load(ctx context.Context, p workload.LoadParams) (*workload.LoadReport, error) {
	c := workload.NewCoordinator(h.client, workload.LayoutFromConfig(h.cfg), h.options()...)

	report, err := c.Load(ctx, p)
	if report != nil {
		if werr := h.writeReport(report); werr != nil && err == nil {
			err = werr
		}
	}
	return report, err
}

func (h *Harness) writeReport(report any) error {
	path := h.cfg.Output.ReportPath
	if path == "" {
		return nil
	}
	if err := workload.WriteJSON(path, report); err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}
	h.logger.Info("report written", zap.String("path", path))
	return nil
}

// Close closes the store session.
func (h *Harness) Close() error {
	return h.client.Close()
}
