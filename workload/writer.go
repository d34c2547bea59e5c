/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/metrics"
	"github.com/suparena/cfstress/storagemodels"
)

// dataRecord is the write descriptor of one entity. Columns is shared by
// every record of a run and never modified.
type dataRecord struct {
	ID      string
	Columns []storagemodels.Column
}

// Writer seeds the index and data collections. A Writer keeps no state
// between Populate calls; a single call is not safe to run concurrently
// with load traffic against the same dataset.
type Writer struct {
	client datastore.Client
	layout Layout
	opts   options
}

// NewWriter creates a Writer.
func NewWriter(client datastore.Client, layout Layout, opts ...Option) *Writer {
	return &Writer{client: client, layout: layout, opts: applyOptions(opts)}
}

// Populate writes n data rows of numberOfColumns columns each, then one
// index row with n columns referencing them. The first failed write aborts
// the run; rows already written stay in place and the index is not written.
// The returned report describes the work done, also on failure.
func (w *Writer) Populate(ctx context.Context, n, numberOfColumns int) (*PopulateReport, error) {
	if n < 0 {
		return nil, errors.NewConfigurationError("numberOfRows", "must not be negative")
	}
	if numberOfColumns < 0 {
		return nil, errors.NewConfigurationError("numberOfColumns", "must not be negative")
	}

	report := newPopulateReport(n, numberOfColumns)
	logger := w.opts.logger.With(zap.String("run_id", report.RunID.String()))
	writes := metrics.NewRecorder()
	start := time.Now()
	defer func() {
		report.Elapsed = time.Since(start)
		report.WriteLatency = writes.Stats()
	}()

	columns := make([]storagemodels.Column, numberOfColumns)
	for j := range columns {
		columns[j] = storagemodels.Column{Name: w.layout.DataColumn(j), Value: w.layout.Placeholder}
	}

	index := make([]storagemodels.Column, 0, n)
	for i := 0; i < n; i++ {
		record := dataRecord{ID: w.opts.newID(), Columns: columns}

		began := time.Now()
		if err := w.client.Write(ctx, w.layout.DataCollection, record.ID, record.Columns...); err != nil {
			logger.Error("data write failed", zap.Int("row", i), zap.String("id", record.ID), zap.Error(err))
			return report, errors.NewWriteError(w.layout.DataCollection, record.ID, i, err)
		}
		writes.Record(time.Since(began))
		w.opts.metrics.AddRowsWritten(w.layout.DataCollection, 1)

		index = append(index, storagemodels.Column{Name: w.layout.IndexColumn(i), Value: record.ID})
		report.IDs = append(report.IDs, record.ID)
		report.RowsWritten++

		if every := w.layout.ProgressEvery; every > 0 && (i+1)%every == 0 {
			logger.Info("populate progress", zap.Int("rows", i+1), zap.Int("total", n))
		}
	}

	if len(index) > 0 {
		if err := w.client.Write(ctx, w.layout.IndexCollection, w.layout.IndexRowKey, index...); err != nil {
			logger.Error("index write failed", zap.Int("columns", len(index)), zap.Error(err))
			return report, errors.NewWriteError(w.layout.IndexCollection, w.layout.IndexRowKey, -1, err)
		}
		w.opts.metrics.AddRowsWritten(w.layout.IndexCollection, 1)
	}
	report.IndexColumns = len(index)

	logger.Info("populate finished",
		zap.Int("rows", n),
		zap.Int("columns", numberOfColumns),
		zap.Duration("elapsed", time.Since(start)))
	return report, nil
}
