/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/suparena/cfstress/metrics"
)

// PopulateReport describes a populate run.
type PopulateReport struct {
	RunID        strfmt.UUID          `json:"run_id"`
	StartedAt    strfmt.DateTime      `json:"started_at"`
	Rows         int                  `json:"rows"`
	Columns      int                  `json:"columns"`
	RowsWritten  int                  `json:"rows_written"`
	IndexColumns int                  `json:"index_columns"`
	Elapsed      time.Duration        `json:"elapsed_ns"`
	WriteLatency metrics.LatencyStats `json:"write_latency"`

	// IDs are the entity identifiers in index order.
	IDs []string `json:"-"`
}

// LoadReport aggregates the sessions of a load run.
type LoadReport struct {
	RunID             strfmt.UUID          `json:"run_id"`
	StartedAt         strfmt.DateTime      `json:"started_at"`
	Params            LoadParams           `json:"params"`
	Sessions          []SessionResult      `json:"sessions"`
	SessionsCompleted int                  `json:"sessions_completed"`
	SessionsFailed    int                  `json:"sessions_failed"`
	Fetches           int                  `json:"fetches"`
	EmptyFetches      int                  `json:"empty_fetches"`
	Elapsed           time.Duration        `json:"elapsed_ns"`
	Throughput        float64              `json:"fetches_per_second"`
	FetchLatency      metrics.LatencyStats `json:"fetch_latency"`
	ScanLatency       metrics.LatencyStats `json:"scan_latency"`
	SessionLatency    metrics.LatencyStats `json:"session_latency"`
}

func newRunID() strfmt.UUID {
	return strfmt.UUID(uuid.NewString())
}

func newPopulateReport(n, columns int) *PopulateReport {
	return &PopulateReport{
		RunID:     newRunID(),
		StartedAt: strfmt.DateTime(time.Now().UTC()),
		Rows:      n,
		Columns:   columns,
		IDs:       make([]string, 0, n),
	}
}

func newLoadReport(p LoadParams) *LoadReport {
	return &LoadReport{
		RunID:     newRunID(),
		StartedAt: strfmt.DateTime(time.Now().UTC()),
		Params:    p,
	}
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
