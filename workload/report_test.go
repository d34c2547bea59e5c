/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/cfstress/metrics"
)

func TestWriteJSONLoadReport(t *testing.T) {
	store, _ := populated(t, 5, 2)
	report, err := NewCoordinator(store, DefaultLayout()).Load(context.Background(), LoadParams{
		Rows: 5, Columns: 2, Sessions: 2, FetchConcurrency: 2,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "load.json")
	require.NoError(t, WriteJSON(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, strfmt.IsUUID(decoded["run_id"].(string)))
	assert.Equal(t, float64(10), decoded["fetches"])

	sessions := decoded["sessions"].([]any)
	require.Len(t, sessions, 2)
	assert.Equal(t, "completed", sessions[0].(map[string]any)["state"])
}

func TestPopulateReportOmitsIDs(t *testing.T) {
	data, err := json.Marshal(&PopulateReport{IDs: []string{"row-id"}})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "row-id")
}

func TestReporterLines(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)

	r.SessionStarted(3)
	r.ScanDone(3, 100, 12*time.Millisecond)
	r.FetchDone(3, 100, 250*time.Millisecond)
	r.SessionFailed(4, StateScanning, 7*time.Millisecond, assert.AnError)

	assert.Equal(t, "Starting session #3\n"+
		"[3] Got index of 100 ids in 12 msecs\n"+
		"[3] Got 100 results in 250 msecs\n"+
		"[4] Failed in scanning after 7 msecs: "+assert.AnError.Error()+"\n",
		out.String())
}

func TestReporterSummary(t *testing.T) {
	var out bytes.Buffer
	NewReporter(&out).Summary(&LoadReport{
		RunID:             "run",
		SessionsCompleted: 3,
		SessionsFailed:    1,
		Fetches:           30,
		EmptyFetches:      2,
		Elapsed:           time.Second,
		Throughput:        30,
		FetchLatency: metrics.LatencyStats{
			Count: 30, Min: time.Millisecond, Avg: 2 * time.Millisecond,
			P50: 2 * time.Millisecond, P95: 3 * time.Millisecond, P99: 4 * time.Millisecond, Max: 5 * time.Millisecond,
		},
	})

	text := out.String()
	assert.Contains(t, text, "=== load run ===")
	assert.Contains(t, text, "Sessions:        3 ok, 1 failed")
	assert.Contains(t, text, "Fetches:         30 (2 empty)")
	assert.Contains(t, text, "Fetch latency:   min 1ms")
	assert.Contains(t, text, "Scan latency:    n/a")
}

func TestReporterDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		NewReporter(nil).SessionStarted(1)
	})
}
