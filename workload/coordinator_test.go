/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"bytes"
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/cfstress/datastore/memory"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/storagemodels"
)

func TestLoadEmptyDataset(t *testing.T) {
	store := memory.New()
	_, err := NewWriter(store, DefaultLayout()).Populate(context.Background(), 0, 0)
	require.NoError(t, err)

	report, err := NewCoordinator(store, DefaultLayout()).Load(context.Background(), LoadParams{
		Rows: 0, Columns: 0, Sessions: 1, FetchConcurrency: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.SessionsCompleted)
	assert.Zero(t, report.Fetches)
	require.Len(t, report.Sessions, 1)
	assert.Equal(t, StateCompleted, report.Sessions[0].State)
}

func TestLoadFourSessions(t *testing.T) {
	store, _ := populated(t, 100, 5)

	var mu sync.Mutex
	perRow := map[string]int{}
	var tracker peakTracker
	var indexReads atomic.Int64
	store.WithReadFunc(func(_ context.Context, collection, rowKey string, _ storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
		if collection == "INDEXCF" {
			indexReads.Add(1)
			return nil, false, nil
		}
		tracker.enter()
		defer tracker.leave()
		mu.Lock()
		perRow[rowKey]++
		mu.Unlock()
		time.Sleep(time.Millisecond)
		return nil, false, nil
	})

	var out bytes.Buffer
	report, err := NewCoordinator(store, DefaultLayout(), WithReporter(NewReporter(&out))).Load(context.Background(), LoadParams{
		Rows: 100, Columns: 5, Sessions: 4, FetchConcurrency: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4), indexReads.Load())
	assert.Equal(t, 4, report.SessionsCompleted)
	assert.Equal(t, 400, report.Fetches)
	assert.Zero(t, report.EmptyFetches)
	assert.Len(t, perRow, 100)
	for id, n := range perRow {
		assert.Equal(t, 4, n, id)
	}
	for _, s := range report.Sessions {
		assert.Equal(t, 100, s.ScanSize)
		assert.Equal(t, 100, s.Fetches)
	}
	// Four sessions of at most ten fetches each.
	assert.LessOrEqual(t, tracker.peak.Load(), int64(40))
	assert.Equal(t, 400, report.FetchLatency.Count)

	text := out.String()
	for i := 0; i < 4; i++ {
		assert.Contains(t, text, "Starting session #"+strconv.Itoa(i))
		assert.Contains(t, text, "["+strconv.Itoa(i)+"] Got index of 100 ids in ")
		assert.Contains(t, text, "["+strconv.Itoa(i)+"] Got 100 results in ")
	}
	assert.Contains(t, text, "Sessions:        4 ok, 0 failed")
}

func TestLoadDanglingReference(t *testing.T) {
	store, _ := populated(t, 3, 2)
	// Point an extra index column at a row that was never written.
	require.NoError(t, store.Write(context.Background(), "INDEXCF", "index",
		storagemodels.Column{Name: "col3", Value: "ghost"}))

	report, err := NewCoordinator(store, DefaultLayout()).Load(context.Background(), LoadParams{
		Rows: 10, Columns: 2, Sessions: 2, FetchConcurrency: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, report.Fetches)
	assert.Equal(t, 2, report.EmptyFetches)
	for _, s := range report.Sessions {
		assert.Equal(t, StateCompleted, s.State)
		assert.Equal(t, 4, s.Fetches)
		assert.Equal(t, 1, s.EmptyFetches)
	}
}

func TestLoadFailedSessionDoesNotStopSiblings(t *testing.T) {
	store, ids := populated(t, 20, 1)
	boom := stderrors.New("replica timeout")
	var failures atomic.Int64
	store.WithReadFunc(func(_ context.Context, _ string, rowKey string, _ storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
		// Exactly one fetch in the whole run fails.
		if rowKey == ids[7] && failures.Add(1) == 1 {
			return nil, true, boom
		}
		return nil, false, nil
	})

	var out bytes.Buffer
	report, err := NewCoordinator(store, DefaultLayout(), WithReporter(NewReporter(&out))).Load(context.Background(), LoadParams{
		Rows: 20, Columns: 1, Sessions: 5, FetchConcurrency: 3,
	})
	require.Error(t, err)
	require.NotNil(t, report)

	assert.True(t, errors.IsSessionsFailed(err))
	assert.True(t, errors.IsReadError(err))
	assert.ErrorIs(t, err, boom)

	var serr *errors.SessionsFailedError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 1, serr.Failed)
	assert.Equal(t, 5, serr.Total)

	assert.Equal(t, 4, report.SessionsCompleted)
	assert.Equal(t, 1, report.SessionsFailed)
	for _, s := range report.Sessions {
		if s.State == StateFailed {
			assert.Contains(t, s.Error, "replica timeout")
			continue
		}
		assert.Equal(t, StateCompleted, s.State)
		assert.Equal(t, 20, s.Fetches)
	}
	assert.Contains(t, out.String(), "Failed in fetching after")
}

func TestLoadScanFailure(t *testing.T) {
	store, _ := populated(t, 5, 1)
	store.WithReadFunc(func(_ context.Context, collection, _ string, _ storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
		if collection == "INDEXCF" {
			return nil, true, stderrors.New("index unavailable")
		}
		return nil, false, nil
	})

	var out bytes.Buffer
	report, err := NewCoordinator(store, DefaultLayout(), WithReporter(NewReporter(&out))).Load(context.Background(), LoadParams{
		Rows: 5, Columns: 1, Sessions: 3, FetchConcurrency: 1,
	})
	require.Error(t, err)

	var serr *errors.SessionsFailedError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Failed)
	assert.Equal(t, 3, report.SessionsFailed)
	assert.Equal(t, 3, strings.Count(out.String(), "Failed in scanning after"))
}

func TestLoadValidatesParams(t *testing.T) {
	c := NewCoordinator(memory.New(), DefaultLayout())
	for _, p := range []LoadParams{
		{Rows: -1, Columns: 1, Sessions: 1, FetchConcurrency: 1},
		{Rows: 1, Columns: -1, Sessions: 1, FetchConcurrency: 1},
		{Rows: 1, Columns: 1, Sessions: 0, FetchConcurrency: 1},
		{Rows: 1, Columns: 1, Sessions: 1, FetchConcurrency: 0},
	} {
		_, err := c.Load(context.Background(), p)
		assert.True(t, errors.IsConfigurationError(err), "%+v", p)
	}
}

