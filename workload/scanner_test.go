/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	stderrors "errors"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/cfstress/datastore/memory"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/storagemodels"
)

func TestScanReturnsAtMostN(t *testing.T) {
	store, _ := populated(t, 30, 1)
	s := NewScanner(store, DefaultLayout())

	ids, err := s.Scan(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, ids, 10)

	ids, err = s.Scan(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, ids, 30, "a smaller index is not an error")
}

func TestScanColumnNameOrder(t *testing.T) {
	store, ids := populated(t, 12, 1)
	index := indexColumns(store)

	got, err := NewScanner(store, DefaultLayout()).Scan(context.Background(), 12)
	require.NoError(t, err)

	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)
	want := make([]string, len(names))
	for i, name := range names {
		want[i] = index[name]
	}
	assert.Equal(t, want, got)
	// col10 and col11 sort between col1 and col2.
	assert.Equal(t, ids[10], got[2])
}

func TestScanZeroIssuesNoRead(t *testing.T) {
	var reads atomic.Int64
	store := memory.New().WithReadFunc(func(context.Context, string, string, storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
		reads.Add(1)
		return nil, false, nil
	})

	ids, err := NewScanner(store, DefaultLayout()).Scan(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Zero(t, reads.Load())
}

func TestScanMissingIndex(t *testing.T) {
	ids, err := NewScanner(memory.New(), DefaultLayout()).Scan(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestScanReadError(t *testing.T) {
	boom := stderrors.New("unavailable")
	store := memory.New().WithReadError(boom)

	_, err := NewScanner(store, DefaultLayout()).Scan(context.Background(), 5)
	assert.True(t, errors.IsReadError(err))
	assert.ErrorIs(t, err, boom)

	var rerr *errors.ReadError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "INDEXCF", rerr.Collection)
	assert.Equal(t, "index", rerr.RowKey)
}

func TestScanUsesConfiguredRange(t *testing.T) {
	var got storagemodels.ColumnRange
	store := memory.New().WithReadFunc(func(_ context.Context, _ string, _ string, r storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
		got = r
		return nil, true, nil
	})

	_, err := NewScanner(store, DefaultLayout()).Scan(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, storagemodels.ColumnRange{Start: "a", End: "z", Limit: 7}, got)
}
