/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suparena/cfstress/datastore/memory"
	"github.com/suparena/cfstress/storagemodels"
)

// sequentialIDs returns a generator of predictable identifiers.
func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%05d", prefix, n.Add(1)-1)
	}
}

// populated returns a memory store seeded with n rows of cols columns.
func populated(t *testing.T, n, cols int) (*memory.Store, []string) {
	t.Helper()
	store := memory.New()
	report, err := NewWriter(store, DefaultLayout()).Populate(context.Background(), n, cols)
	require.NoError(t, err)
	return store, report.IDs
}

// peakTracker records the maximum number of concurrent reads.
type peakTracker struct {
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (p *peakTracker) enter() {
	n := p.inFlight.Add(1)
	for {
		cur := p.peak.Load()
		if n <= cur || p.peak.CompareAndSwap(cur, n) {
			return
		}
	}
}

func (p *peakTracker) leave() {
	p.inFlight.Add(-1)
}

func indexColumns(store *memory.Store) map[string]string {
	return store.Row("INDEXCF", "index")
}

var fullRange = storagemodels.ColumnRange{Start: "a", End: "z", Limit: 1 << 20}
