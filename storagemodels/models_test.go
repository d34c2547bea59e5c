/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnRangeContains(t *testing.T) {
	r := ColumnRange{Start: "a", End: "z", Limit: 10}

	assert.True(t, r.Contains("col0"))
	assert.True(t, r.Contains("hello99"))
	assert.True(t, r.Contains("a"))
	assert.True(t, r.Contains("z"))
	assert.False(t, r.Contains("Z"))
	assert.False(t, r.Contains("zz"))

	open := ColumnRange{Limit: 1}
	assert.True(t, open.Contains(""))
	assert.True(t, open.Contains("~~~"))
}

func TestColumnRangeEmpty(t *testing.T) {
	assert.True(t, ColumnRange{Start: "a", End: "z"}.Empty())
	assert.True(t, ColumnRange{Start: "z", End: "a", Limit: 5}.Empty())
	assert.False(t, ColumnRange{Start: "a", End: "z", Limit: 5}.Empty())
	assert.False(t, ColumnRange{Limit: 1}.Empty())
}

func TestColumnsFromMapSortsByName(t *testing.T) {
	cols := ColumnsFromMap(map[string]string{
		"col10": "c",
		"col0":  "a",
		"col1":  "b",
		"col2":  "d",
	})

	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"col0", "col1", "col10", "col2"}, names)
	assert.Equal(t, []string{"a", "b", "c", "d"}, Values(cols))
}

func TestDefaultRetryOptions(t *testing.T) {
	opts := DefaultRetryOptions()
	for _, o := range []RetryOption{WithMaxRetries(1), WithPageSize(10), WithBatchSize(5)} {
		o(&opts)
	}

	assert.Equal(t, 1, opts.MaxRetries)
	assert.Equal(t, int32(10), opts.PageSize)
	assert.Equal(t, 5, opts.BatchSize)
	assert.Equal(t, DefaultRetryOptions().RetryBackoff, opts.RetryBackoff)
}
