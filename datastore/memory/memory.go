/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package memory provides an in-process implementation of datastore.Client
// used by tests and dry runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/registry"
	"github.com/suparena/cfstress/storagemodels"
)

func init() {
	registry.RegisterBackend(config.BackendMemory, func(context.Context, config.Store) (datastore.Client, error) {
		return New(), nil
	})
}

// ReadFunc intercepts ReadRange calls. Returning handled=false falls
// through to the stored data.
type ReadFunc func(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) (cols []storagemodels.Column, handled bool, err error)

// WriteFunc intercepts Write calls. A non-nil error fails the write before
// anything is stored.
type WriteFunc func(ctx context.Context, collection, rowKey string, columns []storagemodels.Column) error

// Store keeps collections as collection -> row key -> column -> value.
type Store struct {
	mu     sync.RWMutex
	data   map[string]map[string]map[string]string
	closed bool

	readFunc   ReadFunc
	writeFunc  WriteFunc
	writeError error
	readError  error
}

var _ datastore.Client = (*Store)(nil)

// New creates an empty Store.
func New() *Store {
	return &Store{
		data: make(map[string]map[string]map[string]string),
	}
}

// WithWriteError makes every Write return err
func (m *Store) WithWriteError(err error) *Store {
	m.writeError = err
	return m
}

// WithReadError makes every ReadRange return err
func (m *Store) WithReadError(err error) *Store {
	m.readError = err
	return m
}

// WithReadFunc installs a read interceptor
func (m *Store) WithReadFunc(f ReadFunc) *Store {
	m.readFunc = f
	return m
}

// WithWriteFunc installs a write interceptor
func (m *Store) WithWriteFunc(f WriteFunc) *Store {
	m.writeFunc = f
	return m
}

// Write sets columns on the row, creating the row and collection on demand.
func (m *Store) Write(ctx context.Context, collection, rowKey string, columns ...storagemodels.Column) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.writeError != nil {
		return m.writeError
	}
	if m.writeFunc != nil {
		if err := m.writeFunc(ctx, collection, rowKey, columns); err != nil {
			return err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.data[collection]
	if !ok {
		rows = make(map[string]map[string]string)
		m.data[collection] = rows
	}
	row, ok := rows[rowKey]
	if !ok {
		row = make(map[string]string, len(columns))
		rows[rowKey] = row
	}
	for _, c := range columns {
		row[c.Name] = c.Value
	}
	return nil
}

// ReadRange returns the columns of the row inside r in byte-wise name order.
func (m *Store) ReadRange(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) ([]storagemodels.Column, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.readError != nil {
		return nil, m.readError
	}
	if m.readFunc != nil {
		cols, handled, err := m.readFunc(ctx, collection, rowKey, r)
		if handled || err != nil {
			return cols, err
		}
	}
	if r.Empty() {
		return []storagemodels.Column{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	cols := []storagemodels.Column{}
	for _, c := range storagemodels.ColumnsFromMap(m.data[collection][rowKey]) {
		if r.Contains(c.Name) {
			cols = append(cols, c)
		}
	}
	if r.Reversed {
		slices.Reverse(cols)
	}
	if len(cols) > r.Limit {
		cols = cols[:r.Limit]
	}
	return cols, nil
}

// Close marks the store closed. Data stays readable for assertions.
func (m *Store) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called
func (m *Store) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Count returns the number of rows in collection
func (m *Store) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data[collection])
}

// Row returns a copy of the row's columns, or nil if it does not exist
func (m *Store) Row(collection, rowKey string) map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.data[collection][rowKey]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// Clear removes all data
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]map[string]map[string]string)
}
