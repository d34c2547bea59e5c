/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package workload

import (
	"context"

	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/storagemodels"
)

// Scanner reads the working set of entity identifiers from the index row.
type Scanner struct {
	client datastore.Client
	layout Layout
}

// NewScanner creates a Scanner.
func NewScanner(client datastore.Client, layout Layout) *Scanner {
	return &Scanner{client: client, layout: layout}
}

// Scan returns up to n identifiers in ascending column-name order. An
// index with fewer columns yields what exists; n == 0 issues no read.
func (s *Scanner) Scan(ctx context.Context, n int) ([]string, error) {
	if n < 0 {
		return nil, errors.NewConfigurationError("numberOfRows", "must not be negative")
	}
	if n == 0 {
		return []string{}, nil
	}

	cols, err := s.client.ReadRange(ctx, s.layout.IndexCollection, s.layout.IndexRowKey, s.layout.columnRange(n))
	if err != nil {
		return nil, errors.NewReadError(s.layout.IndexCollection, s.layout.IndexRowKey, err)
	}
	if len(cols) > n {
		cols = cols[:n]
	}
	return storagemodels.Values(cols), nil
}
