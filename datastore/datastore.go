/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/cfstress/storagemodels"
)

// Client is a session against a wide-column store. Implementations must be
// safe for concurrent use by multiple goroutines.
type Client interface {
	// Write sets the given columns of rowKey in collection. Columns not named
	// are left untouched.
	Write(ctx context.Context, collection, rowKey string, columns ...storagemodels.Column) error

	// ReadRange returns the columns of rowKey whose names fall in r, in
	// column-name order (descending when r.Reversed), at most r.Limit of them.
	// A row that does not exist yields no columns and no error.
	ReadRange(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) ([]storagemodels.Column, error)

	// Close releases the session.
	Close() error
}
