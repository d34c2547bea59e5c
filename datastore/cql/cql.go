/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore"
	"github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/registry"
	"github.com/suparena/cfstress/storagemodels"
)

// Column names of the CQL view of a compact wide row.
const (
	keyColumn   = "key"
	nameColumn  = "column1"
	valueColumn = "value"
)

func init() {
	registry.RegisterBackend(config.BackendCassandra, func(ctx context.Context, cfg config.Store) (datastore.Client, error) {
		return Open(ctx, cfg)
	})
}

// Client implements datastore.Client over a gocql session.
type Client struct {
	session  *gocql.Session
	keyspace string
	store    config.Store
	options  storagemodels.RetryOptions
}

var _ datastore.Client = (*Client)(nil)

// NewCluster builds the cluster configuration for a store.
func NewCluster(cfg config.Store) (*gocql.ClusterConfig, error) {
	consistency, err := parseConsistency(cfg.Consistency)
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, errors.NewConfigurationError("store.connect_timeout", err.Error())
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = consistency
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())
	if cfg.NumConns > 0 {
		cluster.NumConns = cfg.NumConns
	}
	if timeout > 0 {
		cluster.Timeout = timeout
		cluster.ConnectTimeout = timeout
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	return cluster, nil
}

// Open connects to the cluster. Connection failures are reported as
// StoreUnavailableError.
func Open(_ context.Context, cfg config.Store, opts ...storagemodels.RetryOption) (*Client, error) {
	for _, collection := range []string{cfg.IndexCollection, cfg.DataCollection} {
		if _, err := parseConsistency(cfg.ReadConsistency(collection)); err != nil {
			return nil, err
		}
		if _, err := parseConsistency(cfg.WriteConsistency(collection)); err != nil {
			return nil, err
		}
	}

	cluster, err := NewCluster(cfg)
	if err != nil {
		return nil, err
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, errors.NewStoreUnavailableError(config.BackendCassandra, cfg.Hosts, err)
	}

	options := storagemodels.DefaultRetryOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Client{
		session:  session,
		keyspace: cfg.Keyspace,
		store:    cfg,
		options:  options,
	}, nil
}

// ReadRange selects the row's columns between r.Start and r.End.
func (c *Client) ReadRange(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) ([]storagemodels.Column, error) {
	if r.Empty() {
		return []storagemodels.Column{}, nil
	}
	cl, err := parseConsistency(c.store.ReadConsistency(collection))
	if err != nil {
		return nil, err
	}

	iter := c.session.Query(selectStatement(c.keyspace, collection, r.Reversed), rowKey, r.Start, r.End, r.Limit).
		WithContext(ctx).
		Consistency(cl).
		PageSize(int(c.options.PageSize)).
		Iter()

	cols := make([]storagemodels.Column, 0, min(r.Limit, int(c.options.PageSize)))
	var name, value string
	for iter.Scan(&name, &value) {
		cols = append(cols, storagemodels.Column{Name: name, Value: value})
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("select from %s failed: %w", collection, err)
	}
	return cols, nil
}

// Write inserts the columns in unlogged batches of BatchSize statements.
func (c *Client) Write(ctx context.Context, collection, rowKey string, columns ...storagemodels.Column) error {
	cl, err := parseConsistency(c.store.WriteConsistency(collection))
	if err != nil {
		return err
	}
	stmt := insertStatement(c.keyspace, collection)

	for _, chunk := range chunkColumns(columns, c.options.BatchSize) {
		if len(chunk) == 1 {
			err := c.session.Query(stmt, rowKey, chunk[0].Name, chunk[0].Value).
				WithContext(ctx).
				Consistency(cl).
				Exec()
			if err != nil {
				return fmt.Errorf("insert into %s failed: %w", collection, err)
			}
			continue
		}

		batch := c.session.NewBatch(gocql.UnloggedBatch).WithContext(ctx)
		batch.SetConsistency(cl)
		for _, col := range chunk {
			batch.Query(stmt, rowKey, col.Name, col.Value)
		}
		if err := c.session.ExecuteBatch(batch); err != nil {
			return fmt.Errorf("batch insert into %s failed: %w", collection, err)
		}
	}
	return nil
}

// Close closes the session.
func (c *Client) Close() error {
	c.session.Close()
	return nil
}

func selectStatement(keyspace, table string, reversed bool) string {
	order := "ASC"
	if reversed {
		order = "DESC"
	}
	return fmt.Sprintf(`SELECT %s, %s FROM %s.%s WHERE %s = ? AND %s >= ? AND %s <= ? ORDER BY %s %s LIMIT ?`,
		nameColumn, valueColumn, quote(keyspace), quote(table), keyColumn, nameColumn, nameColumn, nameColumn, order)
}

func insertStatement(keyspace, table string) string {
	return fmt.Sprintf(`INSERT INTO %s.%s (%s, %s, %s) VALUES (?, ?, ?)`,
		quote(keyspace), quote(table), keyColumn, nameColumn, valueColumn)
}

// quote makes a case-sensitive CQL identifier.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func chunkColumns(columns []storagemodels.Column, size int) [][]storagemodels.Column {
	if size <= 0 {
		size = len(columns)
	}
	var chunks [][]storagemodels.Column
	for start := 0; start < len(columns); start += size {
		chunks = append(chunks, columns[start:min(start+size, len(columns))])
	}
	return chunks
}

func parseConsistency(level string) (gocql.Consistency, error) {
	if level == "" {
		return gocql.One, nil
	}
	cl, err := gocql.ParseConsistencyWrapper(strings.ToUpper(level))
	if err != nil {
		return 0, errors.NewConfigurationError("store.consistency", err.Error())
	}
	return cl, nil
}
