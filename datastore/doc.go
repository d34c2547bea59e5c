/*
Package datastore defines the store session used by the stress harness.

The main interface is Client, a thread-safe session against a wide-column
store addressed by collection, row key and column name:

	type Client interface {
	    Write(ctx context.Context, collection, rowKey string, columns ...storagemodels.Column) error
	    ReadRange(ctx context.Context, collection, rowKey string, r storagemodels.ColumnRange) ([]storagemodels.Column, error)
	    Close() error
	}

Implementations:
  - cql: Apache Cassandra / ScyllaDB through gocql
  - ddb: Amazon DynamoDB, one table per collection
  - memory: in-process ordered store for tests and dry runs

Backends register an opener with the registry package under their name so
the harness can select one from configuration.
*/
package datastore
