/*
Package cql provides an Apache Cassandra / ScyllaDB implementation of the
datastore.Client interface on top of gocql.

Collections are addressed through their CQL view as compact wide rows:

	CREATE TABLE test."DATACF" (
	    key     text,
	    column1 text,
	    value   text,
	    PRIMARY KEY (key, column1)
	) WITH COMPACT STORAGE;

A bounded column range read is a single clustering-range SELECT with a
LIMIT. Writes of many columns go out as unlogged batches, all statements of
a batch addressing the same partition. Read and write consistency levels
are resolved per collection when the session opens.
*/
package cql
