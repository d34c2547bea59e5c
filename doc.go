/*
Package cfstress is a phased stress harness for wide-column stores such as
Apache Cassandra, ScyllaDB and Amazon DynamoDB.

A run has two phases, normally executed as separate invocations:
  - populate seeds one index row plus one data row per entity
  - load replays a scan-then-fan-out read pattern from concurrent sessions
    and reports per-session and per-fetch latency

Basic Usage:

	cfg := config.Default()
	cfg.Store.Hosts = []string{"10.0.0.1", "10.0.0.2"}

	h, err := cfstress.New(ctx, cfg, cfstress.WithLogger(logger))
	if err != nil {
	    return err
	}
	defer h.Close()

	if _, err := h.Populate(ctx, 100000, 100); err != nil {
	    return err
	}
	report, err := h.Load(ctx, workload.LoadParams{
	    Rows: 100000, Columns: 100, Sessions: 10, FetchConcurrency: 10,
	})

Backends are selected by name through the registry ("cassandra",
"dynamodb" or "memory"). The index and data collections must already
exist; cfstress never creates schema.

The cmd/cfstress binary wraps this package with a command line interface.
*/
package cfstress
