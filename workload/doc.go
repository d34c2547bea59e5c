/*
Package workload implements the populate and load phases of a stress run.

Populate seeds one index row plus one data row per entity:

	w := workload.NewWriter(client, layout, workload.WithLogger(logger))
	report, err := w.Populate(ctx, 100000, 100)

Each data row gets numberOfColumns columns "hello<j>" set to a placeholder.
The index row "index" in the index collection gets one column "col<i>" per
entity, holding that entity's identifier. Data rows are written first and
the index once at the end, so the index never references an unwritten row.
Re-running populate overwrites the index columns by position; rows of the
earlier run stay in the data collection unreferenced.

Load replays a two-level read pattern from several independent sessions:

	c := workload.NewCoordinator(client, layout, workload.WithReporter(r))
	report, err := c.Load(ctx, workload.LoadParams{
	    Rows: 100000, Columns: 100, Sessions: 10, FetchConcurrency: 10,
	})

Each session scans the index row, then fetches every referenced data row
through its own bounded worker pool. Results keep index order. A failed
fetch fails its session; sibling sessions always run to completion and the
coordinator reports every failure after all sessions are done.

Nothing in this package retries or times out. Cancellation flows only from
the caller's context.
*/
package workload
