// Package metrics collects load-run measurements.
//
// Collector exposes Prometheus histograms and counters on a private
// registry, served over HTTP while a run is in progress:
//
//	c := metrics.NewCollector()
//	c.ObserveFetch(elapsed, metrics.ResultOK)
//	srv := metrics.Serve(ctx, ":9100", c, logger)
//
// LatencyStats summarises a set of duration samples (min, average,
// percentiles, max) for the end-of-run report.
package metrics
