// Package worker provides a fixed-size goroutine pool with a scoped lifetime.
//
// The Pool runs a fixed number of worker goroutines that process jobs from
// a shared bounded queue. Submitting to a full queue blocks, so callers never
// spawn unbounded work.
//
// # Basic Usage
//
//	pool := worker.NewPool(10) // 10 workers
//	pool.Start()
//	defer pool.Stop()
//
//	for _, id := range ids {
//	    if err := pool.Submit(ctx, func() { fetch(id) }); err != nil {
//	        break
//	    }
//	}
//	pool.Stop() // barrier: every queued job has run
//
// # Shutdown
//
// Stop closes the queue, lets the workers drain every job already queued
// and joins them. It is idempotent, so it is safe to both defer it and call
// it explicitly as a wait-all barrier.
package worker
