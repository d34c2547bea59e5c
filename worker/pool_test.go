/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package worker

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolDefaults(t *testing.T) {
	pool := NewPool(0)
	if pool.NumWorkers() != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), pool.NumWorkers())
	}

	pool = NewPoolWithConfig(PoolConfig{NumWorkers: 3, QueueFactor: 0})
	if cap(pool.jobs) != 12 {
		t.Errorf("expected queue capacity 12, got %d", cap(pool.jobs))
	}
}

func TestPoolRunsAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var count atomic.Int64
	for range 100 {
		if err := pool.Submit(context.Background(), func() { count.Add(1) }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Stop()

	if count.Load() != 100 {
		t.Errorf("expected 100 jobs run, got %d", count.Load())
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	const workers = 3
	pool := NewPool(workers)
	pool.Start()

	var inFlight, peak atomic.Int64
	for range 30 {
		err := pool.Submit(context.Background(), func() {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inFlight.Add(-1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	pool.Stop()

	if peak.Load() > workers {
		t.Errorf("peak concurrency %d exceeded %d workers", peak.Load(), workers)
	}
	if peak.Load() < 1 {
		t.Error("no job ran")
	}
}

func TestPoolSubmitAfterStop(t *testing.T) {
	pool := NewPool(1)
	if err := pool.Submit(context.Background(), func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped before Start, got %v", err)
	}

	pool.Start()
	pool.Stop()
	pool.Stop() // idempotent

	if err := pool.Submit(context.Background(), func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped after Stop, got %v", err)
	}
}

func TestPoolSubmitHonorsContext(t *testing.T) {
	pool := NewPoolWithConfig(PoolConfig{NumWorkers: 1, QueueFactor: 1})
	pool.Start()
	defer pool.Stop()

	release := make(chan struct{})
	// One job occupies the worker, one fills the queue.
	for range 2 {
		if err := pool.Submit(context.Background(), func() { <-release }); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Submit(ctx, func() {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	close(release)
}

func TestPoolStopWithoutStart(t *testing.T) {
	pool := NewPool(2)
	pool.Stop()
	pool.Start()
	if err := pool.Submit(context.Background(), func() {}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got %v", err)
	}
}
