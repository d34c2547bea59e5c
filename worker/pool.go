/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolStopped is returned by Submit once Stop has been called or before Start.
var ErrPoolStopped = errors.New("worker pool is not running")

// Job is a unit of work run by a pool worker.
type Job func()

// PoolConfig configures a Pool.
type PoolConfig struct {
	NumWorkers  int // Worker count (0 means NumCPU)
	QueueFactor int // Queue size = NumWorkers * QueueFactor
}

// DefaultPoolConfig returns the default pool configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		NumWorkers:  0,
		QueueFactor: 4,
	}
}

// Pool is a fixed set of goroutines consuming a bounded job queue.
type Pool struct {
	numWorkers int
	jobs       chan Job
	wg         sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewPool creates a pool with numWorkers workers.
// numWorkers <= 0 uses the CPU count.
func NewPool(numWorkers int) *Pool {
	config := DefaultPoolConfig()
	config.NumWorkers = numWorkers
	return NewPoolWithConfig(config)
}

// NewPoolWithConfig creates a pool from config.
func NewPoolWithConfig(config PoolConfig) *Pool {
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	queueFactor := config.QueueFactor
	if queueFactor <= 0 {
		queueFactor = 4
	}
	return &Pool{
		numWorkers: numWorkers,
		jobs:       make(chan Job, numWorkers*queueFactor),
	}
}

// Start launches the workers. Calling Start twice is a no-op, and a stopped
// pool cannot be restarted.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}
	p.started = true

	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		job()
	}
}

// Submit queues job, blocking while the queue is full. It returns ctx.Err()
// if ctx ends first and ErrPoolStopped if the pool is not running.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	// Holding the read lock keeps Stop from closing the queue mid-send.
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.started || p.stopped {
		return ErrPoolStopped
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.jobs <- job:
		return nil
	}
}

// Stop closes the queue, waits for every queued job to finish and joins
// all workers.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	started := p.started
	close(p.jobs)
	p.mu.Unlock()

	if started {
		p.wg.Wait()
	}
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// QueueSize returns the number of jobs waiting for a worker.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
