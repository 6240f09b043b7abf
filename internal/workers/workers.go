// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Go once Wait has been called.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool is a [Spawner] with an optional limit on concurrently live tasks.
type Pool struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup

	// mu orders wg.Add against Wait.
	mu     sync.Mutex
	closed bool
}

// NewPool returns a Pool admitting at most limit live tasks. A limit of
// zero or less means no bound: every task starts immediately.
func NewPool(limit int) *Pool {
	p := &Pool{}
	if limit > 0 {
		p.sem = semaphore.NewWeighted(int64(limit))
	}
	return p
}

// Go starts task once a slot is free. It returns ctx.Err() without running
// the task if ctx is done first, and ErrPoolClosed if Wait has begun.
func (p *Pool) Go(ctx context.Context, task func()) error {
	if p.isClosed() {
		return ErrPoolClosed
	}

	if p.sem != nil {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		if p.sem != nil {
			p.sem.Release(1)
		}
		return ErrPoolClosed
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			defer p.sem.Release(1)
		}
		task()
	}()

	return nil
}

// Wait closes the pool to new tasks and blocks until every admitted task
// has returned.
func (p *Pool) Wait() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}
