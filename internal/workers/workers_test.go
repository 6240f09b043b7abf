// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(2)

	var ran atomic.Int32
	for range 10 {
		if err := p.Go(context.Background(), func() { ran.Add(1) }); err != nil {
			t.Fatalf("Go: unexpected error: %v", err)
		}
	}
	p.Wait()

	if got := ran.Load(); got != 10 {
		t.Errorf("expected 10 tasks to run, got %d", got)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const limit = 3
	p := NewPool(limit)

	var live, peak atomic.Int32
	release := make(chan struct{})

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	for range 12 {
		err := p.Go(context.Background(), func() {
			n := live.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			<-release
			live.Add(-1)
		})
		if err != nil {
			t.Fatalf("Go: unexpected error: %v", err)
		}
	}
	p.Wait()

	if got := peak.Load(); got > limit {
		t.Errorf("expected at most %d live tasks, saw %d", limit, got)
	}
}

func TestPool_Unbounded(t *testing.T) {
	p := NewPool(0)

	started := make(chan struct{}, 50)
	release := make(chan struct{})
	for range 50 {
		if err := p.Go(context.Background(), func() {
			started <- struct{}{}
			<-release
		}); err != nil {
			t.Fatalf("Go: unexpected error: %v", err)
		}
	}

	for i := range 50 {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatalf("task %d did not start without a limit", i)
		}
	}
	close(release)
	p.Wait()
}

func TestPool_GoHonorsContext(t *testing.T) {
	p := NewPool(1)

	release := make(chan struct{})
	if err := p.Go(context.Background(), func() { <-release }); err != nil {
		t.Fatalf("Go: unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	err := p.Go(ctx, func() { ran = true })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}

	close(release)
	p.Wait()

	if ran {
		t.Error("task must not run when admission is cancelled")
	}
}

func TestPool_WaitWithoutTasks(t *testing.T) {
	// Should not block when nothing was submitted
	NewPool(4).Wait()
}

func TestPool_GoAfterWaitIsRejected(t *testing.T) {
	for _, limit := range []int{0, 2} {
		p := NewPool(limit)
		p.Wait()

		ran := false
		if err := p.Go(context.Background(), func() { ran = true }); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("limit %d: expected ErrPoolClosed, got %v", limit, err)
		}
		if ran {
			t.Errorf("limit %d: task must not run on a closed pool", limit)
		}
	}
}

func TestPool_AdmissionBlockedAcrossWaitIsRejected(t *testing.T) {
	p := NewPool(1)

	release := make(chan struct{})
	if err := p.Go(context.Background(), func() { <-release }); err != nil {
		t.Fatalf("Go: unexpected error: %v", err)
	}

	var ran atomic.Bool
	admitted := make(chan error, 1)
	go func() {
		admitted <- p.Go(context.Background(), func() { ran.Store(true) })
	}()

	waited := make(chan struct{})
	go func() {
		p.Wait()
		close(waited)
	}()

	deadline := time.Now().Add(time.Second)
	for !p.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("Wait did not close the pool")
		}
		time.Sleep(time.Millisecond)
	}
	close(release)

	select {
	case err := <-admitted:
		if !errors.Is(err, ErrPoolClosed) {
			t.Errorf("expected ErrPoolClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Go did not return")
	}

	select {
	case <-waited:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return")
	}
	if ran.Load() {
		t.Error("task admitted after Wait must not run")
	}
}
