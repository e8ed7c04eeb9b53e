package raptorservice

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolInlineRunsSynchronously(t *testing.T) {
	pool := NewWorkerPool(0)
	var order []int
	pool.Run(
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v; want [1 2] (size-0 pool must run inline in submission order)", order)
	}
}

func TestWorkerPoolRunsAllSubmissions(t *testing.T) {
	pool := NewWorkerPool(2)
	var count int32
	fns := make([]func(), 10)
	for i := range fns {
		fns[i] = func() { atomic.AddInt32(&count, 1) }
	}
	pool.Run(fns...)
	if count != 10 {
		t.Errorf("count = %d; want 10 (every submission must run exactly once)", count)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const size = 2
	pool := NewWorkerPool(size)
	var current, max int32
	fns := make([]func(), 8)
	for i := range fns {
		fns[i] = func() {
			n := atomic.AddInt32(&current, 1)
			for {
				old := atomic.LoadInt32(&max)
				if n <= old || atomic.CompareAndSwapInt32(&max, old, n) {
					break
				}
			}
			atomic.AddInt32(&current, -1)
		}
	}
	pool.Run(fns...)
	if max > size {
		t.Errorf("observed concurrency %d; want <= %d", max, size)
	}
}

func TestWorkerPoolPropagatesPanicAfterAllSubmissionsFinish(t *testing.T) {
	pool := NewWorkerPool(2)
	var ran int32

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Run did not re-panic")
		}
		if r != "boom" {
			t.Errorf("recovered value = %v; want \"boom\"", r)
		}
		if ran != 1 {
			t.Errorf("ran = %d; want 1 (the non-panicking submission must still complete)", ran)
		}
	}()

	pool.Run(
		func() { atomic.AddInt32(&ran, 1) },
		func() { panic("boom") },
	)
}
