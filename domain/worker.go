package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrStopped is returned by Do once the worker has been stopped.
var ErrStopped = errors.New("domain worker stopped")

// PanicError carries a panic recovered while running work on a Worker.
type PanicError struct {
	Value any
}

// Error formats the recovered panic value.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in domain call: %v", e.Value)
}

// request is a unit of work for the worker goroutine.
type request struct {
	fn   func() (any, error)
	done chan result
}

type result struct {
	value any
	err   error
}

// Worker serializes all work for a domain through a single goroutine.
type Worker struct {
	requests chan request
	quit     chan struct{}
	stopOnce sync.Once
}

// NewWorker creates a Worker with room for queueSize pending requests and
// starts its goroutine.
func NewWorker(queueSize int) *Worker {
	if queueSize < 0 {
		queueSize = 0
	}
	w := &Worker{
		requests: make(chan request, queueSize),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w
}

// loop runs queued calls one at a time until Stop.
func (w *Worker) loop() {
	for {
		select {
		case req := <-w.requests:
			req.done <- w.execute(req.fn)
		case <-w.quit:
			return
		}
	}
}

// execute runs fn, turning a panic into a *PanicError.
func (w *Worker) execute(fn func() (any, error)) (res result) {
	defer func() {
		if r := recover(); r != nil {
			res = result{err: &PanicError{Value: r}}
		}
	}()
	v, err := fn()
	return result{value: v, err: err}
}

// Do runs fn on the worker goroutine and waits for it. If ctx ends first,
// Do returns ctx.Err(); work already queued still runs, and its result is
// dropped.
func (w *Worker) Do(ctx context.Context, fn func() (any, error)) (any, error) {
	req := request{
		fn:   fn,
		done: make(chan result, 1),
	}

	select {
	case w.requests <- req:
	case <-w.quit:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res := <-req.done:
		return res.value, res.err
	case <-w.quit:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop shuts down the worker goroutine. It is safe to call more than once.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.quit) })
}

// Stopped reports whether Stop has been called.
func (w *Worker) Stopped() bool {
	select {
	case <-w.quit:
		return true
	default:
		return false
	}
}
