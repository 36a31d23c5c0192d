// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package eventloop provides the single-threaded loop that owns splash
// state.
//
// Any goroutine may Post work; the work runs in posting order on whichever
// goroutine drives the loop through Run or Dispatch. Drive a loop from
// exactly one goroutine.
package eventloop

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Call when the loop no longer accepts work.
var ErrClosed = errors.New("eventloop: closed")

// Loop is a FIFO of functions executed on a single goroutine.
// The zero value is not usable; create loops with New.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	// wake holds at most one token meaning "pending may be non-empty".
	wake chan struct{}
}

// New creates an open loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn. It reports false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Dispatch runs the work queued so far without blocking and returns how
// many functions ran. Work posted by those functions runs on the next
// Dispatch. Hosts with their own frame loop call Dispatch once per frame.
func (l *Loop) Dispatch() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Run dispatches work until ctx is cancelled or the loop is closed. Work
// queued before Close still runs.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Dispatch()

		l.mu.Lock()
		done := l.closed && len(l.pending) == 0
		l.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Call runs fn on the loop and waits for it to finish. It must not be
// called from the loop goroutine itself.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work and wakes Run so it can return once the
// queue is empty. Close is idempotent.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}
