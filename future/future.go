// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package future provides a single-assignment, chainable future used to deliver
// the results of asynchronous operations.
//
// A Future is completed exactly once, either with a value or with an error.
// Callbacks registered with Register, and transformations chained with Then or
// Compose, run on the goroutine that completes the future. If the future is
// already complete when a callback is registered, the callback runs immediately
// on the registering goroutine.
package future

import (
	"context"
	"sync"
)

// Future is the eventual result of an asynchronous operation.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	completed bool
	val       T
	err       error
	callbacks []func(T, error)
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns a future that is already completed with val.
func Resolved[T any](val T) *Future[T] {
	f := newFuture[T]()
	f.complete(val, nil)
	return f
}

// Failed returns a future that is already completed with err.
func Failed[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.complete(zero, err)
	return f
}

// Go runs fn on a new goroutine and returns a future for its result.
func Go[T any](fn func() (T, error)) *Future[T] {
	p := NewPromise[T]()
	go func() {
		p.Complete(fn())
	}()
	return p.Future()
}

func (f *Future[T]) complete(val T, err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.val, f.err = val, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb(val, err)
	}
	return true
}

// Done returns a channel that is closed once the future is complete.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Get blocks until the future completes or ctx is done. If ctx is done first,
// the context error is returned; the future itself is unaffected.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// IsDone reports whether the future has completed.
func (f *Future[T]) IsDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.completed
}

// Register arranges for cb to be called with the result of the future.
func (f *Future[T]) Register(cb func(T, error)) {
	f.mu.Lock()
	if !f.completed {
		f.callbacks = append(f.callbacks, cb)
		f.mu.Unlock()
		return
	}
	val, err := f.val, f.err
	f.mu.Unlock()

	cb(val, err)
}

// Then returns a future completed with fn applied to the value of f. If f fails,
// fn is not called and the returned future fails with the same error.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	p := NewPromise[U]()
	f.Register(func(val T, err error) {
		if err != nil {
			var zero U
			p.Complete(zero, err)
			return
		}
		p.Complete(fn(val))
	})
	return p.Future()
}

// Compose returns a future completed with the result of the future returned by
// fn. If f fails, fn is not called and the returned future fails with the same
// error.
func Compose[T, U any](f *Future[T], fn func(T) *Future[U]) *Future[U] {
	p := NewPromise[U]()
	f.Register(func(val T, err error) {
		if err != nil {
			var zero U
			p.Complete(zero, err)
			return
		}
		fn(val).Register(func(u U, err error) {
			p.Complete(u, err)
		})
	})
	return p.Future()
}

// Promise is the write side of a Future.
type Promise[T any] struct {
	f *Future[T]
}

// NewPromise creates a promise for a new, incomplete future.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{f: newFuture[T]()}
}

// Future returns the future completed by this promise.
func (p *Promise[T]) Future() *Future[T] {
	return p.f
}

// Complete completes the future. It returns false if the future was already
// complete, in which case val and err are discarded.
func (p *Promise[T]) Complete(val T, err error) bool {
	return p.f.complete(val, err)
}

// Resolve completes the future with val.
func (p *Promise[T]) Resolve(val T) bool {
	return p.f.complete(val, nil)
}

// Reject completes the future with err.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.f.complete(zero, err)
}
