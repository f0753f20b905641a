// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongoexec implements driver.Executor with the official MongoDB Go
// driver.
package mongoexec // import "github.com/ikmak/mongoasync/x/mongo/driver/mongoexec"

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/sync/semaphore"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/internal/logger"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// DefaultMaxInFlight is the default limit of operations running at once.
const DefaultMaxInFlight = 100

// ErrExecutorClosed is returned for operations handed to a closed Executor.
var ErrExecutorClosed = errors.New("executor is closed")

// UnsupportedOperationError is returned for operations the Executor cannot run.
type UnsupportedOperationError struct {
	Operation driver.Operation
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %T", e.Operation)
}

// Executor runs operations on a connected *mongo.Client. Each operation runs
// on its own goroutine; at most MaxInFlight operations run at once and the
// others wait for a slot.
type Executor struct {
	client   *mongo.Client
	log      *logger.Logger
	capacity int64
	sem      *semaphore.Weighted
	nextID   int32

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxInFlight sets the limit of operations running at once.
func WithMaxInFlight(n int64) Option {
	return func(e *Executor) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// WithLogger sets the logger command events are written to.
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// New returns an Executor over client. The client must already be connected
// and stays owned by the caller.
func New(client *mongo.Client, opts ...Option) *Executor {
	e := &Executor{client: client, capacity: DefaultMaxInFlight}
	for _, opt := range opts {
		opt(e)
	}
	e.sem = semaphore.NewWeighted(e.capacity)
	return e
}

// Execute implements the driver.Executor interface.
func (e *Executor) Execute(ctx context.Context, op driver.Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return future.Failed[interface{}](ErrExecutorClosed)
	}
	e.pending.Add(1)
	e.mu.Unlock()

	f := future.Go(func() (interface{}, error) {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer e.sem.Release(1)

		id := atomic.AddInt32(&e.nextID, 1)
		ctx := logger.WithOperationID(ctx, id)
		start := time.Now()
		e.logStarted(ctx, op, rp)

		res, err := e.run(ctx, op, rp)
		e.logFinished(ctx, op, time.Since(start), err)
		return res, err
	})
	f.Register(func(interface{}, error) { e.pending.Done() })
	return f
}

// Close stops accepting operations and waits for every operation already
// accepted, running or still waiting for a slot, to finish or for ctx to be
// done.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrExecutorClosed
	}
	e.closed = true
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Executor) logStarted(ctx context.Context, op driver.Operation, rp *readpref.ReadPref) {
	if !e.log.LevelComponentEnabled(logger.LevelDebug, logger.ComponentCommand) {
		return
	}
	kvs := e.commandKeyValues(ctx, op)
	if rp != nil {
		kvs.Add(logger.KeyReadPreference, rp.Mode().String())
	}
	e.log.Print(logger.LevelDebug, logger.ComponentCommand, "Command started", kvs...)
}

func (e *Executor) logFinished(ctx context.Context, op driver.Operation, d time.Duration, err error) {
	if !e.log.LevelComponentEnabled(logger.LevelDebug, logger.ComponentCommand) {
		return
	}
	kvs := e.commandKeyValues(ctx, op)
	kvs.Add(logger.KeyDurationMS, d.Milliseconds())
	if err != nil {
		kvs.Add(logger.KeyFailure, err.Error())
		e.log.Print(logger.LevelDebug, logger.ComponentCommand, "Command failed", kvs...)
		return
	}
	e.log.Print(logger.LevelDebug, logger.ComponentCommand, "Command succeeded", kvs...)
}

func (e *Executor) commandKeyValues(ctx context.Context, op driver.Operation) logger.KeyValues {
	ns := op.Namespace()
	kvs := logger.KeyValues{
		logger.KeyCommandName, op.Name(),
		logger.KeyDatabaseName, ns.DB,
		logger.KeyCollectionName, ns.Collection,
	}
	if id, ok := logger.OperationID(ctx); ok {
		kvs.Add(logger.KeyOperationID, id)
	}
	if name, ok := logger.OperationName(ctx); ok {
		kvs.Add(logger.KeyOperationName, name)
	}
	return kvs
}
