// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package drivertest

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// Call is an operation handed to a RecordingExecutor.
type Call struct {
	Ctx      context.Context
	Op       driver.Operation
	ReadPref *readpref.ReadPref
}

// RecordingExecutor implements the driver.Executor interface by recording every
// operation it is given. When Reply is set, each operation is completed with
// its return values before Execute returns. Otherwise the result future stays
// pending until Complete is called for it.
type RecordingExecutor struct {
	Reply func(driver.Operation) (interface{}, error)

	mu       sync.Mutex
	calls    []Call
	promises []*future.Promise[interface{}]
}

// Execute implements the driver.Executor interface.
func (e *RecordingExecutor) Execute(ctx context.Context, op driver.Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	p := future.NewPromise[interface{}]()

	e.mu.Lock()
	e.calls = append(e.calls, Call{Ctx: ctx, Op: op, ReadPref: rp})
	e.promises = append(e.promises, p)
	reply := e.Reply
	e.mu.Unlock()

	if reply != nil {
		p.Complete(reply(op))
	}
	return p.Future()
}

// Calls returns the recorded calls in execution order.
func (e *RecordingExecutor) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Call(nil), e.calls...)
}

// Operations returns the recorded operations in execution order.
func (e *RecordingExecutor) Operations() []driver.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	ops := make([]driver.Operation, 0, len(e.calls))
	for _, c := range e.calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// Last returns the most recently recorded operation, or nil if there is none.
func (e *RecordingExecutor) Last() driver.Operation {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.calls) == 0 {
		return nil
	}
	return e.calls[len(e.calls)-1].Op
}

// Complete completes the future of the i-th recorded operation. It reports
// false if there is no such operation or it was already completed.
func (e *RecordingExecutor) Complete(i int, val interface{}, err error) bool {
	e.mu.Lock()
	if i < 0 || i >= len(e.promises) {
		e.mu.Unlock()
		return false
	}
	p := e.promises[i]
	e.mu.Unlock()
	return p.Complete(val, err)
}
