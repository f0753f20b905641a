// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package driver defines the contract between the collection facade and the
// execution backend: operation descriptors are handed to an Executor, which
// completes a future with the raw result of the operation.
//
// Backend result types by operation:
//
//	count                                   int64
//	distinct                                []bson.RawValue
//	find, aggregate, map-reduce inline,
//	list indexes                            []bson.Raw
//	insert, update, delete                  WriteConcernResult
//	mixed bulk write                        BulkWriteResult
//	find-and-delete/replace/update          bson.Raw (nil when nothing matched)
//	index and collection administration,
//	aggregate/map-reduce to collection      nil
package driver // import "github.com/ikmak/mongoasync/x/mongo/driver"

import (
	"context"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ikmak/mongoasync/future"
)

// Operation is a fully-populated description of a single backend operation.
type Operation interface {
	// Name returns the command name of the operation, e.g. "count" or "update".
	Name() string
	// Namespace returns the namespace the operation targets.
	Namespace() Namespace
}

// Executor runs operations asynchronously. Implementations must return without
// waiting for the operation to finish. rp is nil for operations that must run on
// a writable server.
type Executor interface {
	Execute(ctx context.Context, op Operation, rp *readpref.ReadPref) *future.Future[interface{}]
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, op Operation, rp *readpref.ReadPref) *future.Future[interface{}]

// Execute implements the Executor interface.
func (fn ExecutorFunc) Execute(ctx context.Context, op Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	return fn(ctx, op, rp)
}

// ResultTypeError is returned when an executor completes an operation with a
// result of an unexpected type.
type ResultTypeError struct {
	Operation string
	Want      string
	Got       interface{}
}

// Error implements the error interface.
func (e *ResultTypeError) Error() string {
	return fmt.Sprintf("%s: executor returned %T, expected %s", e.Operation, e.Got, e.Want)
}

// Expect narrows the untyped result future of op to T. A nil result is the
// zero value of T when T has a nil value, such as bson.Raw for a
// find-and-modify that matched nothing; for any other T it is a
// *ResultTypeError.
func Expect[T any](op Operation, f *future.Future[interface{}]) *future.Future[T] {
	want := reflect.TypeOf((*T)(nil)).Elem()
	return future.Then(f, func(res interface{}) (T, error) {
		var zero T
		if res == nil {
			if nillable(want) {
				return zero, nil
			}
			return zero, &ResultTypeError{Operation: op.Name(), Want: want.String(), Got: res}
		}
		val, ok := res.(T)
		if !ok {
			return zero, &ResultTypeError{Operation: op.Name(), Want: want.String(), Got: res}
		}
		return val, nil
	})
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
