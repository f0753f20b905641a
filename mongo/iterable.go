// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// Iterable is a query handle. Nothing is sent to the server until one of its
// methods is called, and each call runs the query again.
type Iterable[C any] interface {
	// All decodes every result document.
	All(ctx context.Context) *future.Future[[]C]
	// First decodes the first result document. It fails with ErrNoDocuments
	// if there are no results.
	First(ctx context.Context) *future.Future[C]
	// ForEach calls fn for every result document in order and stops at the
	// first error. fn runs on the goroutine that completes the query.
	ForEach(ctx context.Context, fn func(C) error) *future.Future[struct{}]
}

func allOf[C any](reg *codec.Registry, f *future.Future[[]bson.Raw]) *future.Future[[]C] {
	return future.Then(f, func(docs []bson.Raw) ([]C, error) {
		return decodeDocuments[C](reg, docs)
	})
}

func firstOf[C any](reg *codec.Registry, f *future.Future[[]bson.Raw]) *future.Future[C] {
	return future.Then(f, func(docs []bson.Raw) (C, error) {
		if len(docs) == 0 {
			var zero C
			return zero, ErrNoDocuments
		}
		v, err := codec.Lookup[C](reg).Decode(reg.BSONRegistry(), docs[0])
		if err != nil {
			return v, decodeFailure(0, err)
		}
		return v, nil
	})
}

func forEachOf[C any](reg *codec.Registry, f *future.Future[[]bson.Raw], fn func(C) error) *future.Future[struct{}] {
	return future.Then(f, func(docs []bson.Raw) (struct{}, error) {
		c := codec.Lookup[C](reg)
		for i, doc := range docs {
			v, err := c.Decode(reg.BSONRegistry(), doc)
			if err != nil {
				return struct{}{}, decodeFailure(i, err)
			}
			if err := fn(v); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
}

// batchIterable is the handle for operations that return their results
// inline: aggregations without an output stage and inline map-reduce.
type batchIterable[C any] struct {
	reg *codec.Registry
	run func(ctx context.Context) *future.Future[[]bson.Raw]
	err error
}

func (bi *batchIterable[C]) results(ctx context.Context) *future.Future[[]bson.Raw] {
	if bi.err != nil {
		return future.Failed[[]bson.Raw](bi.err)
	}
	return bi.run(ctx)
}

// All implements the Iterable interface.
func (bi *batchIterable[C]) All(ctx context.Context) *future.Future[[]C] {
	return allOf[C](bi.reg, bi.results(ctx))
}

// First implements the Iterable interface.
func (bi *batchIterable[C]) First(ctx context.Context) *future.Future[C] {
	return firstOf[C](bi.reg, bi.results(ctx))
}

// ForEach implements the Iterable interface.
func (bi *batchIterable[C]) ForEach(ctx context.Context, fn func(C) error) *future.Future[struct{}] {
	return forEachOf[C](bi.reg, bi.results(ctx), fn)
}

// FindIterable is the handle returned by Find and by operations that write
// their output to a collection. Its methods that refine the query return a
// modified copy and leave the receiver unchanged.
type FindIterable[C any] struct {
	exec   driver.Executor
	ns     driver.Namespace
	opts   options.Options
	filter interface{}
	find   options.FindOptions

	// after completes when the collection being queried has been written.
	after *future.Future[struct{}]
}

func (fi *FindIterable[C]) clone() *FindIterable[C] {
	c := *fi
	return &c
}

// Filter sets the query filter. A nil filter matches all documents.
func (fi *FindIterable[C]) Filter(filter interface{}) *FindIterable[C] {
	c := fi.clone()
	c.filter = filter
	return c
}

// Limit sets the maximum number of documents to return.
func (fi *FindIterable[C]) Limit(n int64) *FindIterable[C] {
	c := fi.clone()
	c.find.SetLimit(n)
	return c
}

// Skip sets the number of documents to skip.
func (fi *FindIterable[C]) Skip(n int64) *FindIterable[C] {
	c := fi.clone()
	c.find.SetSkip(n)
	return c
}

// Sort sets the sort order.
func (fi *FindIterable[C]) Sort(sort interface{}) *FindIterable[C] {
	c := fi.clone()
	c.find.SetSort(sort)
	return c
}

// Projection sets the fields to return.
func (fi *FindIterable[C]) Projection(projection interface{}) *FindIterable[C] {
	c := fi.clone()
	c.find.SetProjection(projection)
	return c
}

// MaxTime sets the maximum amount of time the query can run on the server.
func (fi *FindIterable[C]) MaxTime(d time.Duration) *FindIterable[C] {
	c := fi.clone()
	c.find.SetMaxTime(d)
	return c
}

// BatchSize sets the number of documents returned per batch.
func (fi *FindIterable[C]) BatchSize(n int32) *FindIterable[C] {
	c := fi.clone()
	c.find.SetBatchSize(n)
	return c
}

// Namespace returns the namespace the query runs against.
func (fi *FindIterable[C]) Namespace() driver.Namespace { return fi.ns }

// Options returns the options the query runs with.
func (fi *FindIterable[C]) Options() options.Options { return fi.opts }

// Operation returns the descriptor that running the query dispatches.
func (fi *FindIterable[C]) Operation() (*operation.Find, error) {
	reg := fi.opts.Registry
	filter, err := reg.Encode(fi.filter)
	if err != nil {
		return nil, err
	}
	projection, err := encodeOptional(reg, fi.find.Projection)
	if err != nil {
		return nil, err
	}
	sort, err := encodeOptional(reg, fi.find.Sort)
	if err != nil {
		return nil, err
	}

	op := &operation.Find{
		NS:         fi.ns,
		Filter:     filter,
		Projection: projection,
		Sort:       sort,
		Skip:       int64Value(fi.find.Skip),
		Limit:      int64Value(fi.find.Limit),
		MaxTime:    durationValue(fi.find.MaxTime),
	}
	if fi.find.BatchSize != nil {
		op.BatchSize = *fi.find.BatchSize
	}
	return op, nil
}

func (fi *FindIterable[C]) results(ctx context.Context) *future.Future[[]bson.Raw] {
	op, err := fi.Operation()
	if err != nil {
		return future.Failed[[]bson.Raw](err)
	}
	run := func() *future.Future[[]bson.Raw] {
		return driver.Expect[[]bson.Raw](op, execute(ctx, fi.exec, fi.opts.Logger, "find", op, fi.opts.ReadPreference))
	}
	if fi.after == nil {
		return run()
	}
	return future.Compose(fi.after, func(struct{}) *future.Future[[]bson.Raw] { return run() })
}

// All implements the Iterable interface.
func (fi *FindIterable[C]) All(ctx context.Context) *future.Future[[]C] {
	return allOf[C](fi.opts.Registry, fi.results(ctx))
}

// First implements the Iterable interface. The query is sent with a limit of
// -1 so that the server returns a single batch.
func (fi *FindIterable[C]) First(ctx context.Context) *future.Future[C] {
	return firstOf[C](fi.opts.Registry, fi.Limit(-1).results(ctx))
}

// ForEach implements the Iterable interface.
func (fi *FindIterable[C]) ForEach(ctx context.Context, fn func(C) error) *future.Future[struct{}] {
	return forEachOf[C](fi.opts.Registry, fi.results(ctx), fn)
}
