// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// Pipeline is an aggregation pipeline.
type Pipeline []bson.D

// Count returns the number of documents matching filter. A nil filter counts
// every document in the collection.
func (coll *Collection[T]) Count(ctx context.Context, filter interface{}, opts ...*options.CountOptions) *future.Future[int64] {
	co := options.MergeCountOptions(opts...)

	f, err := coll.encode(filter)
	if err != nil {
		return future.Failed[int64](err)
	}
	op := &operation.Count{
		NS:      coll.ns,
		Filter:  f,
		Skip:    int64Value(co.Skip),
		Limit:   int64Value(co.Limit),
		MaxTime: durationValue(co.MaxTime),
	}
	switch hint := co.Hint.(type) {
	case nil:
	case string:
		op.Hint = hint
	default:
		if op.Hint, err = coll.encode(hint); err != nil {
			return future.Failed[int64](err)
		}
	}

	return driver.Expect[int64](op, coll.execute(ctx, "count", op, coll.opts.ReadPreference))
}

// Distinct returns the distinct values of fieldName among the documents
// matching filter. The call fails as a whole if any value cannot be decoded.
func (coll *Collection[T]) Distinct(ctx context.Context, fieldName string, filter interface{}, opts ...*options.DistinctOptions) *future.Future[[]interface{}] {
	do := options.MergeDistinctOptions(opts...)

	f, err := coll.encode(filter)
	if err != nil {
		return future.Failed[[]interface{}](err)
	}
	op := &operation.Distinct{
		NS:        coll.ns,
		FieldName: fieldName,
		Filter:    f,
		MaxTime:   durationValue(do.MaxTime),
	}

	raw := driver.Expect[[]bson.RawValue](op, coll.execute(ctx, "distinct", op, coll.opts.ReadPreference))
	reg := coll.opts.Registry
	return future.Then(raw, func(vals []bson.RawValue) ([]interface{}, error) {
		return decodeValues(reg, vals)
	})
}

// Find returns a query for the documents matching filter. Nothing is sent
// until the query is run.
func (coll *Collection[T]) Find(filter interface{}, opts ...*options.FindOptions) *FindIterable[T] {
	return FindAs[T](coll, filter, opts...)
}

// FindAs is Find with results decoded into C.
func FindAs[C, T any](coll *Collection[T], filter interface{}, opts ...*options.FindOptions) *FindIterable[C] {
	return &FindIterable[C]{
		exec:   coll.exec,
		ns:     coll.ns,
		opts:   coll.opts,
		filter: filter,
		find:   *options.MergeFindOptions(opts...),
	}
}

// FindOne returns the first document matching filter, or ErrNoDocuments.
func (coll *Collection[T]) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *future.Future[T] {
	fo := options.MergeFindOneOptions(opts...)

	find := options.Find()
	find.Projection = fo.Projection
	find.Sort = fo.Sort
	find.Skip = fo.Skip
	find.MaxTime = fo.MaxTime

	return coll.Find(filter, find).First(ctx)
}

// Aggregate runs pipeline. pipeline is a Pipeline or any other slice of
// stage documents.
//
// When the last stage is $out the aggregation is dispatched right away
// without waiting for it, and the returned handle is a *FindIterable that
// reads the output collection from the primary once the aggregation is done.
func (coll *Collection[T]) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) Iterable[T] {
	return AggregateAs[T](ctx, coll, pipeline, opts...)
}

// AggregateAs is Aggregate with results decoded into C.
func AggregateAs[C, T any](ctx context.Context, coll *Collection[T], pipeline interface{}, opts ...*options.AggregateOptions) Iterable[C] {
	ao := options.MergeAggregateOptions(opts...)
	reg := coll.opts.Registry

	stages, err := encodePipeline(reg, pipeline)
	if err != nil {
		return &batchIterable[C]{reg: reg, err: err}
	}

	out, ok, err := outputNamespace(coll.ns, stages)
	if err != nil {
		return &batchIterable[C]{reg: reg, err: err}
	}
	if ok {
		op := &operation.AggregateToCollection{
			NS:           coll.ns,
			Pipeline:     stages,
			AllowDiskUse: ao.AllowDiskUse,
			MaxTime:      durationValue(ao.MaxTime),
			WriteConcern: coll.opts.WriteConcern,
		}
		return derivedFind[C](coll, out, coll.materialize(ctx, "aggregate", op))
	}

	op := &operation.Aggregate{
		NS:           coll.ns,
		Pipeline:     stages,
		AllowDiskUse: ao.AllowDiskUse,
		BatchSize:    ao.BatchSize,
		MaxTime:      durationValue(ao.MaxTime),
		UseCursor:    ao.UseCursor,
	}
	return &batchIterable[C]{
		reg: reg,
		run: func(ctx context.Context) *future.Future[[]bson.Raw] {
			return driver.Expect[[]bson.Raw](op, coll.execute(ctx, "aggregate", op, coll.opts.ReadPreference))
		},
	}
}

// MapReduce runs a map-reduce over the collection. mapFn and reduceFn are
// JavaScript functions.
//
// When an output collection is set the map-reduce is dispatched right away
// without waiting for it, and the returned handle is a *FindIterable that
// reads the output collection from the primary once the map-reduce is done.
// Otherwise the output is returned inline each time the handle is run.
func (coll *Collection[T]) MapReduce(ctx context.Context, mapFn, reduceFn string, opts ...*options.MapReduceOptions) Iterable[T] {
	return MapReduceAs[T](ctx, coll, mapFn, reduceFn, opts...)
}

// MapReduceAs is MapReduce with results decoded into C.
func MapReduceAs[C, T any](ctx context.Context, coll *Collection[T], mapFn, reduceFn string, opts ...*options.MapReduceOptions) Iterable[C] {
	mo := options.MergeMapReduceOptions(opts...)
	reg := coll.opts.Registry

	filter, err := encodeOptional(reg, mo.Filter)
	if err != nil {
		return &batchIterable[C]{reg: reg, err: err}
	}
	sort, err := encodeOptional(reg, mo.Sort)
	if err != nil {
		return &batchIterable[C]{reg: reg, err: err}
	}
	scope, err := encodeOptional(reg, mo.Scope)
	if err != nil {
		return &batchIterable[C]{reg: reg, err: err}
	}
	var finalize primitive.JavaScript
	if mo.Finalize != nil {
		finalize = primitive.JavaScript(*mo.Finalize)
	}

	if mo.OutputCollection != nil && *mo.OutputCollection != "" {
		op := &operation.MapReduceToCollection{
			NS:               coll.ns,
			MapFunction:      primitive.JavaScript(mapFn),
			ReduceFunction:   primitive.JavaScript(reduceFn),
			FinalizeFunction: finalize,
			CollectionName:   *mo.OutputCollection,
			Filter:           filter,
			Sort:             sort,
			Scope:            scope,
			Limit:            int64Value(mo.Limit),
			MaxTime:          durationValue(mo.MaxTime),
			JSMode:           boolValue(mo.JSMode, false),
			Verbose:          boolValue(mo.Verbose, false),
			NonAtomic:        boolValue(mo.NonAtomic, false),
			Sharded:          boolValue(mo.Sharded, false),
			WriteConcern:     coll.opts.WriteConcern,
		}
		if mo.OutputDatabase != nil {
			op.DatabaseName = *mo.OutputDatabase
		}
		if mo.Action != nil {
			op.Action = operation.MapReduceAction(*mo.Action)
		}
		out := op.OutputNamespace()
		if _, err := driver.NewNamespace(out.DB, out.Collection); err != nil {
			return &batchIterable[C]{reg: reg, err: err}
		}
		return derivedFind[C](coll, out, coll.materialize(ctx, "mapReduce", op))
	}

	op := &operation.MapReduce{
		NS:               coll.ns,
		MapFunction:      primitive.JavaScript(mapFn),
		ReduceFunction:   primitive.JavaScript(reduceFn),
		FinalizeFunction: finalize,
		Filter:           filter,
		Sort:             sort,
		Scope:            scope,
		Limit:            int64Value(mo.Limit),
		MaxTime:          durationValue(mo.MaxTime),
		JSMode:           boolValue(mo.JSMode, false),
		Verbose:          boolValue(mo.Verbose, false),
	}
	return &batchIterable[C]{
		reg: reg,
		run: func(ctx context.Context) *future.Future[[]bson.Raw] {
			return driver.Expect[[]bson.Raw](op, coll.execute(ctx, "mapReduce", op, coll.opts.ReadPreference))
		},
	}
}

// encodePipeline encodes every stage of pipeline. A single document is not a
// pipeline.
func encodePipeline(reg *codec.Registry, pipeline interface{}) ([]bson.Raw, error) {
	switch p := pipeline.(type) {
	case nil:
		return nil, &codec.EncodingError{Value: pipeline, Err: fmt.Errorf("pipeline is nil")}
	case bson.D, bson.Raw, bson.M:
		return nil, &codec.EncodingError{Value: pipeline, Err: fmt.Errorf("pipeline must be a slice of stages, got %T", p)}
	case []interface{}:
		return reg.EncodeAll(p)
	}

	rv := reflect.ValueOf(pipeline)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, &codec.EncodingError{Value: pipeline, Err: fmt.Errorf("pipeline must be a slice of stages, got %T", pipeline)}
	}
	stages := make([]interface{}, rv.Len())
	for i := range stages {
		stages[i] = rv.Index(i).Interface()
	}
	return reg.EncodeAll(stages)
}

// outputNamespace reports the namespace written by a final $out stage. The
// stage value is either a collection name in the source database or a
// {db, coll} document.
func outputNamespace(src driver.Namespace, stages []bson.Raw) (driver.Namespace, bool, error) {
	if len(stages) == 0 {
		return driver.Namespace{}, false, nil
	}
	stage, err := stages[len(stages)-1].IndexErr(0)
	if err != nil || stage.Key() != "$out" {
		return driver.Namespace{}, false, nil
	}

	val := stage.Value()
	switch val.Type {
	case bsontype.String:
		ns, err := driver.NewNamespace(src.DB, val.StringValue())
		return ns, true, err
	case bsontype.EmbeddedDocument:
		doc := val.Document()
		db, _ := doc.Lookup("db").StringValueOK()
		name, _ := doc.Lookup("coll").StringValueOK()
		ns, err := driver.NewNamespace(db, name)
		return ns, true, err
	}
	return driver.Namespace{}, false, &codec.EncodingError{Value: val, Err: fmt.Errorf("$out stage must be a string or a document, got %s", val.Type)}
}
