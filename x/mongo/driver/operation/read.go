// Copyright (C) MongoDB, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package operation contains the operation descriptors handed to a
// driver.Executor. Descriptors are plain values: every option the facade
// resolved is stored in a field, and the executor never has to consult the
// collection that built them.
package operation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// Count counts the documents matching Filter.
type Count struct {
	NS      driver.Namespace
	Filter  bson.Raw
	Skip    int64
	Limit   int64
	MaxTime time.Duration
	// Hint is an index name (string) or an index specification (bson.Raw).
	Hint interface{}
}

// Distinct finds the distinct values of FieldName among the documents matching Filter.
type Distinct struct {
	NS        driver.Namespace
	FieldName string
	Filter    bson.Raw
	MaxTime   time.Duration
}

// Command returns the distinct command document.
func (d *Distinct) Command() bson.D {
	cmd := bson.D{{Key: "distinct", Value: d.NS.Collection}, {Key: "key", Value: d.FieldName}}
	if len(d.Filter) > 0 {
		cmd = append(cmd, bson.E{Key: "query", Value: d.Filter})
	}
	return appendMaxTime(cmd, d.MaxTime)
}

// Find queries the documents matching Filter.
type Find struct {
	NS         driver.Namespace
	Filter     bson.Raw
	Projection bson.Raw
	Sort       bson.Raw
	Skip       int64
	Limit      int64
	BatchSize  int32
	MaxTime    time.Duration
}

// Aggregate runs an aggregation pipeline and returns its output inline.
type Aggregate struct {
	NS           driver.Namespace
	Pipeline     []bson.Raw
	AllowDiskUse *bool
	BatchSize    *int32
	MaxTime      time.Duration
	UseCursor    *bool
}

// MapReduce runs a map-reduce and returns its output inline.
type MapReduce struct {
	NS               driver.Namespace
	MapFunction      primitive.JavaScript
	ReduceFunction   primitive.JavaScript
	FinalizeFunction primitive.JavaScript
	Filter           bson.Raw
	Sort             bson.Raw
	Scope            bson.Raw
	Limit            int64
	MaxTime          time.Duration
	JSMode           bool
	Verbose          bool
}

// Command returns the mapReduce command document with inline output.
func (mr *MapReduce) Command() bson.D {
	cmd := mapReduceCommand(mr.NS, mr.MapFunction, mr.ReduceFunction, mr.FinalizeFunction,
		mr.Filter, mr.Sort, mr.Scope, mr.Limit, mr.JSMode, mr.Verbose)
	cmd = append(cmd, bson.E{Key: "out", Value: bson.D{{Key: "inline", Value: 1}}})
	return appendMaxTime(cmd, mr.MaxTime)
}

// ListIndexes lists the indexes of a collection.
type ListIndexes struct {
	NS driver.Namespace
}

func (*Count) Name() string       { return "count" }
func (*Distinct) Name() string    { return "distinct" }
func (*Find) Name() string        { return "find" }
func (*Aggregate) Name() string   { return "aggregate" }
func (*MapReduce) Name() string   { return "mapReduce" }
func (*ListIndexes) Name() string { return "listIndexes" }

func (op *Count) Namespace() driver.Namespace       { return op.NS }
func (op *Distinct) Namespace() driver.Namespace    { return op.NS }
func (op *Find) Namespace() driver.Namespace        { return op.NS }
func (op *Aggregate) Namespace() driver.Namespace   { return op.NS }
func (op *MapReduce) Namespace() driver.Namespace   { return op.NS }
func (op *ListIndexes) Namespace() driver.Namespace { return op.NS }

func mapReduceCommand(
	ns driver.Namespace,
	mapFn, reduceFn, finalizeFn primitive.JavaScript,
	filter, sort, scope bson.Raw,
	limit int64,
	jsMode, verbose bool,
) bson.D {
	cmd := bson.D{
		{Key: "mapReduce", Value: ns.Collection},
		{Key: "map", Value: mapFn},
		{Key: "reduce", Value: reduceFn},
	}
	if finalizeFn != "" {
		cmd = append(cmd, bson.E{Key: "finalize", Value: finalizeFn})
	}
	if len(filter) > 0 {
		cmd = append(cmd, bson.E{Key: "query", Value: filter})
	}
	if len(sort) > 0 {
		cmd = append(cmd, bson.E{Key: "sort", Value: sort})
	}
	if len(scope) > 0 {
		cmd = append(cmd, bson.E{Key: "scope", Value: scope})
	}
	if limit != 0 {
		cmd = append(cmd, bson.E{Key: "limit", Value: limit})
	}
	if jsMode {
		cmd = append(cmd, bson.E{Key: "jsMode", Value: true})
	}
	if verbose {
		cmd = append(cmd, bson.E{Key: "verbose", Value: true})
	}
	return cmd
}

func appendMaxTime(cmd bson.D, maxTime time.Duration) bson.D {
	if maxTime > 0 {
		cmd = append(cmd, bson.E{Key: "maxTimeMS", Value: int64(maxTime / time.Millisecond)})
	}
	return cmd
}
