// Copyright (C) MongoDB, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package operation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// Insert inserts documents.
type Insert struct {
	NS           driver.Namespace
	Ordered      bool
	WriteConcern *writeconcern.WriteConcern
	Requests     []driver.InsertRequest
}

// Update updates or replaces documents.
type Update struct {
	NS           driver.Namespace
	Ordered      bool
	WriteConcern *writeconcern.WriteConcern
	Requests     []driver.UpdateRequest
}

// Delete deletes documents.
type Delete struct {
	NS           driver.Namespace
	Ordered      bool
	WriteConcern *writeconcern.WriteConcern
	Requests     []driver.DeleteRequest
}

// MixedBulkWrite executes a sequence of inserts, updates and deletes. When
// Ordered is true the backend stops at the first failed request.
type MixedBulkWrite struct {
	NS           driver.Namespace
	Requests     []driver.WriteRequest
	Ordered      bool
	WriteConcern *writeconcern.WriteConcern
}

// AggregateToCollection runs a pipeline whose final stage writes its output to a
// collection.
type AggregateToCollection struct {
	NS           driver.Namespace
	Pipeline     []bson.Raw
	AllowDiskUse *bool
	MaxTime      time.Duration
	WriteConcern *writeconcern.WriteConcern
}

// MapReduceAction controls how map-reduce output is combined with an existing
// output collection.
type MapReduceAction string

// These constants are the valid MapReduceAction values.
const (
	MapReduceActionReplace MapReduceAction = "replace"
	MapReduceActionMerge   MapReduceAction = "merge"
	MapReduceActionReduce  MapReduceAction = "reduce"
)

// MapReduceToCollection runs a map-reduce that writes its output to
// CollectionName, in DatabaseName when set and in the source database otherwise.
type MapReduceToCollection struct {
	NS               driver.Namespace
	MapFunction      primitive.JavaScript
	ReduceFunction   primitive.JavaScript
	FinalizeFunction primitive.JavaScript
	CollectionName   string
	DatabaseName     string
	Action           MapReduceAction
	Filter           bson.Raw
	Sort             bson.Raw
	Scope            bson.Raw
	Limit            int64
	MaxTime          time.Duration
	JSMode           bool
	Verbose          bool
	NonAtomic        bool
	Sharded          bool
	WriteConcern     *writeconcern.WriteConcern
}

// Command returns the mapReduce command document with collection output.
func (mr *MapReduceToCollection) Command() bson.D {
	cmd := mapReduceCommand(mr.NS, mr.MapFunction, mr.ReduceFunction, mr.FinalizeFunction,
		mr.Filter, mr.Sort, mr.Scope, mr.Limit, mr.JSMode, mr.Verbose)

	action := mr.Action
	if action == "" {
		action = MapReduceActionReplace
	}
	out := bson.D{{Key: string(action), Value: mr.CollectionName}}
	if mr.DatabaseName != "" {
		out = append(out, bson.E{Key: "db", Value: mr.DatabaseName})
	}
	if mr.Sharded {
		out = append(out, bson.E{Key: "sharded", Value: true})
	}
	if mr.NonAtomic {
		out = append(out, bson.E{Key: "nonAtomic", Value: true})
	}
	cmd = append(cmd, bson.E{Key: "out", Value: out})
	return appendMaxTime(cmd, mr.MaxTime)
}

// OutputNamespace returns the namespace the map-reduce writes to.
func (mr *MapReduceToCollection) OutputNamespace() driver.Namespace {
	db := mr.DatabaseName
	if db == "" {
		db = mr.NS.DB
	}
	return driver.Namespace{DB: db, Collection: mr.CollectionName}
}

func (*Insert) Name() string                { return "insert" }
func (*Update) Name() string                { return "update" }
func (*Delete) Name() string                { return "delete" }
func (*MixedBulkWrite) Name() string        { return "bulkWrite" }
func (*AggregateToCollection) Name() string { return "aggregate" }
func (*MapReduceToCollection) Name() string { return "mapReduce" }

func (op *Insert) Namespace() driver.Namespace                { return op.NS }
func (op *Update) Namespace() driver.Namespace                { return op.NS }
func (op *Delete) Namespace() driver.Namespace                { return op.NS }
func (op *MixedBulkWrite) Namespace() driver.Namespace        { return op.NS }
func (op *AggregateToCollection) Namespace() driver.Namespace { return op.NS }
func (op *MapReduceToCollection) Namespace() driver.Namespace { return op.NS }
