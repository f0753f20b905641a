// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package observability

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.opencensus.io/trace"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// Executor wraps a driver.Executor with a span per operation and records the
// measures of this package. Stats are only exported for registered views.
type Executor struct {
	next driver.Executor
}

// NewExecutor returns an Executor that hands operations to next.
func NewExecutor(next driver.Executor) *Executor {
	return &Executor{next: next}
}

// Execute implements the driver.Executor interface. The span ends and the
// latency is recorded when the returned future completes.
func (e *Executor) Execute(ctx context.Context, op driver.Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	if ctx == nil {
		ctx = context.Background()
	}

	ns := op.Namespace().FullName()
	ctx, _ = tag.New(ctx,
		tag.Upsert(KeyMethod, op.Name()),
		tag.Upsert(KeyNamespace, ns))
	ctx, span := trace.StartSpan(ctx, "mongoasync/x/mongo/driver.Execute/"+op.Name())
	span.AddAttributes(trace.StringAttribute("namespace", ns))
	if rp != nil {
		span.AddAttributes(trace.StringAttribute("read_preference", rp.Mode().String()))
	}

	startTime := time.Now()
	recordRequests(ctx, op)
	stats.Record(ctx, MInFlight.M(1))

	f := e.next.Execute(ctx, op, rp)
	f.Register(func(_ interface{}, err error) {
		stats.Record(ctx,
			MRoundTripLatencyMilliseconds.M(SinceInMilliseconds(startTime)),
			MCalls.M(1),
			MInFlight.M(-1))
		if err != nil {
			ectx, _ := tag.New(ctx, tag.Upsert(KeyPart, "execute"))
			stats.Record(ectx, MErrors.M(1))
			span.SetStatus(trace.Status{Code: int32(trace.StatusCodeInternal), Message: err.Error()})
		}
		span.End()
	})
	return f
}

// recordRequests counts the documents inserted and the update and delete
// requests carried by write operations, and the reads among the rest.
func recordRequests(ctx context.Context, op driver.Operation) {
	switch op := op.(type) {
	case *operation.Insert:
		var inserts int64
		for _, req := range op.Requests {
			inserts += int64(len(req.Documents))
		}
		stats.Record(ctx, MWrites.M(1), MInsertions.M(inserts))
	case *operation.Update:
		updates, replaces := countUpdates(op.Requests)
		stats.Record(ctx, MWrites.M(1), MUpdates.M(updates), MReplaces.M(replaces))
	case *operation.Delete:
		stats.Record(ctx, MWrites.M(1), MDeletions.M(int64(len(op.Requests))))
	case *operation.MixedBulkWrite:
		var inserts, deletes int64
		var updateRequests []driver.UpdateRequest
		for _, req := range op.Requests {
			switch req := req.(type) {
			case driver.InsertRequest:
				inserts += int64(len(req.Documents))
			case driver.DeleteRequest:
				deletes++
			case driver.UpdateRequest:
				updateRequests = append(updateRequests, req)
			}
		}
		updates, replaces := countUpdates(updateRequests)
		stats.Record(ctx, MWrites.M(1), MInsertions.M(inserts), MDeletions.M(deletes),
			MUpdates.M(updates), MReplaces.M(replaces))
	case *operation.FindAndDelete, *operation.FindAndReplace, *operation.FindAndUpdate,
		*operation.AggregateToCollection, *operation.MapReduceToCollection:
		stats.Record(ctx, MWrites.M(1))
	case *operation.Count, *operation.Distinct, *operation.Find, *operation.Aggregate,
		*operation.MapReduce, *operation.ListIndexes:
		stats.Record(ctx, MReads.M(1))
	}
}

func countUpdates(reqs []driver.UpdateRequest) (updates, replaces int64) {
	for _, req := range reqs {
		if req.Type == driver.UpdateTypeReplace {
			replaces++
		} else {
			updates++
		}
	}
	return updates, replaces
}
