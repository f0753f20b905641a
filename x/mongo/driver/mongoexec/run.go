// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongoexec

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

func (e *Executor) collection(ns driver.Namespace, rp *readpref.ReadPref, wc *writeconcern.WriteConcern) *mongo.Collection {
	opts := options.Collection()
	if rp != nil {
		opts.SetReadPreference(rp)
	}
	if wc != nil {
		opts.SetWriteConcern(wc)
	}
	return e.client.Database(ns.DB).Collection(ns.Collection, opts)
}

// run performs op and returns the result type documented in package driver.
func (e *Executor) run(ctx context.Context, op driver.Operation, rp *readpref.ReadPref) (interface{}, error) {
	switch op := op.(type) {
	case *operation.Count:
		return e.collection(op.NS, rp, nil).CountDocuments(ctx, op.Filter, countOptions(op))
	case *operation.Distinct:
		return e.distinct(ctx, op, rp)
	case *operation.Find:
		cur, err := e.collection(op.NS, rp, nil).Find(ctx, op.Filter, findOptions(op))
		if err != nil {
			return nil, err
		}
		return drain(ctx, cur)
	case *operation.Aggregate:
		cur, err := e.collection(op.NS, rp, nil).Aggregate(ctx, pipeline(op.Pipeline), aggregateOptions(op))
		if err != nil {
			return nil, err
		}
		return drain(ctx, cur)
	case *operation.MapReduce:
		return e.mapReduce(ctx, op, rp)
	case *operation.ListIndexes:
		cur, err := e.collection(op.NS, rp, nil).Indexes().List(ctx)
		if err != nil {
			return nil, err
		}
		return drain(ctx, cur)

	case *operation.Insert:
		reqs := make([]driver.WriteRequest, 0, len(op.Requests))
		for _, r := range op.Requests {
			reqs = append(reqs, r)
		}
		models, requestIndex := writeModels(reqs)
		res, err := e.bulkWrite(ctx, op.NS, op.WriteConcern, models, op.Ordered)
		return writeConcernResult(op, res, rekeyWriteErrors(err, requestIndex))
	case *operation.Update:
		reqs := make([]driver.WriteRequest, 0, len(op.Requests))
		for _, r := range op.Requests {
			reqs = append(reqs, r)
		}
		models, requestIndex := writeModels(reqs)
		res, err := e.bulkWrite(ctx, op.NS, op.WriteConcern, models, op.Ordered)
		return writeConcernResult(op, res, rekeyWriteErrors(err, requestIndex))
	case *operation.Delete:
		reqs := make([]driver.WriteRequest, 0, len(op.Requests))
		for _, r := range op.Requests {
			reqs = append(reqs, r)
		}
		models, requestIndex := writeModels(reqs)
		res, err := e.bulkWrite(ctx, op.NS, op.WriteConcern, models, op.Ordered)
		return writeConcernResult(op, res, rekeyWriteErrors(err, requestIndex))
	case *operation.MixedBulkWrite:
		models, requestIndex := writeModels(op.Requests)
		res, err := e.bulkWrite(ctx, op.NS, op.WriteConcern, models, op.Ordered)
		return bulkWriteResult(res, err, requestIndex)

	case *operation.AggregateToCollection:
		opts := options.Aggregate().SetMaxTime(op.MaxTime)
		if op.AllowDiskUse != nil {
			opts.SetAllowDiskUse(*op.AllowDiskUse)
		}
		cur, err := e.collection(op.NS, nil, op.WriteConcern).Aggregate(ctx, pipeline(op.Pipeline), opts)
		if err != nil {
			return nil, err
		}
		return nil, cur.Close(ctx)
	case *operation.MapReduceToCollection:
		cmd := op.Command()
		if wc := writeConcernDocument(op.WriteConcern); wc != nil {
			cmd = append(cmd, bson.E{Key: "writeConcern", Value: wc})
		}
		return nil, e.client.Database(op.NS.DB).RunCommand(ctx, cmd).Err()

	case *operation.FindAndDelete:
		res := e.collection(op.NS, nil, op.WriteConcern).FindOneAndDelete(ctx, op.Filter, findOneAndDeleteOptions(op))
		return singleResult(res)
	case *operation.FindAndReplace:
		res := e.collection(op.NS, nil, op.WriteConcern).FindOneAndReplace(ctx, op.Filter, op.Replacement, findOneAndReplaceOptions(op))
		return singleResult(res)
	case *operation.FindAndUpdate:
		res := e.collection(op.NS, nil, op.WriteConcern).FindOneAndUpdate(ctx, op.Filter, op.Update, findOneAndUpdateOptions(op))
		return singleResult(res)

	case *operation.CreateIndex:
		_, err := e.collection(op.NS, nil, nil).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    op.Keys,
			Options: indexOptions(op),
		})
		return nil, err
	case *operation.DropIndex:
		indexes := e.collection(op.NS, nil, nil).Indexes()
		var err error
		if op.IndexName == "*" {
			_, err = indexes.DropAll(ctx)
		} else {
			_, err = indexes.DropOne(ctx, op.IndexName)
		}
		return nil, err
	case *operation.DropCollection:
		return nil, e.collection(op.NS, nil, nil).Drop(ctx)
	case *operation.RenameCollection:
		return nil, e.client.Database("admin").RunCommand(ctx, op.Command()).Err()
	}

	return nil, &UnsupportedOperationError{Operation: op}
}

func (e *Executor) distinct(ctx context.Context, op *operation.Distinct, rp *readpref.ReadPref) (interface{}, error) {
	reply, err := e.runCommand(ctx, op.NS.DB, op.Command(), rp)
	if err != nil {
		return nil, err
	}
	arr, ok := reply.Lookup("values").ArrayOK()
	if !ok {
		return []bson.RawValue{}, nil
	}
	return arr.Values()
}

func (e *Executor) mapReduce(ctx context.Context, op *operation.MapReduce, rp *readpref.ReadPref) (interface{}, error) {
	reply, err := e.runCommand(ctx, op.NS.DB, op.Command(), rp)
	if err != nil {
		return nil, err
	}
	arr, ok := reply.Lookup("results").ArrayOK()
	if !ok {
		return []bson.Raw{}, nil
	}
	vals, err := arr.Values()
	if err != nil {
		return nil, err
	}
	docs := make([]bson.Raw, 0, len(vals))
	for _, v := range vals {
		doc, ok := v.DocumentOK()
		if !ok {
			return nil, errors.New("map-reduce result is not a document")
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (e *Executor) runCommand(ctx context.Context, db string, cmd bson.D, rp *readpref.ReadPref) (bson.Raw, error) {
	opts := options.RunCmd()
	if rp != nil {
		opts.SetReadPreference(rp)
	}
	return e.client.Database(db).RunCommand(ctx, cmd, opts).Raw()
}

func (e *Executor) bulkWrite(
	ctx context.Context,
	ns driver.Namespace,
	wc *writeconcern.WriteConcern,
	models []mongo.WriteModel,
	ordered bool,
) (*mongo.BulkWriteResult, error) {
	return e.collection(ns, nil, wc).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(ordered))
}

// drain reads every remaining document of cur and closes it.
func drain(ctx context.Context, cur *mongo.Cursor) ([]bson.Raw, error) {
	defer cur.Close(ctx)

	docs := make([]bson.Raw, 0, cur.RemainingBatchLength())
	for cur.Next(ctx) {
		docs = append(docs, append(bson.Raw(nil), cur.Current...))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

// singleResult returns the document of res, or nil when nothing matched.
func singleResult(res *mongo.SingleResult) (interface{}, error) {
	raw, err := res.Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}
