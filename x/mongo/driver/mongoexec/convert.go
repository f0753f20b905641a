// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongoexec

import (
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// writeModels converts canonical write requests into the official driver's
// write models, in order. An insert request becomes one model per document;
// requestIndex maps each model back to the request it came from.
func writeModels(reqs []driver.WriteRequest) (models []mongo.WriteModel, requestIndex []int64) {
	models = make([]mongo.WriteModel, 0, len(reqs))
	requestIndex = make([]int64, 0, len(reqs))
	for i, req := range reqs {
		switch r := req.(type) {
		case driver.InsertRequest:
			for _, doc := range r.Documents {
				models = append(models, mongo.NewInsertOneModel().SetDocument(doc))
				requestIndex = append(requestIndex, int64(i))
			}
			continue
		case driver.UpdateRequest:
			switch {
			case r.Type == driver.UpdateTypeReplace:
				models = append(models, mongo.NewReplaceOneModel().
					SetFilter(r.Filter).SetReplacement(r.Update).SetUpsert(r.Upsert))
			case r.Multi:
				models = append(models, mongo.NewUpdateManyModel().
					SetFilter(r.Filter).SetUpdate(r.Update).SetUpsert(r.Upsert))
			default:
				models = append(models, mongo.NewUpdateOneModel().
					SetFilter(r.Filter).SetUpdate(r.Update).SetUpsert(r.Upsert))
			}
		case driver.DeleteRequest:
			if r.Multi {
				models = append(models, mongo.NewDeleteManyModel().SetFilter(r.Filter))
			} else {
				models = append(models, mongo.NewDeleteOneModel().SetFilter(r.Filter))
			}
		default:
			continue
		}
		requestIndex = append(requestIndex, int64(i))
	}
	return models, requestIndex
}

// rekeyWriteErrors rewrites the model indexes of a bulk write exception to
// request indexes.
func rekeyWriteErrors(err error, requestIndex []int64) error {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) {
		return err
	}
	writeErrors := make([]mongo.BulkWriteError, len(bwe.WriteErrors))
	copy(writeErrors, bwe.WriteErrors)
	for i, we := range writeErrors {
		if we.Index >= 0 && we.Index < len(requestIndex) {
			writeErrors[i].Index = int(requestIndex[we.Index])
		}
	}
	bwe.WriteErrors = writeErrors
	return bwe
}

// writeConcernResult reduces the result of the bulk write that ran an insert,
// update or delete operation to an acknowledgement.
func writeConcernResult(op driver.Operation, res *mongo.BulkWriteResult, err error) (interface{}, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return driver.WriteConcernResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	wcr := driver.WriteConcernResult{Acknowledged: true}
	switch op.(type) {
	case *operation.Insert:
		wcr.Count = res.InsertedCount
	case *operation.Update:
		wcr.Count = res.MatchedCount + res.UpsertedCount
		wcr.UpdateOfExisting = res.MatchedCount > 0
		if id, ok := res.UpsertedIDs[0]; ok {
			wcr.UpsertedID = id
		}
	case *operation.Delete:
		wcr.Count = res.DeletedCount
	}
	return wcr, nil
}

// bulkWriteResult converts the result of a mixed bulk write. Upserts are
// reported against the index of the request that produced them.
func bulkWriteResult(res *mongo.BulkWriteResult, err error, requestIndex []int64) (interface{}, error) {
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return driver.BulkWriteResult{}, nil
	}
	if err != nil {
		return nil, rekeyWriteErrors(err, requestIndex)
	}

	modified := res.ModifiedCount
	bwr := driver.BulkWriteResult{
		Acknowledged:  true,
		InsertedCount: res.InsertedCount,
		MatchedCount:  res.MatchedCount,
		DeletedCount:  res.DeletedCount,
		ModifiedCount: &modified,
	}
	for idx, id := range res.UpsertedIDs {
		if idx >= 0 && idx < int64(len(requestIndex)) {
			idx = requestIndex[idx]
		}
		bwr.Upserts = append(bwr.Upserts, driver.BulkWriteUpsert{Index: idx, ID: id})
	}
	sort.Slice(bwr.Upserts, func(i, j int) bool { return bwr.Upserts[i].Index < bwr.Upserts[j].Index })
	return bwr, nil
}

// writeConcernDocument renders wc for commands the official driver does not
// attach it to.
func writeConcernDocument(wc *writeconcern.WriteConcern) bson.D {
	if wc == nil {
		return nil
	}
	var doc bson.D
	if wc.W != nil {
		doc = append(doc, bson.E{Key: "w", Value: wc.W})
	}
	if wc.Journal != nil {
		doc = append(doc, bson.E{Key: "j", Value: *wc.Journal})
	}
	if wc.WTimeout > 0 {
		doc = append(doc, bson.E{Key: "wtimeout", Value: wc.WTimeout.Milliseconds()})
	}
	return doc
}

func pipeline(stages []bson.Raw) bson.A {
	p := make(bson.A, 0, len(stages))
	for _, s := range stages {
		p = append(p, s)
	}
	return p
}

func countOptions(op *operation.Count) *options.CountOptions {
	opts := options.Count()
	if op.Skip != 0 {
		opts.SetSkip(op.Skip)
	}
	if op.Limit != 0 {
		opts.SetLimit(op.Limit)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	if op.Hint != nil {
		opts.SetHint(op.Hint)
	}
	return opts
}

func findOptions(op *operation.Find) *options.FindOptions {
	opts := options.Find()
	if len(op.Projection) > 0 {
		opts.SetProjection(op.Projection)
	}
	if len(op.Sort) > 0 {
		opts.SetSort(op.Sort)
	}
	if op.Skip != 0 {
		opts.SetSkip(op.Skip)
	}
	if op.Limit != 0 {
		opts.SetLimit(op.Limit)
	}
	if op.BatchSize > 0 {
		opts.SetBatchSize(op.BatchSize)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	return opts
}

// aggregateOptions ignores UseCursor: the official driver always asks for a
// cursor.
func aggregateOptions(op *operation.Aggregate) *options.AggregateOptions {
	opts := options.Aggregate()
	if op.AllowDiskUse != nil {
		opts.SetAllowDiskUse(*op.AllowDiskUse)
	}
	if op.BatchSize != nil {
		opts.SetBatchSize(*op.BatchSize)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	return opts
}

func returnDocument(original bool) options.ReturnDocument {
	if original {
		return options.Before
	}
	return options.After
}

func findOneAndDeleteOptions(op *operation.FindAndDelete) *options.FindOneAndDeleteOptions {
	opts := options.FindOneAndDelete()
	if len(op.Projection) > 0 {
		opts.SetProjection(op.Projection)
	}
	if len(op.Sort) > 0 {
		opts.SetSort(op.Sort)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	return opts
}

func findOneAndReplaceOptions(op *operation.FindAndReplace) *options.FindOneAndReplaceOptions {
	opts := options.FindOneAndReplace().
		SetReturnDocument(returnDocument(op.ReturnOriginal)).
		SetUpsert(op.Upsert)
	if len(op.Projection) > 0 {
		opts.SetProjection(op.Projection)
	}
	if len(op.Sort) > 0 {
		opts.SetSort(op.Sort)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	return opts
}

func findOneAndUpdateOptions(op *operation.FindAndUpdate) *options.FindOneAndUpdateOptions {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(returnDocument(op.ReturnOriginal)).
		SetUpsert(op.Upsert)
	if len(op.Projection) > 0 {
		opts.SetProjection(op.Projection)
	}
	if len(op.Sort) > 0 {
		opts.SetSort(op.Sort)
	}
	if op.MaxTime > 0 {
		opts.SetMaxTime(op.MaxTime)
	}
	return opts
}

func indexOptions(op *operation.CreateIndex) *options.IndexOptions {
	opts := options.Index().SetName(op.IndexName)
	if op.Background {
		opts.SetBackground(true)
	}
	if op.Unique {
		opts.SetUnique(true)
	}
	if op.Sparse {
		opts.SetSparse(true)
	}
	if op.ExpireAfterSeconds != nil {
		opts.SetExpireAfterSeconds(*op.ExpireAfterSeconds)
	}
	if op.Version != nil {
		opts.SetVersion(*op.Version)
	}
	if len(op.Weights) > 0 {
		opts.SetWeights(op.Weights)
	}
	if op.DefaultLanguage != "" {
		opts.SetDefaultLanguage(op.DefaultLanguage)
	}
	if op.LanguageOverride != "" {
		opts.SetLanguageOverride(op.LanguageOverride)
	}
	if op.TextIndexVersion != nil {
		opts.SetTextVersion(*op.TextIndexVersion)
	}
	if op.SphereIndexVersion != nil {
		opts.SetSphereVersion(*op.SphereIndexVersion)
	}
	if op.Bits != nil {
		opts.SetBits(*op.Bits)
	}
	if op.Min != nil {
		opts.SetMin(*op.Min)
	}
	if op.Max != nil {
		opts.SetMax(*op.Max)
	}
	if op.BucketSize != nil {
		opts.SetBucketSize(int32(*op.BucketSize))
	}
	return opts
}
