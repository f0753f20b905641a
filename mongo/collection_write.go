// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// BulkWrite performs a bulk write operation. Models are applied in order;
// when the write is ordered, which is the default, the backend stops at the
// first failed model. If any model cannot be translated nothing is sent.
func (coll *Collection[T]) BulkWrite(ctx context.Context, models []WriteModel, opts ...*options.BulkWriteOptions) *future.Future[*BulkWriteResult] {
	if len(models) == 0 {
		return future.Failed[*BulkWriteResult](ErrEmptySlice)
	}
	bwo := options.MergeBulkWriteOptions(opts...)

	requests, err := coll.trans.translate(models)
	if err != nil {
		return future.Failed[*BulkWriteResult](err)
	}
	op := &operation.MixedBulkWrite{
		NS:           coll.ns,
		Requests:     requests,
		Ordered:      boolValue(bwo.Ordered, true),
		WriteConcern: coll.opts.WriteConcern,
	}

	return toBulkWriteResult(driver.Expect[driver.BulkWriteResult](op, coll.execute(ctx, "bulkWrite", op, nil)))
}

// translateOne translates a single model.
func (coll *Collection[T]) translateOne(model WriteModel) (driver.WriteRequest, error) {
	requests, err := coll.trans.translate([]WriteModel{model})
	if err != nil {
		return nil, err
	}
	return requests[0], nil
}

// InsertOne inserts doc. If the collection's codec generates ids, doc is
// given an _id first when it has none. Maps and struct pointers receive the
// id in place; for bson.D and other value documents the id is only set on
// the encoded copy, so read it from InsertedID.
func (coll *Collection[T]) InsertOne(ctx context.Context, doc T) *future.Future[*InsertOneResult] {
	req, err := coll.translateOne(NewInsertOneModel[T]().SetDocument(doc))
	if err != nil {
		return future.Failed[*InsertOneResult](err)
	}
	insert := req.(driver.InsertRequest)
	op := &operation.Insert{
		NS:           coll.ns,
		Ordered:      true,
		WriteConcern: coll.opts.WriteConcern,
		Requests:     []driver.InsertRequest{insert},
	}

	res := driver.Expect[driver.WriteConcernResult](op, coll.execute(ctx, "insertOne", op, nil))
	return toInsertOneResult(res, insertedID(coll.opts.Registry, insert.Documents[0]))
}

// InsertMany inserts docs in order as a single request. Generated ids follow
// the same rules as InsertOne; InsertedIDs holds them in input order.
func (coll *Collection[T]) InsertMany(ctx context.Context, docs []T, opts ...*options.InsertManyOptions) *future.Future[*InsertManyResult] {
	if len(docs) == 0 {
		return future.Failed[*InsertManyResult](ErrEmptySlice)
	}
	imo := options.MergeInsertManyOptions(opts...)

	req, err := coll.translateOne(NewInsertManyModel[T]().SetDocuments(docs...))
	if err != nil {
		return future.Failed[*InsertManyResult](err)
	}
	insert := req.(driver.InsertRequest)
	ids := make([]interface{}, 0, len(insert.Documents))
	for _, doc := range insert.Documents {
		ids = append(ids, insertedID(coll.opts.Registry, doc))
	}
	op := &operation.Insert{
		NS:           coll.ns,
		Ordered:      boolValue(imo.Ordered, true),
		WriteConcern: coll.opts.WriteConcern,
		Requests:     []driver.InsertRequest{insert},
	}

	res := driver.Expect[driver.WriteConcernResult](op, coll.execute(ctx, "insertMany", op, nil))
	return toInsertManyResult(res, ids)
}

// DeleteOne deletes at most one document matching filter.
func (coll *Collection[T]) DeleteOne(ctx context.Context, filter interface{}) *future.Future[*DeleteResult] {
	return coll.delete(ctx, "deleteOne", NewDeleteOneModel().SetFilter(filter))
}

// DeleteMany deletes every document matching filter.
func (coll *Collection[T]) DeleteMany(ctx context.Context, filter interface{}) *future.Future[*DeleteResult] {
	return coll.delete(ctx, "deleteMany", NewDeleteManyModel().SetFilter(filter))
}

func (coll *Collection[T]) delete(ctx context.Context, name string, model WriteModel) *future.Future[*DeleteResult] {
	req, err := coll.translateOne(model)
	if err != nil {
		return future.Failed[*DeleteResult](err)
	}
	op := &operation.Delete{
		NS:           coll.ns,
		Ordered:      true,
		WriteConcern: coll.opts.WriteConcern,
		Requests:     []driver.DeleteRequest{req.(driver.DeleteRequest)},
	}

	return toDeleteResult(driver.Expect[driver.WriteConcernResult](op, coll.execute(ctx, name, op, nil)))
}

// ReplaceOne replaces at most one document matching filter.
func (coll *Collection[T]) ReplaceOne(ctx context.Context, filter interface{}, replacement T, opts ...*options.ReplaceOptions) *future.Future[*UpdateResult] {
	ro := options.MergeReplaceOptions(opts...)

	model := NewReplaceOneModel[T]().SetFilter(filter).SetReplacement(replacement)
	model.Upsert = ro.Upsert
	return coll.update(ctx, "replaceOne", model)
}

// UpdateOne applies update to at most one document matching filter. The
// first key of update must be an update operator.
func (coll *Collection[T]) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) *future.Future[*UpdateResult] {
	uo := options.MergeUpdateOptions(opts...)

	model := NewUpdateOneModel().SetFilter(filter).SetUpdate(update)
	model.Upsert = uo.Upsert
	return coll.update(ctx, "updateOne", model)
}

// UpdateMany applies update to every document matching filter.
func (coll *Collection[T]) UpdateMany(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) *future.Future[*UpdateResult] {
	uo := options.MergeUpdateOptions(opts...)

	model := NewUpdateManyModel().SetFilter(filter).SetUpdate(update)
	model.Upsert = uo.Upsert
	return coll.update(ctx, "updateMany", model)
}

func (coll *Collection[T]) update(ctx context.Context, name string, model WriteModel) *future.Future[*UpdateResult] {
	req, err := coll.translateOne(model)
	if err != nil {
		return future.Failed[*UpdateResult](err)
	}
	op := &operation.Update{
		NS:           coll.ns,
		Ordered:      true,
		WriteConcern: coll.opts.WriteConcern,
		Requests:     []driver.UpdateRequest{req.(driver.UpdateRequest)},
	}

	return toUpdateResult(driver.Expect[driver.WriteConcernResult](op, coll.execute(ctx, name, op, nil)))
}

// FindOneAndDelete deletes a single document matching filter and returns it,
// or fails with ErrNoDocuments.
func (coll *Collection[T]) FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *future.Future[T] {
	fo := options.MergeFindOneAndDeleteOptions(opts...)
	reg := coll.opts.Registry

	f, err := reg.Encode(filter)
	if err != nil {
		return future.Failed[T](err)
	}
	projection, err := encodeOptional(reg, fo.Projection)
	if err != nil {
		return future.Failed[T](err)
	}
	sort, err := encodeOptional(reg, fo.Sort)
	if err != nil {
		return future.Failed[T](err)
	}
	op := &operation.FindAndDelete{
		NS:           coll.ns,
		Filter:       f,
		Projection:   projection,
		Sort:         sort,
		MaxTime:      durationValue(fo.MaxTime),
		WriteConcern: coll.opts.WriteConcern,
	}

	return decodeSingle[T](reg, driver.Expect[bson.Raw](op, coll.execute(ctx, "findOneAndDelete", op, nil)))
}

// FindOneAndReplace replaces a single document matching filter. It returns
// the original document unless options ask for the replaced one.
func (coll *Collection[T]) FindOneAndReplace(ctx context.Context, filter interface{}, replacement T, opts ...*options.FindOneAndReplaceOptions) *future.Future[T] {
	fo := options.MergeFindOneAndReplaceOptions(opts...)
	reg := coll.opts.Registry

	req, err := coll.trans.replace(filter, replacement, fo.Upsert)
	if err != nil {
		return future.Failed[T](err)
	}
	projection, err := encodeOptional(reg, fo.Projection)
	if err != nil {
		return future.Failed[T](err)
	}
	sort, err := encodeOptional(reg, fo.Sort)
	if err != nil {
		return future.Failed[T](err)
	}
	op := &operation.FindAndReplace{
		NS:             coll.ns,
		Filter:         req.Filter,
		Replacement:    req.Update,
		Projection:     projection,
		Sort:           sort,
		ReturnOriginal: returnOriginal(fo.ReturnDocument),
		Upsert:         req.Upsert,
		MaxTime:        durationValue(fo.MaxTime),
		WriteConcern:   coll.opts.WriteConcern,
	}

	return decodeSingle[T](reg, driver.Expect[bson.Raw](op, coll.execute(ctx, "findOneAndReplace", op, nil)))
}

// FindOneAndUpdate updates a single document matching filter. It returns the
// original document unless options ask for the updated one.
func (coll *Collection[T]) FindOneAndUpdate(ctx context.Context, filter, update interface{}, opts ...*options.FindOneAndUpdateOptions) *future.Future[T] {
	fo := options.MergeFindOneAndUpdateOptions(opts...)
	reg := coll.opts.Registry

	req, err := coll.trans.update(filter, update, false, fo.Upsert)
	if err != nil {
		return future.Failed[T](err)
	}
	projection, err := encodeOptional(reg, fo.Projection)
	if err != nil {
		return future.Failed[T](err)
	}
	sort, err := encodeOptional(reg, fo.Sort)
	if err != nil {
		return future.Failed[T](err)
	}
	op := &operation.FindAndUpdate{
		NS:             coll.ns,
		Filter:         req.Filter,
		Update:         req.Update,
		Projection:     projection,
		Sort:           sort,
		ReturnOriginal: returnOriginal(fo.ReturnDocument),
		Upsert:         req.Upsert,
		MaxTime:        durationValue(fo.MaxTime),
		WriteConcern:   coll.opts.WriteConcern,
	}

	return decodeSingle[T](reg, driver.Expect[bson.Raw](op, coll.execute(ctx, "findOneAndUpdate", op, nil)))
}

func returnOriginal(rd *options.ReturnDocument) bool {
	return rd == nil || *rd == options.Before
}
