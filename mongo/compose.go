// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// The functions in this file run on the goroutine that completes the
// executor's future. They only read their arguments.

func toDeleteResult(f *future.Future[driver.WriteConcernResult]) *future.Future[*DeleteResult] {
	return future.Then(f, func(res driver.WriteConcernResult) (*DeleteResult, error) {
		if !res.Acknowledged {
			return UnacknowledgedDelete(), nil
		}
		return AcknowledgedDelete(res.Count), nil
	})
}

// toUpdateResult never reports a modified count: a WriteConcernResult does not
// carry one.
func toUpdateResult(f *future.Future[driver.WriteConcernResult]) *future.Future[*UpdateResult] {
	return future.Then(f, func(res driver.WriteConcernResult) (*UpdateResult, error) {
		if !res.Acknowledged {
			return UnacknowledgedUpdate(), nil
		}
		return AcknowledgedUpdate(res.Count, nil, res.UpsertedID), nil
	})
}

func toInsertOneResult(f *future.Future[driver.WriteConcernResult], id interface{}) *future.Future[*InsertOneResult] {
	return future.Then(f, func(res driver.WriteConcernResult) (*InsertOneResult, error) {
		return &InsertOneResult{Acknowledged: res.Acknowledged, InsertedID: id}, nil
	})
}

func toInsertManyResult(f *future.Future[driver.WriteConcernResult], ids []interface{}) *future.Future[*InsertManyResult] {
	return future.Then(f, func(res driver.WriteConcernResult) (*InsertManyResult, error) {
		return &InsertManyResult{Acknowledged: res.Acknowledged, InsertedIDs: ids}, nil
	})
}

func toBulkWriteResult(f *future.Future[driver.BulkWriteResult]) *future.Future[*BulkWriteResult] {
	return future.Then(f, func(res driver.BulkWriteResult) (*BulkWriteResult, error) {
		if !res.Acknowledged {
			return UnacknowledgedBulkWrite(), nil
		}
		upserted := make(map[int64]interface{}, len(res.Upserts))
		for _, u := range res.Upserts {
			upserted[u.Index] = u.ID
		}
		return &BulkWriteResult{
			acknowledged:  true,
			insertedCount: res.InsertedCount,
			matchedCount:  res.MatchedCount,
			deletedCount:  res.DeletedCount,
			modifiedCount: res.ModifiedCount,
			upsertedIDs:   upserted,
		}, nil
	})
}

// decodeValues decodes every value or fails as a whole.
func decodeValues(reg *codec.Registry, vals []bson.RawValue) ([]interface{}, error) {
	decoded := make([]interface{}, 0, len(vals))
	for i, rv := range vals {
		v, err := reg.DecodeValue(rv)
		if err != nil {
			return nil, decodeFailure(i, err)
		}
		decoded = append(decoded, v)
	}
	return decoded, nil
}

// decodeDocuments decodes every document or fails as a whole.
func decodeDocuments[C any](reg *codec.Registry, docs []bson.Raw) ([]C, error) {
	c := codec.Lookup[C](reg)
	decoded := make([]C, 0, len(docs))
	for i, doc := range docs {
		v, err := c.Decode(reg.BSONRegistry(), doc)
		if err != nil {
			return nil, decodeFailure(i, err)
		}
		decoded = append(decoded, v)
	}
	return decoded, nil
}

// decodeSingle decodes the document returned by a single-document operation.
// A nil document means nothing matched.
func decodeSingle[C any](reg *codec.Registry, f *future.Future[bson.Raw]) *future.Future[C] {
	return future.Then(f, func(doc bson.Raw) (C, error) {
		if doc == nil {
			var zero C
			return zero, ErrNoDocuments
		}
		v, err := codec.Lookup[C](reg).Decode(reg.BSONRegistry(), doc)
		if err != nil {
			return v, decodeFailure(0, err)
		}
		return v, nil
	})
}

// insertedID returns the decoded _id of an encoded document, or nil.
func insertedID(reg *codec.Registry, doc bson.Raw) interface{} {
	rv, err := doc.LookupErr("_id")
	if err != nil {
		return nil
	}
	if id, err := reg.DecodeValue(rv); err == nil {
		return id
	}
	return rv
}
