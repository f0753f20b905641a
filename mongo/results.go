// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import "fmt"

// InsertOneResult is the result type returned by an InsertOne operation.
type InsertOneResult struct {
	// Acknowledged is false for writes with an unacknowledged write concern.
	Acknowledged bool
	// InsertedID is the _id of the inserted document, or nil if the document
	// was sent without one.
	InsertedID interface{}
}

// InsertManyResult is a result type returned by an InsertMany operation.
type InsertManyResult struct {
	// Acknowledged is false for writes with an unacknowledged write concern.
	Acknowledged bool
	// InsertedIDs holds the _id of each inserted document, in order.
	InsertedIDs []interface{}
}

// DeleteResult is the result type returned by DeleteOne and DeleteMany
// operations. The deleted count of an unacknowledged write is not available.
type DeleteResult struct {
	acknowledged bool
	deletedCount int64
}

// AcknowledgedDelete returns the result of an acknowledged delete of n documents.
func AcknowledgedDelete(n int64) *DeleteResult {
	return &DeleteResult{acknowledged: true, deletedCount: n}
}

// UnacknowledgedDelete returns the result of an unacknowledged delete.
func UnacknowledgedDelete() *DeleteResult {
	return &DeleteResult{}
}

// Acknowledged reports whether the server acknowledged the write.
func (r *DeleteResult) Acknowledged() bool { return r.acknowledged }

// DeletedCount returns the number of documents deleted, or
// ErrUnacknowledgedWrite.
func (r *DeleteResult) DeletedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	return r.deletedCount, nil
}

// String implements fmt.Stringer.
func (r *DeleteResult) String() string {
	if !r.acknowledged {
		return "DeleteResult{unacknowledged}"
	}
	return fmt.Sprintf("DeleteResult{deletedCount: %d}", r.deletedCount)
}

// UpdateResult is the result type returned from UpdateOne, UpdateMany and
// ReplaceOne operations. The counts and upserted id of an unacknowledged write
// are not available.
type UpdateResult struct {
	acknowledged  bool
	matchedCount  int64
	modifiedCount *int64
	upsertedID    interface{}
}

// AcknowledgedUpdate returns the result of an acknowledged update. A nil
// modified count means the executor could not report it.
func AcknowledgedUpdate(matched int64, modified *int64, upsertedID interface{}) *UpdateResult {
	return &UpdateResult{
		acknowledged:  true,
		matchedCount:  matched,
		modifiedCount: modified,
		upsertedID:    upsertedID,
	}
}

// UnacknowledgedUpdate returns the result of an unacknowledged update.
func UnacknowledgedUpdate() *UpdateResult {
	return &UpdateResult{}
}

// Acknowledged reports whether the server acknowledged the write.
func (r *UpdateResult) Acknowledged() bool { return r.acknowledged }

// MatchedCount returns the number of documents matched by the filter, or
// ErrUnacknowledgedWrite.
func (r *UpdateResult) MatchedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	return r.matchedCount, nil
}

// ModifiedCount returns the number of documents modified. It returns
// ErrModifiedCountUnknown when the executor did not report it.
func (r *UpdateResult) ModifiedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	if r.modifiedCount == nil {
		return 0, ErrModifiedCountUnknown
	}
	return *r.modifiedCount, nil
}

// UpsertedID returns the _id of the document inserted by an upsert, or nil if
// no document was inserted.
func (r *UpdateResult) UpsertedID() (interface{}, error) {
	if !r.acknowledged {
		return nil, ErrUnacknowledgedWrite
	}
	return r.upsertedID, nil
}

// String implements fmt.Stringer.
func (r *UpdateResult) String() string {
	if !r.acknowledged {
		return "UpdateResult{unacknowledged}"
	}
	modified := "unknown"
	if r.modifiedCount != nil {
		modified = fmt.Sprint(*r.modifiedCount)
	}
	return fmt.Sprintf("UpdateResult{matchedCount: %d, modifiedCount: %s, upsertedID: %v}",
		r.matchedCount, modified, r.upsertedID)
}

// BulkWriteResult is the result type returned by a BulkWrite operation.
type BulkWriteResult struct {
	acknowledged  bool
	insertedCount int64
	matchedCount  int64
	deletedCount  int64
	modifiedCount *int64
	upsertedIDs   map[int64]interface{}
}

// UnacknowledgedBulkWrite returns the result of an unacknowledged bulk write.
func UnacknowledgedBulkWrite() *BulkWriteResult {
	return &BulkWriteResult{}
}

// Acknowledged reports whether the server acknowledged the write.
func (r *BulkWriteResult) Acknowledged() bool { return r.acknowledged }

// InsertedCount returns the number of documents inserted.
func (r *BulkWriteResult) InsertedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	return r.insertedCount, nil
}

// MatchedCount returns the number of documents matched by filters in update
// and replace requests.
func (r *BulkWriteResult) MatchedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	return r.matchedCount, nil
}

// DeletedCount returns the number of documents deleted.
func (r *BulkWriteResult) DeletedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	return r.deletedCount, nil
}

// ModifiedCount returns the number of documents modified by update and replace
// requests, or ErrModifiedCountUnknown.
func (r *BulkWriteResult) ModifiedCount() (int64, error) {
	if !r.acknowledged {
		return 0, ErrUnacknowledgedWrite
	}
	if r.modifiedCount == nil {
		return 0, ErrModifiedCountUnknown
	}
	return *r.modifiedCount, nil
}

// UpsertedIDs maps the index of each request that upserted a document to the
// _id of that document.
func (r *BulkWriteResult) UpsertedIDs() (map[int64]interface{}, error) {
	if !r.acknowledged {
		return nil, ErrUnacknowledgedWrite
	}
	return r.upsertedIDs, nil
}
