// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

// WriteConcernResult is the acknowledgement of an insert, update or delete.
// When Acknowledged is false the remaining fields carry no information.
type WriteConcernResult struct {
	Acknowledged bool
	// Count is the number of documents inserted, matched or deleted.
	Count            int64
	UpdateOfExisting bool
	UpsertedID       interface{}
}

// BulkWriteUpsert records the identifier of a document upserted by the request
// at Index.
type BulkWriteUpsert struct {
	Index int64
	ID    interface{}
}

// BulkWriteResult is the acknowledgement of a mixed bulk write.
type BulkWriteResult struct {
	Acknowledged  bool
	InsertedCount int64
	MatchedCount  int64
	DeletedCount  int64
	// ModifiedCount is nil when the server did not report it.
	ModifiedCount *int64
	Upserts       []BulkWriteUpsert
}
