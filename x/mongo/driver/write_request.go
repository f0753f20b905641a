// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import "go.mongodb.org/mongo-driver/bson"

// WriteRequest is the canonical form of a single write. It is implemented by
// InsertRequest, UpdateRequest and DeleteRequest only.
type WriteRequest interface {
	writeRequest()
}

// UpdateType distinguishes a full-document replacement from a modifier update.
type UpdateType int

// These constants are the valid UpdateType values.
const (
	UpdateTypeUpdate UpdateType = iota
	UpdateTypeReplace
)

func (t UpdateType) String() string {
	if t == UpdateTypeReplace {
		return "replace"
	}
	return "update"
}

// InsertRequest inserts Documents in order. It is the request of a single
// insert intent, however many documents that intent carries.
type InsertRequest struct {
	Documents []bson.Raw
}

// UpdateRequest updates or replaces the documents matching Filter.
type UpdateRequest struct {
	Filter bson.Raw
	Update bson.Raw
	Type   UpdateType
	Multi  bool
	Upsert bool
}

// DeleteRequest deletes the documents matching Filter.
type DeleteRequest struct {
	Filter bson.Raw
	Multi  bool
}

func (InsertRequest) writeRequest() {}
func (UpdateRequest) writeRequest() {}
func (DeleteRequest) writeRequest() {}
