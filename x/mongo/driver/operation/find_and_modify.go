// Copyright (C) MongoDB, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package operation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// FindAndDelete atomically finds and deletes a single document.
type FindAndDelete struct {
	NS           driver.Namespace
	Filter       bson.Raw
	Projection   bson.Raw
	Sort         bson.Raw
	MaxTime      time.Duration
	WriteConcern *writeconcern.WriteConcern
}

// FindAndReplace atomically finds and replaces a single document.
type FindAndReplace struct {
	NS             driver.Namespace
	Filter         bson.Raw
	Replacement    bson.Raw
	Projection     bson.Raw
	Sort           bson.Raw
	ReturnOriginal bool
	Upsert         bool
	MaxTime        time.Duration
	WriteConcern   *writeconcern.WriteConcern
}

// FindAndUpdate atomically finds and updates a single document.
type FindAndUpdate struct {
	NS             driver.Namespace
	Filter         bson.Raw
	Update         bson.Raw
	Projection     bson.Raw
	Sort           bson.Raw
	ReturnOriginal bool
	Upsert         bool
	MaxTime        time.Duration
	WriteConcern   *writeconcern.WriteConcern
}

func (*FindAndDelete) Name() string  { return "findAndModify" }
func (*FindAndReplace) Name() string { return "findAndModify" }
func (*FindAndUpdate) Name() string  { return "findAndModify" }

func (op *FindAndDelete) Namespace() driver.Namespace  { return op.NS }
func (op *FindAndReplace) Namespace() driver.Namespace { return op.NS }
func (op *FindAndUpdate) Namespace() driver.Namespace  { return op.NS }
