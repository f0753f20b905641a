// Copyright (C) MongoDB, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package operation

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// CreateIndex creates a single index. Pointer and zero-valued fields are
// omitted from the index specification.
type CreateIndex struct {
	NS                 driver.Namespace
	Keys               bson.Raw
	IndexName          string
	Background         bool
	Unique             bool
	Sparse             bool
	ExpireAfterSeconds *int32
	Version            *int32
	Weights            bson.Raw
	DefaultLanguage    string
	LanguageOverride   string
	TextIndexVersion   *int32
	SphereIndexVersion *int32
	Bits               *int32
	Min                *float64
	Max                *float64
	BucketSize         *float64
}

// DropIndex drops the index IndexName. The name "*" drops all indexes except
// the one on _id.
type DropIndex struct {
	NS        driver.Namespace
	IndexName string
}

// DropCollection drops a collection.
type DropCollection struct {
	NS driver.Namespace
}

// RenameCollection renames a collection.
type RenameCollection struct {
	NS         driver.Namespace
	To         driver.Namespace
	DropTarget bool
}

// Command returns the renameCollection command document. It must be run
// against the admin database.
func (rc *RenameCollection) Command() bson.D {
	cmd := bson.D{
		{Key: "renameCollection", Value: rc.NS.FullName()},
		{Key: "to", Value: rc.To.FullName()},
	}
	if rc.DropTarget {
		cmd = append(cmd, bson.E{Key: "dropTarget", Value: true})
	}
	return cmd
}

func (*CreateIndex) Name() string      { return "createIndexes" }
func (*DropIndex) Name() string        { return "dropIndexes" }
func (*DropCollection) Name() string   { return "drop" }
func (*RenameCollection) Name() string { return "renameCollection" }

func (op *CreateIndex) Namespace() driver.Namespace      { return op.NS }
func (op *DropIndex) Namespace() driver.Namespace        { return op.NS }
func (op *DropCollection) Namespace() driver.Namespace   { return op.NS }
func (op *RenameCollection) Namespace() driver.Namespace { return op.NS }
