// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// Drop drops the collection.
func (coll *Collection[T]) Drop(ctx context.Context) *future.Future[struct{}] {
	op := &operation.DropCollection{NS: coll.ns}
	return ignoreResult(coll.execute(ctx, "drop", op, nil))
}

// CreateIndex creates an index on keys and returns its name. Unless a name is
// given in opts the name is generated from keys, e.g. {name: 1, age: -1}
// gives "name_1_age_-1".
func (coll *Collection[T]) CreateIndex(ctx context.Context, keys interface{}, opts ...*options.IndexOptions) *future.Future[string] {
	iopts := options.MergeIndexOptions(opts...)
	reg := coll.opts.Registry

	k, err := reg.Encode(keys)
	if err != nil {
		return future.Failed[string](err)
	}
	var name string
	if iopts.Name != nil {
		name = *iopts.Name
	} else if name, err = generateIndexName(k); err != nil {
		return future.Failed[string](err)
	}
	weights, err := encodeOptional(reg, iopts.Weights)
	if err != nil {
		return future.Failed[string](err)
	}

	op := &operation.CreateIndex{
		NS:                 coll.ns,
		Keys:               k,
		IndexName:          name,
		Background:         boolValue(iopts.Background, false),
		Unique:             boolValue(iopts.Unique, false),
		Sparse:             boolValue(iopts.Sparse, false),
		ExpireAfterSeconds: iopts.ExpireAfterSeconds,
		Version:            iopts.Version,
		Weights:            weights,
		TextIndexVersion:   iopts.TextVersion,
		SphereIndexVersion: iopts.SphereVersion,
		Bits:               iopts.Bits,
		Min:                iopts.Min,
		Max:                iopts.Max,
		BucketSize:         iopts.BucketSize,
	}
	if iopts.DefaultLanguage != nil {
		op.DefaultLanguage = *iopts.DefaultLanguage
	}
	if iopts.LanguageOverride != nil {
		op.LanguageOverride = *iopts.LanguageOverride
	}

	return future.Then(coll.execute(ctx, "createIndex", op, nil), func(interface{}) (string, error) {
		return name, nil
	})
}

// ListIndexes returns the index specifications of the collection.
func (coll *Collection[T]) ListIndexes(ctx context.Context) *future.Future[[]bson.D] {
	return ListIndexesAs[bson.D](ctx, coll)
}

// ListIndexesAs is ListIndexes with specifications decoded into C.
func ListIndexesAs[C, T any](ctx context.Context, coll *Collection[T]) *future.Future[[]C] {
	op := &operation.ListIndexes{NS: coll.ns}
	return allOf[C](coll.opts.Registry, driver.Expect[[]bson.Raw](op, coll.execute(ctx, "listIndexes", op, coll.opts.ReadPreference)))
}

// DropIndex drops the index named name.
func (coll *Collection[T]) DropIndex(ctx context.Context, name string) *future.Future[struct{}] {
	op := &operation.DropIndex{NS: coll.ns, IndexName: name}
	return ignoreResult(coll.execute(ctx, "dropIndex", op, nil))
}

// DropIndexes drops every index of the collection except the one on _id.
func (coll *Collection[T]) DropIndexes(ctx context.Context) *future.Future[struct{}] {
	return coll.DropIndex(ctx, "*")
}

// RenameCollection renames the collection to db.name. The receiver keeps
// pointing at the old namespace.
func (coll *Collection[T]) RenameCollection(ctx context.Context, db, name string, opts ...*options.RenameCollectionOptions) *future.Future[struct{}] {
	ro := options.MergeRenameCollectionOptions(opts...)

	to, err := driver.NewNamespace(db, name)
	if err != nil {
		return future.Failed[struct{}](err)
	}
	op := &operation.RenameCollection{
		NS:         coll.ns,
		To:         to,
		DropTarget: boolValue(ro.DropTarget, false),
	}
	return ignoreResult(coll.execute(ctx, "renameCollection", op, nil))
}

func generateIndexName(keys bson.Raw) (string, error) {
	elems, err := keys.Elements()
	if err != nil {
		return "", err
	}
	if len(elems) == 0 {
		return "", ErrInvalidIndexValue
	}

	var name strings.Builder
	for i, elem := range elems {
		if i > 0 {
			name.WriteByte('_')
		}
		name.WriteString(elem.Key())
		name.WriteByte('_')

		val := elem.Value()
		switch val.Type {
		case bsontype.Int32:
			name.WriteString(strconv.FormatInt(int64(val.Int32()), 10))
		case bsontype.Int64:
			name.WriteString(strconv.FormatInt(val.Int64(), 10))
		case bsontype.Double:
			name.WriteString(strconv.FormatFloat(val.Double(), 'f', -1, 64))
		case bsontype.String:
			name.WriteString(val.StringValue())
		default:
			return "", ErrInvalidIndexValue
		}
	}
	return name.String(), nil
}
