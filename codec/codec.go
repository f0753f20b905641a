// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package codec converts caller-supplied values to and from canonical BSON
// documents.
//
// A Registry couples a *bsoncodec.Registry, used for loosely typed values such
// as filters and updates, with typed Codecs for collection document types. A
// Codec may additionally implement IDGenerator, in which case documents of its
// type get an _id before they are inserted.
package codec

import (
	"errors"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Codec encodes and decodes documents of type T.
type Codec[T any] interface {
	Encode(reg *bsoncodec.Registry, doc T) (bson.Raw, error)
	Decode(reg *bsoncodec.Registry, raw bson.Raw) (T, error)
}

// IDGenerator is implemented by codecs whose documents carry an _id that can be
// generated on the client.
type IDGenerator[T any] interface {
	// DocumentHasID reports whether doc already has an _id.
	DocumentHasID(doc T) bool
	// GenerateIDIfAbsent gives doc an _id if it has none. Documents of mutable
	// kinds (maps, pointers) are updated in place and returned; for value kinds
	// the returned document is a copy that carries the _id. A document that
	// already has an _id is returned unchanged.
	GenerateIDIfAbsent(doc T) (T, error)
}

// AsIDGenerator returns c as an IDGenerator if it supports identifier generation.
func AsIDGenerator[T any](c Codec[T]) (IDGenerator[T], bool) {
	g, ok := c.(IDGenerator[T])
	return g, ok
}

// RegistryCodec encodes and decodes T with the bsoncodec registry alone.
type RegistryCodec[T any] struct{}

// Encode implements the Codec interface.
func (RegistryCodec[T]) Encode(reg *bsoncodec.Registry, doc T) (bson.Raw, error) {
	b, err := bson.MarshalWithRegistry(reg, doc)
	if err != nil {
		return nil, &EncodingError{Value: doc, Err: err}
	}
	return b, nil
}

// Decode implements the Codec interface.
func (RegistryCodec[T]) Decode(reg *bsoncodec.Registry, raw bson.Raw) (T, error) {
	var doc T
	err := bson.UnmarshalWithRegistry(reg, raw, &doc)
	return doc, err
}

// MapCodec is the collectible codec for bson.M documents. Generated ids are
// stored into the caller's map.
type MapCodec struct {
	RegistryCodec[bson.M]
}

// DocumentHasID implements the IDGenerator interface.
func (MapCodec) DocumentHasID(doc bson.M) bool {
	_, ok := doc["_id"]
	return ok
}

// GenerateIDIfAbsent implements the IDGenerator interface.
func (c MapCodec) GenerateIDIfAbsent(doc bson.M) (bson.M, error) {
	if doc == nil {
		doc = bson.M{}
	}
	if !c.DocumentHasID(doc) {
		doc["_id"] = primitive.NewObjectID()
	}
	return doc, nil
}

// DCodec is the collectible codec for bson.D documents. A generated id is
// prepended to a copy of the document, since a slice header cannot be updated
// in place.
type DCodec struct {
	RegistryCodec[bson.D]
}

// DocumentHasID implements the IDGenerator interface.
func (DCodec) DocumentHasID(doc bson.D) bool {
	for _, e := range doc {
		if e.Key == "_id" {
			return true
		}
	}
	return false
}

// GenerateIDIfAbsent implements the IDGenerator interface.
func (c DCodec) GenerateIDIfAbsent(doc bson.D) (bson.D, error) {
	if c.DocumentHasID(doc) {
		return doc, nil
	}
	withID := make(bson.D, 0, len(doc)+1)
	withID = append(withID, bson.E{Key: "_id", Value: primitive.NewObjectID()})
	return append(withID, doc...), nil
}

// ErrNoIDField is returned by NewStructCodec when the document type has no
// primitive.ObjectID field tagged as _id.
var ErrNoIDField = errors.New("document type must be a pointer to a struct with a primitive.ObjectID field tagged `bson:\"_id\"`")

var tObjectID = reflect.TypeOf(primitive.ObjectID{})

// StructCodec is the collectible codec for pointer-to-struct documents with a
// primitive.ObjectID field tagged `bson:"_id"`. A zero ObjectID counts as
// absent; generated ids are stored into the caller's struct.
type StructCodec[T any] struct {
	RegistryCodec[T]
	idField []int
}

// NewStructCodec returns a StructCodec for T.
func NewStructCodec[T any]() (StructCodec[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return StructCodec[T]{}, ErrNoIDField
	}

	st := t.Elem()
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("bson"), ",")
		if name == "_id" && sf.Type == tObjectID {
			return StructCodec[T]{idField: sf.Index}, nil
		}
	}
	return StructCodec[T]{}, ErrNoIDField
}

func (c StructCodec[T]) id(doc T) (reflect.Value, bool) {
	v := reflect.ValueOf(doc)
	if !v.IsValid() || v.IsNil() {
		return reflect.Value{}, false
	}
	return v.Elem().FieldByIndex(c.idField), true
}

// DocumentHasID implements the IDGenerator interface.
func (c StructCodec[T]) DocumentHasID(doc T) bool {
	f, ok := c.id(doc)
	return ok && !f.Interface().(primitive.ObjectID).IsZero()
}

// GenerateIDIfAbsent implements the IDGenerator interface.
func (c StructCodec[T]) GenerateIDIfAbsent(doc T) (T, error) {
	f, ok := c.id(doc)
	if !ok {
		return doc, ErrNilDocument
	}
	if f.Interface().(primitive.ObjectID).IsZero() {
		f.Set(reflect.ValueOf(primitive.NewObjectID()))
	}
	return doc, nil
}

// RawCodec passes canonical documents through after validation.
type RawCodec struct{}

// Encode implements the Codec interface.
func (RawCodec) Encode(_ *bsoncodec.Registry, doc bson.Raw) (bson.Raw, error) {
	return validated(doc)
}

// Decode implements the Codec interface. The returned document shares raw's
// backing array.
func (RawCodec) Decode(_ *bsoncodec.Registry, raw bson.Raw) (bson.Raw, error) {
	return raw, nil
}
