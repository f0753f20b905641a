// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package codec

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

var emptyDocument = bson.Raw{0x05, 0x00, 0x00, 0x00, 0x00}

// Registration associates a Codec with the document type it handles.
type Registration struct {
	typ    reflect.Type
	codec  interface{}
	encode func(*bsoncodec.Registry, interface{}) (bson.Raw, error)
}

// Register returns a Registration of c for documents of type T.
func Register[T any](c Codec[T]) Registration {
	return Registration{
		typ:   reflect.TypeOf((*T)(nil)).Elem(),
		codec: c,
		encode: func(reg *bsoncodec.Registry, v interface{}) (bson.Raw, error) {
			return EncodeWith(c, reg, v.(T))
		},
	}
}

// EncodeWith encodes doc with c. Failures are reported as *EncodingError
// whatever the codec returned.
func EncodeWith[T any](c Codec[T], reg *bsoncodec.Registry, doc T) (bson.Raw, error) {
	b, err := c.Encode(reg, doc)
	if err != nil {
		return nil, asEncodingError(doc, err)
	}
	return b, nil
}

// Registry resolves codecs for document types and encodes loosely typed
// values. A Registry is immutable and safe for concurrent use.
type Registry struct {
	bson   *bsoncodec.Registry
	codecs map[reflect.Type]Registration
}

// DefaultRegistry uses bson.DefaultRegistry and knows the collectible codecs
// for bson.M and bson.D.
var DefaultRegistry = NewRegistry(nil,
	Register[bson.Raw](RawCodec{}),
	Register[bson.M](MapCodec{}),
	Register[bson.D](DCodec{}),
)

// NewRegistry returns a Registry over reg with the given codecs. A nil reg
// means bson.DefaultRegistry. Later registrations for a type replace earlier
// ones.
func NewRegistry(reg *bsoncodec.Registry, codecs ...Registration) *Registry {
	if reg == nil {
		reg = bson.DefaultRegistry
	}
	r := &Registry{bson: reg, codecs: make(map[reflect.Type]Registration, len(codecs))}
	for _, c := range codecs {
		r.codecs[c.typ] = c
	}
	return r
}

// With returns a copy of r with the additional codecs.
func (r *Registry) With(codecs ...Registration) *Registry {
	all := make([]Registration, 0, len(r.codecs)+len(codecs))
	for _, c := range r.codecs {
		all = append(all, c)
	}
	return NewRegistry(r.bson, append(all, codecs...)...)
}

// BSONRegistry returns the underlying bsoncodec registry.
func (r *Registry) BSONRegistry() *bsoncodec.Registry { return r.bson }

// Lookup returns the codec registered for T, or a RegistryCodec when there is
// none.
func Lookup[T any](r *Registry) Codec[T] {
	if reg, ok := r.codecs[reflect.TypeOf((*T)(nil)).Elem()]; ok {
		if c, ok := reg.codec.(Codec[T]); ok {
			return c
		}
	}
	return RegistryCodec[T]{}
}

// Encode converts val to a canonical document. A nil val is the empty
// document. Raw documents are validated and returned as is.
func (r *Registry) Encode(val interface{}) (bson.Raw, error) {
	switch v := val.(type) {
	case nil:
		return emptyDocument, nil
	case bson.Raw:
		return validated(v)
	case bsoncore.Document:
		return validated(bson.Raw(v))
	case []byte:
		return validated(bson.Raw(v))
	}

	t := reflect.TypeOf(val)
	if (t.Kind() == reflect.Ptr || t.Kind() == reflect.Map || t.Kind() == reflect.Slice) && reflect.ValueOf(val).IsNil() {
		return emptyDocument, nil
	}
	if reg, ok := r.codecs[t]; ok {
		return reg.encode(r.bson, val)
	}

	b, err := bson.MarshalWithRegistry(r.bson, val)
	if err != nil {
		return nil, &EncodingError{Value: val, Err: err}
	}
	return b, nil
}

// EncodeAll encodes each value in order and stops at the first failure.
func (r *Registry) EncodeAll(vals []interface{}) ([]bson.Raw, error) {
	docs := make([]bson.Raw, 0, len(vals))
	for _, v := range vals {
		doc, err := r.Encode(v)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DecodeValue decodes a single BSON value with the registry's type map.
func (r *Registry) DecodeValue(rv bson.RawValue) (interface{}, error) {
	doc := bsoncore.BuildDocumentFromElements(nil,
		bsoncore.AppendValueElement(nil, "value", bsoncore.Value{Type: rv.Type, Data: rv.Value}))

	var holder struct {
		Value interface{} `bson:"value"`
	}
	if err := bson.UnmarshalWithRegistry(r.bson, doc, &holder); err != nil {
		return nil, err
	}
	return holder.Value, nil
}

func validated(raw bson.Raw) (bson.Raw, error) {
	if len(raw) == 0 {
		return emptyDocument, nil
	}
	if err := raw.Validate(); err != nil {
		return nil, &EncodingError{Value: raw, Err: err}
	}
	return raw, nil
}
