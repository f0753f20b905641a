// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// translator converts write models for documents of type T into canonical
// write requests.
type translator[T any] struct {
	reg   *codec.Registry
	codec codec.Codec[T]
}

func newTranslator[T any](reg *codec.Registry) translator[T] {
	return translator[T]{reg: reg, codec: codec.Lookup[T](reg)}
}

// translate returns one request per model, in input order. The documents of
// an InsertManyModel share a single request. Nothing is returned if any model
// fails.
func (t translator[T]) translate(models []WriteModel) ([]driver.WriteRequest, error) {
	requests := make([]driver.WriteRequest, 0, len(models))

	for i, model := range models {
		switch m := model.(type) {
		case *InsertOneModel[T]:
			req, err := t.insert(m.Document)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *InsertManyModel[T]:
			req, err := t.insert(m.Documents...)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *ReplaceOneModel[T]:
			req, err := t.replace(m.Filter, m.Replacement, m.Upsert)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *UpdateOneModel:
			req, err := t.update(m.Filter, m.Update, false, m.Upsert)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *UpdateManyModel:
			req, err := t.update(m.Filter, m.Update, true, m.Upsert)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *DeleteOneModel:
			req, err := t.delete(m.Filter, false)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		case *DeleteManyModel:
			req, err := t.delete(m.Filter, true)
			if err != nil {
				return nil, err
			}
			requests = append(requests, req)
		default:
			return nil, &UnsupportedWriteModelError{Index: i, Model: model}
		}
	}

	return requests, nil
}

// document gives doc an _id when the codec generates ids, then encodes it.
// Codec failures are reported as *EncodingError.
func (t translator[T]) document(doc T) (bson.Raw, error) {
	if isNil(doc) {
		return nil, ErrNilDocument
	}
	if gen, ok := codec.AsIDGenerator(t.codec); ok {
		withID, err := gen.GenerateIDIfAbsent(doc)
		if err != nil {
			return nil, &EncodingError{Value: doc, Err: err}
		}
		doc = withID
	}
	return codec.EncodeWith(t.codec, t.reg.BSONRegistry(), doc)
}

func (t translator[T]) insert(docs ...T) (driver.InsertRequest, error) {
	if len(docs) == 0 {
		return driver.InsertRequest{}, ErrEmptySlice
	}
	raws := make([]bson.Raw, 0, len(docs))
	for _, doc := range docs {
		raw, err := t.document(doc)
		if err != nil {
			return driver.InsertRequest{}, err
		}
		raws = append(raws, raw)
	}
	return driver.InsertRequest{Documents: raws}, nil
}

func (t translator[T]) replace(filter interface{}, replacement T, upsert *bool) (driver.UpdateRequest, error) {
	f, err := t.reg.Encode(filter)
	if err != nil {
		return driver.UpdateRequest{}, err
	}
	if isNil(replacement) {
		return driver.UpdateRequest{}, ErrNilDocument
	}
	r, err := codec.EncodeWith(t.codec, t.reg.BSONRegistry(), replacement)
	if err != nil {
		return driver.UpdateRequest{}, err
	}
	if err := ensureNoDollarKey(r); err != nil {
		return driver.UpdateRequest{}, err
	}

	return driver.UpdateRequest{
		Filter: f,
		Update: r,
		Type:   driver.UpdateTypeReplace,
		Upsert: upsert != nil && *upsert,
	}, nil
}

func (t translator[T]) update(filter, update interface{}, multi bool, upsert *bool) (driver.UpdateRequest, error) {
	f, err := t.reg.Encode(filter)
	if err != nil {
		return driver.UpdateRequest{}, err
	}
	if update == nil {
		return driver.UpdateRequest{}, ErrNilDocument
	}
	u, err := t.reg.Encode(update)
	if err != nil {
		return driver.UpdateRequest{}, err
	}
	if err := ensureDollarKey(u); err != nil {
		return driver.UpdateRequest{}, err
	}

	return driver.UpdateRequest{
		Filter: f,
		Update: u,
		Type:   driver.UpdateTypeUpdate,
		Multi:  multi,
		Upsert: upsert != nil && *upsert,
	}, nil
}

func (t translator[T]) delete(filter interface{}, multi bool) (driver.DeleteRequest, error) {
	f, err := t.reg.Encode(filter)
	if err != nil {
		return driver.DeleteRequest{}, err
	}
	return driver.DeleteRequest{Filter: f, Multi: multi}, nil
}

func ensureDollarKey(doc bson.Raw) error {
	firstElem, err := doc.IndexErr(0)
	if err != nil || !strings.HasPrefix(firstElem.Key(), "$") {
		return ErrNonDollarUpdate
	}
	return nil
}

func ensureNoDollarKey(doc bson.Raw) error {
	if firstElem, err := doc.IndexErr(0); err == nil && strings.HasPrefix(firstElem.Key(), "$") {
		return ErrDollarReplacement
	}
	return nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
