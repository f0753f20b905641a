// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"errors"
	"fmt"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// ErrUnacknowledgedWrite is returned by operations that have an unacknowledged write concern.
var ErrUnacknowledgedWrite = errors.New("unacknowledged write")

// ErrModifiedCountUnknown is returned when the executor did not report the
// number of modified documents.
var ErrModifiedCountUnknown = errors.New("modified count is not available")

// ErrNoDocuments is returned by FindOne and the FindOneAnd* operations when
// no document matched the filter.
var ErrNoDocuments = errors.New("mongo: no documents in result")

// ErrEmptySlice is returned when an empty slice is passed to a bulk write or
// insert many operation.
var ErrEmptySlice = errors.New("must provide at least one element in input slice")

// ErrNilDocument is returned when a nil document is passed to a CRUD method.
var ErrNilDocument = codec.ErrNilDocument

// ErrNonDollarUpdate is returned when an update document does not start with
// an update operator.
var ErrNonDollarUpdate = errors.New("update document must contain key beginning with '$'")

// ErrDollarReplacement is returned when a replacement document starts with an
// update operator.
var ErrDollarReplacement = errors.New("replacement document cannot contain keys beginning with '$'")

// ErrInvalidIndexValue is returned if an index is created with a keys document that has a value that is not a number
// or string.
var ErrInvalidIndexValue = errors.New("invalid index value")

// ErrUnsupportedWriteModel is matched by every *UnsupportedWriteModelError.
var ErrUnsupportedWriteModel = errors.New("unsupported write model")

// EncodingError is returned when a filter, update, pipeline or document cannot
// be encoded.
type EncodingError = codec.EncodingError

// DomainError is implemented by errors the server decided on. They are never
// wrapped in a DecodeError.
type DomainError = driver.DomainError

// UnsupportedWriteModelError is returned by BulkWrite for a model of a type the
// collection cannot translate. That includes nil models and insert or replace
// models built for a different document type.
type UnsupportedWriteModelError struct {
	Index int
	Model WriteModel
}

// Error implements the error interface.
func (e *UnsupportedWriteModelError) Error() string {
	return fmt.Sprintf("%v: model %d has type %T", ErrUnsupportedWriteModel, e.Index, e.Model)
}

// Is reports whether target is ErrUnsupportedWriteModel.
func (e *UnsupportedWriteModelError) Is(target error) bool {
	return target == ErrUnsupportedWriteModel
}

// DecodeError is returned when a value returned by the executor cannot be
// decoded. Index is the position of the value in the result.
type DecodeError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode result value %d: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error { return e.Err }

// decodeFailure wraps err in a DecodeError unless the error came from the
// server.
func decodeFailure(index int, err error) error {
	if driver.IsDomainError(err) {
		return err
	}
	return &DecodeError{Index: index, Err: err}
}
