// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package codec

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNilDocument is returned when a nil document is supplied where one is required.
var ErrNilDocument = errors.New("document is nil")

// EncodingError is returned when a value cannot be converted to a BSON document.
type EncodingError struct {
	Value interface{}
	Err   error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode type %q to a BSON document: %v", reflect.TypeOf(e.Value), e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodingError) Unwrap() error { return e.Err }

// asEncodingError returns err as an *EncodingError for val, keeping an
// *EncodingError already in its chain.
func asEncodingError(val interface{}, err error) error {
	if err == nil {
		return nil
	}
	var ee *EncodingError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodingError{Value: val, Err: err}
}
