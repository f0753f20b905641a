// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"bytes"
	"errors"
	"fmt"
)

// DomainError is implemented by errors that report a failure decided by the
// server rather than by the client. The official driver's CommandError,
// WriteException and BulkWriteException satisfy it, as do Error and WriteError.
type DomainError interface {
	error
	HasErrorCode(int) bool
}

// IsDomainError reports whether any error in err's chain is a DomainError.
func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

// Error is a command error returned by the server.
type Error struct {
	Code    int32
	Message string
	Labels  []string
	Name    string
	Wrapped error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("(%v) %v", e.Name, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an Error with the same code.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// HasErrorCode returns true if the error has the specified code.
func (e Error) HasErrorCode(code int) bool {
	return int(e.Code) == code
}

// HasErrorLabel returns true if the error contains the specified label.
func (e Error) HasErrorLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// WriteError is a non-write concern failure that occurred as a result of a write
// operation.
type WriteError struct {
	Index   int64
	Code    int64
	Message string
}

func (we WriteError) Error() string { return we.Message }

// Is reports whether target is a WriteError with the same code.
func (we WriteError) Is(target error) bool {
	var t WriteError
	if !errors.As(target, &t) {
		return false
	}
	return we.Code == t.Code
}

// HasErrorCode returns true if the error has the specified code.
func (we WriteError) HasErrorCode(code int) bool {
	return we.Code == int64(code)
}

// WriteErrors is a group of non-write concern failures that occurred as a result
// of a write operation.
type WriteErrors []WriteError

func (we WriteErrors) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "write errors: [")
	for idx, err := range we {
		if idx != 0 {
			fmt.Fprintf(&buf, ", ")
		}
		fmt.Fprintf(&buf, "{%s}", err)
	}
	fmt.Fprint(&buf, "]")
	return buf.String()
}

// HasErrorCode returns true if any of the errors has the specified code.
func (we WriteErrors) HasErrorCode(code int) bool {
	for _, e := range we {
		if e.HasErrorCode(code) {
			return true
		}
	}
	return false
}
