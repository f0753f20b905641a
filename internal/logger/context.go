// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import "context"

type contextKey string

const (
	contextKeyOperationName contextKey = "operation-name"
	contextKeyOperationID   contextKey = "operation-id"
)

// WithOperationName returns a context carrying the name of the facade
// operation, e.g. "replaceOne", that caused a backend operation.
func WithOperationName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKeyOperationName, name)
}

// OperationName returns the facade operation name carried by ctx.
func OperationName(ctx context.Context) (string, bool) {
	name := ctx.Value(contextKeyOperationName)
	if name == nil {
		return "", false
	}
	str, ok := name.(string)
	return str, ok
}

// WithOperationID returns a context carrying an identifier that correlates the
// log messages of a single facade call.
func WithOperationID(ctx context.Context, id int32) context.Context {
	return context.WithValue(ctx, contextKeyOperationID, id)
}

// OperationID returns the operation identifier carried by ctx.
func OperationID(ctx context.Context) (int32, bool) {
	id := ctx.Value(contextKeyOperationID)
	if id == nil {
		return 0, false
	}
	i32, ok := id.(int32)
	return i32, ok
}
