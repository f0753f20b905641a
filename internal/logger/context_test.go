// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationContext(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		_, ok := OperationName(context.Background())
		assert.False(t, ok, "OperationName reported a name")
		_, ok = OperationID(context.Background())
		assert.False(t, ok, "OperationID reported an id")
	})
	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		ctx := WithOperationID(WithOperationName(context.Background(), "replaceOne"), 7)

		name, ok := OperationName(ctx)
		assert.True(t, ok)
		assert.Equal(t, "replaceOne", name)

		id, ok := OperationID(ctx)
		assert.True(t, ok)
		assert.Equal(t, int32(7), id)
	})
	t.Run("innermost wins", func(t *testing.T) {
		t.Parallel()

		ctx := WithOperationName(WithOperationName(context.Background(), "bulkWrite"), "insertOne")
		name, _ := OperationName(ctx)
		assert.Equal(t, "insertOne", name)
	})
	t.Run("foreign value types", func(t *testing.T) {
		t.Parallel()

		ctx := context.WithValue(context.Background(), contextKeyOperationName, 1)
		ctx = context.WithValue(ctx, contextKeyOperationID, int64(1))

		_, ok := OperationName(ctx)
		assert.False(t, ok)
		_, ok = OperationID(ctx)
		assert.False(t, ok)
	})
}
