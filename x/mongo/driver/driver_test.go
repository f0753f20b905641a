// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/future"
)

type namedOp string

func (o namedOp) Name() string         { return string(o) }
func (o namedOp) Namespace() Namespace { return Namespace{DB: "db", Collection: "coll"} }

func TestExpect(t *testing.T) {
	t.Parallel()

	op := namedOp("count")

	t.Run("matching type", func(t *testing.T) {
		t.Parallel()

		n, err := Expect[int64](op, future.Resolved[interface{}](int64(3))).Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})

	t.Run("nil is zero value", func(t *testing.T) {
		t.Parallel()

		res, err := Expect[*BulkWriteResult](op, future.Resolved[interface{}](nil)).Get(context.Background())
		require.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("nil for a value type", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			get  func() error
			want string
		}{
			{"write concern result", func() error {
				_, err := Expect[WriteConcernResult](op, future.Resolved[interface{}](nil)).Get(context.Background())
				return err
			}, "driver.WriteConcernResult"},
			{"bulk write result", func() error {
				_, err := Expect[BulkWriteResult](op, future.Resolved[interface{}](nil)).Get(context.Background())
				return err
			}, "driver.BulkWriteResult"},
			{"count", func() error {
				_, err := Expect[int64](op, future.Resolved[interface{}](nil)).Get(context.Background())
				return err
			}, "int64"},
		}
		for _, tc := range testCases {
			var typeErr *ResultTypeError
			require.ErrorAs(t, tc.get(), &typeErr, tc.name)
			assert.Equal(t, tc.want, typeErr.Want, tc.name)
			assert.Nil(t, typeErr.Got, tc.name)
		}
	})

	t.Run("nil document", func(t *testing.T) {
		t.Parallel()

		doc, err := Expect[bson.Raw](op, future.Resolved[interface{}](nil)).Get(context.Background())
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()

		_, err := Expect[int64](op, future.Resolved[interface{}]("three")).Get(context.Background())
		var typeErr *ResultTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "count", typeErr.Operation)
		assert.Equal(t, "int64", typeErr.Want)
		assert.Equal(t, "three", typeErr.Got)
	})

	t.Run("error forwarded", func(t *testing.T) {
		t.Parallel()

		want := Error{Code: 11000, Message: "duplicate key"}
		_, err := Expect[int64](op, future.Failed[interface{}](want)).Get(context.Background())
		assert.Equal(t, want, err)
	})
}
