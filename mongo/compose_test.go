// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

func TestWriteResultComposition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	modified := int64(9)

	testCases := []struct {
		name string
		res  driver.WriteConcernResult
		want string
	}{
		{"acknowledged", driver.WriteConcernResult{Acknowledged: true, Count: 2, UpsertedID: "id"}, "UpdateResult{matchedCount: 2, modifiedCount: unknown, upsertedID: id}"},
		{"unacknowledged ignores counts", driver.WriteConcernResult{Count: 2, UpsertedID: "id"}, "UpdateResult{unacknowledged}"},
		{"unacknowledged zero value", driver.WriteConcernResult{}, "UpdateResult{unacknowledged}"},
	}
	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			res, err := toUpdateResult(future.Resolved(tc.res)).Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.want, res.String())

			del, err := toDeleteResult(future.Resolved(tc.res)).Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tc.res.Acknowledged, del.Acknowledged())
		})
	}

	t.Run("acknowledged delete of zero documents", func(t *testing.T) {
		t.Parallel()

		del, err := toDeleteResult(future.Resolved(driver.WriteConcernResult{Acknowledged: true})).Get(ctx)
		require.NoError(t, err)
		n, err := del.DeletedCount()
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.NotEqual(t, UnacknowledgedDelete(), del)
	})

	t.Run("known modified count", func(t *testing.T) {
		t.Parallel()

		n, err := AcknowledgedUpdate(10, &modified, nil).ModifiedCount()
		require.NoError(t, err)
		assert.Equal(t, modified, n)
	})

	t.Run("unacknowledged bulk write", func(t *testing.T) {
		t.Parallel()

		res, err := toBulkWriteResult(future.Resolved(driver.BulkWriteResult{InsertedCount: 4, ModifiedCount: &modified})).Get(ctx)
		require.NoError(t, err)
		assert.False(t, res.Acknowledged())
		_, err = res.ModifiedCount()
		assert.ErrorIs(t, err, ErrUnacknowledgedWrite)
		ids, err := res.UpsertedIDs()
		assert.Nil(t, ids)
		assert.ErrorIs(t, err, ErrUnacknowledgedWrite)
	})

	t.Run("errors are forwarded unchanged", func(t *testing.T) {
		t.Parallel()

		backendErr := errors.New("network")
		_, err := toUpdateResult(future.Failed[driver.WriteConcernResult](backendErr)).Get(ctx)
		assert.Same(t, backendErr, err)
		_, err = toInsertManyResult(future.Failed[driver.WriteConcernResult](backendErr), nil).Get(ctx)
		assert.Same(t, backendErr, err)
	})
}

func TestDecodeDocuments(t *testing.T) {
	t.Parallel()

	docs := []bson.Raw{
		mustMarshal(t, bson.D{{"a", int32(1)}}),
		mustMarshal(t, bson.D{{"a", "not a number"}}),
	}

	type target struct {
		A int32 `bson:"a"`
	}
	got, err := decodeDocuments[target](codec.DefaultRegistry, docs)
	assert.Nil(t, got)

	var de *DecodeError
	require.True(t, errors.As(err, &de), "expected a DecodeError, got %v", err)
	assert.Equal(t, 1, de.Index)

	ms, err := decodeDocuments[bson.M](codec.DefaultRegistry, docs[:1])
	require.NoError(t, err)
	assert.Equal(t, []bson.M{{"a": int32(1)}}, ms)
}

func TestDecodeSingle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := decodeSingle[bson.D](codec.DefaultRegistry, future.Resolved[bson.Raw](nil)).Get(ctx)
	assert.ErrorIs(t, err, ErrNoDocuments)

	got, err := decodeSingle[bson.D](codec.DefaultRegistry, future.Resolved(mustMarshal(t, bson.D{{"k", "v"}}))).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{"k", "v"}}, got)
}
