// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongoexec

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

func raw(t *testing.T, doc interface{}) bson.Raw {
	t.Helper()

	b, err := bson.Marshal(doc)
	require.NoError(t, err, "Marshal error")
	return b
}

func TestWriteModels(t *testing.T) {
	t.Parallel()

	doc := raw(t, bson.D{{"_id", 1}})
	filter := raw(t, bson.D{{"a", 1}})
	update := raw(t, bson.D{{"$set", bson.D{{"b", 2}}}})

	second := raw(t, bson.D{{"_id", 2}})

	got, requestIndex := writeModels([]driver.WriteRequest{
		driver.InsertRequest{Documents: []bson.Raw{doc, second}},
		driver.UpdateRequest{Filter: filter, Update: doc, Type: driver.UpdateTypeReplace, Upsert: true},
		driver.UpdateRequest{Filter: filter, Update: update, Type: driver.UpdateTypeUpdate},
		driver.UpdateRequest{Filter: filter, Update: update, Type: driver.UpdateTypeUpdate, Multi: true},
		driver.DeleteRequest{Filter: filter},
		driver.DeleteRequest{Filter: filter, Multi: true},
	})

	want := []mongo.WriteModel{
		mongo.NewInsertOneModel().SetDocument(doc),
		mongo.NewInsertOneModel().SetDocument(second),
		mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(doc).SetUpsert(true),
		mongo.NewUpdateOneModel().SetFilter(filter).SetUpdate(update).SetUpsert(false),
		mongo.NewUpdateManyModel().SetFilter(filter).SetUpdate(update).SetUpsert(false),
		mongo.NewDeleteOneModel().SetFilter(filter),
		mongo.NewDeleteManyModel().SetFilter(filter),
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []int64{0, 0, 1, 2, 3, 4, 5}, requestIndex)
}

func TestWriteConcernResult(t *testing.T) {
	t.Parallel()

	res := &mongo.BulkWriteResult{
		InsertedCount: 2,
		MatchedCount:  0,
		DeletedCount:  3,
		UpsertedCount: 1,
		UpsertedIDs:   map[int64]interface{}{0: "id"},
	}
	failure := errors.New("write failed")

	testCases := []struct {
		name    string
		op      driver.Operation
		res     *mongo.BulkWriteResult
		err     error
		want    interface{}
		wantErr error
	}{
		{
			name: "insert",
			op:   &operation.Insert{},
			res:  res,
			want: driver.WriteConcernResult{Acknowledged: true, Count: 2},
		},
		{
			name: "upsert",
			op:   &operation.Update{},
			res:  res,
			want: driver.WriteConcernResult{Acknowledged: true, Count: 1, UpsertedID: "id"},
		},
		{
			name: "update of existing",
			op:   &operation.Update{},
			res:  &mongo.BulkWriteResult{MatchedCount: 4, ModifiedCount: 2},
			want: driver.WriteConcernResult{Acknowledged: true, Count: 4, UpdateOfExisting: true},
		},
		{
			name: "delete",
			op:   &operation.Delete{},
			res:  res,
			want: driver.WriteConcernResult{Acknowledged: true, Count: 3},
		},
		{
			name: "unacknowledged",
			op:   &operation.Delete{},
			res:  &mongo.BulkWriteResult{},
			err:  mongo.ErrUnacknowledgedWrite,
			want: driver.WriteConcernResult{},
		},
		{
			name:    "error",
			op:      &operation.Insert{},
			err:     failure,
			wantErr: failure,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := writeConcernResult(tc.op, tc.res, tc.err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBulkWriteResult(t *testing.T) {
	t.Parallel()

	t.Run("upserts ordered by index", func(t *testing.T) {
		t.Parallel()

		got, err := bulkWriteResult(&mongo.BulkWriteResult{
			InsertedCount: 1,
			MatchedCount:  2,
			ModifiedCount: 1,
			DeletedCount:  3,
			UpsertedIDs:   map[int64]interface{}{5: "b", 2: "a", 7: "c"},
		}, nil, []int64{0, 1, 2, 3, 4, 5, 6, 7})
		require.NoError(t, err)

		modified := int64(1)
		want := driver.BulkWriteResult{
			Acknowledged:  true,
			InsertedCount: 1,
			MatchedCount:  2,
			DeletedCount:  3,
			ModifiedCount: &modified,
			Upserts: []driver.BulkWriteUpsert{
				{Index: 2, ID: "a"},
				{Index: 5, ID: "b"},
				{Index: 7, ID: "c"},
			},
		}
		assert.Equal(t, want, got)
	})
	t.Run("upserts keyed by request", func(t *testing.T) {
		t.Parallel()

		_, requestIndex := writeModels([]driver.WriteRequest{
			driver.InsertRequest{Documents: []bson.Raw{raw(t, bson.D{{"_id", 1}}), raw(t, bson.D{{"_id", 2}})}},
			driver.UpdateRequest{Type: driver.UpdateTypeUpdate, Upsert: true},
		})
		got, err := bulkWriteResult(&mongo.BulkWriteResult{
			InsertedCount: 2,
			UpsertedCount: 1,
			UpsertedIDs:   map[int64]interface{}{2: "u"},
		}, nil, requestIndex)
		require.NoError(t, err)

		bwr := got.(driver.BulkWriteResult)
		assert.Equal(t, []driver.BulkWriteUpsert{{Index: 1, ID: "u"}}, bwr.Upserts)
	})
	t.Run("write errors keyed by request", func(t *testing.T) {
		t.Parallel()

		_, requestIndex := writeModels([]driver.WriteRequest{
			driver.InsertRequest{Documents: []bson.Raw{raw(t, bson.D{{"_id", 1}}), raw(t, bson.D{{"_id", 1}})}},
			driver.DeleteRequest{},
		})
		bwe := mongo.BulkWriteException{WriteErrors: []mongo.BulkWriteError{
			{WriteError: mongo.WriteError{Index: 1, Code: 11000}},
		}}
		_, err := bulkWriteResult(nil, bwe, requestIndex)

		var got mongo.BulkWriteException
		require.ErrorAs(t, err, &got)
		require.Len(t, got.WriteErrors, 1)
		assert.Equal(t, 0, got.WriteErrors[0].Index)
		assert.Equal(t, 1, bwe.WriteErrors[0].Index, "the original exception is not modified")
	})
	t.Run("unacknowledged", func(t *testing.T) {
		t.Parallel()

		got, err := bulkWriteResult(&mongo.BulkWriteResult{}, mongo.ErrUnacknowledgedWrite, nil)
		require.NoError(t, err)
		assert.Equal(t, driver.BulkWriteResult{}, got)
	})
}

func TestWriteConcernDocument(t *testing.T) {
	t.Parallel()

	journal := true
	testCases := []struct {
		name string
		wc   *writeconcern.WriteConcern
		want bson.D
	}{
		{"nil", nil, nil},
		{"empty", &writeconcern.WriteConcern{}, nil},
		{"w", &writeconcern.WriteConcern{W: "majority"}, bson.D{{"w", "majority"}}},
		{
			"all",
			&writeconcern.WriteConcern{W: 2, Journal: &journal, WTimeout: 1500 * time.Millisecond},
			bson.D{{"w", 2}, {"j", true}, {"wtimeout", int64(1500)}},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, writeConcernDocument(tc.wc))
		})
	}
}

func TestOperationOptions(t *testing.T) {
	t.Parallel()

	sort := raw(t, bson.D{{"a", 1}})

	t.Run("find leaves zero values unset", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, options.Find(), findOptions(&operation.Find{}))
	})
	t.Run("find", func(t *testing.T) {
		t.Parallel()

		got := findOptions(&operation.Find{Sort: sort, Skip: 2, Limit: -1, BatchSize: 10, MaxTime: time.Second})
		want := options.Find().SetSort(sort).SetSkip(2).SetLimit(-1).SetBatchSize(10).SetMaxTime(time.Second)
		assert.Equal(t, want, got)
	})
	t.Run("count", func(t *testing.T) {
		t.Parallel()

		got := countOptions(&operation.Count{Skip: 1, Limit: 3, Hint: "a_1"})
		assert.Equal(t, options.Count().SetSkip(1).SetLimit(3).SetHint("a_1"), got)
	})
	t.Run("aggregate", func(t *testing.T) {
		t.Parallel()

		allow, batch := true, int32(5)
		got := aggregateOptions(&operation.Aggregate{AllowDiskUse: &allow, BatchSize: &batch})
		assert.Equal(t, options.Aggregate().SetAllowDiskUse(true).SetBatchSize(5), got)
	})
	t.Run("find and update returns the new document", func(t *testing.T) {
		t.Parallel()

		got := findOneAndUpdateOptions(&operation.FindAndUpdate{Upsert: true, Sort: sort})
		want := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(true).SetSort(sort)
		assert.Equal(t, want, got)
	})
	t.Run("find and replace returns the original", func(t *testing.T) {
		t.Parallel()

		got := findOneAndReplaceOptions(&operation.FindAndReplace{ReturnOriginal: true})
		want := options.FindOneAndReplace().SetReturnDocument(options.Before).SetUpsert(false)
		assert.Equal(t, want, got)
	})
	t.Run("index", func(t *testing.T) {
		t.Parallel()

		ttl, bucket := int32(60), 2.0
		got := indexOptions(&operation.CreateIndex{
			IndexName:          "a_1",
			Unique:             true,
			ExpireAfterSeconds: &ttl,
			BucketSize:         &bucket,
		})
		want := options.Index().SetName("a_1").SetUnique(true).SetExpireAfterSeconds(60).SetBucketSize(2)
		assert.Equal(t, want, got)
	})
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	stage := raw(t, bson.D{{"$match", bson.D{}}})
	assert.Equal(t, bson.A{stage}, pipeline([]bson.Raw{stage}))
	assert.Equal(t, bson.A{}, pipeline(nil))
}
