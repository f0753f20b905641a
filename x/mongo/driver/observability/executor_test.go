// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/drivertest"
	"github.com/ikmak/mongoasync/x/mongo/driver/operation"
)

// registerViews registers AllViews for the duration of the test. Views are
// global, so tests using it must not run in parallel.
func registerViews(t *testing.T) {
	t.Helper()

	require.NoError(t, view.Register(AllViews...))
	t.Cleanup(func() { view.Unregister(AllViews...) })
}

func rowsByTag(t *testing.T, name string, key tag.Key) map[string]view.AggregationData {
	t.Helper()

	rows, err := view.RetrieveData(name)
	require.NoError(t, err, "RetrieveData(%q)", name)

	byTag := make(map[string]view.AggregationData, len(rows))
	for _, row := range rows {
		for _, tg := range row.Tags {
			if tg.Key == key {
				byTag[tg.Value] = row.Data
			}
		}
		if key == (tag.Key{}) {
			byTag[""] = row.Data
		}
	}
	return byTag
}

func TestExecutorRecordsCallsAndErrors(t *testing.T) {
	registerViews(t)

	ns := driver.Namespace{DB: "db", Collection: "coll"}
	failure := errors.New("boom")
	rec := &drivertest.RecordingExecutor{Reply: func(op driver.Operation) (interface{}, error) {
		if _, ok := op.(*operation.Delete); ok {
			return nil, failure
		}
		return int64(1), nil
	}}
	exec := NewExecutor(rec)
	ctx := context.Background()

	_, err := exec.Execute(ctx, &operation.Count{NS: ns}, readpref.Primary()).Get(ctx)
	require.NoError(t, err)
	_, err = exec.Execute(ctx, &operation.Count{NS: ns}, readpref.Primary()).Get(ctx)
	require.NoError(t, err)
	_, err = exec.Execute(ctx, &operation.Delete{NS: ns, Requests: []driver.DeleteRequest{{}, {}}}, nil).Get(ctx)
	assert.ErrorIs(t, err, failure)

	require.Len(t, rec.Calls(), 3, "every operation must reach the wrapped executor")

	calls := rowsByTag(t, "mongoasync/client/calls", KeyMethod)
	require.Contains(t, calls, "count")
	assert.Equal(t, int64(2), calls["count"].(*view.CountData).Value)
	assert.Equal(t, int64(1), calls["delete"].(*view.CountData).Value)

	errs := rowsByTag(t, "mongoasync/client/errors", KeyMethod)
	assert.NotContains(t, errs, "count")
	require.Contains(t, errs, "delete")
	assert.Equal(t, int64(1), errs["delete"].(*view.CountData).Value)

	deletions := rowsByTag(t, "mongoasync/client/deletions", tag.Key{})
	assert.Equal(t, float64(2), deletions[""].(*view.SumData).Value)

	reads := rowsByTag(t, "mongoasync/client/reads", tag.Key{})
	assert.Equal(t, int64(2), reads[""].(*view.CountData).Value)
}

func TestExecutorPendingOperations(t *testing.T) {
	registerViews(t)

	rec := &drivertest.RecordingExecutor{}
	exec := NewExecutor(rec)
	ns := driver.Namespace{DB: "db", Collection: "coll"}

	f := exec.Execute(context.Background(), &operation.MixedBulkWrite{NS: ns, Requests: []driver.WriteRequest{
		driver.InsertRequest{Documents: []bson.Raw{{}, {}, {}}},
		driver.UpdateRequest{Type: driver.UpdateTypeReplace},
		driver.UpdateRequest{Type: driver.UpdateTypeUpdate},
		driver.UpdateRequest{Type: driver.UpdateTypeUpdate},
	}}, nil)
	assert.False(t, f.IsDone())

	inFlight := rowsByTag(t, "mongoasync/client/in_flight", tag.Key{})
	assert.Equal(t, float64(1), inFlight[""].(*view.SumData).Value)
	assert.Empty(t, rowsByTag(t, "mongoasync/client/calls", KeyMethod), "calls are recorded on completion")

	require.True(t, rec.Complete(0, driver.BulkWriteResult{Acknowledged: true}, nil))
	inFlight = rowsByTag(t, "mongoasync/client/in_flight", tag.Key{})
	assert.Equal(t, float64(0), inFlight[""].(*view.SumData).Value)

	updates := rowsByTag(t, "mongoasync/client/updates", tag.Key{})
	assert.Equal(t, float64(2), updates[""].(*view.SumData).Value)
	replaces := rowsByTag(t, "mongoasync/client/replaces", tag.Key{})
	assert.Equal(t, float64(1), replaces[""].(*view.SumData).Value)
	insertions := rowsByTag(t, "mongoasync/client/insertions", tag.Key{})
	assert.Equal(t, float64(3), insertions[""].(*view.SumData).Value, "insertions count documents, not requests")
}
