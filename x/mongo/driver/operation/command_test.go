// Copyright (C) MongoDB, Inc. 2019-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package operation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ikmak/mongoasync/x/mongo/driver"
)

var testNS = driver.Namespace{DB: "db", Collection: "coll"}

func mustRaw(t *testing.T, v interface{}) bson.Raw {
	t.Helper()

	b, err := bson.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestCommands(t *testing.T) {
	t.Parallel()

	filter := mustRaw(t, bson.D{{"x", 1}})

	testCases := []struct {
		name string
		cmd  bson.D
		want bson.D
	}{
		{
			"distinct without filter",
			(&Distinct{NS: testNS, FieldName: "a"}).Command(),
			bson.D{{"distinct", "coll"}, {"key", "a"}},
		},
		{
			"distinct with filter and max time",
			(&Distinct{NS: testNS, FieldName: "a", Filter: filter, MaxTime: 2 * time.Second}).Command(),
			bson.D{{"distinct", "coll"}, {"key", "a"}, {"query", filter}, {"maxTimeMS", int64(2000)}},
		},
		{
			"inline map-reduce",
			(&MapReduce{NS: testNS, MapFunction: "m", ReduceFunction: "r", Limit: 5, Verbose: true}).Command(),
			bson.D{
				{"mapReduce", "coll"},
				{"map", primitive.JavaScript("m")},
				{"reduce", primitive.JavaScript("r")},
				{"limit", int64(5)},
				{"verbose", true},
				{"out", bson.D{{"inline", 1}}},
			},
		},
		{
			"map-reduce to collection defaults to replace",
			(&MapReduceToCollection{
				NS: testNS, MapFunction: "m", ReduceFunction: "r", FinalizeFunction: "f",
				CollectionName: "out", DatabaseName: "other", Sharded: true,
			}).Command(),
			bson.D{
				{"mapReduce", "coll"},
				{"map", primitive.JavaScript("m")},
				{"reduce", primitive.JavaScript("r")},
				{"finalize", primitive.JavaScript("f")},
				{"out", bson.D{{"replace", "out"}, {"db", "other"}, {"sharded", true}}},
			},
		},
		{
			"map-reduce merge",
			(&MapReduceToCollection{
				NS: testNS, MapFunction: "m", ReduceFunction: "r",
				CollectionName: "out", Action: MapReduceActionMerge, NonAtomic: true,
			}).Command(),
			bson.D{
				{"mapReduce", "coll"},
				{"map", primitive.JavaScript("m")},
				{"reduce", primitive.JavaScript("r")},
				{"out", bson.D{{"merge", "out"}, {"nonAtomic", true}}},
			},
		},
		{
			"rename",
			(&RenameCollection{NS: testNS, To: driver.Namespace{DB: "db", Collection: "new"}, DropTarget: true}).Command(),
			bson.D{{"renameCollection", "db.coll"}, {"to", "db.new"}, {"dropTarget", true}},
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tc.want, tc.cmd); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapReduceOutputNamespace(t *testing.T) {
	t.Parallel()

	mr := &MapReduceToCollection{NS: testNS, CollectionName: "out"}
	require.Equal(t, driver.Namespace{DB: "db", Collection: "out"}, mr.OutputNamespace())

	mr.DatabaseName = "reports"
	require.Equal(t, driver.Namespace{DB: "reports", Collection: "out"}, mr.OutputNamespace())
}

func TestOperationNames(t *testing.T) {
	t.Parallel()

	ops := []driver.Operation{
		&Count{NS: testNS}, &Distinct{NS: testNS}, &Find{NS: testNS}, &Aggregate{NS: testNS},
		&MapReduce{NS: testNS}, &ListIndexes{NS: testNS}, &Insert{NS: testNS}, &Update{NS: testNS},
		&Delete{NS: testNS}, &MixedBulkWrite{NS: testNS}, &AggregateToCollection{NS: testNS},
		&MapReduceToCollection{NS: testNS}, &FindAndDelete{NS: testNS}, &FindAndReplace{NS: testNS},
		&FindAndUpdate{NS: testNS}, &CreateIndex{NS: testNS}, &DropIndex{NS: testNS},
		&DropCollection{NS: testNS}, &RenameCollection{NS: testNS},
	}
	for _, op := range ops {
		require.NotEmpty(t, op.Name(), "%T", op)
		require.Equal(t, testNS, op.Namespace(), "%T", op)
	}
}
