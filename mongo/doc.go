// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package mongo provides an asynchronous collection API.
//
// A Collection translates each call into operation descriptors, hands them to
// a driver.Executor and returns immediately with a future of the reshaped
// result:
//
//	coll, err := mongo.NewCollection[bson.M](exec, driver.Namespace{DB: "db", Collection: "people"})
//	if err != nil { return err }
//	res, err := coll.UpdateOne(ctx, bson.D{{"_id", 5}}, bson.D{{"$set", bson.D{{"a", 1}}}}).Get(ctx)
//
// Writes are described by WriteModel values. BulkWrite accepts any mix of the
// seven models in this package and dispatches them as a single ordered or
// unordered batch. Documents inserted through a collection whose codec
// implements codec.IDGenerator receive an _id before they are encoded.
//
// Errors raised while encoding arguments or translating write models are
// returned through an already failed future and nothing is dispatched. Errors
// reported by the executor are returned unchanged, except that failures to
// decode a result are wrapped in a *DecodeError.
package mongo // import "github.com/ikmak/mongoasync/mongo"
