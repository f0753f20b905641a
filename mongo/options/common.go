// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package options defines the optional configurations for the collection
// facade's operations. Each option type has a constructor, fluent Set* methods
// and a Merge function that combines several values in a last-one-wins
// fashion. Passing no options to an operation is equivalent to passing the
// value returned by the constructor.
package options // import "github.com/ikmak/mongoasync/mongo/options"

// ReturnDocument specifies whether a findAndModify operation should return the
// document as it was before the modification or as it is after it.
type ReturnDocument int8

const (
	// Before specifies that findAndModify should return the document as it was before the modification.
	Before ReturnDocument = iota
	// After specifies that findAndModify should return the document as it is after the modification.
	After
)

// MapReduceAction specifies how the output of a map-reduce is written to an
// existing output collection.
type MapReduceAction string

const (
	// MapReduceReplace replaces the content of the output collection.
	MapReduceReplace MapReduceAction = "replace"
	// MapReduceMerge merges the new result with the existing result, overwriting documents with the same key.
	MapReduceMerge MapReduceAction = "merge"
	// MapReduceReduce merges the new result with the existing result, reducing documents with the same key.
	MapReduceReduce MapReduceAction = "reduce"
)
