// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import "time"

// MapReduceOptions represents options that can be used to configure a MapReduce operation.
type MapReduceOptions struct {
	// A document specifying which documents are input to the map function.
	Filter interface{}

	// A JavaScript function that follows the reduce function and modifies its output.
	Finalize *string

	// If true, intermediate data is not converted to BSON between the map and reduce functions. The default value is
	// false.
	JSMode *bool

	// The maximum number of documents input to the map function. The default value is 0, which means no limit.
	Limit *int64

	// The maximum amount of time that the operation can run on the server. The default value is nil, meaning that
	// there is no time limit.
	MaxTime *time.Duration

	// A document of global variables accessible in the map, reduce and finalize functions.
	Scope interface{}

	// A document specifying the order of the input documents.
	Sort interface{}

	// If true, timing information is included in the server's result. The default value is false.
	Verbose *bool

	// The collection the output is written to. The default value is nil, which means the output is returned inline.
	// When set, the operation is dispatched without waiting for it and the result is read back from this collection.
	OutputCollection *string

	// The database of the output collection. The default value is nil, which means the database of the input
	// collection.
	OutputDatabase *string

	// How the output is written to an existing output collection. The default value is MapReduceReplace.
	Action *MapReduceAction

	// If true, the output collection is not locked while the output is written. Only valid with the merge and reduce
	// actions.
	NonAtomic *bool

	// If true, the output collection is sharded by _id.
	Sharded *bool
}

// MapReduce creates a new MapReduceOptions instance.
func MapReduce() *MapReduceOptions {
	return &MapReduceOptions{}
}

// SetFilter sets the value for the Filter field.
func (mr *MapReduceOptions) SetFilter(filter interface{}) *MapReduceOptions {
	mr.Filter = filter
	return mr
}

// SetFinalize sets the value for the Finalize field.
func (mr *MapReduceOptions) SetFinalize(fn string) *MapReduceOptions {
	mr.Finalize = &fn
	return mr
}

// SetJSMode sets the value for the JSMode field.
func (mr *MapReduceOptions) SetJSMode(b bool) *MapReduceOptions {
	mr.JSMode = &b
	return mr
}

// SetLimit sets the value for the Limit field.
func (mr *MapReduceOptions) SetLimit(i int64) *MapReduceOptions {
	mr.Limit = &i
	return mr
}

// SetMaxTime sets the value for the MaxTime field.
func (mr *MapReduceOptions) SetMaxTime(d time.Duration) *MapReduceOptions {
	mr.MaxTime = &d
	return mr
}

// SetScope sets the value for the Scope field.
func (mr *MapReduceOptions) SetScope(scope interface{}) *MapReduceOptions {
	mr.Scope = scope
	return mr
}

// SetSort sets the value for the Sort field.
func (mr *MapReduceOptions) SetSort(sort interface{}) *MapReduceOptions {
	mr.Sort = sort
	return mr
}

// SetVerbose sets the value for the Verbose field.
func (mr *MapReduceOptions) SetVerbose(b bool) *MapReduceOptions {
	mr.Verbose = &b
	return mr
}

// SetOutputCollection sets the value for the OutputCollection field.
func (mr *MapReduceOptions) SetOutputCollection(coll string) *MapReduceOptions {
	mr.OutputCollection = &coll
	return mr
}

// SetOutputDatabase sets the value for the OutputDatabase field.
func (mr *MapReduceOptions) SetOutputDatabase(db string) *MapReduceOptions {
	mr.OutputDatabase = &db
	return mr
}

// SetAction sets the value for the Action field.
func (mr *MapReduceOptions) SetAction(action MapReduceAction) *MapReduceOptions {
	mr.Action = &action
	return mr
}

// SetNonAtomic sets the value for the NonAtomic field.
func (mr *MapReduceOptions) SetNonAtomic(b bool) *MapReduceOptions {
	mr.NonAtomic = &b
	return mr
}

// SetSharded sets the value for the Sharded field.
func (mr *MapReduceOptions) SetSharded(b bool) *MapReduceOptions {
	mr.Sharded = &b
	return mr
}

// MergeMapReduceOptions combines the given MapReduceOptions instances into a single MapReduceOptions in a
// last-one-wins fashion.
func MergeMapReduceOptions(opts ...*MapReduceOptions) *MapReduceOptions {
	mrOpts := MapReduce()
	for _, mr := range opts {
		if mr == nil {
			continue
		}
		if mr.Filter != nil {
			mrOpts.Filter = mr.Filter
		}
		if mr.Finalize != nil {
			mrOpts.Finalize = mr.Finalize
		}
		if mr.JSMode != nil {
			mrOpts.JSMode = mr.JSMode
		}
		if mr.Limit != nil {
			mrOpts.Limit = mr.Limit
		}
		if mr.MaxTime != nil {
			mrOpts.MaxTime = mr.MaxTime
		}
		if mr.Scope != nil {
			mrOpts.Scope = mr.Scope
		}
		if mr.Sort != nil {
			mrOpts.Sort = mr.Sort
		}
		if mr.Verbose != nil {
			mrOpts.Verbose = mr.Verbose
		}
		if mr.OutputCollection != nil {
			mrOpts.OutputCollection = mr.OutputCollection
		}
		if mr.OutputDatabase != nil {
			mrOpts.OutputDatabase = mr.OutputDatabase
		}
		if mr.Action != nil {
			mrOpts.Action = mr.Action
		}
		if mr.NonAtomic != nil {
			mrOpts.NonAtomic = mr.NonAtomic
		}
		if mr.Sharded != nil {
			mrOpts.Sharded = mr.Sharded
		}
	}

	return mrOpts
}
