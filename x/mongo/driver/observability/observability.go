// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package observability records OpenCensus stats and traces for the
// operations handed to a driver.Executor.
package observability

import (
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const ms = "ms"
const dimensionless = "1"

// Tag keys
var (
	KeyMethod, _    = tag.NewKey("method")
	KeyPart, _      = tag.NewKey("part")
	KeyNamespace, _ = tag.NewKey("namespace")
)

var (
	// MErrors counts failed operations, differentiated by the command name and
	// the part of the call that failed.
	MErrors = stats.Int64("mongoasync/client/errors", "The number of errors encountered", dimensionless)

	// MCalls counts completed operations, differentiated by the command name.
	MCalls = stats.Int64("mongoasync/client/calls", "The number of call invocations", dimensionless)

	MDeletions  = stats.Int64("mongoasync/client/deletions", "The number of delete requests", dimensionless)
	MInsertions = stats.Int64("mongoasync/client/insertions", "The number of documents inserted", dimensionless)
	MReads      = stats.Int64("mongoasync/client/reads", "The number of reads", dimensionless)
	MUpdates    = stats.Int64("mongoasync/client/updates", "The number of update requests", dimensionless)
	MReplaces   = stats.Int64("mongoasync/client/replaces", "The number of replace requests", dimensionless)
	MWrites     = stats.Int64("mongoasync/client/writes", "The number of write operations", dimensionless)

	MInFlight = stats.Int64("mongoasync/client/in_flight", "The number of operations dispatched and not yet completed", dimensionless)

	MRoundTripLatencyMilliseconds = stats.Float64("mongoasync/client/roundtrip_latency", "The latency of operations in milliseconds", ms)
)

var defaultLatencyMillisecondsDistribution = view.Distribution(
	0, 0.5, 1, 2, 3, 4, 5, 6, 8, 10, 13, 16, 20, 30, 40, 50, 60, 80, 100, 130, 160, 200, 230, 250,
	300, 350, 400, 500, 550, 600, 700, 800, 900, 1000, 1200, 2000, 2500, 3000, 3500, 4000,
	4500, 5000, 7000, 8000, 10000, 15000, 20000, 30000, 40000, 50000, 60000, 120000, 300000)

// AllViews are the views over every measure of this package.
var AllViews = []*view.View{
	{
		Name:        "mongoasync/client/reads",
		Description: "The number of reads",
		Measure:     MReads,
		Aggregation: view.Count(),
	},
	{
		Name:        "mongoasync/client/writes",
		Description: "The number of write operations",
		Measure:     MWrites,
		Aggregation: view.Count(),
	},
	{
		Name:        "mongoasync/client/insertions",
		Description: "The number of documents inserted",
		Measure:     MInsertions,
		Aggregation: view.Sum(),
	},
	{
		Name:        "mongoasync/client/updates",
		Description: "The number of update requests",
		Measure:     MUpdates,
		Aggregation: view.Sum(),
	},
	{
		Name:        "mongoasync/client/replaces",
		Description: "The number of replace requests",
		Measure:     MReplaces,
		Aggregation: view.Sum(),
	},
	{
		Name:        "mongoasync/client/deletions",
		Description: "The number of delete requests",
		Measure:     MDeletions,
		Aggregation: view.Sum(),
	},
	{
		Name:        "mongoasync/client/in_flight",
		Description: "The number of operations dispatched and not yet completed",
		Measure:     MInFlight,
		Aggregation: view.Sum(),
	},
	{
		Name:        "mongoasync/client/roundtrip_latency",
		Description: "The distribution of operation latencies",
		Measure:     MRoundTripLatencyMilliseconds,
		Aggregation: defaultLatencyMillisecondsDistribution,
		TagKeys:     []tag.Key{KeyMethod},
	},
	{
		Name:        "mongoasync/client/errors",
		Description: "The number of errors during different operations",
		Measure:     MErrors,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyMethod, KeyPart},
	},
	{
		Name:        "mongoasync/client/calls",
		Description: "The number of calls differentiated by their command names",
		Measure:     MCalls,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyMethod, KeyNamespace},
	},
}

// SinceInMilliseconds returns the time elapsed since startTime in milliseconds.
func SinceInMilliseconds(startTime time.Time) float64 {
	return time.Since(startTime).Seconds() * 1000
}
