// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command collctl runs collection operations against a MongoDB deployment
// through the asynchronous collection API.
package main

import (
	"context"
	"log"
	"os"

	"github.com/go-logr/logr"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
	"github.com/ikmak/mongoasync/x/mongo/driver/mongoexec"
	"github.com/ikmak/mongoasync/x/mongo/driver/observability"
)

// connectMongo connects to the configured deployment and returns an
// instrumented executor over the connection along with the function
// releasing it.
func connectMongo(ctx context.Context, cfg config, sink logr.LogSink) (driver.Executor, func(context.Context) error, error) {
	client, err := mongodriver.Connect(ctx, mongooptions.Client().ApplyURI(cfg.uri))
	if err != nil {
		return nil, nil, err
	}

	l, err := options.NewLogger(loggerOptions(cfg, sink))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	exec := mongoexec.New(client, mongoexec.WithMaxInFlight(cfg.maxInFlight), mongoexec.WithLogger(l))
	release := func(ctx context.Context) error {
		if err := exec.Close(ctx); err != nil {
			return err
		}
		return client.Disconnect(ctx)
	}
	return observability.NewExecutor(exec), release, nil
}

func main() {
	err := newApp(os.Stdout, os.Stderr, connectMongo).Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
