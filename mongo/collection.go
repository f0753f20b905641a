// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/internal/logger"
	"github.com/ikmak/mongoasync/mongo/options"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

// ErrNilExecutor is returned by NewCollection when no executor is given.
var ErrNilExecutor = errors.New("executor is nil")

// Collection performs operations on a given collection. Documents of the
// collection are of type T and are encoded with the codec the registry holds
// for T. A Collection is safe for concurrent use.
type Collection[T any] struct {
	ns    driver.Namespace
	opts  options.Options
	exec  driver.Executor
	trans translator[T]
}

// NewCollection returns a handle to the collection db.coll whose operations
// are run by exec. Options that are not set default to a primary read
// preference, the server's write concern and codec.DefaultRegistry.
func NewCollection[T any](exec driver.Executor, db, coll string, opts ...*options.CollectionOptions) (*Collection[T], error) {
	if exec == nil {
		return nil, ErrNilExecutor
	}
	ns, err := driver.NewNamespace(db, coll)
	if err != nil {
		return nil, err
	}

	defaults := options.Options{
		ReadPreference: readpref.Primary(),
		Registry:       codec.DefaultRegistry,
	}
	resolved, err := resolveOptions(defaults, options.MergeCollectionOptions(opts...))
	if err != nil {
		return nil, err
	}
	return newCollection[T](exec, ns, resolved), nil
}

func newCollection[T any](exec driver.Executor, ns driver.Namespace, opts options.Options) *Collection[T] {
	return &Collection[T]{
		ns:    ns,
		opts:  opts,
		exec:  exec,
		trans: newTranslator[T](opts.Registry),
	}
}

func resolveOptions(base options.Options, co *options.CollectionOptions) (options.Options, error) {
	resolved := options.Options{
		ReadPreference: co.ReadPreference,
		WriteConcern:   co.WriteConcern,
		Registry:       co.Registry,
	}
	if co.Logger != nil || base.Logger == nil {
		l, err := options.NewLogger(co.Logger)
		if err != nil {
			return options.Options{}, err
		}
		resolved.Logger = l
	}
	return resolved.WithDefaults(base), nil
}

// Clone creates a copy of the collection with the given options applied on top
// of the collection's options.
func (coll *Collection[T]) Clone(opts ...*options.CollectionOptions) (*Collection[T], error) {
	resolved, err := resolveOptions(coll.opts, options.MergeCollectionOptions(opts...))
	if err != nil {
		return nil, err
	}
	return newCollection[T](coll.exec, coll.ns, resolved), nil
}

// WithDocumentType returns a handle to the same collection whose documents
// are of type C.
func WithDocumentType[C, T any](coll *Collection[T]) *Collection[C] {
	return newCollection[C](coll.exec, coll.ns, coll.opts)
}

// Namespace returns the namespace of the collection.
func (coll *Collection[T]) Namespace() driver.Namespace { return coll.ns }

// Options returns the options the collection's operations inherit.
func (coll *Collection[T]) Options() options.Options { return coll.opts }

func (coll *Collection[T]) execute(ctx context.Context, name string, op driver.Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	return execute(ctx, coll.exec, coll.opts.Logger, name, op, rp)
}

// execute hands op to exec. name is the facade method that built op.
func execute(ctx context.Context, exec driver.Executor, log *logger.Logger, name string, op driver.Operation, rp *readpref.ReadPref) *future.Future[interface{}] {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithOperationName(ctx, name)

	if log.LevelComponentEnabled(logger.LevelDebug, logger.ComponentCollection) {
		ns := op.Namespace()
		log.Print(logger.LevelDebug, logger.ComponentCollection, "dispatching operation",
			logger.KeyOperationName, name,
			logger.KeyCommandName, op.Name(),
			logger.KeyDatabaseName, ns.DB,
			logger.KeyCollectionName, ns.Collection)
	}
	return exec.Execute(ctx, op, rp)
}

// materialize dispatches an operation that writes an output collection
// without waiting for it. The returned future completes when the output has
// been written. Failures are logged as well as returned through the future,
// since nobody may ever wait on it.
func (coll *Collection[T]) materialize(ctx context.Context, name string, op driver.Operation) *future.Future[struct{}] {
	if ctx == nil {
		ctx = context.Background()
	}
	f := coll.execute(context.WithoutCancel(ctx), name, op, nil)

	log := coll.opts.Logger
	f.Register(func(_ interface{}, err error) {
		if err == nil {
			return
		}
		ns := op.Namespace()
		log.Print(logger.LevelInfo, logger.ComponentCollection, "writing output collection failed",
			logger.KeyOperationName, name,
			logger.KeyCommandName, op.Name(),
			logger.KeyDatabaseName, ns.DB,
			logger.KeyCollectionName, ns.Collection,
			logger.KeyFailure, err.Error())
	})
	return ignoreResult(f)
}

// derivedFind returns a query on the output collection ns of an operation
// that completes with after. The query reads from the primary unless the
// collection's options say otherwise for fields other than the read
// preference.
func derivedFind[C, T any](coll *Collection[T], ns driver.Namespace, after *future.Future[struct{}]) *FindIterable[C] {
	return &FindIterable[C]{
		exec:  coll.exec,
		ns:    ns,
		opts:  options.Options{ReadPreference: readpref.Primary()}.WithDefaults(coll.opts),
		after: after,
	}
}

func ignoreResult(f *future.Future[interface{}]) *future.Future[struct{}] {
	return future.Then(f, func(interface{}) (struct{}, error) { return struct{}{}, nil })
}

func (coll *Collection[T]) encode(val interface{}) (bson.Raw, error) {
	return coll.opts.Registry.Encode(val)
}

// encodeOptional encodes val, mapping nil to a nil document so that the
// executor can omit the field.
func encodeOptional(reg *codec.Registry, val interface{}) (bson.Raw, error) {
	if isNil(val) {
		return nil, nil
	}
	return reg.Encode(val)
}

func int64Value(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func durationValue(p *time.Duration) time.Duration {
	if p == nil {
		return 0
	}
	return *p
}

func boolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
