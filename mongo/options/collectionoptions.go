// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/ikmak/mongoasync/codec"
	"github.com/ikmak/mongoasync/internal/logger"
)

// Options is the resolved configuration held by a collection: every operation
// inherits it. Options values are never modified after construction.
type Options struct {
	// ReadPreference is passed to the executor for read operations.
	ReadPreference *readpref.ReadPref

	// WriteConcern is set on every write operation. Nil means the server default.
	WriteConcern *writeconcern.WriteConcern

	// Registry encodes filters, updates and documents and decodes results.
	Registry *codec.Registry

	// Logger receives dispatch and background failure messages. Nil disables
	// logging.
	Logger *logger.Logger
}

// WithDefaults returns a copy of o whose unset fields are taken from defaults.
func (o Options) WithDefaults(defaults Options) Options {
	if o.ReadPreference == nil {
		o.ReadPreference = defaults.ReadPreference
	}
	if o.WriteConcern == nil {
		o.WriteConcern = defaults.WriteConcern
	}
	if o.Registry == nil {
		o.Registry = defaults.Registry
	}
	if o.Logger == nil {
		o.Logger = defaults.Logger
	}
	return o
}

// CollectionOptions represents options that can be used to configure a
// Collection.
type CollectionOptions struct {
	// ReadPreference is the read preference to use for read operations executed on the Collection. The default value
	// is readpref.Primary().
	ReadPreference *readpref.ReadPref

	// WriteConcern is the write concern to use for operations executed on the Collection. The default value is nil,
	// which means that the server's default write concern will be used.
	WriteConcern *writeconcern.WriteConcern

	// Registry is the registry used to encode and decode documents. The default value is codec.DefaultRegistry.
	Registry *codec.Registry

	// Logger configures logging. The default value is nil, which means that logging is configured from the
	// MONGODB_LOG_* environment variables.
	Logger *LoggerOptions
}

// Collection creates a new CollectionOptions instance.
func Collection() *CollectionOptions {
	return &CollectionOptions{}
}

// SetReadPreference sets the value for the ReadPreference field.
func (c *CollectionOptions) SetReadPreference(rp *readpref.ReadPref) *CollectionOptions {
	c.ReadPreference = rp
	return c
}

// SetWriteConcern sets the value for the WriteConcern field.
func (c *CollectionOptions) SetWriteConcern(wc *writeconcern.WriteConcern) *CollectionOptions {
	c.WriteConcern = wc
	return c
}

// SetRegistry sets the value for the Registry field.
func (c *CollectionOptions) SetRegistry(r *codec.Registry) *CollectionOptions {
	c.Registry = r
	return c
}

// SetLogger sets the value for the Logger field.
func (c *CollectionOptions) SetLogger(lo *LoggerOptions) *CollectionOptions {
	c.Logger = lo
	return c
}

// MergeCollectionOptions combines the given CollectionOptions instances into a single *CollectionOptions in a
// last-one-wins fashion.
func MergeCollectionOptions(opts ...*CollectionOptions) *CollectionOptions {
	c := Collection()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if opt.ReadPreference != nil {
			c.ReadPreference = opt.ReadPreference
		}
		if opt.WriteConcern != nil {
			c.WriteConcern = opt.WriteConcern
		}
		if opt.Registry != nil {
			c.Registry = opt.Registry
		}
		if opt.Logger != nil {
			c.Logger = opt.Logger
		}
	}

	return c
}
