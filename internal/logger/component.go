// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

const (
	KeyCollectionName = "collectionName"
	KeyCommandName    = "commandName"
	KeyDatabaseName   = "databaseName"
	KeyDurationMS     = "durationMS"
	KeyFailure        = "failure"
	KeyIndex          = "index"
	KeyMessage        = "message"
	KeyOperationID    = "operationId"
	KeyOperationName  = "operationName"
	KeyReadPreference = "readPreference"
	KeyReply          = "reply"
	KeyTarget         = "target"
	KeyTimestamp      = "timestamp"
)

// KeyValues is a list of alternating keys and values.
type KeyValues []interface{}

// Add appends a key-value pair.
func (kvs *KeyValues) Add(key string, value interface{}) {
	*kvs = append(*kvs, key, value)
}

// Component is a part of the library whose log level can be configured
// independently.
type Component int

const (
	// ComponentAll configures every component at once.
	ComponentAll Component = iota

	// ComponentCommand covers operations executed against the server.
	ComponentCommand

	// ComponentCollection covers collection facade dispatch and the outcome of
	// operations dispatched without waiting.
	ComponentCollection
)

const (
	mongoDBLogAllEnvVar        = "MONGODB_LOG_ALL"
	mongoDBLogCommandEnvVar    = "MONGODB_LOG_COMMAND"
	mongoDBLogCollectionEnvVar = "MONGODB_LOG_COLLECTION"
)

var componentEnvVarMap = map[string]Component{
	mongoDBLogAllEnvVar:        ComponentAll,
	mongoDBLogCommandEnvVar:    ComponentCommand,
	mongoDBLogCollectionEnvVar: ComponentCollection,
}

// String implements fmt.Stringer.
func (c Component) String() string {
	switch c {
	case ComponentCommand:
		return "command"
	case ComponentCollection:
		return "collection"
	default:
		return "all"
	}
}
