// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"github.com/ikmak/mongoasync/internal/logger"
)

// LogLevel is an enumeration representing the supported log severity levels.
type LogLevel int

const (
	// LogLevelInfo enables logging of informational messages, such as the failure of an operation dispatched
	// without waiting for its result.
	LogLevelInfo LogLevel = LogLevel(logger.LevelInfo)

	// LogLevelDebug enables logging of debug messages, such as every operation dispatched to the executor.
	LogLevelDebug LogLevel = LogLevel(logger.LevelDebug)
)

// LogComponent is an enumeration representing the "components" which can be
// logged against. A LogLevel can be configured on a per-component basis.
type LogComponent int

const (
	// LogComponentAll enables logging for all components.
	LogComponentAll LogComponent = LogComponent(logger.ComponentAll)

	// LogComponentCommand enables logging of operations run by an executor.
	LogComponentCommand LogComponent = LogComponent(logger.ComponentCommand)

	// LogComponentCollection enables logging of collection dispatch.
	LogComponentCollection LogComponent = LogComponent(logger.ComponentCollection)
)

// LogSink is an interface that can be implemented to provide a custom sink for
// the library's logs. A github.com/go-logr/logr LogSink satisfies it.
type LogSink interface {
	// Info logs a non-error message with the given key/value pairs. The level
	// argument is provided for optional logging.
	Info(level int, message string, keysAndValues ...interface{})

	// Error logs an error, with the given message and key/value pairs.
	Error(err error, message string, keysAndValues ...interface{})
}

// LoggerOptions represent options used to configure logging.
type LoggerOptions struct {
	// ComponentLevels is a map of LogComponent to LogLevel. Components that are
	// not set here are configured from the environment.
	ComponentLevels map[LogComponent]LogLevel

	// Sink is the LogSink that will be used to log messages. If this is nil,
	// messages are written as JSON to the MONGODB_LOG_PATH destination, or to
	// os.Stderr.
	Sink LogSink

	// MaxDocumentLength is the maximum length of a document that will be
	// logged. Longer documents are truncated.
	MaxDocumentLength uint
}

// Logger creates a new LoggerOptions instance.
func Logger() *LoggerOptions {
	return &LoggerOptions{
		ComponentLevels: map[LogComponent]LogLevel{},
	}
}

// SetComponentLevel sets the LogLevel value for a LogComponent.
func (opts *LoggerOptions) SetComponentLevel(component LogComponent, level LogLevel) *LoggerOptions {
	if opts.ComponentLevels == nil {
		opts.ComponentLevels = map[LogComponent]LogLevel{}
	}
	opts.ComponentLevels[component] = level

	return opts
}

// SetMaxDocumentLength sets the maximum length of a document that will be
// logged.
func (opts *LoggerOptions) SetMaxDocumentLength(maxDocumentLength uint) *LoggerOptions {
	opts.MaxDocumentLength = maxDocumentLength

	return opts
}

// SetSink sets the LogSink to use for logging.
func (opts *LoggerOptions) SetSink(sink LogSink) *LoggerOptions {
	opts.Sink = sink

	return opts
}

// NewLogger builds the logger configured by opts. A nil opts configures the
// logger from the environment alone.
func NewLogger(opts *LoggerOptions) (*logger.Logger, error) {
	if opts == nil {
		return logger.New(nil, 0, nil)
	}

	levels := make(map[logger.Component]logger.Level, len(opts.ComponentLevels))
	for component, level := range opts.ComponentLevels {
		levels[logger.Component(component)] = logger.Level(level)
	}

	var sink logger.LogSink
	if opts.Sink != nil {
		sink = opts.Sink
	}

	return logger.New(sink, opts.MaxDocumentLength, levels)
}
