// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// IOSink writes a JSON object per message to an io.Writer. It is the default
// sink, writing to os.Stderr.
type IOSink struct {
	mu  sync.Mutex
	out io.Writer
}

// Compile-time check to ensure IOSink implements the LogSink interface.
var _ LogSink = &IOSink{}

// NewIOSink will create an IOSink object that writes JSON messages to the
// provided io.Writer.
func NewIOSink(out io.Writer) *IOSink {
	return &IOSink{out: out}
}

func (sink *IOSink) write(doc bson.M) {
	b, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		b, _ = bson.MarshalExtJSON(bson.M{
			KeyTimestamp: doc[KeyTimestamp],
			KeyMessage:   fmt.Sprintf("%v (unencodable fields: %v)", doc[KeyMessage], err),
		}, false, false)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()

	_, _ = sink.out.Write(append(b, '\n'))
}

func messageDocument(msg string, keysAndValues []interface{}) bson.M {
	doc := bson.M{
		KeyTimestamp: time.Now().UnixNano(),
		KeyMessage:   msg,
	}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		doc[key] = keysAndValues[i+1]
	}
	return doc
}

// Info will write a JSON-encoded message to the io.Writer.
func (sink *IOSink) Info(_ int, msg string, keysAndValues ...interface{}) {
	sink.write(messageDocument(msg, keysAndValues))
}

// Error will write a JSON-encoded error message to the io.Writer.
func (sink *IOSink) Error(err error, msg string, kv ...interface{}) {
	doc := messageDocument(msg, kv)
	doc[KeyFailure] = err.Error()
	sink.write(doc)
}
