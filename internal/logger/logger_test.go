// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type recordedMessage struct {
	level int
	err   error
	msg   string
	kv    []interface{}
}

type mockLogSink struct {
	mu       sync.Mutex
	messages []recordedMessage
}

func (s *mockLogSink) Info(level int, msg string, kv ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, recordedMessage{level: level, msg: msg, kv: kv})
}

func (s *mockLogSink) Error(err error, msg string, kv ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, recordedMessage{err: err, msg: msg, kv: kv})
}

func BenchmarkLogger(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()

	logger, err := New(&mockLogSink{}, 0, map[Component]Level{
		ComponentCommand: LevelDebug,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			logger.Print(LevelInfo, ComponentCommand, "foo", "bar", "baz")
		}
	})
}

func mockKeyValues(length int) (KeyValues, map[string]interface{}) {
	keysAndValues := KeyValues{}
	m := map[string]interface{}{}

	for i := 0; i < length; i++ {
		keyName := fmt.Sprintf("key%d", i)
		valueName := fmt.Sprintf("value%d", i)

		keysAndValues.Add(keyName, valueName)
		m[keyName] = valueName
	}

	return keysAndValues, m
}

func TestIOSinkInfo(t *testing.T) {
	t.Parallel()

	const threshold = 1000

	mockKeyValues, kvmap := mockKeyValues(10)

	buf := new(bytes.Buffer)
	sink := NewIOSink(buf)

	wg := sync.WaitGroup{}
	wg.Add(threshold)

	for i := 0; i < threshold; i++ {
		go func() {
			defer wg.Done()

			sink.Info(0, "foo", mockKeyValues...)
		}()
	}

	wg.Wait()

	count := 0
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]interface{}
		require.NoError(t, dec.Decode(&m))

		assert.Equal(t, "foo", m[KeyMessage])
		delete(m, KeyTimestamp)
		delete(m, KeyMessage)

		assert.Equal(t, kvmap, m)
		count++
	}
	assert.Equal(t, threshold, count)
}

func TestIOSinkError(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	NewIOSink(buf).Error(errors.New("boom"), "write failed", KeyCommandName, "delete")

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "boom", m[KeyFailure])
	assert.Equal(t, "write failed", m[KeyMessage])
	assert.Equal(t, "delete", m[KeyCommandName])
}

func TestLoggerPrint(t *testing.T) {
	t.Parallel()

	sink := &mockLogSink{}
	logger, err := New(sink, 0, map[Component]Level{
		ComponentCollection: LevelInfo,
		ComponentCommand:    LevelDebug,
	})
	require.NoError(t, err)

	logger.Print(LevelDebug, ComponentCollection, "dropped")
	logger.Print(LevelInfo, ComponentCollection, "kept", KeyCollectionName, "coll")
	logger.Print(LevelDebug, ComponentCommand, "debug kept")
	logger.Error(errors.New("boom"), "error kept")

	require.Len(t, sink.messages, 3)
	assert.Equal(t, recordedMessage{level: 0, msg: "kept", kv: []interface{}{KeyCollectionName, "coll"}}, sink.messages[0])
	assert.Equal(t, 1, sink.messages[1].level)
	assert.EqualError(t, sink.messages[2].err, "boom")
}

func TestNilLogger(t *testing.T) {
	t.Parallel()

	var logger *Logger
	assert.False(t, logger.LevelComponentEnabled(LevelInfo, ComponentAll))
	assert.NotPanics(t, func() {
		logger.Print(LevelInfo, ComponentCollection, "nothing")
		logger.Error(errors.New("boom"), "nothing")
	})
	assert.NoError(t, logger.Close())
}

func TestSelectMaxDocumentLength(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		arg      uint
		expected uint
		env      map[string]string
	}{
		{
			name:     "default",
			arg:      0,
			expected: DefaultMaxDocumentLength,
		},
		{
			name:     "non-zero",
			arg:      100,
			expected: 100,
		},
		{
			name:     "valid env",
			arg:      0,
			expected: 100,
			env: map[string]string{
				maxDocumentLengthEnvVar: "100",
			},
		},
		{
			name:     "invalid env",
			arg:      0,
			expected: DefaultMaxDocumentLength,
			env: map[string]string{
				maxDocumentLengthEnvVar: "foo",
			},
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			for k, v := range tcase.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tcase.expected, selectMaxDocumentLength(tcase.arg))
		})
	}
}

func TestSelectLogSink(t *testing.T) {
	mock := &mockLogSink{}

	for _, tcase := range []struct {
		name    string
		arg     LogSink
		wantOut *os.File
		env     map[string]string
	}{
		{
			name:    "default",
			wantOut: os.Stderr,
		},
		{
			name: "non-nil",
			arg:  mock,
		},
		{
			name:    "stdout",
			wantOut: os.Stdout,
			env: map[string]string{
				logSinkPathEnvVar: logSinkPathStdout,
			},
		},
		{
			name:    "stderr",
			wantOut: os.Stderr,
			env: map[string]string{
				logSinkPathEnvVar: "STDERR",
			},
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			for k, v := range tcase.env {
				t.Setenv(k, v)
			}

			actual, file, err := selectLogSink(tcase.arg)
			require.NoError(t, err)
			assert.Nil(t, file)

			if tcase.arg != nil {
				assert.Same(t, tcase.arg, actual)
				return
			}
			require.IsType(t, &IOSink{}, actual)
			assert.Same(t, tcase.wantOut, actual.(*IOSink).out)
		})
	}

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.json")
		t.Setenv(logSinkPathEnvVar, path)

		logger, err := New(nil, 0, map[Component]Level{ComponentAll: LevelInfo})
		require.NoError(t, err)
		logger.Print(LevelInfo, ComponentCommand, "to file")
		require.NoError(t, logger.Close())

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "to file")
	})
}

func TestSelectedComponentLevels(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		arg      map[Component]Level
		expected map[Component]Level
		env      map[string]string
	}{
		{
			name: "default",
			arg:  nil,
			expected: map[Component]Level{
				ComponentCommand:    LevelOff,
				ComponentCollection: LevelOff,
			},
		},
		{
			name: "non-nil",
			arg: map[Component]Level{
				ComponentCommand: LevelDebug,
			},
			expected: map[Component]Level{
				ComponentCommand:    LevelDebug,
				ComponentCollection: LevelOff,
			},
		},
		{
			name: "all with override",
			arg: map[Component]Level{
				ComponentAll:        LevelInfo,
				ComponentCollection: LevelDebug,
			},
			expected: map[Component]Level{
				ComponentCommand:    LevelInfo,
				ComponentCollection: LevelDebug,
			},
		},
		{
			name: "valid env",
			arg:  nil,
			expected: map[Component]Level{
				ComponentCommand:    LevelDebug,
				ComponentCollection: LevelInfo,
			},
			env: map[string]string{
				mongoDBLogCommandEnvVar:    levelLiteralDebug,
				mongoDBLogCollectionEnvVar: "WARN",
			},
		},
		{
			name: "all env",
			arg:  nil,
			expected: map[Component]Level{
				ComponentCommand:    LevelDebug,
				ComponentCollection: LevelDebug,
			},
			env: map[string]string{
				mongoDBLogAllEnvVar:        levelLiteralTrace,
				mongoDBLogCollectionEnvVar: levelLiteralInfo,
			},
		},
		{
			name: "invalid env",
			arg:  nil,
			expected: map[Component]Level{
				ComponentCommand:    LevelOff,
				ComponentCollection: LevelOff,
			},
			env: map[string]string{
				mongoDBLogCommandEnvVar:    "foo",
				mongoDBLogCollectionEnvVar: "bar",
			},
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			for k, v := range tcase.env {
				t.Setenv(k, v)
			}

			actual := selectComponentLevels(tcase.arg)
			for k, v := range tcase.expected {
				assert.Equal(t, v, actual[k], "component %v", k)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	for _, tcase := range []struct {
		name     string
		arg      string
		width    uint
		expected string
	}{
		{
			name:     "empty",
			arg:      "",
			width:    0,
			expected: "",
		},
		{
			name:     "short",
			arg:      "foo",
			width:    DefaultMaxDocumentLength,
			expected: "foo",
		},
		{
			name:     "long",
			arg:      "foo bar baz",
			width:    9,
			expected: "foo bar b...",
		},
		{
			name:     "multi-byte",
			arg:      "你好",
			width:    4,
			expected: "你...",
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tcase.expected, truncate(tcase.arg, tcase.width))
		})
	}
}

func TestFormatDocument(t *testing.T) {
	t.Parallel()

	doc, err := bson.Marshal(bson.D{{"x", int32(1)}})
	require.NoError(t, err)

	assert.Equal(t, `{"x":1}`, FormatDocument(doc, DefaultMaxDocumentLength))
	assert.Equal(t, `{"x"...`, FormatDocument(doc, 4))

	var logger *Logger
	assert.Equal(t, "{}", logger.FormatDocument(nil))
	assert.Equal(t, `{"x":1}`, logger.FormatDocument(doc))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel("TRACE"))
	assert.Equal(t, LevelInfo, ParseLevel("critical"))
	assert.Equal(t, LevelOff, ParseLevel(""))
	assert.Equal(t, "debug", LevelDebug.String())
}
