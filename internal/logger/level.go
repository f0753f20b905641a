// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package logger

import "strings"

// DiffToInfo is the number of levels that come before LevelInfo. Subtracting it
// makes LevelInfo the 0th level passed to a logr sink.
const DiffToInfo = 1

// Level is a log severity. The order matters: a component configured at a
// level emits every message at that level or below.
type Level int

const (
	// LevelOff suppresses logging.
	LevelOff Level = iota

	// LevelInfo enables high-level messages about normal operation, such as a
	// write dispatched without waiting for its result failing.
	LevelInfo

	// LevelDebug enables voluminous messages, such as every operation handed to
	// the executor.
	LevelDebug
)

const (
	levelLiteralOff       = "off"
	levelLiteralEmergency = "emergency"
	levelLiteralAlert     = "alert"
	levelLiteralCritical  = "critical"
	levelLiteralError     = "error"
	levelLiteralWarning   = "warn"
	levelLiteralNotice    = "notice"
	levelLiteralInfo      = "info"
	levelLiteralDebug     = "debug"
	levelLiteralTrace     = "trace"
)

var allLevelLiterals = map[string]Level{
	levelLiteralOff:       LevelOff,
	levelLiteralEmergency: LevelInfo,
	levelLiteralAlert:     LevelInfo,
	levelLiteralCritical:  LevelInfo,
	levelLiteralError:     LevelInfo,
	levelLiteralWarning:   LevelInfo,
	levelLiteralNotice:    LevelInfo,
	levelLiteralInfo:      LevelInfo,
	levelLiteralDebug:     LevelDebug,
	levelLiteralTrace:     LevelDebug,
}

// ParseLevel returns the Level for a case-insensitive level name. Unknown names
// are LevelOff.
func ParseLevel(str string) Level {
	if level, ok := allLevelLiterals[strings.ToLower(str)]; ok {
		return level
	}
	return LevelOff
}

// String implements fmt.Stringer.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return levelLiteralInfo
	case LevelDebug:
		return levelLiteralDebug
	default:
		return levelLiteralOff
	}
}
