// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"errors"
	"strings"
)

// Namespace identifies a collection within a database.
type Namespace struct {
	DB         string
	Collection string
}

// ParseNamespace parses a namespace string into a Namespace.
//
// The namespace string must contain at least one ".", the first of which is the separator
// between the database and collection names. After the namespace string is split,
// the rules in NewNamespace are applied.
func ParseNamespace(fullName string) (Namespace, error) {
	indexOfFirstDot := strings.Index(fullName, ".")
	if indexOfFirstDot == -1 {
		return Namespace{}, errors.New("namespace must contain a '.'")
	}
	return NewNamespace(fullName[:indexOfFirstDot], fullName[indexOfFirstDot+1:])
}

// NewNamespace creates a Namespace from the given database and collection names.
//
// Neither can be empty, and the database name may not contain a "." or " " character.
func NewNamespace(db, collection string) (Namespace, error) {
	switch {
	case collection == "":
		return Namespace{}, errors.New("collection name can not be empty")
	case db == "":
		return Namespace{}, errors.New("database name can not be empty")
	case strings.Contains(db, " "):
		return Namespace{}, errors.New("database name can not contain ' '")
	case strings.Contains(db, "."):
		return Namespace{}, errors.New("database name can not contain '.'")
	}

	return Namespace{DB: db, Collection: collection}, nil
}

// FullName returns the full namespace string, which is the result of joining the database
// name and the collection name with a "." character.
func (ns Namespace) FullName() string {
	return ns.DB + "." + ns.Collection
}

// String implements the fmt.Stringer interface.
func (ns Namespace) String() string {
	return ns.FullName()
}
