// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNamespace(t *testing.T) {
	t.Parallel()

	ns, err := NewNamespace("foo", "bar.baz")
	require.NoError(t, err)
	require.Equal(t, "foo", ns.DB)
	require.Equal(t, "bar.baz", ns.Collection)
	require.Equal(t, "foo.bar.baz", ns.FullName())

	for _, tc := range []struct{ db, coll string }{
		{"bar.baz", "foo"},
		{"bar baz", "foo"},
		{"bar", ""},
		{"", "foo"},
	} {
		_, err = NewNamespace(tc.db, tc.coll)
		require.Error(t, err, "%q %q", tc.db, tc.coll)
	}
}

func TestParseNamespace(t *testing.T) {
	t.Parallel()

	ns, err := ParseNamespace("foo.bar.baz")
	require.NoError(t, err)
	require.Equal(t, Namespace{DB: "foo", Collection: "bar.baz"}, ns)
	require.Equal(t, "foo.bar.baz", ns.String())

	for _, name := range []string{"foo", ".foo", "foo.", "fo o.bar"} {
		_, err = ParseNamespace(name)
		require.Error(t, err, name)
	}
}
