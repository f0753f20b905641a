// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package mongoexec

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikmak/mongoasync/future"
	"github.com/ikmak/mongoasync/x/mongo/driver"
)

type unknownOperation struct{}

func (unknownOperation) Name() string                { return "unknown" }
func (unknownOperation) Namespace() driver.Namespace { return driver.Namespace{DB: "db", Collection: "coll"} }

// The executors below have no client: every case fails before one is needed.

func TestExecutorUnsupportedOperation(t *testing.T) {
	t.Parallel()

	e := New(nil)
	_, err := e.Execute(context.Background(), unknownOperation{}, nil).Get(context.Background())

	var uoe *UnsupportedOperationError
	require.ErrorAs(t, err, &uoe)
	assert.Equal(t, unknownOperation{}, uoe.Operation)
}

func TestExecutorWaitsForSlot(t *testing.T) {
	t.Parallel()

	e := New(nil, WithMaxInFlight(1))
	require.NoError(t, e.sem.Acquire(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	f := e.Execute(ctx, unknownOperation{}, nil)
	assert.False(t, f.IsDone(), "operation ran without a free slot")

	cancel()
	_, err := f.Get(context.Background())
	assert.ErrorIs(t, err, context.Canceled)

	e.sem.Release(1)
}

func TestExecutorClose(t *testing.T) {
	t.Parallel()

	t.Run("rejects new operations", func(t *testing.T) {
		t.Parallel()

		e := New(nil)
		require.NoError(t, e.Close(context.Background()))

		_, err := e.Execute(context.Background(), unknownOperation{}, nil).Get(context.Background())
		assert.ErrorIs(t, err, ErrExecutorClosed)
		assert.ErrorIs(t, e.Close(context.Background()), ErrExecutorClosed)
	})
	t.Run("waits for operations waiting for a slot", func(t *testing.T) {
		t.Parallel()

		e := New(nil, WithMaxInFlight(1))
		require.NoError(t, e.sem.Acquire(context.Background(), 1))
		f := e.Execute(context.Background(), unknownOperation{}, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, e.Close(ctx), context.DeadlineExceeded)
		assert.False(t, f.IsDone())

		e.sem.Release(1)
		_, err := f.Get(context.Background())
		assert.ErrorAs(t, err, new(*UnsupportedOperationError))
	})
	t.Run("accepted operations are complete when it returns", func(t *testing.T) {
		t.Parallel()

		for i := 0; i < 50; i++ {
			e := New(nil, WithMaxInFlight(1))
			require.NoError(t, e.sem.Acquire(context.Background(), 1))

			futures := make([]*future.Future[interface{}], 0, 3)
			for j := 0; j < 3; j++ {
				futures = append(futures, e.Execute(context.Background(), unknownOperation{}, nil))
			}
			go e.sem.Release(1)

			require.NoError(t, e.Close(context.Background()))
			for j, f := range futures {
				assert.True(t, f.IsDone(), "iteration %d: operation %d still pending after Close", i, j)
			}
		}
	})
}
