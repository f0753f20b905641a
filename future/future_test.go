// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package future

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture(t *testing.T) {
	t.Parallel()

	t.Run("resolved", func(t *testing.T) {
		t.Parallel()

		f := Resolved(42)
		require.True(t, f.IsDone())

		val, err := f.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, 42, val)
	})

	t.Run("failed", func(t *testing.T) {
		t.Parallel()

		want := errors.New("boom")
		val, err := Failed[string](want).Get(context.Background())
		require.Equal(t, want, err)
		require.Equal(t, "", val)
	})

	t.Run("complete once", func(t *testing.T) {
		t.Parallel()

		p := NewPromise[int]()
		require.False(t, p.Future().IsDone())
		require.True(t, p.Resolve(1))
		require.False(t, p.Resolve(2))
		require.False(t, p.Reject(errors.New("late")))

		val, err := p.Future().Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, val)
	})

	t.Run("get honours context", func(t *testing.T) {
		t.Parallel()

		p := NewPromise[int]()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := p.Future().Get(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.False(t, p.Future().IsDone())
	})

	t.Run("callbacks before and after completion", func(t *testing.T) {
		t.Parallel()

		p := NewPromise[string]()
		var got []string
		p.Future().Register(func(s string, err error) { got = append(got, "early:"+s) })
		p.Resolve("x")
		p.Future().Register(func(s string, err error) { got = append(got, "late:"+s) })

		require.Equal(t, []string{"early:x", "late:x"}, got)
	})

	t.Run("go", func(t *testing.T) {
		t.Parallel()

		val, err := Go(func() (int, error) { return 7, nil }).Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, 7, val)
	})
}

func TestThen(t *testing.T) {
	t.Parallel()

	t.Run("transforms value", func(t *testing.T) {
		t.Parallel()

		p := NewPromise[int]()
		f := Then(p.Future(), func(i int) (string, error) { return strconv.Itoa(i * 2), nil })
		p.Resolve(21)

		val, err := f.Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, "42", val)
	})

	t.Run("forwards error without calling transform", func(t *testing.T) {
		t.Parallel()

		want := errors.New("backend")
		called := false
		f := Then(Failed[int](want), func(int) (int, error) {
			called = true
			return 0, nil
		})

		_, err := f.Get(context.Background())
		require.Same(t, want, err)
		assert.False(t, called)
	})

	t.Run("transform error", func(t *testing.T) {
		t.Parallel()

		want := errors.New("decode")
		_, err := Then(Resolved(1), func(int) (int, error) { return 0, want }).Get(context.Background())
		require.Same(t, want, err)
	})

	t.Run("runs on completing goroutine", func(t *testing.T) {
		t.Parallel()

		p := NewPromise[int]()
		ran := make(chan struct{})
		Then(p.Future(), func(int) (int, error) {
			close(ran)
			return 0, nil
		})

		select {
		case <-ran:
			t.Fatal("transform ran before completion")
		default:
		}

		go p.Resolve(1)
		<-ran
	})
}

func TestCompose(t *testing.T) {
	t.Parallel()

	first := NewPromise[struct{}]()
	second := NewPromise[int]()
	f := Compose(first.Future(), func(struct{}) *Future[int] { return second.Future() })

	first.Resolve(struct{}{})
	require.False(t, f.IsDone())
	second.Resolve(3)

	val, err := f.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, val)

	want := errors.New("materialize")
	_, err = Compose(Failed[struct{}](want), func(struct{}) *Future[int] {
		t.Fatal("should not be called")
		return nil
	}).Get(context.Background())
	require.Same(t, want, err)
}

func TestConcurrentRegister(t *testing.T) {
	t.Parallel()

	const n = 50

	p := NewPromise[int]()
	var registered, called sync.WaitGroup
	registered.Add(n)
	called.Add(n)

	for i := 0; i < n; i++ {
		go func() {
			defer registered.Done()
			p.Future().Register(func(int, error) { called.Done() })
		}()
	}
	go p.Resolve(1)

	registered.Wait()
	called.Wait()
	require.True(t, p.Future().IsDone())
}
