// Copyright (C) MongoDB, Inc. 2022-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	t.Parallel()

	for _, tcase := range []struct {
		name string
		want bool
		err1 error
		err2 error
	}{
		{
			"Error with same codes",
			true,
			Error{Code: 1},
			Error{Code: 1},
		},
		{
			"Error with different codes",
			false,
			Error{Code: 1},
			Error{Code: 2},
		},
		{
			"Error with different types",
			false,
			Error{Code: 1},
			errors.New("foo"),
		},
		{
			"WriteError with same codes",
			true,
			WriteError{Code: 1},
			WriteError{Code: 1},
		},
		{
			"WriteError with different codes",
			false,
			WriteError{Code: 1},
			WriteError{Code: 2},
		},
		{
			"wrapped Error",
			true,
			fmt.Errorf("context: %w", Error{Code: 11000}),
			Error{Code: 11000},
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tcase.want, errors.Is(tcase.err1, tcase.err2))
		})
	}
}

func TestIsDomainError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDomainError(Error{Code: 2, Message: "bad value"}))
	assert.True(t, IsDomainError(fmt.Errorf("wrapped: %w", WriteErrors{{Code: 11000}})))
	assert.False(t, IsDomainError(errors.New("plain")))
	assert.False(t, IsDomainError(nil))
}

func TestErrorLabels(t *testing.T) {
	t.Parallel()

	err := Error{Code: 91, Name: "ShutdownInProgress", Message: "shutting down", Labels: []string{"RetryableWriteError"}}
	assert.Equal(t, "(ShutdownInProgress) shutting down", err.Error())
	assert.True(t, err.HasErrorLabel("RetryableWriteError"))
	assert.False(t, err.HasErrorLabel("TransientTransactionError"))
	assert.True(t, err.HasErrorCode(91))
}
