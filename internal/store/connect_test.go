// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizcard/credcheck/pkg/errutil"
)

func quietOptions(timeout time.Duration) ConnectOptions {
	return ConnectOptions{
		Timeout:   timeout,
		BaseDelay: time.Millisecond,
		MaxDelay:  2 * time.Millisecond,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}.withDefaults()
}

func TestWaitReady_RetriesUntilPingSucceeds(t *testing.T) {
	calls := 0
	err := waitReady(context.Background(), quietOptions(time.Second), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWaitReady_GivesUpAtTimeout(t *testing.T) {
	err := waitReady(context.Background(), quietOptions(20*time.Millisecond), func(context.Context) error {
		return errors.New("connection refused")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitReady_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := waitReady(ctx, quietOptions(time.Second), func(context.Context) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConnectOptions_Defaults(t *testing.T) {
	opts := ConnectOptions{}.withDefaults()
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, 250*time.Millisecond, opts.BaseDelay)
	assert.Equal(t, 5*time.Second, opts.MaxDelay)
	assert.NotNil(t, opts.Logger)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "", ConnectOptions{})
	errutil.AssertErrorCode(t, err, "STORE_INVALID_URL")

	_, err = Connect(context.Background(), "postgres://localhost:notaport/db", ConnectOptions{})
	errutil.AssertErrorCode(t, err, "STORE_INVALID_URL")
}
