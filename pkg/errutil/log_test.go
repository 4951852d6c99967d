// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package errutil_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizcard/credcheck/pkg/errutil"
)

func TestLogError_WithOopsError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	err := oops.Code("AUTH_LOGIN_FAILED").
		With("email", "user@example.com").
		Errorf("lookup failed")

	errutil.LogError(context.Background(), logger, "login failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "login failed", entry["msg"])
	assert.Equal(t, "AUTH_LOGIN_FAILED", entry["code"])
	assert.Contains(t, entry["context"], "email")
}

func TestLogError_WithStandardError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	errutil.LogError(context.Background(), logger, "operation failed", errors.New("standard error"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Contains(t, entry["error"], "standard error")
	assert.NotContains(t, entry, "code")
}

func TestCode(t *testing.T) {
	coded := oops.Code("AUTH_ACCOUNT_LOCKED").Errorf("locked")

	assert.Equal(t, "AUTH_ACCOUNT_LOCKED", errutil.Code(coded))
	assert.Equal(t, "AUTH_ACCOUNT_LOCKED", errutil.Code(fmt.Errorf("wrapped: %w", coded)))
	assert.Equal(t, "", errutil.Code(errors.New("plain")))
	assert.Equal(t, "", errutil.Code(nil))

	assert.True(t, errutil.HasCode(coded, "AUTH_ACCOUNT_LOCKED"))
	assert.False(t, errutil.HasCode(nil, ""))
}
