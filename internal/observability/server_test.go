// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/quizcard/credcheck/pkg/errutil"
)

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return rec.Code, string(body)
}

func TestServer_Metrics(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	code, body := get(t, server.Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "go_")
	assert.Contains(t, body, "process_")

	m := server.Metrics()
	m.RecordValidation("senha", false)
	m.RecordValidation("senha", true)
	m.RecordStrength("Strong")
	m.RecordAuthAttempt("login", "success")
	m.ObserveRequest("/auth/login", "200", 15*time.Millisecond)

	_, body = get(t, server.Handler(), "/metrics")
	assert.Contains(t, body, `credcheck_validations_total{field="senha",outcome="invalid"} 1`)
	assert.Contains(t, body, `credcheck_validations_total{field="senha",outcome="valid"} 1`)
	assert.Contains(t, body, `credcheck_strength_total{label="Strong"} 1`)
	assert.Contains(t, body, `credcheck_auth_attempts_total{operation="login",status="success"} 1`)
	assert.Contains(t, body, "credcheck_http_request_duration_seconds")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordValidation("email", true)
		m.RecordStrength("Weak")
		m.RecordAuthAttempt("register", "success")
		m.ObserveRequest("/", "200", time.Second)
	})
}

func TestServer_Liveness(t *testing.T) {
	server := NewServer("127.0.0.1:0", func(context.Context) error { return errors.New("db down") })

	code, body := get(t, server.Handler(), "/healthz/liveness")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", strings.TrimSpace(body))
}

func TestServer_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		checker  ReadinessChecker
		wantCode int
		wantBody string
	}{
		{name: "no checker", checker: nil, wantCode: http.StatusOK, wantBody: "ok"},
		{name: "ready", checker: func(context.Context) error { return nil }, wantCode: http.StatusOK, wantBody: "ok"},
		{
			name:     "not ready",
			checker:  func(context.Context) error { return errors.New("db down") },
			wantCode: http.StatusServiceUnavailable,
			wantBody: "not ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer("127.0.0.1:0", tt.checker)
			code, body := get(t, server.Handler(), "/healthz/readiness")
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(body))
		})
	}
}

func TestServer_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	server := NewServer("127.0.0.1:0", nil)
	errCh, err := server.Start()
	require.NoError(t, err)
	require.NotEmpty(t, server.Addr())

	_, err = server.Start()
	errutil.AssertErrorCode(t, err, "OBSERVABILITY_ALREADY_RUNNING")

	resp, err := http.Get("http://" + server.Addr() + "/healthz/liveness")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	http.DefaultClient.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))
	require.NoError(t, server.Stop(ctx), "second stop is a no-op")

	_, open := <-errCh
	assert.False(t, open, "error channel closes after graceful stop")
}

func TestServer_StartListenError(t *testing.T) {
	server := NewServer("256.0.0.1:0", nil)
	_, err := server.Start()
	errutil.AssertErrorCode(t, err, "OBSERVABILITY_LISTEN_FAILED")
	assert.Empty(t, server.Addr())
}
