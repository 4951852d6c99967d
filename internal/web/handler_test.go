// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizcard/credcheck/internal/account"
	"github.com/quizcard/credcheck/internal/credential"
	"github.com/quizcard/credcheck/internal/observability"
	"github.com/quizcard/credcheck/internal/web"
)

type testServer struct {
	router  http.Handler
	metrics *observability.Metrics
}

func newTestServer(t *testing.T, opts ...web.Option) *testServer {
	t.Helper()
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	opts = append([]web.Option{web.WithMetrics(metrics)}, opts...)
	h, err := web.NewHandler(credential.Default(), opts...)
	require.NoError(t, err)
	return &testServer{router: h.Router(), metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type resultBody struct {
	Valid          bool     `json:"valid"`
	Errors         []string `json:"errors"`
	Codes          []string `json:"codes"`
	NormalizedName string   `json:"normalized_name"`
}

type errorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []string            `json:"detalhes"`
	Fields  map[string][]string `json:"campos"`
}

func TestNewHandler_RequiresValidator(t *testing.T) {
	h, err := web.NewHandler(nil)
	require.Error(t, err)
	assert.Nil(t, h)
}

func TestValidateEmail(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/validate/email", `{"email":"ana@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, decode[resultBody](t, rec).Valid)

	rec = s.do(t, http.MethodPost, "/v1/validate/email", `{"email":"user@@example"}`)
	assert.False(t, decode[resultBody](t, rec).Valid)

	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.Validations.WithLabelValues("email", "valid")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.Validations.WithLabelValues("email", "invalid")), 0)
}

func TestValidatePassword(t *testing.T) {
	s := newTestServer(t)

	t.Run("reports every failing rule in order", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/validate/password", `{"password":"aaa"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[resultBody](t, rec)
		assert.False(t, body.Valid)
		assert.Equal(t, []string{
			"password.min_length",
			"password.uppercase",
			"password.digit",
			"password.special",
			"password.repeated",
		}, body.Codes)
		assert.Equal(t, "Password must be at least 8 characters", body.Errors[0])
	})

	t.Run("valid password has empty lists", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/validate/password", `{"password":"Senha@2024x"}`)
		body := decode[resultBody](t, rec)
		assert.True(t, body.Valid)
		assert.NotNil(t, body.Errors)
		assert.Empty(t, body.Errors)
	})

	t.Run("lang query selects locale", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/validate/password?lang=pt-BR", `{"password":"aaa"}`)
		body := decode[resultBody](t, rec)
		assert.Equal(t, "A senha deve ter no mínimo 8 caracteres", body.Errors[0])
	})

	t.Run("accept-language selects locale", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/validate/password", `{"password":"aaa"}`,
			"Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
		body := decode[resultBody](t, rec)
		assert.Equal(t, "A senha deve ter no mínimo 8 caracteres", body.Errors[0])
	})

	t.Run("lang query beats accept-language", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/v1/validate/password?lang=en", `{"password":"aaa"}`,
			"Accept-Language", "pt-BR")
		body := decode[resultBody](t, rec)
		assert.Equal(t, "Password must be at least 8 characters", body.Errors[0])
	})
}

func TestValidateStrength(t *testing.T) {
	s := newTestServer(t)

	type strengthBody struct {
		Score          int     `json:"score"`
		Label          string  `json:"label"`
		LocalizedLabel string  `json:"localized_label"`
		Percent        float64 `json:"percent"`
	}

	rec := s.do(t, http.MethodPost, "/v1/validate/strength?lang=pt-BR", `{"password":"Ab1!Ab1!Ab1!Ab1!"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[strengthBody](t, rec)
	assert.Equal(t, 6, body.Score)
	assert.Equal(t, "Strong", body.Label)
	assert.Equal(t, "Forte", body.LocalizedLabel)
	assert.InDelta(t, 100, body.Percent, 0.001)

	rec = s.do(t, http.MethodPost, "/v1/validate/strength", `{"password":""}`)
	body = decode[strengthBody](t, rec)
	assert.Equal(t, 0, body.Score)
	assert.Equal(t, "Weak", body.Label)

	assert.InDelta(t, 1, testutil.ToFloat64(s.metrics.StrengthScores.WithLabelValues("Strong")), 0)
}

func TestValidateName(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/validate/name", `{"name":"  Jo  "}`)
	body := decode[resultBody](t, rec)
	assert.False(t, body.Valid)
	assert.Equal(t, []string{"name.min_length"}, body.Codes)
	assert.Equal(t, "Jo", body.NormalizedName)

	rec = s.do(t, http.MethodPost, "/v1/validate/name", `{"name":"José da Silva"}`)
	body = decode[resultBody](t, rec)
	assert.True(t, body.Valid)
	assert.Equal(t, "José da Silva", body.NormalizedName)
}

func TestValidateConfirmation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/validate/confirmation", `{"password":"Abc@1234","confirmation":"Abc@1234"}`)
	assert.True(t, decode[resultBody](t, rec).Valid)

	rec = s.do(t, http.MethodPost, "/v1/validate/confirmation", `{"password":"Abc@1234","confirmation":"abc@1234"}`)
	assert.False(t, decode[resultBody](t, rec).Valid)
}

func TestValidateSignup(t *testing.T) {
	s := newTestServer(t)

	type signupBody struct {
		Valid        bool       `json:"valid"`
		Name         resultBody `json:"nome"`
		Email        resultBody `json:"email"`
		Password     resultBody `json:"senha"`
		Confirmation resultBody `json:"confirmacao"`
		Strength     struct {
			Label          string `json:"label"`
			LocalizedLabel string `json:"localized_label"`
		} `json:"strength"`
	}

	rec := s.do(t, http.MethodPost, "/v1/validate/signup",
		`{"nome":"Ana Souza","email":"ana@example","senha":"Senha@2024x","confirmacao":"Senha@2024"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[signupBody](t, rec)
	assert.False(t, body.Valid)
	assert.True(t, body.Name.Valid)
	assert.False(t, body.Email.Valid)
	assert.True(t, body.Password.Valid)
	assert.False(t, body.Confirmation.Valid)
	assert.Equal(t, "Medium", body.Strength.Label)
	assert.Equal(t, "Medium", body.Strength.LocalizedLabel)
}

func TestMalformedRequests(t *testing.T) {
	s := newTestServer(t)

	paths := []string{
		"/v1/validate/email",
		"/v1/validate/password",
		"/v1/validate/strength",
		"/v1/validate/name",
		"/v1/validate/confirmation",
		"/v1/validate/signup",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, path, `{"email":`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "WEB_INVALID_JSON", decode[errorBody](t, rec).Code)

			rec = s.do(t, http.MethodPost, path, `{} {}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	rec := s.do(t, http.MethodGet, "/v1/validate/email", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/validate/unknown", "{}")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRoutesRequireAccountService(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/auth/login", `{"email":"a@b.c","senha":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWrongMethodIsNotAllowed(t *testing.T) {
	s := newTestServer(t, web.WithAccounts(&fakeAccounts{}))
	paths := []string{
		"/v1/validate/email",
		"/v1/validate/password",
		"/v1/validate/strength",
		"/v1/validate/name",
		"/v1/validate/confirmation",
		"/v1/validate/signup",
		"/auth/cadastrar_usuario",
		"/auth/login",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
				rec := s.do(t, method, path, "")
				assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
				assert.Equal(t, "method not allowed", decode[errorBody](t, rec).Error)
			}
		})
	}
}

func TestRequestDurationIsRecorded(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/v1/validate/email", `{"email":"ana@example.com"}`)

	assert.Equal(t, 1, testutil.CollectAndCount(s.metrics.RequestDuration))
}

// Compile-time check that the account service satisfies the handler's needs.
var _ web.AccountService = (*account.Service)(nil)

// fakeAccounts is an in-memory AccountService.
type fakeAccounts struct {
	registerErr error
	loginErr    error
	session     *account.Session
	registered  []account.RegisterRequest
}

func (f *fakeAccounts) Register(_ context.Context, req account.RegisterRequest) (*account.Account, error) {
	f.registered = append(f.registered, req)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &account.Account{ID: fixedID, Name: req.Name, Email: req.Email}, nil
}

func (f *fakeAccounts) Login(_ context.Context, _, _ string) (*account.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.session, nil
}
