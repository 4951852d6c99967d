// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/samber/oops"

	"github.com/quizcard/credcheck/internal/account"
	"github.com/quizcard/credcheck/internal/credential"
	"github.com/quizcard/credcheck/internal/observability"
)

// AccountService registers and authenticates accounts.
type AccountService interface {
	Register(ctx context.Context, req account.RegisterRequest) (*account.Account, error)
	Login(ctx context.Context, email, password string) (*account.Session, error)
}

// SessionCookie is the cookie carrying the session token after login.
const SessionCookie = "credcheck_session"

// Handler serves the HTTP API.
type Handler struct {
	validator    *credential.Validator
	accounts     AccountService
	metrics      *observability.Metrics
	logger       *slog.Logger
	secureCookie bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithAccounts mounts the /auth routes backed by svc.
func WithAccounts(svc AccountService) Option {
	return func(h *Handler) { h.accounts = svc }
}

// WithMetrics records validation and request metrics into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(h *Handler) { h.secureCookie = secure }
}

// NewHandler creates a Handler. validator is required.
func NewHandler(validator *credential.Validator, opts ...Option) (*Handler, error) {
	if validator == nil {
		return nil, oops.Code("WEB_INVALID_HANDLER").Errorf("credential validator is required")
	}
	h := &Handler{validator: validator, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Router returns the routes of the API.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.instrument)

	// Routes live on the root router: a PathPrefix subrouter answers a
	// method mismatch with 404 instead of MethodNotAllowedHandler.
	r.HandleFunc("/v1/validate/email", h.handleEmail).Methods(http.MethodPost)
	r.HandleFunc("/v1/validate/password", h.handlePassword).Methods(http.MethodPost)
	r.HandleFunc("/v1/validate/strength", h.handleStrength).Methods(http.MethodPost)
	r.HandleFunc("/v1/validate/name", h.handleName).Methods(http.MethodPost)
	r.HandleFunc("/v1/validate/confirmation", h.handleConfirmation).Methods(http.MethodPost)
	r.HandleFunc("/v1/validate/signup", h.handleSignup).Methods(http.MethodPost)

	if h.accounts != nil {
		r.HandleFunc("/auth/cadastrar_usuario", h.handleRegister).Methods(http.MethodPost)
		r.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})
	return r
}

// validatorFor returns the validator rendering messages in the request's locale.
func (h *Handler) validatorFor(r *http.Request) *credential.Validator {
	return h.validator.WithLocale(requestLocale(r, h.validator.Locale()))
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument records the duration of every routed request.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)
		h.metrics.ObserveRequest(route, strconv.Itoa(rec.status), elapsed)
		h.logger.DebugContext(r.Context(), "request served",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed)
	})
}
