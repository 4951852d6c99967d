// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/oops"

	"github.com/quizcard/credcheck/internal/account"
	"github.com/quizcard/credcheck/pkg/errutil"
)

// Auth metric operations.
const (
	opRegister = "register"
	opLogin    = "login"
)

type registerRequest struct {
	Name         string  `json:"nome"`
	Email        string  `json:"email"`
	Password     string  `json:"senha"`
	Confirmation *string `json:"confirmacao,omitempty"`
}

type registerResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginUser struct {
	ID    string       `json:"id"`
	Name  string       `json:"nome"`
	Email string       `json:"email"`
	Plan  account.Plan `json:"plano"`
}

type loginResponse struct {
	Role      account.Role `json:"role"`
	User      loginUser    `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	acct, err := h.accounts.Register(r.Context(), account.RegisterRequest{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Confirmation,
		Locale:       requestLocale(r, h.validator.Locale()),
	})
	if err != nil {
		h.metrics.RecordAuthAttempt(opRegister, errutil.Code(err))
		h.writeAuthError(w, r, err)
		return
	}

	h.metrics.RecordAuthAttempt(opRegister, "success")
	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "account created",
		ID:      acct.ID.String(),
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBadJSON(w)
		return
	}

	session, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordAuthAttempt(opLogin, errutil.Code(err))
		h.writeAuthError(w, r, err)
		return
	}
	h.metrics.RecordAuthAttempt(opLogin, "success")

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	acct := session.Account
	writeJSON(w, http.StatusOK, loginResponse{
		Role: acct.Role,
		User: loginUser{
			ID:    acct.ID.String(),
			Name:  acct.Name,
			Email: acct.Email,
			Plan:  acct.Plan,
		},
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, account.ErrEmailTaken):
		return http.StatusConflict
	}
	switch errutil.Code(err) {
	case "AUTH_INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "AUTH_ACCOUNT_LOCKED":
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Code: errutil.Code(err)}

	var verr *account.ValidationError
	switch status {
	case http.StatusBadRequest:
		errors.As(err, &verr)
		resp.Code = "AUTH_VALIDATION_FAILED"
		resp.Error = "invalid registration data"
		resp.Details = verr.Messages()
		resp.Fields = verr.Fields
	case http.StatusConflict:
		resp.Code = "AUTH_EMAIL_TAKEN"
		resp.Error = "email already registered"
	case http.StatusUnauthorized:
		resp.Error = "invalid email or password"
	case http.StatusLocked:
		resp.Error = "account is temporarily locked"
		if wait, ok := retryAfter(err); ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		}
	default:
		errutil.LogError(r.Context(), h.logger, "auth request failed", err)
		resp.Code = ""
		resp.Error = "internal server error"
	}
	writeError(w, status, resp)
}

// retryAfter extracts the lockout wait from an AUTH_ACCOUNT_LOCKED error.
func retryAfter(err error) (time.Duration, bool) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return 0, false
	}
	wait, ok := oopsErr.Context()[account.RetryAfterKey].(time.Duration)
	return wait, ok && wait > 0
}
