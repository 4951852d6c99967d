// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	"github.com/quizcard/credcheck/internal/credential"
	"github.com/quizcard/credcheck/pkg/errutil"
)

const tracerName = "github.com/quizcard/credcheck/internal/account"

// Service provides registration and login.
type Service struct {
	accounts  Repository
	hasher    PasswordHasher
	validator *credential.Validator
	tokens    *TokenIssuer
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a Service. All dependencies are required.
func NewService(accounts Repository, hasher PasswordHasher, validator *credential.Validator, tokens *TokenIssuer, opts ...ServiceOption) (*Service, error) {
	if accounts == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("accounts repository is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("password hasher is required")
	}
	if validator == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("credential validator is required")
	}
	if tokens == nil {
		return nil, oops.Code("AUTH_INVALID_SERVICE").Errorf("token issuer is required")
	}

	s := &Service{
		accounts:  accounts,
		hasher:    hasher,
		validator: validator,
		tokens:    tokens,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RegisterRequest is a signup submission. Confirmation is optional; when
// nil the client is trusted to have compared the passwords already.
type RegisterRequest struct {
	Name         string
	Email        string
	Password     string
	Confirmation *string
	Locale       language.Tag
}

// Register validates the request and stores a new freemium student.
// Validation failures return a *ValidationError coded AUTH_VALIDATION_FAILED.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	ctx, span := s.tracer.Start(ctx, "account.Register")
	defer span.End()

	v := s.validator
	if req.Locale != language.Und {
		v = v.WithLocale(req.Locale)
	}

	form := credential.SignupForm{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Confirmation: req.Password,
	}
	if req.Confirmation != nil {
		form.Confirmation = *req.Confirmation
	}

	result := v.ValidateSignup(form)
	if !result.Valid {
		span.SetStatus(codes.Error, "validation failed")
		return nil, oops.Code("AUTH_VALIDATION_FAILED").
			With("email", result.NormalizedEmail).
			Wrap(&ValidationError{Fields: result.FieldErrors()})
	}
	span.SetAttributes(attribute.String("account.email", result.NormalizedEmail))

	if _, err := s.accounts.GetByEmail(ctx, result.NormalizedEmail); err == nil {
		span.SetStatus(codes.Error, "email taken")
		return nil, oops.Code("AUTH_EMAIL_TAKEN").With("email", result.NormalizedEmail).Wrap(ErrEmailTaken)
	} else if !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		span.RecordError(err)
		return nil, oops.Code("AUTH_REGISTER_FAILED").With("operation", "hash password").Wrap(err)
	}

	acct, err := NewAccount(result.Name.NormalizedName, result.NormalizedEmail, hash, s.now())
	if err != nil {
		span.RecordError(err)
		return nil, oops.Code("AUTH_REGISTER_FAILED").With("operation", "create account").Wrap(err)
	}

	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			span.SetStatus(codes.Error, "email taken")
			return nil, oops.Code("AUTH_EMAIL_TAKEN").With("email", acct.Email).Wrap(ErrEmailTaken)
		}
		span.RecordError(err)
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "persist account").
			Wrap(err)
	}

	span.SetAttributes(attribute.String("account.id", acct.ID.String()))
	s.logger.InfoContext(ctx, "account registered", "account_id", acct.ID.String())
	return acct, nil
}

// dummyPasswordHash is verified when an account does not exist so the
// response time does not reveal which emails are registered. It never
// matches any password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Session is the outcome of a successful login.
type Session struct {
	Account   *Account
	Token     string
	ExpiresAt time.Time
}

// Login authenticates an account by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "account.Login")
	defer span.End()

	email = credential.NormalizeEmail(email)
	acct, lookupErr := s.accounts.GetByEmail(ctx, email)

	var targetHash string
	exists := lookupErr == nil
	switch {
	case exists:
		targetHash = acct.PasswordHash
	case errors.Is(lookupErr, ErrNotFound):
		targetHash = dummyPasswordHash
	default:
		span.RecordError(lookupErr)
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get account by email").
			Wrap(lookupErr)
	}

	// Always verify so both paths cost the same.
	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !exists {
			return nil, invalidCredentials()
		}
		span.RecordError(verifyErr)
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			With("account_id", acct.ID.String()).
			Wrap(verifyErr)
	}

	now := s.now()
	if !exists || !valid {
		if exists {
			acct.RecordFailure(now)
			if err := s.accounts.Update(ctx, acct); err != nil {
				errutil.LogError(ctx, s.logger, "failed to record login failure", err)
			}
		}
		span.SetStatus(codes.Error, "invalid credentials")
		return nil, invalidCredentials()
	}

	// Checked after verification to keep timing constant.
	if acct.IsLocked(now) {
		throttle := CheckFailures(acct.FailedAttempts, acct.LockedUntil, now)
		span.SetStatus(codes.Error, "account locked")
		return nil, oops.Code("AUTH_ACCOUNT_LOCKED").
			With("locked_until", acct.LockedUntil).
			With(RetryAfterKey, throttle.Remaining).
			Errorf("account is temporarily locked")
	}

	acct.RecordSuccess(now)
	if s.hasher.NeedsUpgrade(acct.PasswordHash) {
		if upgraded, err := s.hasher.Hash(password); err == nil {
			acct.PasswordHash = upgraded
		}
	}
	if err := s.accounts.Update(ctx, acct); err != nil {
		errutil.LogError(ctx, s.logger, "failed to update account after login", err)
	}

	token, expiresAt, err := s.tokens.Issue(acct)
	if err != nil {
		span.RecordError(err)
		return nil, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "issue token").
			Wrap(err)
	}

	span.SetAttributes(attribute.String("account.id", acct.ID.String()))
	s.logger.InfoContext(ctx, "account logged in", "account_id", acct.ID.String(), "role", string(acct.Role))
	return &Session{Account: acct, Token: token, ExpiresAt: expiresAt}, nil
}

// RetryAfterKey is the error context key holding how long a locked
// account must wait, as a time.Duration.
const RetryAfterKey = "retry_after"

func invalidCredentials() error {
	return oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
}
