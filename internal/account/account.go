// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package account

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quizcard/credcheck/internal/credential"
)

// Role is what an account may do on the platform.
type Role string

// Roles.
const (
	RoleStudent Role = "aluno"
	RoleAdmin   Role = "admin"
)

// Plan is the subscription tier of a student.
type Plan string

// Plans.
const (
	PlanFreemium Plan = "freemium"
	PlanPremium  Plan = "premium"
)

// Account is a registered user.
type Account struct {
	ID             ulid.ULID
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	Plan           Plan
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a freemium student account. name and email are stored
// as given; callers normalize them first.
func NewAccount(name, email, passwordHash string, now time.Time) (*Account, error) {
	if name == "" {
		return nil, oops.Code("ACCOUNT_INVALID").Errorf("name cannot be empty")
	}
	if !credential.ValidateEmail(email) {
		return nil, oops.Code("ACCOUNT_INVALID").With("email", email).Errorf("email is not valid")
	}
	if passwordHash == "" {
		return nil, oops.Code("ACCOUNT_INVALID").Errorf("password hash cannot be empty")
	}
	return &Account{
		ID:           ulid.Make(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleStudent,
		Plan:         PlanFreemium,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsLocked reports whether the account is locked out at now.
func (a *Account) IsLocked(now time.Time) bool {
	return IsLockedOut(a.LockedUntil, now)
}

// RecordFailure increments the failure counter and locks the account once
// the threshold is reached.
func (a *Account) RecordFailure(now time.Time) {
	a.FailedAttempts++
	a.LockedUntil = ComputeLockoutTime(a.FailedAttempts, now)
	a.UpdatedAt = now
}

// RecordSuccess clears failures and any lockout.
func (a *Account) RecordSuccess(now time.Time) {
	a.FailedAttempts = 0
	a.LockedUntil = nil
	a.UpdatedAt = now
}

// Repository manages account persistence.
type Repository interface {
	// Create stores a new account. Returns ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByEmail retrieves an account by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Update overwrites a stored account.
	Update(ctx context.Context, account *Account) error
}
