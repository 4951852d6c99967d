// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package account

import "time"

// Lockout configuration.
const (
	// LockoutDuration is how long an account stays locked.
	LockoutDuration = 15 * time.Minute

	// LockoutThreshold is the number of consecutive failures that locks an account.
	LockoutThreshold = 7

	// maxDelay caps the progressive delay before lockout.
	maxDelay = 32 * time.Second
)

// Throttle describes how a client should back off after failed logins.
type Throttle struct {
	// Delay is the time to wait before the next attempt.
	Delay time.Duration

	// Locked is true while the account is locked.
	Locked bool

	// Remaining is the time until the lockout expires.
	Remaining time.Duration
}

// CheckFailures returns the throttle for an account with the given failure
// count and lockout timestamp.
func CheckFailures(failures int, lockedUntil *time.Time, now time.Time) Throttle {
	if IsLockedOut(lockedUntil, now) {
		return Throttle{Locked: true, Remaining: lockedUntil.Sub(now)}
	}
	if failures >= LockoutThreshold {
		return Throttle{Locked: true, Remaining: LockoutDuration}
	}

	var t Throttle
	if failures > 0 {
		// 2^(failures-1) seconds
		t.Delay = time.Duration(1<<(failures-1)) * time.Second
		if t.Delay > maxDelay {
			t.Delay = maxDelay
		}
	}
	return t
}

// IsLockedOut reports whether lockedUntil is after now.
func IsLockedOut(lockedUntil *time.Time, now time.Time) bool {
	return lockedUntil != nil && lockedUntil.After(now)
}

// ComputeLockoutTime returns when a lockout for the given failure count
// ends, or nil below the threshold.
func ComputeLockoutTime(failures int, now time.Time) *time.Time {
	if failures < LockoutThreshold {
		return nil
	}
	until := now.Add(LockoutDuration)
	return &until
}
