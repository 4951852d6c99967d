// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package credential validates the credentials a student types into the
// signup form: display name, email, password and password confirmation.
//
// Every validator is a total function over its input. Failures are reported
// through the returned Result, never through an error value. A Result lists
// every violated rule, in a fixed order, as both a stable Code and a
// localized message.
//
// Password strength is scored separately by ScoreStrength. The score is a
// UX hint and is independent of validity: a password can be "Strong" and
// still be rejected (for example when it is on the deny-list).
//
// The package-level functions use DefaultPolicy and the base locale. Build a
// Validator with New to change the policy or the message language. A
// Validator is immutable and safe for concurrent use.
package credential
