// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package account registers students and authenticates them.
//
// # Domain Types
//
// Accounts should be created with NewAccount, which checks the email shape
// and requires a password hash. Repository implementations receive
// pre-validated accounts.
//
// # Services
//
// Service coordinates registration and login:
//   - Register runs the credential validators server-side, hashes the
//     password with argon2id and stores a freemium student account.
//   - Login verifies the password in constant time, tracks failures with
//     progressive lockout, and issues a signed session token.
package account
