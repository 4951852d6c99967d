// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package web serves the credential validators and the signup and login
// endpoints over HTTP.
//
// Validation routes live under /v1/validate and never touch storage. The
// /auth routes are only mounted when an account service is configured.
// Messages are rendered in the locale chosen by the ?lang query parameter,
// falling back to Accept-Language.
package web
