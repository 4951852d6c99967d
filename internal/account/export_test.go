// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package account

import "time"

// SetTokenClock overrides the issuer's time source in tests.
func SetTokenClock(t *TokenIssuer, now func() time.Time) {
	t.now = now
}

// DummyPasswordHash exposes the timing-equalization hash to tests.
const DummyPasswordHash = dummyPasswordHash
