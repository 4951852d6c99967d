// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

// ConfirmationMatches reports whether the confirmation field equals the
// password exactly. No trimming, case-sensitive.
func ConfirmationMatches(password, confirmation string) bool {
	return password == confirmation
}

// ValidateConfirmation is ConfirmationMatches reported as a Result.
func (v *Validator) ValidateConfirmation(password, confirmation string) Result {
	b := v.builder()
	if !ConfirmationMatches(password, confirmation) {
		b.fail(CodeConfirmationMismatch)
	}
	return b.result()
}
