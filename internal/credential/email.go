// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import "regexp"

// emailPattern is local@domain.tld where no part holds whitespace or '@'.
// The class also excludes \v and the Unicode separators that a browser's
// \s covers but RE2's does not.
var emailPattern = regexp.MustCompile(
	`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`,
)

// ValidateEmail reports whether s has the shape of an email address.
// No DNS or mailbox verification is done.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateEmail checks an email and reports the outcome as a Result, so it
// can be rendered next to the other fields.
func (v *Validator) ValidateEmail(s string) Result {
	b := v.builder()
	if !ValidateEmail(s) {
		b.fail(CodeEmailInvalid)
	}
	return b.result()
}
