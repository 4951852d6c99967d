// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import (
	"strings"
	"unicode/utf8"
)

// isFormSpace matches the whitespace a browser form trims and treats as \s.
func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// isNameRune accepts ASCII letters, the Latin-1 block used by Portuguese
// accented letters (U+00C0 through U+00FF), and whitespace.
func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '\u00c0' && r <= '\u00ff':
		return true
	}
	return isFormSpace(r)
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(s string) string {
	return strings.TrimFunc(s, isFormSpace)
}

// NormalizeEmail trims and lower-cases an email the way the signup form does
// before validating and submitting it.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimFunc(s, isFormSpace))
}

// ValidateName trims s and then checks, in order: minimum length, maximum
// length, allowed letters. The trimmed value is returned even on failure.
func (v *Validator) ValidateName(s string) NameResult {
	name := NormalizeName(s)
	n := utf8.RuneCountInString(name)
	b := v.builder()

	if n < v.policy.MinNameLength {
		b.fail(CodeNameMinLength, v.policy.MinNameLength)
	}
	if n > v.policy.MaxNameLength {
		b.fail(CodeNameMaxLength, v.policy.MaxNameLength)
	}
	if n == 0 || strings.IndexFunc(name, func(r rune) bool { return !isNameRune(r) }) >= 0 {
		b.fail(CodeNameLetters)
	}

	return NameResult{Result: b.result(), NormalizedName: name}
}
