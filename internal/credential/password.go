// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import (
	"strings"
	"unicode/utf8"
)

// charClasses records which character classes a password draws from.
type charClasses struct {
	upper   bool
	lower   bool
	digit   bool
	special bool
}

func (v *Validator) classify(s string) charClasses {
	var c charClasses
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			c.upper = true
		case r >= 'a' && r <= 'z':
			c.lower = true
		case r >= '0' && r <= '9':
			c.digit = true
		}
		if _, ok := v.special[r]; ok {
			c.special = true
		}
	}
	return c
}

// hasTripleRun reports whether any rune occurs three or more times in a row.
func hasTripleRun(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
			continue
		}
		prev = r
		run = 1
	}
	return false
}

// IsCommon reports whether s is on the deny-list or matches a deny pattern.
// The comparison is case-insensitive.
func (v *Validator) IsCommon(s string) bool {
	lower := strings.ToLower(s)
	if _, ok := v.denied[lower]; ok {
		return true
	}
	for _, g := range v.patterns {
		if g.Match(lower) {
			return true
		}
	}
	return false
}

// ValidatePassword evaluates every password rule and aggregates all
// failures in rule order: length bounds, uppercase, lowercase, digit,
// special character, deny-list, repeated characters.
func (v *Validator) ValidatePassword(s string) Result {
	b := v.builder()
	n := utf8.RuneCountInString(s)
	classes := v.classify(s)

	if n < v.policy.MinPasswordLength {
		b.fail(CodePasswordMinLength, v.policy.MinPasswordLength)
	}
	if n > v.policy.MaxPasswordLength {
		b.fail(CodePasswordMaxLength, v.policy.MaxPasswordLength)
	}
	if !classes.upper {
		b.fail(CodePasswordUppercase)
	}
	if !classes.lower {
		b.fail(CodePasswordLowercase)
	}
	if !classes.digit {
		b.fail(CodePasswordDigit)
	}
	if !classes.special {
		b.fail(CodePasswordSpecial)
	}
	if v.IsCommon(s) {
		b.fail(CodePasswordCommon)
	}
	if hasTripleRun(s) {
		b.fail(CodePasswordRepeated)
	}
	return b.result()
}
