// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

// Password length constraints, counted in runes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// Name length constraints, counted in runes after trimming.
const (
	MinNameLength = 3
	MaxNameLength = 100
)

// SpecialCharacters is the set a password must draw at least one rune from.
const SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// CommonPasswords is the built-in deny-list. Entries are lower case.
var CommonPasswords = []string{
	"123456", "123456789", "qwerty", "password", "12345678",
	"111111", "123123", "1234567890", "1234567", "senha",
	"senha123", "admin", "admin123", "root", "12345",
	"password123", "abc123", "1q2w3e4r", "qwerty123", "letmein",
}

// Policy holds the tunable parameters of the credential rules.
type Policy struct {
	MinPasswordLength int
	MaxPasswordLength int
	MinNameLength     int
	MaxNameLength     int

	// SpecialCharacters lists the runes that satisfy the special-character rule.
	SpecialCharacters string

	// DenyList is matched case-insensitively against the whole password.
	DenyList []string

	// DenyPatterns are glob patterns matched against the lower-cased password.
	DenyPatterns []string
}

// DefaultPolicy returns the rules the signup form ships with.
func DefaultPolicy() Policy {
	deny := make([]string, len(CommonPasswords))
	copy(deny, CommonPasswords)
	return Policy{
		MinPasswordLength: MinPasswordLength,
		MaxPasswordLength: MaxPasswordLength,
		MinNameLength:     MinNameLength,
		MaxNameLength:     MaxNameLength,
		SpecialCharacters: SpecialCharacters,
		DenyList:          deny,
	}
}

// withDefaults fills zero-valued fields from DefaultPolicy.
// A nil DenyList means "use the built-in list"; an empty non-nil one disables it.
func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.MinPasswordLength <= 0 {
		p.MinPasswordLength = def.MinPasswordLength
	}
	if p.MaxPasswordLength <= 0 {
		p.MaxPasswordLength = def.MaxPasswordLength
	}
	if p.MinNameLength <= 0 {
		p.MinNameLength = def.MinNameLength
	}
	if p.MaxNameLength <= 0 {
		p.MaxNameLength = def.MaxNameLength
	}
	if p.SpecialCharacters == "" {
		p.SpecialCharacters = def.SpecialCharacters
	}
	if p.DenyList == nil {
		p.DenyList = def.DenyList
	}
	return p
}
