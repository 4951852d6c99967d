// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizcard/credcheck/internal/credential"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.com.br", true},
		{"a@b.c", true},
		{"", false},
		{"user@@example", false},
		{"user@example", false},
		{"@example.com", false},
		{"user@.com", false},
		{"user@example.", false},
		{"us er@example.com", false},
		{"user@exa mple.com", false},
		{"user x@example.com", false},
		{"user@example.com\n", false},
		{"user@a@b.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, credential.ValidateEmail(tt.email))
		})
	}
}

func TestValidator_ValidateEmail(t *testing.T) {
	got := credential.Default().ValidateEmail("nope")
	assert.False(t, got.Valid)
	assert.Equal(t, []credential.Code{credential.CodeEmailInvalid}, got.Codes)
	assert.Equal(t, []string{"Invalid email format"}, got.Errors)

	ok := credential.Default().ValidateEmail("user@example.com")
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Errors)
}

func TestConfirmationMatches(t *testing.T) {
	for _, p := range []string{"", "a", "Str0ng!Pass", " spaced ", "ção"} {
		assert.True(t, credential.ConfirmationMatches(p, p), "reflexive for %q", p)
		assert.False(t, credential.ConfirmationMatches(p, p+"x"), "suffix for %q", p)
	}

	assert.False(t, credential.ConfirmationMatches("Password", "password"))
	assert.False(t, credential.ConfirmationMatches("secret", " secret"))
}
