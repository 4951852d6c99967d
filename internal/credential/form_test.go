// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/quizcard/credcheck/internal/credential"
)

func TestValidateSignup(t *testing.T) {
	v := credential.Default()

	t.Run("valid form", func(t *testing.T) {
		got := v.ValidateSignup(credential.SignupForm{
			Name:         " Maria Silva ",
			Email:        " Maria@Example.com ",
			Password:     "Str0ng!Pass",
			Confirmation: "Str0ng!Pass",
		})
		assert.True(t, got.Valid)
		assert.Equal(t, "Maria Silva", got.Name.NormalizedName)
		assert.Equal(t, "maria@example.com", got.NormalizedEmail)
		assert.Empty(t, got.FieldErrors())
	})

	t.Run("every field is checked", func(t *testing.T) {
		got := v.ValidateSignup(credential.SignupForm{
			Name:         "X",
			Email:        "bad",
			Password:     "senha123",
			Confirmation: "senha12",
		})
		assert.False(t, got.Valid)

		errs := got.FieldErrors()
		assert.Len(t, errs, 4)
		assert.Equal(t, []string{"Passwords do not match"}, errs[credential.FieldConfirmation])
		assert.Equal(t, []string{"Invalid email format"}, errs[credential.FieldEmail])
		assert.True(t, got.Password.Has(credential.CodePasswordCommon))
	})

	t.Run("localized messages", func(t *testing.T) {
		got := v.WithLocale(language.Portuguese).ValidateSignup(credential.SignupForm{
			Name:         "Ana",
			Email:        "ana@example.com",
			Password:     "Str0ng!Pass",
			Confirmation: "other",
		})
		assert.Equal(t, []string{"As senhas não coincidem"}, got.Confirmation.Errors)
	})
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, language.BrazilianPortuguese, credential.ParseLocale("pt-BR,pt;q=0.9,en;q=0.8"))
	assert.Equal(t, language.BrazilianPortuguese, credential.ParseLocale("pt"))
	assert.Equal(t, language.AmericanEnglish, credential.ParseLocale("en-GB"))
	assert.Equal(t, credential.BaseLocale, credential.ParseLocale(""))
	assert.Equal(t, credential.BaseLocale, credential.ParseLocale("!!"))
}
