// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Code identifies a violated rule independently of the message language.
type Code string

// Rule codes, in evaluation order within each validator.
const (
	CodePasswordMinLength Code = "password.min_length"
	CodePasswordMaxLength Code = "password.max_length"
	CodePasswordUppercase Code = "password.uppercase"
	CodePasswordLowercase Code = "password.lowercase"
	CodePasswordDigit     Code = "password.digit"
	CodePasswordSpecial   Code = "password.special"
	CodePasswordCommon    Code = "password.common"
	CodePasswordRepeated  Code = "password.repeated"

	CodeNameMinLength Code = "name.min_length"
	CodeNameMaxLength Code = "name.max_length"
	CodeNameLetters   Code = "name.letters"

	CodeEmailInvalid         Code = "email.invalid"
	CodeConfirmationMismatch Code = "confirmation.mismatch"
)

// Message keys for strings that are not rule violations.
const (
	keyStrengthWeak   = "strength.weak"
	keyStrengthMedium = "strength.medium"
	keyStrengthStrong = "strength.strong"
)

// Supported locales. BaseLocale is used when nothing better matches.
var (
	BaseLocale       = language.AmericanEnglish
	SupportedLocales = []language.Tag{language.AmericanEnglish, language.BrazilianPortuguese}
)

var localeMatcher = language.NewMatcher(SupportedLocales)

// messageCatalog holds every user-facing string. Keys are rule codes.
var messageCatalog = mustBuildCatalog()

var catalogEntries = map[language.Tag]map[string]string{
	language.AmericanEnglish: {
		string(CodePasswordMinLength):    "Password must be at least %d characters",
		string(CodePasswordMaxLength):    "Password must be at most %d characters",
		string(CodePasswordUppercase):    "Must contain at least one uppercase letter",
		string(CodePasswordLowercase):    "Must contain at least one lowercase letter",
		string(CodePasswordDigit):        "Must contain at least one number",
		string(CodePasswordSpecial):      "Must contain at least one special character (!@#$%%&*)",
		string(CodePasswordCommon):       "This password is too common. Choose a more secure password",
		string(CodePasswordRepeated):     "Avoid repeating the same character more than 2 times in a row",
		string(CodeNameMinLength):        "Name must be at least %d characters",
		string(CodeNameMaxLength):        "Name must be at most %d characters",
		string(CodeNameLetters):          "Name must contain only letters",
		string(CodeEmailInvalid):         "Invalid email format",
		string(CodeConfirmationMismatch): "Passwords do not match",
		keyStrengthWeak:                  "Weak",
		keyStrengthMedium:                "Medium",
		keyStrengthStrong:                "Strong",
	},
	language.BrazilianPortuguese: {
		string(CodePasswordMinLength):    "A senha deve ter no mínimo %d caracteres",
		string(CodePasswordMaxLength):    "A senha deve ter no máximo %d caracteres",
		string(CodePasswordUppercase):    "Deve conter pelo menos uma letra maiúscula",
		string(CodePasswordLowercase):    "Deve conter pelo menos uma letra minúscula",
		string(CodePasswordDigit):        "Deve conter pelo menos um número",
		string(CodePasswordSpecial):      "Deve conter pelo menos um caractere especial (!@#$%%&*)",
		string(CodePasswordCommon):       "Esta senha é muito comum. Escolha uma senha mais segura",
		string(CodePasswordRepeated):     "Evite repetir o mesmo caractere mais de 2 vezes seguidas",
		string(CodeNameMinLength):        "O nome deve ter no mínimo %d caracteres",
		string(CodeNameMaxLength):        "O nome deve ter no máximo %d caracteres",
		string(CodeNameLetters):          "O nome deve conter apenas letras",
		string(CodeEmailInvalid):         "Formato de e-mail inválido",
		string(CodeConfirmationMismatch): "As senhas não coincidem",
		keyStrengthWeak:                  "Fraca",
		keyStrengthMedium:                "Média",
		keyStrengthStrong:                "Forte",
	},
}

func mustBuildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(BaseLocale))
	for tag, entries := range catalogEntries {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("credential: invalid catalog entry " + key + ": " + err.Error())
			}
		}
	}
	return b
}

// MatchLocale returns the supported locale closest to the given tags.
func MatchLocale(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return BaseLocale
	}
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return BaseLocale
	}
	return SupportedLocales[idx]
}

// ParseLocale parses a BCP 47 tag or Accept-Language header value and
// returns the closest supported locale.
func ParseLocale(value string) language.Tag {
	if value == "" {
		return BaseLocale
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil {
		return BaseLocale
	}
	return MatchLocale(tags...)
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}

// Message renders the text for a rule code in the given locale.
func Message(tag language.Tag, code Code, args ...any) string {
	return newPrinter(MatchLocale(tag)).Sprintf(string(code), args...)
}
