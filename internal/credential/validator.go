// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Result is the outcome of a single validation call.
// Errors and Codes are parallel and ordered by rule evaluation order.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
	Codes  []Code   `json:"codes"`
}

// Has reports whether the result contains the given rule code.
func (r Result) Has(code Code) bool {
	for _, c := range r.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// NameResult is a Result carrying the trimmed name.
type NameResult struct {
	Result
	NormalizedName string `json:"normalized_name"`
}

// resultBuilder accumulates violations in order.
type resultBuilder struct {
	printer *message.Printer
	errors  []string
	codes   []Code
}

func (b *resultBuilder) fail(code Code, args ...any) {
	b.codes = append(b.codes, code)
	b.errors = append(b.errors, b.printer.Sprintf(string(code), args...))
}

func (b *resultBuilder) result() Result {
	errs := b.errors
	if errs == nil {
		errs = []string{}
	}
	codes := b.codes
	if codes == nil {
		codes = []Code{}
	}
	return Result{Valid: len(codes) == 0, Errors: errs, Codes: codes}
}

// Validator applies a Policy and renders messages in one locale.
type Validator struct {
	policy   Policy
	denied   map[string]struct{}
	patterns []glob.Glob
	special  map[rune]struct{}
	locale   language.Tag
	printer  *message.Printer
}

// Option configures a Validator.
type Option func(*Validator)

// WithLocale selects the message language. Unsupported tags fall back to
// the closest supported locale.
func WithLocale(tag language.Tag) Option {
	return func(v *Validator) {
		v.locale = MatchLocale(tag)
	}
}

// New builds a Validator for the given policy. Zero-valued policy fields
// take their defaults.
func New(policy Policy, opts ...Option) (*Validator, error) {
	p := policy.withDefaults()
	if p.MinPasswordLength > p.MaxPasswordLength {
		return nil, oops.Code("CREDENTIAL_INVALID_POLICY").
			With("min", p.MinPasswordLength).
			With("max", p.MaxPasswordLength).
			Errorf("password min length exceeds max length")
	}
	if p.MinNameLength > p.MaxNameLength {
		return nil, oops.Code("CREDENTIAL_INVALID_POLICY").
			With("min", p.MinNameLength).
			With("max", p.MaxNameLength).
			Errorf("name min length exceeds max length")
	}

	v := &Validator{
		policy:  p,
		denied:  make(map[string]struct{}, len(p.DenyList)),
		special: make(map[rune]struct{}, len(p.SpecialCharacters)),
		locale:  BaseLocale,
	}
	for _, entry := range p.DenyList {
		v.denied[strings.ToLower(entry)] = struct{}{}
	}
	for _, r := range p.SpecialCharacters {
		v.special[r] = struct{}{}
	}
	for _, pattern := range p.DenyPatterns {
		g, err := glob.Compile(strings.ToLower(pattern))
		if err != nil {
			return nil, oops.Code("CREDENTIAL_INVALID_POLICY").
				With("pattern", pattern).
				Wrap(err)
		}
		v.patterns = append(v.patterns, g)
	}

	for _, opt := range opts {
		opt(v)
	}
	v.printer = newPrinter(v.locale)
	return v, nil
}

// Policy returns the effective policy, defaults applied.
func (v *Validator) Policy() Policy {
	return v.policy
}

// Locale returns the message language.
func (v *Validator) Locale() language.Tag {
	return v.locale
}

// WithLocale returns a copy of v rendering messages in tag.
// The compiled policy is shared.
func (v *Validator) WithLocale(tag language.Tag) *Validator {
	tag = MatchLocale(tag)
	if tag == v.locale {
		return v
	}
	clone := *v
	clone.locale = tag
	clone.printer = newPrinter(tag)
	return &clone
}

// Message renders the text for code in the validator's locale.
func (v *Validator) Message(code Code, args ...any) string {
	return v.printer.Sprintf(string(code), args...)
}

func (v *Validator) builder() *resultBuilder {
	return &resultBuilder{printer: v.printer}
}

var defaultValidator = mustDefault()

func mustDefault() *Validator {
	v, err := New(DefaultPolicy())
	if err != nil {
		panic(err)
	}
	return v
}

// Default returns the validator behind the package-level functions.
func Default() *Validator {
	return defaultValidator
}

// ValidatePassword checks s against the default policy.
func ValidatePassword(s string) Result {
	return defaultValidator.ValidatePassword(s)
}

// ValidateName checks s against the default policy.
func ValidateName(s string) NameResult {
	return defaultValidator.ValidateName(s)
}
