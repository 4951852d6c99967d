// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package credential

// Field names used when reporting form errors.
const (
	FieldName         = "nome"
	FieldEmail        = "email"
	FieldPassword     = "senha"
	FieldConfirmation = "confirmacao"
)

// SignupForm is the raw input of the account creation form.
type SignupForm struct {
	Name         string
	Email        string
	Password     string
	Confirmation string
}

// FormResult is the per-field outcome of ValidateSignup.
type FormResult struct {
	Valid        bool       `json:"valid"`
	Name         NameResult `json:"nome"`
	Email        Result     `json:"email"`
	Password     Result     `json:"senha"`
	Confirmation Result     `json:"confirmacao"`
	Strength     Strength   `json:"strength"`

	// NormalizedEmail is the trimmed, lower-cased email that was checked.
	NormalizedEmail string `json:"normalized_email"`
}

// FieldErrors returns the messages of every failing field, keyed by field name.
func (r FormResult) FieldErrors() map[string][]string {
	out := make(map[string][]string)
	add := func(field string, res Result) {
		if !res.Valid {
			out[field] = res.Errors
		}
	}
	add(FieldName, r.Name.Result)
	add(FieldEmail, r.Email)
	add(FieldPassword, r.Password)
	add(FieldConfirmation, r.Confirmation)
	return out
}

// ValidateSignup runs every field validator over the form. All fields are
// checked even when an earlier one fails.
func (v *Validator) ValidateSignup(f SignupForm) FormResult {
	email := NormalizeEmail(f.Email)
	r := FormResult{
		Name:            v.ValidateName(f.Name),
		Email:           v.ValidateEmail(email),
		Password:        v.ValidatePassword(f.Password),
		Confirmation:    v.ValidateConfirmation(f.Password, f.Confirmation),
		Strength:        v.ScoreStrength(f.Password),
		NormalizedEmail: email,
	}
	r.Valid = r.Name.Valid && r.Email.Valid && r.Password.Valid && r.Confirmation.Valid
	return r
}
