// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package main

import (
	"log/slog"

	"github.com/samber/oops"

	"github.com/quizcard/credcheck/internal/credential"
	"github.com/quizcard/credcheck/internal/policy"
)

// validatorOptions select the policy and locale of a validator.
type validatorOptions struct {
	PolicyFile    string
	NameMaxLength int
	Locale        string
}

// buildValidator loads the policy file, if any, applies overrides and
// compiles the validator.
func buildValidator(opts validatorOptions) (*credential.Validator, error) {
	pol := credential.DefaultPolicy()
	if opts.PolicyFile != "" {
		file, err := policy.Load(opts.PolicyFile)
		if err != nil {
			return nil, err
		}
		pol = file.Policy()
		slog.Debug("credential policy loaded", "path", opts.PolicyFile, "version", file.Version)
	}
	if opts.NameMaxLength > 0 {
		pol.MaxNameLength = opts.NameMaxLength
	}

	v, err := credential.New(pol, credential.WithLocale(credential.ParseLocale(opts.Locale)))
	if err != nil {
		return nil, oops.With("policy_file", opts.PolicyFile).Wrap(err)
	}
	return v, nil
}
