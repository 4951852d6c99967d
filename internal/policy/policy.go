// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Package policy loads credential rule overrides from a YAML file.
package policy

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/quizcard/credcheck/internal/credential"
)

// SupportedVersions is the range of policy file versions this build reads.
const SupportedVersions = "^1"

// File is the on-disk policy format.
type File struct {
	Version  string        `yaml:"version" json:"version" jsonschema:"description=Semantic version of the policy format"`
	Password PasswordRules `yaml:"password,omitempty" json:"password,omitempty"`
	Name     NameRules     `yaml:"name,omitempty" json:"name,omitempty"`
}

// PasswordRules overrides the password rules.
type PasswordRules struct {
	MinLength         int    `yaml:"min_length,omitempty" json:"min_length,omitempty" jsonschema:"minimum=1"`
	MaxLength         int    `yaml:"max_length,omitempty" json:"max_length,omitempty" jsonschema:"minimum=1"`
	SpecialCharacters string `yaml:"special_characters,omitempty" json:"special_characters,omitempty" jsonschema:"minLength=1"`

	// BuiltinDenyList keeps the built-in common-password list. Defaults to true.
	BuiltinDenyList *bool    `yaml:"builtin_deny_list,omitempty" json:"builtin_deny_list,omitempty"`
	DenyList        []string `yaml:"deny_list,omitempty" json:"deny_list,omitempty"`
	DenyPatterns    []string `yaml:"deny_patterns,omitempty" json:"deny_patterns,omitempty"`
}

// NameRules overrides the display-name rules.
type NameRules struct {
	MinLength int `yaml:"min_length,omitempty" json:"min_length,omitempty" jsonschema:"minimum=1"`
	MaxLength int `yaml:"max_length,omitempty" json:"max_length,omitempty" jsonschema:"minimum=1"`
}

// Parse validates data against the policy schema and decodes it.
func Parse(data []byte) (*File, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, oops.Code("POLICY_INVALID").Wrap(err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("POLICY_INVALID").With("operation", "decode policy").Wrap(err)
	}

	if err := f.checkVersion(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses the policy file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, oops.Code("POLICY_READ_FAILED").With("path", path).Wrap(err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}
	return f, nil
}

func (f *File) checkVersion() error {
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return oops.Code("POLICY_INVALID_VERSION").With("version", f.Version).Wrap(err)
	}
	constraint, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return oops.Code("POLICY_INVALID_VERSION").Wrap(err)
	}
	if !constraint.Check(v) {
		return oops.Code("POLICY_UNSUPPORTED_VERSION").
			With("version", f.Version).
			With("supported", SupportedVersions).
			Errorf("policy version %s is not supported", f.Version)
	}
	return nil
}

// Policy converts the file into a credential.Policy. Omitted values keep
// their defaults.
func (f *File) Policy() credential.Policy {
	p := credential.DefaultPolicy()
	if f.Password.MinLength > 0 {
		p.MinPasswordLength = f.Password.MinLength
	}
	if f.Password.MaxLength > 0 {
		p.MaxPasswordLength = f.Password.MaxLength
	}
	if f.Password.SpecialCharacters != "" {
		p.SpecialCharacters = f.Password.SpecialCharacters
	}
	if f.Name.MinLength > 0 {
		p.MinNameLength = f.Name.MinLength
	}
	if f.Name.MaxLength > 0 {
		p.MaxNameLength = f.Name.MaxLength
	}

	deny := []string{}
	if f.Password.BuiltinDenyList == nil || *f.Password.BuiltinDenyList {
		deny = append(deny, credential.CommonPasswords...)
	}
	p.DenyList = append(deny, f.Password.DenyList...)
	p.DenyPatterns = append([]string(nil), f.Password.DenyPatterns...)
	return p
}
