// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/quizcard/credcheck/internal/config"
	"github.com/quizcard/credcheck/internal/credential"
)

// stdinArg makes a command read the value from standard input, which keeps
// passwords out of shell history.
const stdinArg = "-"

// checkConfig holds flags shared by the check subcommands.
type checkConfig struct {
	jsonOutput bool
}

// NewCheckCmd creates the check command group.
func NewCheckCmd() *cobra.Command {
	cc := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a credential offline",
		Long: `Run a single validator against a value and print the result.

Pass "-" as the value to read it from standard input. The command exits
non-zero when the value is rejected.`,
	}
	cmd.PersistentFlags().BoolVar(&cc.jsonOutput, "json", false, "print the result as JSON")
	cmd.PersistentFlags().String("policy", "", "credential policy file")
	cmd.PersistentFlags().Int("name-max-length", 0, "override the maximum display-name length")
	cmd.PersistentFlags().String("locale", "", "message locale (en-US or pt-BR)")

	cmd.AddCommand(&cobra.Command{
		Use:   "email ADDRESS",
		Short: "Check an email address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cc, args, func(v *credential.Validator, in []string) (any, bool) {
				res := v.ValidateEmail(credential.NormalizeEmail(in[0]))
				return res, res.Valid
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "password PASSWORD",
		Short: "Check a password against the policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cc, args, func(v *credential.Validator, in []string) (any, bool) {
				res := v.ValidatePassword(in[0])
				return res, res.Valid
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "name NAME",
		Short: "Check a display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cc, args, func(v *credential.Validator, in []string) (any, bool) {
				res := v.ValidateName(in[0])
				return res, res.Valid
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "strength PASSWORD",
		Short: "Score the strength of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cc, args, func(v *credential.Validator, in []string) (any, bool) {
				return strengthReport{Strength: v.ScoreStrength(in[0]), validator: v}, true
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "confirm PASSWORD CONFIRMATION",
		Short: "Check that a confirmation matches a password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, cc, args, func(v *credential.Validator, in []string) (any, bool) {
				res := v.ValidateConfirmation(in[0], in[1])
				return res, res.Valid
			})
		},
	})

	return cmd
}

// strengthReport adds the localized label to a Strength.
type strengthReport struct {
	credential.Strength
	validator *credential.Validator
}

func (s strengthReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Score          int     `json:"score"`
		Label          string  `json:"label"`
		LocalizedLabel string  `json:"localized_label"`
		Percent        float64 `json:"percent"`
	}{s.Score, string(s.Label), s.validator.LocalizedLabel(s.Strength), s.Percent()})
}

type checkFunc func(v *credential.Validator, args []string) (result any, ok bool)

func runCheck(cmd *cobra.Command, cc *checkConfig, args []string, check checkFunc) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	v, err := buildValidator(validatorOptions{
		PolicyFile:    cfg.Policy.File,
		NameMaxLength: cfg.Name.MaxLength,
		Locale:        cfg.Locale,
	})
	if err != nil {
		return err
	}

	values, err := resolveArgs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	result, ok := check(v, values)
	out := cmd.OutOrStdout()
	if cc.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return oops.Code("CHECK_OUTPUT_FAILED").Wrap(err)
		}
	} else {
		printCheckResult(out, v, result)
	}

	if !ok {
		return oops.Code("CHECK_REJECTED").Errorf("%s rejected", cmd.Name())
	}
	return nil
}

// resolveArgs replaces "-" arguments with successive lines read from r.
func resolveArgs(r io.Reader, args []string) ([]string, error) {
	var scanner *bufio.Scanner
	out := make([]string, len(args))
	for i, arg := range args {
		if arg != stdinArg {
			out[i] = arg
			continue
		}
		if scanner == nil {
			scanner = bufio.NewScanner(r)
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return nil, oops.Code("CHECK_INPUT_FAILED").Wrap(err)
			}
			return nil, oops.Code("CHECK_INPUT_FAILED").
				With("arg", i+1).
				Errorf("expected a value on standard input")
		}
		out[i] = strings.TrimRight(scanner.Text(), "\r")
	}
	return out, nil
}

func printCheckResult(w io.Writer, v *credential.Validator, result any) {
	switch res := result.(type) {
	case credential.NameResult:
		fmt.Fprintf(w, "name: %q\n", res.NormalizedName)
		printResult(w, res.Result)
	case credential.Result:
		printResult(w, res)
	case strengthReport:
		fmt.Fprintf(w, "score: %d/%d\n", res.Score, credential.MaxStrengthScore)
		fmt.Fprintf(w, "label: %s (%s)\n", res.Label, v.LocalizedLabel(res.Strength))
	}
}

func printResult(w io.Writer, res credential.Result) {
	if res.Valid {
		fmt.Fprintln(w, "valid")
		return
	}
	fmt.Fprintln(w, "invalid")
	for i, msg := range res.Errors {
		fmt.Fprintf(w, "  - %s [%s]\n", msg, res.Codes[i])
	}
}
