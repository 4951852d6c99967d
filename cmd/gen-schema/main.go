// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

// Command gen-schema writes the credential policy JSON Schema file.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/quizcard/credcheck/internal/policy"
)

const defaultOut = "schemas/policy.schema.json"

func main() {
	out := pflag.StringP("out", "o", defaultOut, "output file")
	pflag.Parse()

	if err := generate(*out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n", *out)
}

// generate writes the policy schema to outPath, creating parent directories.
func generate(outPath string) error {
	schema, err := policy.GenerateSchema()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return oops.Code("SCHEMA_WRITE_FAILED").With("path", outPath).Wrap(err)
	}
	if err := os.WriteFile(outPath, append(schema, '\n'), 0o600); err != nil {
		return oops.Code("SCHEMA_WRITE_FAILED").With("path", outPath).Wrap(err)
	}
	return nil
}
