// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 QuizCard Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the credcheck CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credcheck",
		Short: "credcheck - credential validation for QuizCard",
		Long: `credcheck validates signup credentials (name, email, password and
confirmation), scores password strength, and serves account signup and
login over HTTP with PostgreSQL storage.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/credcheck/config.yaml if present)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
