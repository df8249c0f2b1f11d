// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli implements the balancectl command tree. Every command talks to
// the local Balance agent through [adapter.AgentAdapter]; the interactive
// pairing wizard lives in internal/tui and is launched from `sync wizard`.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/internal/adapter"
	"github.com/MKhiriev/go-balance-sync/internal/config"
	"github.com/MKhiriev/go-balance-sync/internal/logger"
)

// cliApp carries the state shared by all commands: the agent adapter and the
// values of the persistent flags.
type cliApp struct {
	agent adapter.AgentAdapter
	json  bool
}

// NewRootCommand assembles the balancectl command tree. A nil agent means the
// HTTP adapter is built from the environment configuration when a command
// runs; tests pass a prebuilt adapter instead.
func NewRootCommand(agent adapter.AgentAdapter) *cobra.Command {
	app := &cliApp{agent: agent}

	var (
		address string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:   "balancectl",
		Short: "Control the local Balance agent",
		Long: `balancectl talks to the Balance agent over its local HTTP API:
inspect and edit tasks, export and import backups, and pair this
device with another one for a peer-to-peer sync.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if app.agent != nil {
				return nil
			}

			cfg, err := config.GetCLIConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if address != "" {
				cfg.Adapter.HTTPAddress = address
			}
			if timeout > 0 {
				cfg.Adapter.RequestTimeout = timeout
			}

			app.agent, err = adapter.NewHTTPAgentAdapter(cfg.Adapter, logger.NewCLILogger("balancectl"))
			return err
		},
	}

	root.PersistentFlags().StringVarP(&address, "address", "a", "", "agent API address (default from BALANCECTL_ADDRESS)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 0, "request timeout for agent calls")
	root.PersistentFlags().BoolVar(&app.json, "json", false, "print raw JSON instead of tables")

	root.AddCommand(
		newStatusCommand(app),
		newTaskCommand(app),
		newBackupCommand(app),
		newSyncCommand(app),
	)

	return root
}

// BuildInfo carries the ldflags-injected build metadata shown by
// `balancectl version`.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// Execute runs the command tree against the real agent. Called from
// cmd/balancectl.
func Execute(info BuildInfo) {
	root := NewRootCommand(nil)
	root.AddCommand(newVersionCommand(info))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", orNA(info.Version))
			fmt.Fprintf(out, "Build date: %s\n", orNA(info.Date))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(info.Commit))
		},
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
