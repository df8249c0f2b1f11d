// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/internal/tui"
	"github.com/MKhiriev/go-balance-sync/models"
)

// pollInterval is how often the waiting commands re-read the session
// snapshot from the agent.
const pollInterval = 500 * time.Millisecond

func newSyncCommand(app *cliApp) *cobra.Command {
	sync := &cobra.Command{
		Use:   "sync",
		Short: "Pair with another device and sync",
	}
	sync.AddCommand(
		newSyncStartCommand(app),
		newSyncJoinCommand(app),
		newSyncCompleteCommand(app),
		newSyncStatusCommand(app),
		newSyncCancelCommand(app),
		newSyncWizardCommand(app),
	)
	return sync
}

func newSyncStartCommand(app *cliApp) *cobra.Command {
	var copyCodes bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a pairing session and print the offer codes",
		Long: `Opens an offer on this device's agent. Hand the printed codes to the other
device (balancectl sync join), then feed its answer codes to
balancectl sync complete.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := app.agent.StartOffer(cmd.Context())
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, codes)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Offer codes, enter them on the other device:")
			printCodes(out, codes, copyCodes)
			fmt.Fprintf(out, "Next: run %s with the other device's answer codes.\n", bold("balancectl sync complete"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyCodes, "copy", "c", false, "copy the codes to the clipboard")
	return cmd
}

func newSyncJoinCommand(app *cliApp) *cobra.Command {
	var (
		copyCodes bool
		wait      bool
	)

	cmd := &cobra.Command{
		Use:   "join [codes...]",
		Short: "Join a pairing session with the peer's offer codes",
		Long: `Feeds the offer codes from the other device to this agent and prints the
answer codes to take back. Codes are read from the arguments, or from stdin
(one per line, empty line to finish) when no arguments are given. With
--wait the command keeps polling until the sync finishes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := collectCodes(cmd, args)
			if err != nil {
				return err
			}

			answer, err := app.agent.JoinOffer(cmd.Context(), codes)
			if err != nil {
				return err
			}

			if app.json && !wait {
				return printJSON(cmd, answer)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Answer codes, take them back to the first device:")
			printCodes(out, answer, copyCodes)

			if !wait {
				fmt.Fprintf(out, "Watch progress with %s.\n", bold("balancectl sync status"))
				return nil
			}

			fmt.Fprintln(out, "Waiting for the other device to complete the exchange...")
			return pollUntilDone(cmd, app)
		},
	}

	cmd.Flags().BoolVarP(&copyCodes, "copy", "c", false, "copy the codes to the clipboard")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "poll until the sync finishes")
	return cmd
}

func newSyncCompleteCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "complete [codes...]",
		Short: "Finish pairing with the peer's answer codes and run the sync",
		Long: `Feeds the answer codes from the joining device to this agent, which then
connects to the peer and runs the sync. The command polls until the session
reaches a terminal state.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			codes, err := collectCodes(cmd, args)
			if err != nil {
				return err
			}

			if _, err := app.agent.CompleteOffer(cmd.Context(), codes); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Exchange accepted, syncing...")
			return pollUntilDone(cmd, app)
		},
	}
}

func newSyncStatusCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current sync session snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.agent.SyncStatus(cmd.Context())
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, status)
			}

			out := cmd.OutOrStdout()
			if !status.Active && status.Result == nil && status.Error == "" {
				fmt.Fprintln(out, "No sync session.")
				return nil
			}

			fmt.Fprintf(out, "session     %s\n", describeSession(status))
			fmt.Fprintf(out, "connection  %s\n", status.ConnectionState)
			if status.Message != "" {
				fmt.Fprintf(out, "message     %s\n", status.Message)
			}
			fmt.Fprintf(out, "records     sent %d, received %d\n", status.RecordsSent, status.RecordsReceived)
			if status.Result != nil {
				printSyncResult(out, *status.Result)
			}
			if status.Error != "" {
				fmt.Fprintf(out, "%s %s\n", red("✗"), status.Error)
			}
			return nil
		},
	}
}

func newSyncCancelCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Abort the current sync session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.agent.CancelSync(cmd.Context())
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, status)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s sync session closed (%s)\n", green("✓"), status.ConnectionState)
			return nil
		},
	}
}

func newSyncWizardCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactive pairing wizard",
		Long: `Full-screen walkthrough of the pairing flow: pick a role, exchange codes
with the other device and watch the sync progress live.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := tui.RunSyncWizard(cmd.Context(), app.agent)
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			return err
		},
	}
}

// printCodes writes the pairing codes and optionally copies them to the
// clipboard, one code per line.
func printCodes(out io.Writer, codes models.PairingCodes, toClipboard bool) {
	fmt.Fprintln(out)
	for _, code := range codes.Codes {
		fmt.Fprintln(out, code)
	}
	fmt.Fprintln(out)

	if !toClipboard {
		return
	}
	if err := clipboard.WriteAll(strings.Join(codes.Codes, "\n")); err != nil {
		fmt.Fprintf(out, "%s clipboard unavailable: %v\n", red("!"), err)
	} else {
		fmt.Fprintf(out, "%s codes copied to clipboard\n", green("✓"))
	}
}

// collectCodes takes pairing codes from the arguments or, when none are
// given, reads them from stdin one per line until an empty line or EOF.
// Codes contain "|", so pasting them as arguments needs shell quoting;
// stdin avoids that.
func collectCodes(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Paste the codes, one per line, finish with an empty line:")

	var codes []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		codes = append(codes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read codes: %w", err)
	}
	if len(codes) == 0 {
		return nil, errors.New("no codes provided")
	}
	return codes, nil
}

// pollUntilDone polls the agent's session snapshot until the sync reaches a
// terminal state, printing each phase transition once.
func pollUntilDone(cmd *cobra.Command, app *cliApp) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var lastPhase models.SyncPhase
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		status, err := app.agent.SyncStatus(ctx)
		if err != nil {
			return err
		}

		if status.Phase != lastPhase && status.Phase != "" {
			fmt.Fprintf(out, "  %s\n", faint(describePhase(status)))
			lastPhase = status.Phase
		}

		switch {
		case status.Phase == models.PhaseFailed || status.Error != "":
			return fmt.Errorf("sync failed: %s", status.Error)
		case status.Result != nil:
			if app.json {
				return printJSON(cmd, status.Result)
			}
			printSyncResult(out, *status.Result)
			return nil
		case !status.Active:
			return errors.New("sync session ended without a result")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func describePhase(status models.SyncStatus) string {
	switch status.Phase {
	case models.PhaseConnecting:
		return "connecting to peer"
	case models.PhaseHandshake:
		return "exchanging watermarks"
	case models.PhaseSending:
		return fmt.Sprintf("sending records (%d sent)", status.RecordsSent)
	case models.PhaseMerging:
		return fmt.Sprintf("merging records (%d received)", status.RecordsReceived)
	case models.PhaseFinalizing:
		return "finalizing"
	case models.PhaseDone:
		return "done"
	default:
		return string(status.Phase)
	}
}

func printSyncResult(out io.Writer, result models.SyncResult) {
	took := time.Duration(result.FinishedAt-result.StartedAt) * time.Millisecond
	fmt.Fprintf(out, "%s synced with %s in %s\n", green("✓"), shortID(result.PeerDeviceID), took)
	fmt.Fprintf(out, "  sent %d, received %d, upserted %d\n", result.TotalSent, result.TotalReceived, result.TotalUpserted)
	printMergeSummary(out, result.Merge)
}
