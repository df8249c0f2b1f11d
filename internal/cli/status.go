package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/models"
)

func newStatusCommand(app *cliApp) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show agent health and sync state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			health, err := app.agent.Health(ctx)
			if err != nil {
				return fmt.Errorf("agent unreachable: %w", err)
			}
			session, err := app.agent.SyncStatus(ctx)
			if err != nil {
				return err
			}
			prefs, err := app.agent.GetPreferences(ctx)
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, struct {
					Health models.HealthStatus `json:"health"`
					Sync   models.SyncStatus   `json:"sync"`
				}{health, session})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s agent %s, Balance %s\n", green("●"), health.Status, health.Version)
			fmt.Fprintf(out, "  device     %s (%s)\n", health.DeviceName, shortID(health.DeviceID))
			if prefs.LastSyncTimestamp != nil {
				fmt.Fprintf(out, "  last sync  %s\n", formatMillis(*prefs.LastSyncTimestamp))
			} else {
				fmt.Fprintf(out, "  last sync  %s\n", faint("never"))
			}
			fmt.Fprintf(out, "  session    %s\n", describeSession(session))
			return nil
		},
	}
}

// describeSession reduces a session snapshot to one status line.
func describeSession(status models.SyncStatus) string {
	switch {
	case status.Active:
		return fmt.Sprintf("%s as %s (%s)", status.Phase, status.Role, status.ConnectionState)
	case status.Error != "":
		return fmt.Sprintf("failed: %s", status.Error)
	default:
		return "idle"
	}
}
