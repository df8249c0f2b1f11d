package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-balance-sync/models"
)

func newBackupCommand(app *cliApp) *cobra.Command {
	backup := &cobra.Command{
		Use:   "backup",
		Short: "Export and import full backups",
	}
	backup.AddCommand(newBackupExportCommand(app), newBackupImportCommand(app))
	return backup
}

func newBackupExportCommand(app *cliApp) *cobra.Command {
	var onAgent string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a backup document",
		Long: `Without arguments the backup document is written to stdout. With a file
argument it is written to that file. --on-agent asks the agent to store the
backup in its own backup directory instead of transferring it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if onAgent != "" {
				exported, err := app.agent.ExportBackupToFile(ctx, onAgent)
				if err != nil {
					return err
				}
				if app.json {
					return printJSON(cmd, exported)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s backup written on agent: %s\n", green("✓"), exported.Path)
				return nil
			}

			document, err := app.agent.ExportBackup(ctx)
			if err != nil {
				return err
			}

			// документ пишем как есть, без переразметки JSON
			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(document)
				return err
			}

			if err := os.WriteFile(args[0], document, 0o600); err != nil {
				return fmt.Errorf("write backup file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s backup written to %s (%d bytes)\n", green("✓"), args[0], len(document))
			return nil
		},
	}

	cmd.Flags().StringVar(&onAgent, "on-agent", "", "store the backup on the agent under this file name")
	return cmd
}

func newBackupImportCommand(app *cliApp) *cobra.Command {
	var (
		mode    string
		onAgent string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a backup document",
		Long: `Reads the backup document from the given file, or from stdin when the
argument is omitted or "-". --on-agent imports a file that already lives in
the agent's backup directory instead. --mode picks merge (keep newer
records, the default) or replace (drop local data first).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importMode, err := parseImportMode(mode)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			var result models.ImportResult
			if onAgent != "" {
				result, err = app.agent.ImportBackupFromFile(ctx, onAgent, importMode)
			} else {
				var document []byte
				document, err = readDocument(cmd, args)
				if err != nil {
					return err
				}
				result, err = app.agent.ImportBackup(ctx, document, importMode)
			}
			if err != nil {
				return err
			}

			if app.json {
				return printJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s imported %d record(s) in %s mode\n", green("✓"), result.TotalImported, result.Mode)
			printMergeSummary(out, result.Merge)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "merge", "merge or replace")
	cmd.Flags().StringVar(&onAgent, "on-agent", "", "import a backup file from the agent's disk")
	return cmd
}

func parseImportMode(raw string) (models.ImportMode, error) {
	switch models.ImportMode(raw) {
	case "", models.ImportModeMerge:
		return models.ImportModeMerge, nil
	case models.ImportModeReplace:
		return models.ImportModeReplace, nil
	default:
		return "", fmt.Errorf("unknown import mode %q: want merge or replace", raw)
	}
}

// readDocument loads the backup document from the file argument, or from
// stdin when the argument is omitted or "-".
func readDocument(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		document, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read backup from stdin: %w", err)
		}
		return document, nil
	}

	document, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return document, nil
}
