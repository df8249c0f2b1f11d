package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-balance-sync/models"
)

// ─────────────────────────── backup export ───────────────────────────

func TestBackupExport_WritesDocumentToStdout(t *testing.T) {
	agent, cli := newTestCLI(t)

	document := []byte(`{"format":"balance-backup","version":1}`)
	agent.EXPECT().ExportBackup(gomock.Any()).Return(document, nil)

	err := cli.run("backup", "export")

	require.NoError(t, err)
	// документ уходит байт-в-байт, без переформатирования
	assert.Equal(t, string(document), cli.out.String())
}

func TestBackupExport_WritesDocumentToFile(t *testing.T) {
	agent, cli := newTestCLI(t)

	document := []byte(`{"format":"balance-backup"}`)
	agent.EXPECT().ExportBackup(gomock.Any()).Return(document, nil)

	path := filepath.Join(t.TempDir(), "backup.json")
	err := cli.run("backup", "export", path)

	require.NoError(t, err)
	written, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, document, written)
	assert.Contains(t, cli.out.String(), "backup written to")
}

func TestBackupExport_OnAgent(t *testing.T) {
	agent, cli := newTestCLI(t)

	agent.EXPECT().ExportBackupToFile(gomock.Any(), "sunday.json").
		Return(models.ExportedBackup{Path: "/var/lib/balance/backups/sunday.json"}, nil)

	err := cli.run("backup", "export", "--on-agent", "sunday.json")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "backup written on agent: /var/lib/balance/backups/sunday.json")
}

// ─────────────────────────── backup import ───────────────────────────

func TestBackupImport_FromStdinDefaultsToMerge(t *testing.T) {
	agent, cli := newTestCLI(t)

	document := []byte(`{"format":"balance-backup","tasks":[]}`)
	cli.root.SetIn(bytes.NewReader(document))

	agent.EXPECT().ImportBackup(gomock.Any(), gomock.Any(), models.ImportModeMerge).DoAndReturn(
		func(_ context.Context, got []byte, _ models.ImportMode) (models.ImportResult, error) {
			assert.Equal(t, document, got)

			summary := models.NewMergeSummary()
			summary.Record(models.EntityTasks, models.MergeCounts{NewRecords: 3, LocalWins: 1})
			return models.ImportResult{Mode: models.ImportModeMerge, Merge: summary, TotalImported: 4}, nil
		})

	err := cli.run("backup", "import")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "imported 4 record(s) in merge mode")
	assert.Contains(t, cli.out.String(), "new 3")
}

func TestBackupImport_FromFileWithReplaceMode(t *testing.T) {
	agent, cli := newTestCLI(t)

	document := []byte(`{"format":"balance-backup"}`)
	path := filepath.Join(t.TempDir(), "restore.json")
	require.NoError(t, os.WriteFile(path, document, 0o600))

	agent.EXPECT().ImportBackup(gomock.Any(), document, models.ImportModeReplace).
		Return(models.ImportResult{Mode: models.ImportModeReplace, Merge: models.NewMergeSummary(), TotalImported: 12}, nil)

	err := cli.run("backup", "import", path, "--mode", "replace")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "imported 12 record(s) in replace mode")
}

func TestBackupImport_OnAgent(t *testing.T) {
	agent, cli := newTestCLI(t)

	agent.EXPECT().ImportBackupFromFile(gomock.Any(), "sunday.json", models.ImportModeMerge).
		Return(models.ImportResult{Mode: models.ImportModeMerge, Merge: models.NewMergeSummary(), TotalImported: 2}, nil)

	err := cli.run("backup", "import", "--on-agent", "sunday.json")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "imported 2 record(s)")
}

func TestBackupImport_UnknownMode(t *testing.T) {
	_, cli := newTestCLI(t)

	err := cli.run("backup", "import", "--mode", "overwrite")

	require.ErrorContains(t, err, `unknown import mode "overwrite"`)
}

func TestBackupImport_MissingFile(t *testing.T) {
	_, cli := newTestCLI(t)

	err := cli.run("backup", "import", filepath.Join(t.TempDir(), "absent.json"))

	require.ErrorContains(t, err, "read backup file")
}

func TestBackupImport_ReportsFailedBatches(t *testing.T) {
	agent, cli := newTestCLI(t)

	summary := models.NewMergeSummary()
	summary.Record(models.EntityTasks, models.MergeCounts{NewRecords: 2})
	summary.Fail(models.EntityCompletions, errors.New("completions batch: disk full"))

	document := []byte(`{"format":"balance-backup"}`)
	cli.root.SetIn(bytes.NewReader(document))
	agent.EXPECT().ImportBackup(gomock.Any(), document, models.ImportModeMerge).
		Return(models.ImportResult{Mode: models.ImportModeMerge, Merge: summary, TotalImported: 2}, nil)

	err := cli.run("backup", "import")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "completions batch: disk full")
}
