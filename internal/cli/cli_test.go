// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-balance-sync/internal/mock"
	"github.com/MKhiriev/go-balance-sync/models"
)

// newTestCLI собирает дерево команд поверх mock-адаптера и перехватывает вывод.
func newTestCLI(t *testing.T) (*mock.MockAgentAdapter, *cobraRunner) {
	t.Helper()
	color.NoColor = true

	ctrl := gomock.NewController(t)
	agent := mock.NewMockAgentAdapter(ctrl)

	root := NewRootCommand(agent)
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)

	return agent, &cobraRunner{root: root, out: out}
}

// cobraRunner wraps a root command so tests can run it several ways without
// repeating the SetArgs/Execute dance.
type cobraRunner struct {
	root *cobra.Command
	out  *bytes.Buffer
}

func (r *cobraRunner) run(args ...string) error {
	r.out.Reset()
	r.root.SetArgs(args)
	return r.root.Execute()
}

// ─────────────────────────── Status ───────────────────────────

func TestStatus_Healthy(t *testing.T) {
	agent, cli := newTestCLI(t)

	lastSync := int64(1_700_000_000_000)
	agent.EXPECT().Health(gomock.Any()).Return(models.HealthStatus{
		Status:  "ok",
		AppInfo: models.AppInfo{Version: "1.2.3", DeviceID: "device-7-aaaa-bbbb", DeviceName: "kitchen-pi"},
	}, nil)
	agent.EXPECT().SyncStatus(gomock.Any()).Return(models.SyncStatus{ConnectionState: "idle"}, nil)
	agent.EXPECT().GetPreferences(gomock.Any()).Return(models.Preferences{LastSyncTimestamp: &lastSync}, nil)

	err := cli.run("status")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "agent ok, Balance 1.2.3")
	assert.Contains(t, cli.out.String(), "kitchen-pi")
	assert.Contains(t, cli.out.String(), "session    idle")
	assert.NotContains(t, cli.out.String(), "never")
}

func TestStatus_NeverSynced(t *testing.T) {
	agent, cli := newTestCLI(t)

	agent.EXPECT().Health(gomock.Any()).Return(models.HealthStatus{Status: "ok"}, nil)
	agent.EXPECT().SyncStatus(gomock.Any()).Return(models.SyncStatus{ConnectionState: "idle"}, nil)
	agent.EXPECT().GetPreferences(gomock.Any()).Return(models.Preferences{}, nil)

	err := cli.run("status")

	require.NoError(t, err)
	assert.Contains(t, cli.out.String(), "last sync  never")
}

func TestStatus_AgentDown(t *testing.T) {
	agent, cli := newTestCLI(t)

	agent.EXPECT().Health(gomock.Any()).Return(models.HealthStatus{}, errors.New("connection refused"))

	err := cli.run("status")

	require.ErrorContains(t, err, "agent unreachable")
}

func TestStatus_JSON(t *testing.T) {
	agent, cli := newTestCLI(t)

	agent.EXPECT().Health(gomock.Any()).Return(models.HealthStatus{Status: "ok"}, nil)
	agent.EXPECT().SyncStatus(gomock.Any()).Return(models.SyncStatus{Active: true, Role: models.RoleJoiner, ConnectionState: "open"}, nil)
	agent.EXPECT().GetPreferences(gomock.Any()).Return(models.Preferences{}, nil)

	err := cli.run("--json", "status")

	require.NoError(t, err)
	var decoded struct {
		Health models.HealthStatus `json:"health"`
		Sync   models.SyncStatus   `json:"sync"`
	}
	require.NoError(t, json.Unmarshal(cli.out.Bytes(), &decoded))
	assert.Equal(t, "ok", decoded.Health.Status)
	assert.Equal(t, models.RoleJoiner, decoded.Sync.Role)
}

// ─────────────────────────── Helpers ───────────────────────────

func TestShortID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", shortID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "tiny", shortID("tiny"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "very lon…", truncate("very long note", 9))
	// рубим по рунам, не по байтам
	assert.Equal(t, "прив…", truncate("привет мир", 5))
}

func TestDescribeSession(t *testing.T) {
	assert.Equal(t, "idle", describeSession(models.SyncStatus{ConnectionState: "idle"}))
	assert.Equal(t, "failed: peer gone", describeSession(models.SyncStatus{Error: "peer gone"}))
	assert.Equal(t, "merging as initiator (open)", describeSession(models.SyncStatus{
		Active:          true,
		Role:            models.RoleInitiator,
		ConnectionState: "open",
		Phase:           models.PhaseMerging,
	}))
}
