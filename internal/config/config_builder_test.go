package config

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&AgentConfig{App: App{DeviceName: "laptop"}},
		&AgentConfig{App: App{LogLevel: "debug"}},
		defaultAgentConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "laptop", cfg.App.DeviceName)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

// TestBuild_EarlierSourceWins verifies that when two configs set the same
// field, the one appended first takes precedence.
func TestBuild_EarlierSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&AgentConfig{Storage: Storage{DB: DB{DSN: "first.db"}}},
		&AgentConfig{Storage: Storage{DB: DB{DSN: "second.db"}}},
		defaultAgentConfig(),
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first.db", cfg.Storage.DB.DSN)
}

// TestBuild_ValidationRejectsIncompleteConfig verifies that building without
// a defaults stage leaves required fields unset and fails validation.
func TestBuild_ValidationRejectsIncompleteConfig(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{})

	_, err := b.build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_DEVICE_NAME", "env-device")
	t.Setenv("APP_LOG_LEVEL", "warn")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-device", b.configs[0].App.DeviceName)
	assert.Equal(t, "warn", b.configs[0].App.LogLevel)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_FillsRequiredFields verifies that a builder with only the
// defaults stage produces a config that passes validation.
func TestWithDefaults_FillsRequiredFields(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultChunkCapacity, cfg.Sync.ChunkCapacity)
	assert.Equal(t, DefaultOpenWaitTimeout, cfg.Sync.OpenWaitTimeout)
	assert.Equal(t, DefaultPairingProfile, cfg.Sync.PairingProfile)
	assert.Equal(t, DefaultTombstoneRetention, cfg.Workers.TombstoneRetention)
	assert.NotEmpty(t, cfg.App.DeviceName)
}

// TestWithDefaults_DoesNotOverrideEarlierSources verifies that defaults only
// fill fields left unset by higher-priority sources.
func TestWithDefaults_DoesNotOverrideEarlierSources(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{
		Server: Server{HTTPAddress: "127.0.0.1:9000"},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := AgentJSONConfig{}
	payload.App.DeviceName = "json-device"
	payload.Server.HTTPAddress = "127.0.0.1:8001"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-device", b.configs[1].App.DeviceName)
	assert.Equal(t, "127.0.0.1:8001", b.configs[1].Server.HTTPAddress)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &AgentConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := AgentJSONConfig{}
	payload.App.DeviceName = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&AgentConfig{JSONFilePath: ""},
		&AgentConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.DeviceName)
}
