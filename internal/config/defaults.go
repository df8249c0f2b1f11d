package config

import (
	"os"
	"time"
)

// Built-in fallback values applied as the lowest-priority configuration
// source. A field keeps its default only when no other source sets it.
const (
	DefaultHTTPAddress     = "127.0.0.1:8484"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultDSN             = "balance.db"
	DefaultBackupDir       = "backups"
	DefaultLogLevel        = "info"
	DefaultListenAddress   = ":46464"
	DefaultPairingProfile  = PairingProfileLocal
	DefaultChunkCapacity   = 600
	DefaultOpenWaitTimeout = 60 * time.Second

	// DefaultTombstoneRetention keeps deleted records for 30 days, long
	// enough for a paired device that syncs rarely to still observe them.
	DefaultTombstoneRetention = 30 * 24 * time.Hour
	DefaultSweepInterval      = time.Hour
)

func defaultAgentConfig() *AgentConfig {
	return &AgentConfig{
		App: App{
			DeviceName: defaultDeviceName(),
			LogLevel:   DefaultLogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: DefaultDSN,
			},
			BackupDir: DefaultBackupDir,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Sync: Sync{
			ListenAddress:   DefaultListenAddress,
			PairingProfile:  DefaultPairingProfile,
			ChunkCapacity:   DefaultChunkCapacity,
			OpenWaitTimeout: DefaultOpenWaitTimeout,
		},
		Workers: Workers{
			TombstoneRetention: DefaultTombstoneRetention,
			SweepInterval:      DefaultSweepInterval,
		},
	}
}

func defaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Adapter: CLIAdapter{
			HTTPAddress:    "http://" + DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
	}
}

func defaultDeviceName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "balance-device"
	}

	return hostname
}
