// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks that the final merged [AgentConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *AgentConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Sync.ListenAddress == "" || cfg.Sync.ChunkCapacity <= 0 || cfg.Sync.OpenWaitTimeout <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Sync.PairingProfile != PairingProfileLocal && cfg.Sync.PairingProfile != PairingProfileRemote {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.TombstoneRetention <= 0 || cfg.Workers.SweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *CLIConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
