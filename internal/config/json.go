package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// AgentJSONConfig mirrors [AgentConfig] with JSON tags and Duration wrappers
// so duration fields can be written as strings like "30s" in the file.
type AgentJSONConfig struct {
	App struct {
		DeviceName string `json:"device_name"`
		LogLevel   string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		BackupDir      string `json:"backup_dir"`
		SkipMigrations bool   `json:"skip_migrations"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Sync struct {
		ListenAddress   string   `json:"listen_address"`
		PairingProfile  string   `json:"pairing_profile"`
		ChunkCapacity   int      `json:"chunk_capacity"`
		OpenWaitTimeout Duration `json:"open_wait_timeout"`
	} `json:"sync,omitempty"`

	Workers struct {
		TombstoneRetention Duration `json:"tombstone_retention"`
		SweepInterval      Duration `json:"sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*AgentConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg AgentJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &AgentConfig{
		App: App{
			DeviceName: jsonCfg.App.DeviceName,
			LogLevel:   jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			BackupDir:      jsonCfg.Storage.BackupDir,
			SkipMigrations: jsonCfg.Storage.SkipMigrations,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Sync: Sync{
			ListenAddress:   jsonCfg.Sync.ListenAddress,
			PairingProfile:  jsonCfg.Sync.PairingProfile,
			ChunkCapacity:   jsonCfg.Sync.ChunkCapacity,
			OpenWaitTimeout: time.Duration(jsonCfg.Sync.OpenWaitTimeout),
		},
		Workers: Workers{
			TombstoneRetention: time.Duration(jsonCfg.Workers.TombstoneRetention),
			SweepInterval:      time.Duration(jsonCfg.Workers.SweepInterval),
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
