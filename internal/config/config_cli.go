package config

import (
	"fmt"
	"time"

	"dario.cat/mergo"
)

// CLIAdapter holds network settings used by the balancectl transport layer.
type CLIAdapter struct {
	// HTTPAddress is the base URL of the agent HTTP API,
	// including the scheme (e.g. "http://127.0.0.1:8484").
	// Env: BALANCECTL_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the default timeout for outbound requests to the
	// agent API.
	// Env: BALANCECTL_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// CLIConfig is the top-level configuration for the balancectl client.
type CLIConfig struct {
	// Adapter contains the agent API address and timeouts.
	Adapter CLIAdapter `envPrefix:"BALANCECTL_"`
}

// GetCLIConfig loads and validates the balancectl configuration from
// environment variables, falling back to built-in defaults.
//
// Unlike [GetAgentConfig] there is no flags stage here: balancectl flags
// belong to the cobra command tree, which overrides the loaded values via
// its persistent flags after this function returns.
func GetCLIConfig() (*CLIConfig, error) {
	cfg := &CLIConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get cli config: %w", err)
	}

	if err := mergo.Merge(cfg, defaultCLIConfig()); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	return cfg, cfg.validate()
}
