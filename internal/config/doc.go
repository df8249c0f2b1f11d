// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources; earlier sources take
// precedence and later sources only fill fields that are still unset:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetAgentConfig] for the agent daemon and
// [GetCLIConfig] for the balancectl command-line client. The CLI loader has
// no flags stage because the cobra command tree owns the flag surface there.
package config
