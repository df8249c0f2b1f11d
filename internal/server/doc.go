// Package server runs the agent's HTTP API server.
//
// It owns the server lifecycle: startup, signal handling, and graceful
// shutdown.
package server
