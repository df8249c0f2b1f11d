// Package http implements the agent's local REST API.
//
// It exposes route wiring, request handlers, and middleware for the
// balancectl client: task and category CRUD, the preferences singleton,
// backup export/import, and the pairing/sync session endpoints.
// Cross-cutting concerns such as request tracing, access logging, and
// response compression are handled here before requests reach the service
// layer.
package http
