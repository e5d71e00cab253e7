// Package server wires and runs the application's HTTP server.
//
// It provides orchestration for the server lifecycle: startup, waiting for
// the caller's context to be cancelled and graceful shutdown with a bounded
// drain period.
package server
