// Package server wires the clone service together.
//
// Server Lifecycle:
//  1. Build logger and metrics registry from configuration
//  2. Create the page renderer, capture pipeline and context cache
//  3. Register generation providers that have API keys
//  4. Create the job store, dispatcher and coordinator
//  5. Mount middleware and routes, then serve
//  6. On shutdown stop accepting requests, drain jobs, close the browser
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
