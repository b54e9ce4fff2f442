// Package main is the entry point of the site cloner backend.
//
// The server accepts clone requests, renders the target page in a headless
// browser, compiles its design context and asks a language model to
// rebuild the page as a single HTML document.
//
// Configuration:
//   - .env file (optional, -env flag)
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//
// Usage:
//
//	# Production mode
//	./server -port 8000
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown, running jobs get -shutdown-timeout to finish
package main
