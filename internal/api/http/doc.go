// Package http exposes clone jobs over a JSON API.
//
// Routes:
//   - POST /clone: submit a URL, returns the job id immediately
//   - GET /jobs, GET /jobs/:id: job records
//   - GET /clone/:id/html: full generated document of a completed job
//   - GET /, GET /health, GET /metrics/json: service status
//
// Errors are JSON objects with a single "detail" field.
package http
