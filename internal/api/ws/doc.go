// Package ws streams job status changes over WebSocket.
//
// A client connects to /jobs/:id/stream and receives one "status" message
// with the current job record, then one per change, until the job reaches
// a terminal state. The server then sends "complete" and closes.
//
// Message Types:
//   - status: {"type": "status", "job": {...}, "timestamp": ...}
//   - complete: {"type": "complete", "status": "completed", "timestamp": ...}
//   - error: {"type": "error", "message": "...", "timestamp": ...}
package ws
