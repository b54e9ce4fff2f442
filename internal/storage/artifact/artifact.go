// Package artifact persists the generated document of each completed job.
//
// An artifact is written exactly once, when its job completes, and read
// back whenever the full result is requested. The in-memory job record only
// keeps a preview.
package artifact

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("artifact not found")
	ErrExists   = errors.New("artifact already written")
)

// Artifact is the durable result of one clone job.
type Artifact struct {
	JobID       string    `json:"job_id"`
	HTML        string    `json:"html"`
	ProviderID  string    `json:"provider_id"`
	URL         string    `json:"url"`
	CompletedAt time.Time `json:"completed_at"`
}

// Store persists artifacts by job id.
type Store interface {
	// Put fails with ErrExists if the job already has an artifact.
	Put(ctx context.Context, a *Artifact) error
	// Get returns ErrNotFound for unknown jobs.
	Get(ctx context.Context, jobID string) (*Artifact, error)
}

func validJobID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.ContainsAny(id, `/\.`)
}
