package job

import (
	"errors"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
)

var (
	ErrNotFound          = errors.New("job not found")
	ErrNotReady          = errors.New("job is not completed yet")
	ErrInvalidTransition = errors.New("invalid job status transition")
	ErrInvalidURL        = errors.New("invalid url")
	ErrExists            = errors.New("job already exists")
)

// Job is the in-memory record of one clone request
type Job struct {
	ID          id.JobID       `json:"job_id"`
	URL         string         `json:"url"`
	ModelHint   string         `json:"model,omitempty"`
	Status      Status         `json:"status"`
	Message     string         `json:"message"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	Result      *ResultPreview `json:"result,omitempty"`
}

// ResultPreview keeps the head of the generated document. The full
// document lives in the artifact store.
type ResultPreview struct {
	HTML       string `json:"html"`
	ProviderID string `json:"provider_id"`
}

func (j *Job) clone() *Job {
	c := *j
	if j.CompletedAt != nil {
		t := *j.CompletedAt
		c.CompletedAt = &t
	}
	if j.Result != nil {
		r := *j.Result
		c.Result = &r
	}
	return &c
}
