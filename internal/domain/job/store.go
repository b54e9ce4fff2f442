package job

import (
	"fmt"
	"sort"
	"sync"

	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
)

// Store holds job records. Implementations return copies, never the
// stored value.
type Store interface {
	Create(j *Job) error
	// Update applies fn to a copy of the job and commits it. A status
	// change that CanTransition rejects, or any change to a terminal job,
	// fails with ErrInvalidTransition and leaves the record untouched.
	Update(jobID id.JobID, fn func(*Job) error) (*Job, error)
	Get(jobID id.JobID) (*Job, error)
	List() []*Job
}

// MemoryStore is a mutex-guarded map of jobs with change notification.
type MemoryStore struct {
	mu      sync.RWMutex
	jobs    map[id.JobID]*Job          // Protected by mu
	changed map[id.JobID]chan struct{} // Protected by mu, closed on every update
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:    make(map[id.JobID]*Job),
		changed: make(map[id.JobID]chan struct{}),
	}
}

// Create stores a new job
func (s *MemoryStore) Create(j *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; exists {
		return fmt.Errorf("%w: %s", ErrExists, j.ID)
	}
	s.jobs[j.ID] = j.clone()
	s.changed[j.ID] = make(chan struct{})
	return nil
}

// Update mutates a job under the store lock
func (s *MemoryStore) Update(jobID id.JobID, fn func(*Job) error) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, jobID, current.Status)
	}

	next := current.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = current.ID
	if next.Status != current.Status && !current.Status.CanTransition(next.Status) {
		return nil, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, current.Status, next.Status)
	}

	s.jobs[jobID] = next
	close(s.changed[jobID])
	s.changed[jobID] = make(chan struct{})
	return next.clone(), nil
}

// Get retrieves a job by ID
func (s *MemoryStore) Get(jobID id.JobID) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	return j.clone(), nil
}

// Watch returns the current job and a channel closed at its next update.
func (s *MemoryStore) Watch(jobID id.JobID) (*Job, <-chan struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[jobID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	return j.clone(), s.changed[jobID], nil
}

// List returns all jobs, oldest first
func (s *MemoryStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j.clone())
	}
	// ULID ids sort by creation time
	sort.Slice(jobs, func(a, b int) bool { return jobs[a].ID < jobs[b].ID })
	return jobs
}
