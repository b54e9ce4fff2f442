// Package id provides ULID-based identifiers for clone jobs.
//
// IDs are prefixed with their kind (job_*) so they read well in logs,
// and the ULID part keeps them lexicographically sortable by creation time,
// which is the order the job listing endpoint returns.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// JobID identifies a clone job
type JobID string

const JobPrefix = "job"

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand with monotonic
// entropy so IDs minted in the same millisecond still sort in call order.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewJobID generates a new job ID
func NewJobID() JobID {
	return JobID(Default().GenerateWithPrefix(JobPrefix))
}

func (id JobID) String() string { return string(id) }

// ParseJobID validates a job ID string coming from outside the process.
func ParseJobID(s string) (JobID, error) {
	prefix, raw, ok := strings.Cut(s, "_")
	if !ok || prefix != JobPrefix {
		return "", fmt.Errorf("invalid job id %q: missing %s_ prefix", s, JobPrefix)
	}
	if _, err := ulid.ParseStrict(raw); err != nil {
		return "", fmt.Errorf("invalid job id %q: %w", s, err)
	}
	return JobID(s), nil
}

// Timestamp extracts the creation time encoded in a prefixed ID
func Timestamp(s string) (time.Time, error) {
	_, raw, ok := strings.Cut(s, "_")
	if !ok {
		raw = s
	}
	parsed, err := ulid.Parse(raw)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
