package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
)

// FileStore writes <dir>/<job id>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(jobID string) string {
	return filepath.Join(s.dir, jobID+".json")
}

func (s *FileStore) Put(_ context.Context, a *Artifact) error {
	if a == nil || !validJobID(a.JobID) {
		return fmt.Errorf("invalid artifact job id")
	}

	data, err := sonic.ConfigStd.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	f, err := os.OpenFile(s.path(a.JobID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, a.JobID)
	}
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	return f.Close()
}

func (s *FileStore) Get(_ context.Context, jobID string) (*Artifact, error) {
	if !validJobID(jobID) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(s.path(jobID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, jobID)
	}
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a Artifact
	if err := sonic.ConfigStd.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &a, nil
}
