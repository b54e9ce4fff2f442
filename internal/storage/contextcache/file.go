package contextcache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
)

// maxSegment keeps every path component below NAME_MAX with room for
// the ".json" suffix.
const maxSegment = 200

const entrySuffix = ".json"

// FileStore keeps one <key>.json file per URL under dir. Keys longer than
// maxSegment are split into nested directories of maxSegment bytes, so
// the layout stays 1:1 with the key.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(url string) string {
	key := Key(url)
	parts := []string{s.dir}
	for len(key) > maxSegment {
		parts = append(parts, key[:maxSegment])
		key = key[maxSegment:]
	}
	parts = append(parts, key+entrySuffix)
	return filepath.Join(parts...)
}

func (s *FileStore) Get(_ context.Context, url string) (*design.Context, error) {
	data, err := s.read(url)
	if err != nil {
		return nil, err
	}
	c, err := unmarshal(data)
	if err != nil {
		return nil, err
	}
	return design.Bound(c), nil
}

func (s *FileStore) read(url string) ([]byte, error) {
	data, err := os.ReadFile(s.path(url))
	// a path the filesystem cannot represent can never have been written
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENAMETOOLONG) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read cache entry: %w", err)
	}
	return data, nil
}

// Put writes through a temp file and rename so readers never observe a
// partial entry.
func (s *FileStore) Put(_ context.Context, url string, c *design.Context) error {
	data, err := marshal(c)
	if err != nil {
		return fmt.Errorf("encode design context: %w", err)
	}
	return s.write(url, data)
}

func (s *FileStore) write(url string, data []byte) error {
	target := s.path(url)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create entry dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// URLs lists the cached URLs.
func (s *FileStore) URLs() ([]string, error) {
	var urls []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), entrySuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.dir, p)
		if err != nil {
			return nil
		}
		key := strings.ReplaceAll(strings.TrimSuffix(rel, entrySuffix), string(filepath.Separator), "")
		if url, err := DecodeKey(key); err == nil {
			urls = append(urls, url)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	return urls, nil
}

// Stats counts the persisted entries.
func (s *FileStore) Stats() (Stats, error) {
	urls, err := s.URLs()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Entries: len(urls)}, nil
}
