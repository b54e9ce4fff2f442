package contextcache

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore serves recent entries from memory. It holds serialized
// bytes so every Get decodes a fresh Context the caller may mutate.
type CachedStore struct {
	next  Store
	cache *lru.Cache[string, []byte]
}

// NewCachedStore fronts next with an LRU of size entries.
func NewCachedStore(next Store, size int) (*CachedStore, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &CachedStore{next: next, cache: cache}, nil
}

func (s *CachedStore) Get(ctx context.Context, url string) (*design.Context, error) {
	if data, ok := s.cache.Get(url); ok {
		c, err := unmarshal(data)
		if err != nil {
			return nil, err
		}
		return design.Bound(c), nil
	}

	c, err := s.next.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if data, err := marshal(c); err == nil {
		s.cache.Add(url, data)
	}
	return c, nil
}

func (s *CachedStore) Put(ctx context.Context, url string, c *design.Context) error {
	data, err := marshal(c)
	if err != nil {
		return fmt.Errorf("encode design context: %w", err)
	}
	if err := s.next.Put(ctx, url, c); err != nil {
		return err
	}
	s.cache.Add(url, data)
	return nil
}

// Len reports how many entries are held in memory.
func (s *CachedStore) Len() int {
	return s.cache.Len()
}

// Stats reports the persisted entries of the wrapped store, when it can
// count them, and the entries held in memory.
func (s *CachedStore) Stats() (Stats, error) {
	st := Stats{Resident: s.Len()}
	if inner, ok := s.next.(interface{ Stats() (Stats, error) }); ok {
		in, err := inner.Stats()
		if err != nil {
			return st, err
		}
		st.Entries = in.Entries
	}
	return st, nil
}
