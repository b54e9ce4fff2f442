package contextcache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/bytedance/sonic"
)

var ErrNotFound = errors.New("design context not cached")

// Store persists design contexts by URL.
type Store interface {
	// Get returns ErrNotFound when url has no entry.
	Get(ctx context.Context, url string) (*design.Context, error)
	Put(ctx context.Context, url string, c *design.Context) error
}

// Stats describes cache occupancy.
type Stats struct {
	Entries  int `json:"entries"`
	Resident int `json:"resident"`
}

// Key encodes url as a file- and key-safe string.
func Key(url string) string {
	return base64.URLEncoding.EncodeToString([]byte(url))
}

// DecodeKey reverses Key.
func DecodeKey(key string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(key)
	if err != nil {
		return "", fmt.Errorf("decode cache key: %w", err)
	}
	return string(b), nil
}

// encoding/json compatible config: sorted map keys, so equal contexts
// serialize to equal bytes.
var codec = sonic.ConfigStd

func marshal(c *design.Context) ([]byte, error) {
	return codec.Marshal(c)
}

func unmarshal(data []byte) (*design.Context, error) {
	var c design.Context
	if err := codec.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode design context: %w", err)
	}
	return &c, nil
}
