package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseDomain(t *testing.T) {
	base, err := BaseDomain("https://example.com:8443/a/b?q=1")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:8443", base)

	_, err = BaseDomain("ftp://example.com")
	assert.ErrorIs(t, err, ErrNotAbsolute)

	_, err = BaseDomain("/relative")
	assert.ErrorIs(t, err, ErrNotAbsolute)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected string
		ok       bool
	}{
		{"root relative", "/img/a.png", "https://example.com/img/a.png", true},
		{"path relative", "b.png", "https://example.com/docs/b.png", true},
		{"protocol relative", "//cdn.example.com/x.js", "https://cdn.example.com/x.js", true},
		{"already absolute", "https://other.org/y", "https://other.org/y", true},
		{"mailto kept", "mailto:a@b.c", "mailto:a@b.c", false},
		{"javascript kept", "javascript:void(0)", "javascript:void(0)", false},
		{"data kept", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA", false},
		{"empty", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve("https://example.com/docs/index.html", tt.ref)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsTransparent(t *testing.T) {
	transparent := []string{"rgba(0, 0, 0, 0)", "transparent", "rgba(255,255,255,0)", "hsla(0, 0%, 0%, 0.0)", "rgb(0 0 0 / 0)", ""}
	for _, c := range transparent {
		assert.True(t, IsTransparent(c), c)
	}

	opaque := []string{"rgb(0, 0, 0)", "rgba(0, 0, 0, 0.5)", "#000", "red"}
	for _, c := range opaque {
		assert.False(t, IsTransparent(c), c)
	}
}
