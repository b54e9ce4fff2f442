package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	id    string
	reply string
	err   error
	got   []Request
}

func (f *fakeProvider) ID() string { return f.id }

func (f *fakeProvider) Complete(_ context.Context, req Request) (string, error) {
	f.got = append(f.got, req)
	return f.reply, f.err
}

func TestGenerateUsesDefaultProvider(t *testing.T) {
	claude := &fakeProvider{id: "claude-test", reply: "```html\n" + fullDocument + "\n```"}
	gemini := &fakeProvider{id: "gemini-test"}

	a := NewAdapter(Options{}, nil, nil)
	a.Register("claude", claude)
	a.Register("gemini", gemini)

	res, err := a.Generate(context.Background(), sampleContext(), "")
	require.NoError(t, err)

	assert.Equal(t, fullDocument, res.Markup)
	assert.Equal(t, "claude-test", res.ProviderID)
	require.Len(t, claude.got, 1)
	assert.Empty(t, gemini.got)
	assert.Equal(t, SystemPrompt, claude.got[0].System)
	assert.Equal(t, "aGVsbG8=", claude.got[0].Screenshot)
	assert.Equal(t, []string{"claude", "gemini"}, a.Providers())
}

func TestGenerateHonoursHint(t *testing.T) {
	gemini := &fakeProvider{id: "gemini-test", reply: fullDocument}

	a := NewAdapter(Options{}, nil, nil)
	a.Register("claude", &fakeProvider{id: "claude-test"})
	a.Register("gemini", gemini)

	res, err := a.Generate(context.Background(), sampleContext(), "gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", res.ProviderID)
	assert.Len(t, gemini.got, 1)
}

func TestGenerateUnknownHint(t *testing.T) {
	a := NewAdapter(Options{}, nil, nil)
	a.Register("claude", &fakeProvider{id: "claude-test"})

	_, err := a.Generate(context.Background(), sampleContext(), "gpt")
	assert.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), `"gpt"`)
}

func TestGenerateWrapsProviderFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(reg)

	a := NewAdapter(Options{}, nil, metrics)
	a.Register("claude", &fakeProvider{id: "claude-test", err: errors.New("boom")})

	_, err := a.Generate(context.Background(), sampleContext(), "claude")
	assert.ErrorIs(t, err, ErrProvider)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProviderCalls.WithLabelValues("claude-test", "error")))
}
