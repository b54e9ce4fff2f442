package job

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/generation"
	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/artifact"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/contextcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	calls atomic.Int32
	err   error
	panic bool
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (*design.Context, error) {
	f.calls.Add(1)
	if f.panic {
		panic("renderer crashed")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &design.Context{URL: url, BaseDomain: url, Colors: []string{"rgb(1, 2, 3)"}}, nil
}

type stubProvider struct {
	reply   string
	err     error
	release chan struct{}
}

func (p *stubProvider) ID() string { return "stub-model" }

func (p *stubProvider) Complete(ctx context.Context, _ generation.Request) (string, error) {
	if p.release != nil {
		<-p.release
	}
	return p.reply, p.err
}

// recordingStore keeps every committed status and message
type recordingStore struct {
	*MemoryStore
	mu      sync.Mutex
	history map[id.JobID][]Job
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: NewMemoryStore(), history: map[id.JobID][]Job{}}
}

func (s *recordingStore) Update(jobID id.JobID, fn func(*Job) error) (*Job, error) {
	j, err := s.MemoryStore.Update(jobID, fn)
	if err == nil {
		s.mu.Lock()
		s.history[jobID] = append(s.history[jobID], *j)
		s.mu.Unlock()
	}
	return j, err
}

func (s *recordingStore) statuses(jobID id.JobID) []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Status
	for _, j := range s.history[jobID] {
		if len(out) == 0 || out[len(out)-1] != j.Status {
			out = append(out, j.Status)
		}
	}
	return out
}

func (s *recordingStore) messages(jobID id.JobID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, j := range s.history[jobID] {
		out = append(out, j.Message)
	}
	return out
}

type harness struct {
	coord     *Coordinator
	store     *recordingStore
	scraper   *fakeScraper
	provider  *stubProvider
	cache     contextcache.Store
	artifacts artifact.Store
}

func newHarness(t *testing.T, reply string) *harness {
	t.Helper()

	cache, err := contextcache.NewFileStore(t.TempDir())
	require.NoError(t, err)
	artifacts, err := artifact.NewFileStore(t.TempDir())
	require.NoError(t, err)

	provider := &stubProvider{reply: reply}
	adapter := generation.NewAdapter(generation.Options{}, nil, nil)
	adapter.Register("claude", provider)

	h := &harness{
		store:     newRecordingStore(),
		scraper:   &fakeScraper{},
		provider:  provider,
		cache:     cache,
		artifacts: artifacts,
	}
	h.coord = NewCoordinator(Deps{
		Store:     h.store,
		Cache:     cache,
		Scraper:   h.scraper,
		Generator: adapter,
		Artifacts: artifacts,
	})
	return h
}

const fencedReply = "Sure!\n```html\n<!DOCTYPE html>\n<html><head><meta name=\"viewport\" content=\"width=device-width\"></head><body>clone</body></html>\n```"

const fencedMarkup = "<!DOCTYPE html>\n<html><head><meta name=\"viewport\" content=\"width=device-width\"></head><body>clone</body></html>"

func TestSubmitRunsToCompletion(t *testing.T) {
	h := newHarness(t, fencedReply)
	ctx := context.Background()

	jobID, err := h.coord.Submit(ctx, "https://example.com", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(jobID.String(), "job_"))

	h.coord.Wait()

	j, err := h.coord.Status(jobID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, j.Status)
	assert.Equal(t, msgCompleted, j.Message)
	require.NotNil(t, j.CompletedAt)
	require.NotNil(t, j.Result)
	assert.Equal(t, "stub-model", j.Result.ProviderID)
	assert.Equal(t, fencedMarkup+"...", j.Result.HTML)

	assert.Equal(t, []Status{StatusScraping, StatusGenerating, StatusCompleted}, h.store.statuses(jobID))
	assert.Equal(t, int32(1), h.scraper.calls.Load())

	// the scraped context is now cached
	cached, err := h.cache.Get(ctx, "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"rgb(1, 2, 3)"}, cached.Colors)
}

func TestCachedURLSkipsScraping(t *testing.T) {
	h := newHarness(t, fencedReply)
	ctx := context.Background()

	require.NoError(t, h.cache.Put(ctx, "https://example.com", &design.Context{
		URL:        "https://example.com",
		BaseDomain: "https://example.com",
	}))

	jobID, err := h.coord.Submit(ctx, "https://example.com", "claude")
	require.NoError(t, err)
	h.coord.Wait()

	assert.Equal(t, int32(0), h.scraper.calls.Load())
	assert.Equal(t, []Status{StatusScraping, StatusGenerating, StatusCompleted}, h.store.statuses(jobID))
	assert.Contains(t, h.store.messages(jobID), msgCached)
}

func TestResultNotReadyThenExactMarkup(t *testing.T) {
	h := newHarness(t, fencedReply)
	h.provider.release = make(chan struct{})
	ctx := context.Background()

	jobID, err := h.coord.Submit(ctx, "https://example.com", "")
	require.NoError(t, err)

	_, err = h.coord.Result(ctx, jobID)
	assert.ErrorIs(t, err, ErrNotReady)

	close(h.provider.release)
	h.coord.Wait()

	html, err := h.coord.Result(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, fencedMarkup, html)
}

func TestResultUnknownJob(t *testing.T) {
	h := newHarness(t, fencedReply)

	_, err := h.coord.Result(context.Background(), "job_unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.coord.Status("job_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRejectsRelativeURL(t *testing.T) {
	h := newHarness(t, fencedReply)

	_, err := h.coord.Submit(context.Background(), "/just/a/path", "")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Empty(t, h.coord.List())
}

func TestScrapeFailureFailsJob(t *testing.T) {
	h := newHarness(t, fencedReply)
	h.scraper.err = errors.New("render timeout")

	jobID, err := h.coord.Submit(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	h.coord.Wait()

	j, _ := h.coord.Status(jobID)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Equal(t, "Failed to clone website: render timeout", j.Message)
	assert.NotNil(t, j.CompletedAt)
	assert.Nil(t, j.Result)
	assert.Equal(t, []Status{StatusScraping, StatusFailed}, h.store.statuses(jobID))

	_, err = h.coord.Result(context.Background(), jobID)
	assert.ErrorIs(t, err, ErrNotReady)
}

// flakyStore rejects the first update of every job
type flakyStore struct {
	*recordingStore
	seen sync.Map
}

func (s *flakyStore) Update(jobID id.JobID, fn func(*Job) error) (*Job, error) {
	if _, loaded := s.seen.LoadOrStore(jobID, true); !loaded {
		return nil, errors.New("store unavailable")
	}
	return s.recordingStore.Update(jobID, fn)
}

func TestFailureBeforeScrapingLeavesNoPendingJob(t *testing.T) {
	h := newHarness(t, fencedReply)
	store := &flakyStore{recordingStore: h.store}
	coord := NewCoordinator(Deps{
		Store:     store,
		Cache:     h.cache,
		Scraper:   h.scraper,
		Generator: generation.NewAdapter(generation.Options{}, nil, nil),
		Artifacts: h.artifacts,
	})

	jobID, err := coord.Submit(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	coord.Wait()

	j, err := coord.Status(jobID)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Equal(t, "Failed to clone website: store unavailable", j.Message)
	assert.NotNil(t, j.CompletedAt)
	assert.Equal(t, []Status{StatusScraping, StatusFailed}, h.store.statuses(jobID))
	assert.Zero(t, h.scraper.calls.Load())
}

func TestProviderFailureFailsJob(t *testing.T) {
	h := newHarness(t, "")
	h.provider.err = errors.New("HTTP 529: overloaded")

	jobID, err := h.coord.Submit(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	h.coord.Wait()

	j, _ := h.coord.Status(jobID)
	assert.Equal(t, StatusFailed, j.Status)
	assert.True(t, strings.HasPrefix(j.Message, msgFailed))
	assert.Contains(t, j.Message, "overloaded")
	assert.Equal(t, []Status{StatusScraping, StatusGenerating, StatusFailed}, h.store.statuses(jobID))
}

func TestUnknownModelFailsJob(t *testing.T) {
	h := newHarness(t, fencedReply)

	jobID, err := h.coord.Submit(context.Background(), "https://example.com", "gpt")
	require.NoError(t, err)
	h.coord.Wait()

	j, _ := h.coord.Status(jobID)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Contains(t, j.Message, "gpt")
}

func TestPanicFailsJob(t *testing.T) {
	h := newHarness(t, fencedReply)
	h.scraper.panic = true

	jobID, err := h.coord.Submit(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	h.coord.Wait()

	j, _ := h.coord.Status(jobID)
	assert.Equal(t, StatusFailed, j.Status)
	assert.Contains(t, j.Message, "renderer crashed")
}

func TestConcurrentSubmitsForSameURL(t *testing.T) {
	h := newHarness(t, fencedReply)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]id.JobID, 2)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			jobID, err := h.coord.Submit(ctx, "https://example.com/fresh", "")
			assert.NoError(t, err)
			ids[i] = jobID
		}(i)
	}
	wg.Wait()

	done := make(chan struct{})
	go func() {
		h.coord.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("jobs did not finish")
	}

	require.NotEqual(t, ids[0], ids[1])
	for _, jobID := range ids {
		j, err := h.coord.Status(jobID)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, j.Status)
		assert.Equal(t, "https://example.com/fresh", j.URL)

		html, err := h.coord.Result(ctx, jobID)
		require.NoError(t, err)
		assert.Equal(t, fencedMarkup, html)
	}
	assert.Len(t, h.coord.List(), 2)
	assert.GreaterOrEqual(t, h.scraper.calls.Load(), int32(1))
}
