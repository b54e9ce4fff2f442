package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/generation"
	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/artifact"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/contextcache"
	"go.uber.org/zap"
)

const (
	msgCreated    = "Job created, starting processing"
	msgScraping   = "Scraping website content"
	msgCached     = "Using cached website data"
	msgGenerating = "Generating website clone"
	msgCompleted  = "Website clone generated successfully"
	msgFailed     = "Failed to clone website: "
)

// Scraper captures the design context of a live page
type Scraper interface {
	Scrape(ctx context.Context, url string) (*design.Context, error)
}

// Generator turns a design context into a document
type Generator interface {
	Generate(ctx context.Context, c *design.Context, hint string) (*generation.Result, error)
}

// Deps are the collaborators of a Coordinator. Metrics and Logger may be nil.
type Deps struct {
	Store      Store
	Dispatcher *Dispatcher
	Cache      contextcache.Store
	Scraper    Scraper
	Generator  Generator
	Artifacts  artifact.Store
	Logger     *logging.Logger
	Metrics    *monitoring.Metrics
}

// Coordinator accepts clone requests and drives each job to a terminal state
type Coordinator struct {
	store      Store
	dispatcher *Dispatcher
	cache      contextcache.Store
	scraper    Scraper
	generator  Generator
	artifacts  artifact.Store
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// NewCoordinator creates a coordinator
func NewCoordinator(deps Deps) *Coordinator {
	logger := logging.OrNop(deps.Logger).Named("jobs")
	if deps.Dispatcher == nil {
		deps.Dispatcher = NewDispatcher(logger)
	}
	return &Coordinator{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		scraper:    deps.Scraper,
		generator:  deps.Generator,
		artifacts:  deps.Artifacts,
		logger:     logger,
		metrics:    deps.Metrics,
	}
}

// Submit records a pending job and schedules its processing. It returns
// as soon as the job exists.
func (c *Coordinator) Submit(_ context.Context, url, modelHint string) (id.JobID, error) {
	if _, err := design.BaseDomain(url); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	j := &Job{
		ID:        id.NewJobID(),
		URL:       url,
		ModelHint: modelHint,
		Status:    StatusPending,
		Message:   msgCreated,
		StartedAt: time.Now(),
	}
	if err := c.store.Create(j); err != nil {
		return "", err
	}
	if c.metrics != nil {
		c.metrics.JobSubmitted()
	}

	c.logger.ForJob(j.ID.String(), url).Info("job submitted", zap.String("model", modelHint))
	c.dispatcher.Dispatch("clone:"+j.ID.String(), func(ctx context.Context) error {
		return c.process(ctx, j.ID, url, modelHint)
	})
	return j.ID, nil
}

// Status returns a snapshot of the job
func (c *Coordinator) Status(jobID id.JobID) (*Job, error) {
	return c.store.Get(jobID)
}

// List returns every job known to this process
func (c *Coordinator) List() []*Job {
	return c.store.List()
}

// Result reads the full generated document of a completed job.
func (c *Coordinator) Result(ctx context.Context, jobID id.JobID) (string, error) {
	j, err := c.store.Get(jobID)
	if err != nil {
		return "", err
	}
	if j.Status != StatusCompleted {
		return "", fmt.Errorf("%w: %s is %s", ErrNotReady, jobID, j.Status)
	}

	a, err := c.artifacts.Get(ctx, jobID.String())
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			return "", fmt.Errorf("%w: result for %s", ErrNotFound, jobID)
		}
		return "", err
	}
	return a.HTML, nil
}

// Wait blocks until all dispatched jobs have finished
func (c *Coordinator) Wait() {
	c.dispatcher.Wait()
}

func (c *Coordinator) process(ctx context.Context, jobID id.JobID, url, hint string) (err error) {
	log := c.logger.ForJob(jobID.String(), url)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			log.Error("job panicked", zap.Any("panic", r))
		}
		if err != nil {
			c.fail(log, jobID, err)
		}
	}()

	if err := c.advance(jobID, StatusScraping, msgScraping); err != nil {
		return err
	}

	designCtx, err := c.designContext(ctx, log, jobID, url)
	if err != nil {
		return err
	}

	if err := c.advance(jobID, StatusGenerating, msgGenerating); err != nil {
		return err
	}

	timer := monitoring.NewTimer(c.metrics, "generate")
	result, err := c.generator.Generate(ctx, designCtx, hint)
	if err != nil {
		timer.Stop("error")
		return err
	}
	timer.Stop("success")

	completedAt := time.Now()
	if err := c.artifacts.Put(ctx, &artifact.Artifact{
		JobID:       jobID.String(),
		HTML:        result.Markup,
		ProviderID:  result.ProviderID,
		URL:         url,
		CompletedAt: completedAt,
	}); err != nil {
		return fmt.Errorf("store result: %w", err)
	}

	if _, err := c.store.Update(jobID, func(j *Job) error {
		j.Status = StatusCompleted
		j.Message = msgCompleted
		j.CompletedAt = &completedAt
		j.Result = &ResultPreview{
			HTML:       preview(result.Markup),
			ProviderID: result.ProviderID,
		}
		return nil
	}); err != nil {
		return err
	}

	if c.metrics != nil {
		c.metrics.JobFinished(string(StatusCompleted))
	}
	log.Info("job completed", zap.String("provider", result.ProviderID), zap.Int("html_bytes", len(result.Markup)))
	return nil
}

// designContext serves the cached context for url, or scrapes and caches it.
func (c *Coordinator) designContext(ctx context.Context, log *logging.Logger, jobID id.JobID, url string) (*design.Context, error) {
	cached, err := c.cache.Get(ctx, url)
	switch {
	case err == nil:
		c.recordCache(true)
		log.Info("design context served from cache")
		if _, err := c.store.Update(jobID, func(j *Job) error {
			j.Message = msgCached
			return nil
		}); err != nil {
			return nil, err
		}
		return cached, nil
	case !errors.Is(err, contextcache.ErrNotFound):
		log.Warn("context cache read failed, scraping", zap.Error(err))
	}
	c.recordCache(false)

	timer := monitoring.NewTimer(c.metrics, "scrape")
	scraped, err := c.scraper.Scrape(ctx, url)
	if err != nil {
		timer.Stop("error")
		return nil, err
	}
	timer.Stop("success")

	if err := c.cache.Put(ctx, url, scraped); err != nil {
		log.Warn("context cache write failed", zap.Error(err))
	}
	return scraped, nil
}

func (c *Coordinator) advance(jobID id.JobID, status Status, message string) error {
	_, err := c.store.Update(jobID, func(j *Job) error {
		j.Status = status
		j.Message = message
		return nil
	})
	return err
}

func (c *Coordinator) fail(log *logging.Logger, jobID id.JobID, cause error) {
	// failed is only reachable from a working state, so a job that never
	// left pending is moved to scraping first
	if j, err := c.store.Get(jobID); err == nil && j.Status == StatusPending {
		if err := c.advance(jobID, StatusScraping, msgScraping); err != nil {
			log.Error("could not record job failure", zap.NamedError("cause", cause), zap.Error(err))
			return
		}
	}

	now := time.Now()
	_, err := c.store.Update(jobID, func(j *Job) error {
		j.Status = StatusFailed
		j.Message = msgFailed + cause.Error()
		j.CompletedAt = &now
		return nil
	})
	if err != nil {
		log.Error("could not record job failure", zap.NamedError("cause", cause), zap.Error(err))
		return
	}
	if c.metrics != nil {
		c.metrics.JobFinished(string(StatusFailed))
	}
	log.Warn("job failed", zap.Error(cause))
}

func (c *Coordinator) recordCache(hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(hit)
	}
}

func preview(markup string) string {
	return design.Truncate(markup, design.ResultPreviewLen) + "..."
}
