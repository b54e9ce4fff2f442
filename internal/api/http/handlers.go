package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/job"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sitecloner/backend/internal/shared/id"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/contextcache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Jobs is the job coordinator as seen by the API
type Jobs interface {
	Submit(ctx context.Context, url, modelHint string) (id.JobID, error)
	Status(jobID id.JobID) (*job.Job, error)
	Result(ctx context.Context, jobID id.JobID) (string, error)
	List() []*job.Job
}

// CacheStats reports design context cache occupancy
type CacheStats interface {
	Stats() (contextcache.Stats, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	jobs      Jobs
	cache     CacheStats
	providers []string
	metrics   *monitoring.Metrics
	logger    *logging.Logger
}

// NewHandlers creates a new handler set. providers lists the selectable
// generation models; metrics may be nil.
func NewHandlers(jobs Jobs, providers []string, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	return &Handlers{
		jobs:      jobs,
		providers: providers,
		metrics:   metrics,
		logger:    logging.OrNop(logger).Named("api"),
	}
}

// WithCache adds cache occupancy to the health report
func (h *Handlers) WithCache(cache CacheStats) *Handlers {
	h.cache = cache
	return h
}

// CloneRequest is the body of POST /clone
type CloneRequest struct {
	URL   string `json:"url" binding:"required,url"`
	Model string `json:"model"`
}

// CloneResponse acknowledges a submitted job
type CloneResponse struct {
	JobID  id.JobID   `json:"job_id"`
	Status job.Status `json:"status"`
	// Message is human readable
	Message string `json:"message"`
}

// Register mounts the routes on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.POST("/clone", h.Clone)
	r.GET("/clone/:id/html", h.HTML)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.GetJob)
	r.GET("/metrics/json", h.MetricsSnapshot)
}

// Root handles the liveness probe
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Website Cloning API",
		"status":  "running",
	})
}

// Health reports service health, the configured models and, when
// available, cache occupancy. A cache that cannot be listed is reported
// but does not make the service unhealthy.
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":    "healthy",
		"service":   "website-cloning-api",
		"providers": h.providers,
	}
	if h.cache != nil {
		stats, err := h.cache.Stats()
		if err != nil {
			h.logger.Warn("cache stats failed", zap.Error(err))
			body["cache"] = gin.H{"error": "unavailable"}
		} else {
			body["cache"] = stats
		}
	}
	c.JSON(http.StatusOK, body)
}

// Clone submits a clone job
func (h *Handlers) Clone(c *gin.Context) {
	var req CloneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, "request must be JSON with an absolute \"url\"")
		return
	}

	jobID, err := h.jobs.Submit(c.Request.Context(), req.URL, req.Model)
	if err != nil {
		if errors.Is(err, job.ErrInvalidURL) {
			detail(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.internal(c, "submit", err)
		return
	}

	c.JSON(http.StatusOK, CloneResponse{
		JobID:   jobID,
		Status:  job.StatusPending,
		Message: "Website cloning job started",
	})
}

// ListJobs lists every job of this process
func (h *Handlers) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"jobs": h.jobs.List()})
}

// GetJob returns one job record
func (h *Handlers) GetJob(c *gin.Context) {
	jobID, ok := jobParam(c)
	if !ok {
		return
	}

	j, err := h.jobs.Status(jobID)
	if err != nil {
		h.fail(c, jobID, "status", err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// HTML returns the full generated document
func (h *Handlers) HTML(c *gin.Context) {
	jobID, ok := jobParam(c)
	if !ok {
		return
	}

	html, err := h.jobs.Result(c.Request.Context(), jobID)
	if err != nil {
		h.fail(c, jobID, "result", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": html})
}

// MetricsSnapshot returns headline counters as JSON
func (h *Handlers) MetricsSnapshot(c *gin.Context) {
	if h.metrics == nil {
		detail(c, http.StatusNotFound, "metrics disabled")
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

func jobParam(c *gin.Context) (id.JobID, bool) {
	raw := c.Param("id")
	jobID, err := id.ParseJobID(raw)
	if err != nil {
		detail(c, http.StatusNotFound, fmt.Sprintf("Job %s not found", raw))
		return "", false
	}
	return jobID, true
}

func (h *Handlers) fail(c *gin.Context, jobID id.JobID, op string, err error) {
	switch {
	case errors.Is(err, job.ErrNotFound):
		detail(c, http.StatusNotFound, fmt.Sprintf("Job %s not found", jobID))
	case errors.Is(err, job.ErrNotReady):
		detail(c, http.StatusBadRequest, fmt.Sprintf("Job %s is not completed yet", jobID))
	default:
		h.internal(c, op, err)
	}
}

func (h *Handlers) internal(c *gin.Context, op string, err error) {
	h.logger.Error("request failed", zap.String("op", op), zap.Error(err))
	_ = c.Error(err)
	detail(c, http.StatusInternalServerError, "internal error")
}

func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}
