package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/sitecloner/backend/internal/api/http"
	"github.com/GriffinCanCode/sitecloner/backend/internal/api/middleware"
	"github.com/GriffinCanCode/sitecloner/backend/internal/api/ws"
	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/capture"
	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/job"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/browser"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/generation"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/artifact"
	"github.com/GriffinCanCode/sitecloner/backend/internal/storage/contextcache"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	http       *http.Server
	renderer   *browser.RodRenderer
	dispatcher *job.Dispatcher
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Info("Initializing clone server",
		zap.String("port", cfg.Server.Port),
		zap.String("browser", browserMode(cfg.Browser.RemoteURL)),
		zap.String("default_model", cfg.Generation.DefaultProvider),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	cache, err := newContextCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	artifacts, err := newArtifactStore(cfg.Artifacts)
	if err != nil {
		return nil, err
	}
	logger.Info("Storage ready",
		zap.String("cache_dir", cfg.Cache.Dir),
		zap.Int("cache_lru", cfg.Cache.LRUSize),
		zap.Bool("artifacts_s3", cfg.Artifacts.S3Endpoint != ""),
	)

	renderer := browser.NewRodRenderer(browser.Config{
		RemoteURL: cfg.Browser.RemoteURL,
		Stealth:   cfg.Browser.Stealth,
	}, logger)
	pipeline := capture.NewPipeline(renderer, capture.NewCompiler(logger, metrics), cfg.Browser.RenderTimeout, logger)

	adapter := generation.NewAdapter(generation.Options{
		Default: cfg.Generation.DefaultProvider,
		Timeout: cfg.Generation.Timeout,
	}, logger, metrics)
	registerProviders(adapter, cfg.Generation, logger)

	store := job.NewMemoryStore()
	dispatcher := job.NewDispatcher(logger)
	coordinator := job.NewCoordinator(job.Deps{
		Store:      store,
		Dispatcher: dispatcher,
		Cache:      cache,
		Scraper:    pipeline,
		Generator:  adapter,
		Artifacts:  artifacts,
		Logger:     logger,
		Metrics:    metrics,
	})

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("handler panicked", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(coordinator, adapter.Providers(), metrics, logger)
	if stats, ok := cache.(apihttp.CacheStats); ok {
		handlers.WithCache(stats)
	}
	handlers.Register(router)

	wsHandler := ws.NewHandler(store, metrics, logger)
	router.GET("/jobs/:id/stream", wsHandler.Stream)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	s := &Server{
		router:     router,
		renderer:   renderer,
		dispatcher: dispatcher,
		logger:     logger,
		config:     cfg,
		metrics:    metrics,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           compress(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server initialized successfully", zap.Strings("models", adapter.Providers()))
	return s, nil
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves HTTP until Shutdown
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for running jobs and closes
// the browser. Jobs still running when ctx expires are abandoned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := s.dispatcher.Shutdown(ctx); err != nil {
		s.logger.Warn("Jobs still running at shutdown", zap.Int("running", s.dispatcher.Running()))
		errs = append(errs, fmt.Errorf("drain jobs: %w", err))
	}
	if err := s.renderer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close browser: %w", err))
	}

	_ = s.logger.Sync()
	return errors.Join(errs...)
}

// compress gzips API responses; websocket upgrades bypass it.
func compress(next http.Handler) http.Handler {
	gz := gzhttp.GzipHandler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

func newContextCache(cfg config.CacheConfig) (contextcache.Store, error) {
	files, err := contextcache.NewFileStore(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("init context cache: %w", err)
	}
	if cfg.LRUSize <= 0 {
		return files, nil
	}
	cached, err := contextcache.NewCachedStore(files, cfg.LRUSize)
	if err != nil {
		return nil, fmt.Errorf("init context cache: %w", err)
	}
	return cached, nil
}

func newArtifactStore(cfg config.ArtifactConfig) (artifact.Store, error) {
	if cfg.S3Endpoint == "" {
		store, err := artifact.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("init artifact store: %w", err)
		}
		return store, nil
	}
	store, err := artifact.NewS3Store(artifact.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init artifact store: %w", err)
	}
	return store, nil
}

func registerProviders(adapter *generation.Adapter, cfg config.GenerationConfig, logger *logging.Logger) {
	anthropic, err := generation.NewAnthropicProvider(generation.AnthropicConfig{
		APIKey:    cfg.AnthropicAPIKey,
		Model:     cfg.AnthropicModel,
		BaseURL:   cfg.AnthropicBaseURL,
		MaxTokens: cfg.AnthropicTokens,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		logger.Warn("Claude provider disabled", zap.Error(err))
	} else {
		adapter.Register("claude", anthropic)
	}

	gemini, err := generation.NewGeminiProvider(context.Background(), generation.GeminiConfig{
		APIKey:    cfg.GoogleAPIKey,
		Model:     cfg.GeminiModel,
		MaxTokens: cfg.GeminiTokens,
	})
	if err != nil {
		logger.Warn("Gemini provider disabled", zap.Error(err))
	} else {
		adapter.Register("gemini", gemini)
	}
}

func browserMode(remoteURL string) string {
	if remoteURL == "" {
		return "local"
	}
	return "remote"
}
