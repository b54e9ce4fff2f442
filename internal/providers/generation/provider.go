package generation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// ErrProvider wraps every failure of the generation step.
var ErrProvider = errors.New("generation provider error")

// Request is one completion call.
type Request struct {
	System string
	Prompt string
	// Screenshot is a base64 JPEG, empty when none was captured
	Screenshot string
}

// Provider is a text generation backend.
type Provider interface {
	// ID names the model that produced a result
	ID() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Result is the cleaned document and the model that wrote it.
type Result struct {
	Markup     string
	ProviderID string
}

// Options configures an Adapter.
type Options struct {
	// Default is the provider used when no hint is given
	Default string
	// Timeout bounds a single provider call, zero disables it
	Timeout time.Duration
	// MaxPromptBytes bounds the serialized context, zero uses MaxPromptBytes
	MaxPromptBytes int
}

// Adapter selects a provider and runs one generation. Providers are
// registered at startup, before the adapter is shared.
type Adapter struct {
	opts      Options
	providers map[string]Provider
	logger    *logging.Logger
	metrics   *monitoring.Metrics
}

// NewAdapter creates an adapter with no providers. metrics may be nil.
func NewAdapter(opts Options, logger *logging.Logger, metrics *monitoring.Metrics) *Adapter {
	if opts.Default == "" {
		opts.Default = "claude"
	}
	if opts.MaxPromptBytes <= 0 {
		opts.MaxPromptBytes = MaxPromptBytes
	}
	return &Adapter{
		opts:      opts,
		providers: make(map[string]Provider),
		logger:    logging.OrNop(logger).Named("generation"),
		metrics:   metrics,
	}
}

// Register makes p selectable under name.
func (a *Adapter) Register(name string, p Provider) {
	a.providers[name] = p
}

// Providers lists the registered names.
func (a *Adapter) Providers() []string {
	names := make([]string, 0, len(a.providers))
	for name := range a.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate produces a document for c using the provider named by hint,
// or the default provider when hint is empty.
func (a *Adapter) Generate(ctx context.Context, c *design.Context, hint string) (*Result, error) {
	name := hint
	if name == "" {
		name = a.opts.Default
	}
	p, ok := a.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported or unconfigured model %q", ErrProvider, name)
	}

	prompt, err := BuildPrompt(Flatten(c), c.Screenshot != "", a.opts.MaxPromptBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := p.Complete(ctx, Request{
		System:     SystemPrompt,
		Prompt:     prompt,
		Screenshot: c.Screenshot,
	})
	a.record(p.ID(), err, time.Since(start))
	if err != nil {
		a.logger.Warn("generation failed",
			zap.String("provider", p.ID()),
			zap.String("url", c.URL),
			zap.Error(err))
		if errors.Is(err, ErrProvider) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrProvider, p.ID(), err)
	}

	a.logger.Info("generation finished",
		zap.String("provider", p.ID()),
		zap.String("url", c.URL),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("reply_bytes", len(raw)))

	return &Result{Markup: ExtractHTML(raw), ProviderID: p.ID()}, nil
}

func (a *Adapter) record(provider string, err error, d time.Duration) {
	if a.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordProviderCall(provider, status, d)
}
