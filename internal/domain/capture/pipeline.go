package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/browser"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/dom"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/scraper"
	"go.uber.org/zap"
)

// DefaultRenderTimeout applies when a Pipeline is built with a zero timeout.
const DefaultRenderTimeout = 30 * time.Second

// Pipeline captures a live page into a design context.
type Pipeline struct {
	renderer  browser.Renderer
	extractor *dom.Extractor
	analyzer  *scraper.Analyzer
	compiler  *Compiler
	timeout   time.Duration
	logger    *logging.Logger
}

func NewPipeline(renderer browser.Renderer, compiler *Compiler, timeout time.Duration, logger *logging.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &Pipeline{
		renderer:  renderer,
		extractor: dom.NewExtractor(),
		analyzer:  scraper.NewAnalyzer(),
		compiler:  compiler,
		timeout:   timeout,
		logger:    logging.OrNop(logger).Named("capture"),
	}
}

// Scrape renders url and compiles its design context. Render failures
// (browser.ErrRenderTimeout, browser.ErrRender) are returned; extraction
// failures are recorded on the context.
func (p *Pipeline) Scrape(ctx context.Context, url string) (*design.Context, error) {
	start := time.Now()

	page, err := p.renderer.Render(ctx, url, p.timeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := page.Close(); err != nil {
			p.logger.Debug("close page", zap.String("url", url), zap.Error(err))
		}
	}()

	domResult := p.extractor.Extract(ctx, page)
	analysis, failures := p.analyzer.Analyze(page.HTML(), url)

	dc, err := p.compiler.Compile(Inputs{
		URL:        url,
		Screenshot: page.Screenshot(),
		DOM:        domResult,
		Analysis:   analysis,
		Failures:   failures,
	})
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}

	p.logger.Info("design context captured",
		zap.String("url", url),
		zap.Duration("duration", time.Since(start)),
		zap.Int("colors", len(dc.Colors)),
		zap.Int("failed_steps", len(dc.Failures)))

	return dc, nil
}
