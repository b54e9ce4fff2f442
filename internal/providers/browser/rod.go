package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"go.uber.org/zap"
)

const (
	viewportWidth  = 1280
	viewportHeight = 800

	// quiet period with no in-flight requests that counts as network idle
	networkIdle = 500 * time.Millisecond
)

// Config configures RodRenderer.
type Config struct {
	// RemoteURL is the DevTools websocket of an external Chrome. Empty
	// launches a local headless one.
	RemoteURL string
	Stealth   bool
}

// RodRenderer renders pages with go-rod. Safe for concurrent use; each
// Render opens its own tab on a shared browser.
type RodRenderer struct {
	cfg    Config
	logger *logging.Logger

	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewRodRenderer returns a renderer. Chrome starts on the first Render.
func NewRodRenderer(cfg Config, logger *logging.Logger) *RodRenderer {
	return &RodRenderer{
		cfg:    cfg,
		logger: logging.OrNop(logger).Named("browser"),
	}
}

// Render implements Renderer.
func (r *RodRenderer) Render(ctx context.Context, pageURL string, timeout time.Duration) (Page, error) {
	b, err := r.connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, pageURL, err)
	}

	page, err := r.openTab(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: open tab: %v", ErrRender, pageURL, err)
	}

	renderCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	rendered, err := capture(renderCtx, page, pageURL)
	if err != nil {
		_ = page.Close()
		return nil, classify(renderCtx, pageURL, err)
	}

	r.logger.Debug("page rendered",
		zap.String("url", pageURL),
		zap.Int("screenshot_bytes", len(rendered.screenshot)),
		zap.Int("html_bytes", len(rendered.html)))

	return rendered, nil
}

func capture(ctx context.Context, page *rod.Page, pageURL string) (*rodPage, error) {
	p := page.Context(ctx)

	waitIdle := p.WaitRequestIdle(networkIdle, nil, nil, nil)
	if err := p.Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	waitIdle()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	shot, err := p.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	html, err := p.HTML()
	if err != nil {
		return nil, fmt.Errorf("serialize dom: %w", err)
	}

	return &rodPage{page: page, screenshot: shot, html: html}, nil
}

func classify(ctx context.Context, pageURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrRenderTimeout, pageURL)
	}
	return fmt.Errorf("%w: %s: %v", ErrRender, pageURL, err)
}

func (r *RodRenderer) openTab(b *rod.Browser) (*rod.Page, error) {
	var (
		page *rod.Page
		err  error
	)
	if r.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, err
	}

	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

func (r *RodRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.browser != nil {
		return r.browser, nil
	}

	wsURL := r.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		wsURL = u
		r.lnch = l
		r.logger.Info("launched local chrome", zap.String("control_url", wsURL))
	} else {
		r.logger.Info("connecting to remote chrome", zap.String("control_url", wsURL))
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		r.cleanupLocked()
		return nil, fmt.Errorf("connect chrome: %w", err)
	}
	r.browser = b
	return b, nil
}

// Close shuts down the browser. Pages already returned become unusable.
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return r.cleanupLocked()
}

func (r *RodRenderer) cleanupLocked() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
	}
	return err
}

type rodPage struct {
	page       *rod.Page
	screenshot []byte
	html       string
}

func (p *rodPage) Screenshot() []byte { return p.screenshot }
func (p *rodPage) HTML() string       { return p.html }

func (p *rodPage) Evaluate(ctx context.Context, script string) (string, error) {
	res, err := p.page.Context(ctx).Eval(script)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
