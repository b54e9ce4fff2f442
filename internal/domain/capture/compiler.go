package capture

import (
	"fmt"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/sitecloner/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/dom"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/scraper"
	"go.uber.org/zap"
)

const StepScreenshot = "screenshot"

// Inputs are the raw outputs of one capture.
type Inputs struct {
	URL        string
	Screenshot []byte
	DOM        *dom.Result
	Analysis   *scraper.Analysis
	// Failures from steps run outside the compiler, such as the analyzer
	Failures []design.StepFailure
}

// Compiler merges capture outputs into a bounded design.Context.
type Compiler struct {
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewCompiler creates a compiler. metrics may be nil.
func NewCompiler(logger *logging.Logger, metrics *monitoring.Metrics) *Compiler {
	return &Compiler{
		logger:  logging.OrNop(logger).Named("compiler"),
		metrics: metrics,
	}
}

// Compile fails only when in.URL is not an absolute http(s) URL. Missing
// inputs and failed steps yield a partial context.
func (c *Compiler) Compile(in Inputs) (*design.Context, error) {
	base, err := design.BaseDomain(in.URL)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", in.URL, err)
	}

	var failures design.Collector
	failures.Merge(in.Failures)

	out := &design.Context{
		URL:            in.URL,
		BaseDomain:     base,
		ComputedStyles: map[string][]design.StyleNode{},
		UIComponents:   map[design.ComponentKind][]design.ComponentSample{},
	}

	if in.DOM != nil {
		failures.Merge(in.DOM.Failures)
		if in.DOM.ComputedStyles != nil {
			out.ComputedStyles = in.DOM.ComputedStyles
		}
		out.Colors = in.DOM.Colors
		out.Fonts = in.DOM.Fonts
		out.Layout = in.DOM.Layout
		out.CSSRules = in.DOM.CSSRules
		out.Stylesheets = in.DOM.Stylesheets
	}

	if a := in.Analysis; a != nil {
		out.Structure = a.Structure
		out.MetaTags = a.MetaTags
		out.Images = a.Images
		out.NavigationLinks = a.NavigationLinks
		out.FaviconURL = a.FaviconURL
		out.InlineStyles = a.InlineStyles
		out.HTMLSample = a.HTMLSample
		if a.UIComponents != nil {
			out.UIComponents = a.UIComponents
		}
	}

	if len(in.Screenshot) > 0 {
		out.Screenshot = design.Collect(&failures, StepScreenshot, func() (string, error) {
			return NormalizeScreenshot(in.Screenshot)
		})
	}

	out.Failures = failures.Failures()
	c.report(in.URL, out.Failures)

	return design.Bound(out), nil
}

func (c *Compiler) report(url string, failures []design.StepFailure) {
	for _, f := range failures {
		c.logger.Warn("extraction step failed",
			zap.String("url", url),
			zap.String("step", f.Step),
			zap.String("error", f.Message))
		if c.metrics != nil {
			c.metrics.RecordExtractionFailure(f.Step)
		}
	}
}
