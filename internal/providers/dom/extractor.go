package dom

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/GriffinCanCode/sitecloner/backend/internal/providers/browser"
	"github.com/bytedance/sonic"
)

// Step names as recorded in StepFailure.
const (
	StepComputedStyles = "computed_styles"
	StepColors         = "colors"
	StepFonts          = "fonts"
	StepLayout         = "layout"
	StepCSSRules       = "css_rules"
	StepStylesheets    = "stylesheets"
)

// Result holds the facts gathered from the live page.
type Result struct {
	ComputedStyles map[string][]design.StyleNode
	Colors         []string
	Fonts          []string
	Layout         *design.Layout
	CSSRules       []design.CSSRule
	Stylesheets    []string
	Failures       []design.StepFailure
}

// Extractor runs the in-page extraction scripts.
type Extractor struct {
	// StepTimeout bounds each script evaluation. Zero means no extra bound.
	StepTimeout time.Duration
}

func NewExtractor() *Extractor {
	return &Extractor{StepTimeout: 10 * time.Second}
}

// Extract runs every step against page. It never returns an error; failed
// steps are listed in Result.Failures.
func (e *Extractor) Extract(ctx context.Context, page browser.Evaluator) *Result {
	var c design.Collector
	res := &Result{}

	res.ComputedStyles = design.Collect(&c, StepComputedStyles, func() (map[string][]design.StyleNode, error) {
		return evalJSON[map[string][]design.StyleNode](ctx, e.StepTimeout, page, styleTreeScript)
	})
	res.Colors = design.Collect(&c, StepColors, func() ([]string, error) {
		return evalJSON[[]string](ctx, e.StepTimeout, page, colorsScript)
	})
	res.Fonts = design.Collect(&c, StepFonts, func() ([]string, error) {
		return evalJSON[[]string](ctx, e.StepTimeout, page, fontsScript)
	})
	res.Layout = design.Collect(&c, StepLayout, func() (*design.Layout, error) {
		return evalJSON[*design.Layout](ctx, e.StepTimeout, page, layoutScript)
	})
	res.CSSRules = design.Collect(&c, StepCSSRules, func() ([]design.CSSRule, error) {
		return evalJSON[[]design.CSSRule](ctx, e.StepTimeout, page, cssRulesScript)
	})
	res.Stylesheets = design.Collect(&c, StepStylesheets, func() ([]string, error) {
		return evalJSON[[]string](ctx, e.StepTimeout, page, stylesheetsScript)
	})

	res.Failures = c.Failures()
	return res
}

func evalJSON[T any](ctx context.Context, timeout time.Duration, page browser.Evaluator, script string) (T, error) {
	var out T

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := page.Evaluate(ctx, script)
	if err != nil {
		return out, fmt.Errorf("evaluate: %w", err)
	}
	if err := sonic.UnmarshalString(raw, &out); err != nil {
		return out, fmt.Errorf("decode result: %w", err)
	}
	return out, nil
}
