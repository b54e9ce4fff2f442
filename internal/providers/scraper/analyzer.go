package scraper

import (
	"fmt"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Step names as recorded in StepFailure.
const (
	StepParse        = "parse"
	StepTitle        = "title"
	StepHeadings     = "headings"
	StepMetaTags     = "meta_tags"
	StepImages       = "images"
	StepLinks        = "navigation_links"
	StepFavicon      = "favicon"
	StepInlineStyles = "inline_styles"
	StepComponents   = "ui_components"
)

// Analysis is what the static markup contributes to a design context.
type Analysis struct {
	Structure       design.Structure
	MetaTags        []design.MetaTag
	Images          []design.Image
	NavigationLinks []design.Link
	FaviconURL      string
	InlineStyles    string
	UIComponents    map[design.ComponentKind][]design.ComponentSample
	HTMLSample      string
}

// Analyzer extracts facts from an HTML snapshot. Safe for concurrent use.
type Analyzer struct {
	sanitizer *bluemonday.Policy
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{sanitizer: samplePolicy()}
}

// Analyze parses markup and runs every extraction step. pageURL is the
// document's address and the base for relative references.
func (a *Analyzer) Analyze(markup, pageURL string) (*Analysis, []design.StepFailure) {
	var c design.Collector
	out := &Analysis{
		HTMLSample: design.Truncate(markup, design.MaxHTMLSampleLen),
	}

	doc := design.Collect(&c, StepParse, func() (*goquery.Document, error) {
		return LoadHTML(markup)
	})
	if doc == nil {
		return out, c.Failures()
	}
	base := documentBase(doc, pageURL)

	out.Structure.Title = design.Collect(&c, StepTitle, func() (string, error) {
		return title(doc), nil
	})
	out.Structure.Headings = design.Collect(&c, StepHeadings, func() (design.Headings, error) {
		return headings(doc), nil
	})
	out.MetaTags = design.Collect(&c, StepMetaTags, func() ([]design.MetaTag, error) {
		return metaTags(doc), nil
	})
	out.Images = design.Collect(&c, StepImages, func() ([]design.Image, error) {
		return images(doc, base), nil
	})
	out.NavigationLinks = design.Collect(&c, StepLinks, func() ([]design.Link, error) {
		return links(doc, base), nil
	})

	// XPath steps share one parse; a parse failure fails both.
	root, err := LoadHTMLNode(markup)
	if err != nil {
		c.Fail(StepFavicon, fmt.Errorf("parse: %w", err))
		c.Fail(StepInlineStyles, fmt.Errorf("parse: %w", err))
	} else {
		out.FaviconURL = design.Collect(&c, StepFavicon, func() (string, error) {
			return favicon(root, base)
		})
		out.InlineStyles = design.Collect(&c, StepInlineStyles, func() (string, error) {
			return inlineStyles(root)
		})
	}

	out.UIComponents = design.Collect(&c, StepComponents, func() (map[design.ComponentKind][]design.ComponentSample, error) {
		return a.components(doc), nil
	})

	return out, c.Failures()
}

// documentBase honors <base href> when present.
func documentBase(doc *goquery.Document, pageURL string) string {
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved, ok := design.Resolve(pageURL, href); ok {
			return resolved
		}
	}
	return pageURL
}
