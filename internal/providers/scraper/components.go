package scraper

import (
	"strings"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/PuerkitoBio/goquery"
)

// componentSelectors maps each kind to the markup patterns that identify it.
var componentSelectors = map[design.ComponentKind]string{
	design.Buttons:    `button, .btn, a.button, [role="button"], input[type="submit"]`,
	design.Forms:      `form`,
	design.Inputs:     `input:not([type="hidden"]):not([type="submit"]), textarea, select`,
	design.Navigation: `nav, [role="navigation"], .navbar, .nav, .menu`,
	design.Cards:      `.card, [class*="card"], article`,
	design.Modals:     `.modal, [role="dialog"], dialog`,
	design.Headers:    `header, [role="banner"], .header, #header`,
	design.Footers:    `footer, [role="contentinfo"], .footer, #footer`,
	design.Sidebars:   `aside, .sidebar, [class*="sidebar"]`,
}

func (a *Analyzer) components(doc *goquery.Document) map[design.ComponentKind][]design.ComponentSample {
	out := make(map[design.ComponentKind][]design.ComponentSample)
	for _, kind := range design.ComponentKinds {
		var samples []design.ComponentSample
		doc.Find(componentSelectors[kind]).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			samples = append(samples, a.sample(s))
			return len(samples) < design.MaxComponentSamples
		})
		if len(samples) > 0 {
			out[kind] = samples
		}
	}
	return out
}

func (a *Analyzer) sample(s *goquery.Selection) design.ComponentSample {
	attrs := make(map[string]string)
	if n := s.Get(0); n != nil {
		for _, attr := range n.Attr {
			if len(attrs) == design.MaxAttributes {
				break
			}
			// event handlers never leave the page
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				continue
			}
			attrs[design.Truncate(attr.Key, design.MaxAttributeKey)] = design.Truncate(attr.Val, design.MaxNodeTextLen)
		}
	}

	raw, err := goquery.OuterHtml(s.First())
	if err != nil {
		raw = ""
	}

	return design.ComponentSample{
		HTML:       design.Truncate(a.sanitizer.Sanitize(raw), design.MaxComponentHTMLLen),
		Text:       design.Truncate(NormalizeWhitespace(visibleText(s)), design.MaxComponentTextLen),
		Attributes: attrs,
	}
}

func visibleText(s *goquery.Selection) string {
	c := s.First().Clone()
	c.Find("script, style, noscript").Remove()
	return c.Text()
}
