package scraper

import (
	"strings"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/PuerkitoBio/goquery"
)

func title(doc *goquery.Document) string {
	return NormalizeWhitespace(doc.Find("title").First().Text())
}

func headings(doc *goquery.Document) design.Headings {
	return design.Headings{
		H1: headingText(doc, "h1"),
		H2: headingText(doc, "h2"),
		H3: headingText(doc, "h3"),
	}
}

func headingText(doc *goquery.Document, level string) []string {
	out := []string{}
	doc.Find(level).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := NormalizeWhitespace(s.Text()); text != "" {
			out = append(out, text)
		}
		return len(out) < design.MaxHeadingsPerLevel
	})
	return out
}

// metaTags collects meta elements carrying a name or property. Name wins
// when both are present.
func metaTags(doc *goquery.Document) []design.MetaTag {
	out := []design.MetaTag{}
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := strings.TrimSpace(s.AttrOr("name", ""))
		if name == "" {
			name = strings.TrimSpace(s.AttrOr("property", ""))
		}
		if name == "" {
			return true
		}
		out = append(out, design.MetaTag{Name: name, Content: s.AttrOr("content", "")})
		return len(out) < design.MaxMetaTags
	})
	return out
}
