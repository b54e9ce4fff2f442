package scraper

import (
	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/PuerkitoBio/goquery"
)

// images resolves every img[src] against base. Inline data: and other
// non-fetchable sources are skipped.
func images(doc *goquery.Document, base string) []design.Image {
	out := []design.Image{}
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := design.Resolve(base, s.AttrOr("src", ""))
		if !ok {
			return true
		}
		out = append(out, design.Image{
			Src:    src,
			Alt:    s.AttrOr("alt", ""),
			Width:  s.AttrOr("width", ""),
			Height: s.AttrOr("height", ""),
		})
		return len(out) < design.MaxImages
	})
	return out
}

// links resolves every a[href] against base. mailto:, tel: and similar
// refs are kept verbatim.
func links(doc *goquery.Document, base string) []design.Link {
	out := []design.Link{}
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := s.AttrOr("href", "")
		href, ok := design.Resolve(base, raw)
		if !ok && href == "" {
			return true
		}
		out = append(out, design.Link{
			Href: href,
			Text: NormalizeWhitespace(s.Text()),
		})
		return len(out) < design.MaxNavigationLinks
	})
	return out
}
