package scraper

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024
)

// ValidateHTML checks HTML size and returns error if too large
func ValidateHTML(html string) error {
	if len(html) == 0 {
		return fmt.Errorf("html content required")
	}
	if len(html) > MaxHTMLSize {
		return fmt.Errorf("html exceeds maximum size of %d bytes", MaxHTMLSize)
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// utf8Reader returns a UTF-8 reader over htmlStr. Rendered DOM snapshots
// are already UTF-8 and pass through untouched; anything else goes through
// charset detection.
func utf8Reader(htmlStr string) *bytes.Reader {
	if utf8.ValidString(htmlStr) {
		return bytes.NewReader([]byte(htmlStr))
	}

	data := []byte(htmlStr)
	r, err := charset.NewReaderLabel(DetectCharset(data), bytes.NewReader(data))
	if err != nil {
		return bytes.NewReader(data)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return bytes.NewReader(data)
	}
	return bytes.NewReader(buf.Bytes())
}

// LoadHTML loads HTML with automatic charset detection
func LoadHTML(htmlStr string) (*goquery.Document, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(utf8Reader(htmlStr))
}

// LoadHTMLNode loads HTML into xpath-compatible node
func LoadHTMLNode(htmlStr string) (*html.Node, error) {
	if err := ValidateHTML(htmlStr); err != nil {
		return nil, err
	}
	return htmlquery.Parse(utf8Reader(htmlStr))
}

// samplePolicy keeps structure and styling hooks of component samples and
// strips scripts, event handlers and javascript: URLs.
func samplePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id", "style", "role", "type", "name", "placeholder", "value", "aria-label").Globally()
	p.AllowStyling()
	p.AllowElements("button", "form", "input", "select", "option", "textarea", "label",
		"nav", "header", "footer", "aside", "section", "article", "main", "svg", "path")
	p.AllowAttrs("action", "method").OnElements("form")
	p.AllowAttrs("for").OnElements("label")
	p.AllowAttrs("viewBox", "d", "fill", "stroke").OnElements("svg", "path")
	return p
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
