// Package scraper analyzes the rendered HTML snapshot of a page.
//
// The Analyzer parses the markup once with goquery (CSS selectors) and once
// with htmlquery (XPath) and runs independent, order-preserving steps:
//   - metadata: title, h1-h3 headings, meta tags
//   - content: images and navigation links resolved to absolute URLs
//   - xpath: favicon and inline <style> blocks
//   - components: sanitized samples of buttons, forms, cards and so on
//
// Built on specialized libraries:
//   - goquery: jQuery-like CSS selectors
//   - htmlquery: XPath support for HTML
//   - bluemonday: component sample sanitization
//   - chardet: character encoding detection for non-UTF-8 input
//
// Every step is capped by the limits in package design and recovered
// independently; a failing step is reported, never fatal.
//
// Example Usage:
//
//	analysis, failures := scraper.NewAnalyzer().Analyze(page.HTML(), pageURL)
package scraper
