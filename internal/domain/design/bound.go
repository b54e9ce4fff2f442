package design

import (
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// Bound re-applies every cap to c in place and returns it. It also drops
// URL fields that are not absolute, transparent colors and duplicates.
// Bound is idempotent.
func Bound(c *Context) *Context {
	if c == nil {
		return nil
	}

	c.Structure.Headings.H1 = capSlice(c.Structure.Headings.H1, MaxHeadingsPerLevel)
	c.Structure.Headings.H2 = capSlice(c.Structure.Headings.H2, MaxHeadingsPerLevel)
	c.Structure.Headings.H3 = capSlice(c.Structure.Headings.H3, MaxHeadingsPerLevel)
	c.MetaTags = capSlice(c.MetaTags, MaxMetaTags)

	c.Images = capSlice(filter(c.Images, func(img Image) bool {
		return IsAbsolute(img.Src)
	}), MaxImages)
	c.NavigationLinks = capSlice(filter(c.NavigationLinks, func(l Link) bool {
		return hasScheme(l.Href)
	}), MaxNavigationLinks)
	c.Stylesheets = capSlice(filter(c.Stylesheets, IsAbsolute), MaxStylesheets)
	if c.FaviconURL != "" && !IsAbsolute(c.FaviconURL) {
		c.FaviconURL = ""
	}

	c.Colors = capSlice(dedupColors(c.Colors), MaxColors)
	c.Fonts = capSlice(dedupFonts(c.Fonts), MaxFonts)

	c.CSSRules = capSlice(c.CSSRules, MaxCSSRules)
	for i := range c.CSSRules {
		c.CSSRules[i].CSSText = Truncate(c.CSSRules[i].CSSText, MaxCSSTextLen)
	}

	for selector, nodes := range c.ComputedStyles {
		nodes = capSlice(nodes, MaxElementsPerSelector)
		for i := range nodes {
			boundStyleNode(&nodes[i], 1)
		}
		c.ComputedStyles[selector] = nodes
	}

	if c.Layout != nil {
		c.Layout.Structure = boundLayout(c.Layout.Structure, 1)
	}

	for kind, samples := range c.UIComponents {
		if !knownKind(kind) {
			delete(c.UIComponents, kind)
			continue
		}
		samples = capSlice(samples, MaxComponentSamples)
		for i := range samples {
			samples[i].HTML = Truncate(samples[i].HTML, MaxComponentHTMLLen)
			samples[i].Text = Truncate(samples[i].Text, MaxComponentTextLen)
			samples[i].Attributes = BoundAttributes(samples[i].Attributes)
		}
		c.UIComponents[kind] = samples
	}

	c.InlineStyles = Truncate(c.InlineStyles, MaxInlineStylesLen)
	c.HTMLSample = Truncate(c.HTMLSample, MaxHTMLSampleLen)

	return c
}

// level is 1 for roots; nodes at MaxStyleDepth keep no children.
func boundStyleNode(n *StyleNode, level int) {
	n.Text = Truncate(n.Text, MaxNodeTextLen)
	n.Attributes = BoundAttributes(n.Attributes)
	n.Styles = capMap(n.Styles, MaxStyleProperties, MaxNodeTextLen)
	if level >= MaxStyleDepth {
		n.Children = nil
		return
	}
	n.Children = capSlice(n.Children, MaxStyleChildren)
	for i := range n.Children {
		boundStyleNode(&n.Children[i], level+1)
	}
}

func boundLayout(nodes []LayoutNode, level int) []LayoutNode {
	nodes = capSlice(nodes, MaxLayoutChildren)
	for i := range nodes {
		if level >= MaxLayoutDepth {
			nodes[i].Children = nil
			continue
		}
		nodes[i].Children = boundLayout(nodes[i].Children, level+1)
	}
	return nodes
}

// BoundAttributes keeps at most MaxAttributes entries, the lexically
// smallest keys first, with keys and values truncated.
func BoundAttributes(attrs map[string]string) map[string]string {
	return capMap(attrs, MaxAttributes, MaxNodeTextLen)
}

func capMap(m map[string]string, n, valueLen int) map[string]string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]string, min(len(keys), n))
	for _, k := range keys {
		if len(out) == n {
			break
		}
		key := Truncate(k, MaxAttributeKey)
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = Truncate(m[k], valueLen)
	}
	return out
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func capSlice[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func filter[T any](s []T, keep func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func dedupColors(colors []string) []string {
	seen := make(map[string]bool, len(colors))
	out := colors[:0]
	for _, c := range colors {
		if IsTransparent(c) {
			continue
		}
		fp := ColorFingerprint(c)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		out = append(out, strings.TrimSpace(c))
	}
	return out
}

func dedupFonts(fonts []string) []string {
	seen := make(map[string]bool, len(fonts))
	out := fonts[:0]
	for _, f := range fonts {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func knownKind(kind ComponentKind) bool {
	for _, k := range ComponentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

func hasScheme(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}
