package dom

import (
	"encoding/json"
	"fmt"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
)

// Allow-listed selectors for the computed-style tree.
var styleSelectors = []string{
	"body", "header", "footer", "nav", "main", "aside", "section", "article",
	".header", ".footer", ".navigation", ".container", ".hero", ".banner",
	"#header", "#footer", "#nav", ".btn", "button", "a.button", ".menu", ".card",
}

// Computed properties recorded per style node.
var styleProperties = []string{
	"color", "background-color", "background-image",
	"margin", "padding", "border", "border-radius",
	"width", "height", "max-width",
	"display", "position", "top", "left",
	"flex-direction", "flex-wrap", "justify-content", "align-items", "gap",
	"grid-template-columns", "grid-template-rows",
	"font-family", "font-size", "font-weight", "line-height", "letter-spacing", "text-align", "text-transform",
	"box-shadow", "transform", "transition",
	"opacity", "visibility", "z-index",
}

// SVG elements expose className as an SVGAnimatedString.
const classOfJS = `
	function classOf(el) {
		if (typeof SVGElement !== 'undefined' && el instanceof SVGElement) return el.getAttribute('class') || '';
		return typeof el.className === 'string' ? el.className : '';
	}`

var styleTreeScript = fmt.Sprintf(`() => {
	const selectors = %s;
	const props = %s;
	const landmarks = new Set(['BODY', 'HEADER', 'FOOTER', 'NAV', 'MAIN', 'ASIDE', 'SECTION', 'ARTICLE']);
	const maxDepth = %d, maxText = %d, perSelector = %d;
	const maxChildren = %d, maxAttrs = %d, maxKey = %d;
	%s

	function node(el, depth) {
		if (!el || depth >= maxDepth) return null;
		const tag = el.tagName.toUpperCase();
		if (tag === 'SCRIPT' || tag === 'STYLE') return null;

		const cs = window.getComputedStyle(el);
		const styles = {};
		for (const p of props) {
			const v = cs.getPropertyValue(p);
			if (v) styles[p] = v;
		}
		const attributes = {};
		let attrCount = 0;
		for (const a of el.attributes) {
			if (attrCount++ >= maxAttrs) break;
			attributes[a.name.slice(0, maxKey)] = a.value.slice(0, maxText);
		}

		const cls = classOf(el);
		const rect = el.getBoundingClientRect();
		const out = {
			tag: el.tagName.toLowerCase(),
			id: el.id || '',
			class_name: cls,
			text: (el.textContent || '').trim().slice(0, maxText),
			attributes,
			styles,
			bounding_box: {x: rect.x, y: rect.y, width: rect.width, height: rect.height},
		};

		if (landmarks.has(tag) || el.id || cls.includes('container')) {
			const children = [];
			for (const child of Array.from(el.children).slice(0, maxChildren)) {
				const c = node(child, depth + 1);
				if (c) children.push(c);
			}
			if (children.length) out.children = children;
		}
		return out;
	}

	const result = {};
	for (const sel of selectors) {
		try {
			const nodes = Array.from(document.querySelectorAll(sel))
				.slice(0, perSelector)
				.map(el => node(el, 0))
				.filter(Boolean);
			if (nodes.length) result[sel] = nodes;
		} catch (e) {}
	}
	return JSON.stringify(result);
}`, jsArray(styleSelectors), jsArray(styleProperties),
	design.MaxStyleDepth, design.MaxNodeTextLen, design.MaxElementsPerSelector,
	design.MaxStyleChildren, design.MaxAttributes, design.MaxAttributeKey, classOfJS)

var colorsScript = fmt.Sprintf(`() => {
	const limit = %d;
	const zeroAlpha = /^(rgba|hsla)\(.*,\s*0*\.?0+\s*\)$/i;
	const seen = new Set();
	const out = [];
	for (const el of document.querySelectorAll('*')) {
		const cs = window.getComputedStyle(el);
		for (const p of ['color', 'background-color', 'border-color']) {
			const v = cs.getPropertyValue(p);
			if (!v || v === 'transparent' || zeroAlpha.test(v)) continue;
			const fp = v.replace(/\s+/g, '').toLowerCase();
			if (seen.has(fp)) continue;
			seen.add(fp);
			out.push(v);
			if (out.length >= limit) return JSON.stringify(out);
		}
	}
	return JSON.stringify(out);
}`, design.MaxColors)

var fontsScript = fmt.Sprintf(`() => {
	const limit = %d;
	const seen = new Set();
	for (const el of document.querySelectorAll('*')) {
		const v = window.getComputedStyle(el).getPropertyValue('font-family');
		if (v) seen.add(v.trim());
		if (seen.size >= limit) break;
	}
	return JSON.stringify(Array.from(seen));
}`, design.MaxFonts)

var layoutScript = fmt.Sprintf(`() => {
	const maxDepth = %d, maxChildren = %d;
	%s

	function visible(el) {
		const r = el.getBoundingClientRect();
		const s = window.getComputedStyle(el);
		return r.width > 0 && r.height > 0 && s.display !== 'none' && s.visibility !== 'hidden';
	}

	function walk(el, depth) {
		if (depth >= maxDepth) return [];
		return Array.from(el.children).filter(visible).slice(0, maxChildren).map(child => {
			const r = child.getBoundingClientRect();
			const n = {
				tag: child.tagName.toLowerCase(),
				id: child.id || '',
				class_name: classOf(child),
				position: {x: r.x, y: r.y, width: r.width, height: r.height},
			};
			const kids = walk(child, depth + 1);
			if (kids.length) n.children = kids;
			return n;
		});
	}

	return JSON.stringify({
		width: window.innerWidth,
		height: window.innerHeight,
		structure: document.body ? walk(document.body, 0) : [],
	});
}`, design.MaxLayoutDepth, design.MaxLayoutChildren, classOfJS)

// Cross-origin sheets throw on cssRules access and are skipped.
var cssRulesScript = fmt.Sprintf(`() => {
	const limit = %d, maxText = %d;
	const out = [];
	for (const sheet of Array.from(document.styleSheets)) {
		let rules;
		try {
			if (sheet.href && new URL(sheet.href).origin !== location.origin) continue;
			rules = sheet.cssRules;
		} catch (e) {
			continue;
		}
		for (const rule of Array.from(rules || [])) {
			if (!rule.selectorText) continue;
			out.push({selector: rule.selectorText, css_text: rule.cssText.slice(0, maxText)});
			if (out.length >= limit) return JSON.stringify(out);
		}
	}
	return JSON.stringify(out);
}`, design.MaxCSSRules, design.MaxCSSTextLen)

var stylesheetsScript = fmt.Sprintf(`() => JSON.stringify(
	Array.from(document.querySelectorAll('link[rel~="stylesheet"][href]'))
		.map(l => l.href)
		.filter(h => h.startsWith('http'))
		.slice(0, %d)
)`, design.MaxStylesheets)

func jsArray(values []string) string {
	b, _ := json.Marshal(values)
	return string(b)
}
