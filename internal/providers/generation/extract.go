package generation

import "strings"

const viewportMeta = `<meta name="viewport" content="width=device-width, initial-scale=1.0">`

// ExtractHTML pulls the document out of a model reply. In order it tries a
// ```html fence, a bare fence whose body is a document, and a reply that is
// itself a document. Anything else is returned unchanged.
func ExtractHTML(raw string) string {
	if body, ok := fenced(raw, "```html"); ok {
		return EnsureDocument(body)
	}
	if body, ok := fenced(raw, "```"); ok && isDocument(body) {
		return EnsureDocument(body)
	}
	if isDocument(raw) {
		return EnsureDocument(strings.TrimSpace(raw))
	}
	return raw
}

func fenced(raw, open string) (string, bool) {
	start := strings.Index(raw, open)
	if start < 0 {
		return "", false
	}
	start += len(open)
	end := strings.Index(raw[start:], "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(raw[start : start+end]), true
}

func isDocument(s string) bool {
	s = lowerASCII(strings.TrimSpace(s))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html")
}

// EnsureDocument injects a doctype, <html>, <head>, <body> and a viewport
// meta tag when they are missing. Present parts are left untouched.
func EnsureDocument(doc string) string {
	lower := lowerASCII(doc)

	if !strings.HasPrefix(strings.TrimSpace(lower), "<!doctype") {
		doc = "<!DOCTYPE html>\n" + doc
		lower = lowerASCII(doc)
	}

	if openTag(lower, "html") < 0 {
		at := strings.Index(lower, ">") + 1
		doc = doc[:at] + "\n<html>\n" + doc[at:] + "\n</html>"
		lower = lowerASCII(doc)
	}

	if openTag(lower, "head") < 0 {
		at := tagEnd(lower, openTag(lower, "html"))
		doc = doc[:at] + "\n<head>\n</head>" + doc[at:]
		lower = lowerASCII(doc)
	}

	if openTag(lower, "body") < 0 {
		at := strings.Index(lower, "</head>")
		if at >= 0 {
			at += len("</head>")
		} else {
			at = tagEnd(lower, openTag(lower, "head"))
		}
		closeAt := strings.LastIndex(lower, "</html>")
		if closeAt < at {
			closeAt = len(doc)
		}
		doc = doc[:at] + "\n<body>" + doc[at:closeAt] + "\n</body>\n" + doc[closeAt:]
		lower = lowerASCII(doc)
	}

	if !hasViewport(lower) {
		if at := strings.Index(lower, "</head>"); at >= 0 {
			doc = doc[:at] + viewportMeta + "\n" + doc[at:]
		}
	}
	return doc
}

// openTag finds "<name>" or "<name " and returns its offset, or -1.
func openTag(lower, name string) int {
	for from := 0; ; {
		i := strings.Index(lower[from:], "<"+name)
		if i < 0 {
			return -1
		}
		i += from
		next := i + len(name) + 1
		if next < len(lower) {
			switch lower[next] {
			case '>', ' ', '\n', '\t', '\r':
				return i
			}
		}
		from = next
	}
}

func tagEnd(lower string, at int) int {
	if at < 0 {
		return 0
	}
	if end := strings.Index(lower[at:], ">"); end >= 0 {
		return at + end + 1
	}
	return len(lower)
}

func hasViewport(lower string) bool {
	return strings.Contains(lower, `name="viewport"`) ||
		strings.Contains(lower, `name='viewport'`) ||
		strings.Contains(lower, `name=viewport`)
}

// lowerASCII lowercases without changing byte offsets.
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
