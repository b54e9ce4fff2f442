package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fullDocument = `<!DOCTYPE html>
<html lang="en">
<head>
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Example</title>
</head>
<body><h1>Hello</h1></body>
</html>`

func TestExtractHTMLFencedDocumentIsVerbatim(t *testing.T) {
	reply := "Here is your clone:\n\n```html\n" + fullDocument + "\n```\n\nEnjoy!"

	got := ExtractHTML(reply)

	assert.Equal(t, fullDocument, got)
	assert.Equal(t, 1, strings.Count(got, "name=\"viewport\""))
}

func TestExtractHTMLBareDocumentGetsMissingParts(t *testing.T) {
	got := ExtractHTML("<html><p>Hi</p></html>")

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Equal(t, 1, strings.Count(got, "<head>"))
	assert.Equal(t, 1, strings.Count(got, "</head>"))
	assert.Equal(t, 1, strings.Count(got, "<body>"))
	assert.Equal(t, 1, strings.Count(got, "</body>"))
	assert.Equal(t, 1, strings.Count(got, viewportMeta))
	assert.Equal(t, 1, strings.Count(got, "<html>"))

	// content lands inside body, body closes before html
	body := strings.Index(got, "<body>")
	assert.Greater(t, strings.Index(got, "<p>Hi</p>"), body)
	assert.Less(t, strings.Index(got, "</body>"), strings.Index(got, "</html>"))
	// viewport sits inside head
	assert.Less(t, strings.Index(got, viewportMeta), strings.Index(got, "</head>"))
}

func TestExtractHTMLGenericFence(t *testing.T) {
	doc := "<!DOCTYPE html><html><head><meta name=\"viewport\" content=\"x\"></head><body></body></html>"

	assert.Equal(t, doc, ExtractHTML("```\n"+doc+"\n```"))

	// a generic fence that is not a document is not unwrapped
	reply := "```\nnot html\n```"
	assert.Equal(t, reply, ExtractHTML(reply))
}

func TestExtractHTMLPlainTextPassesThrough(t *testing.T) {
	reply := "Sorry, I cannot help with that."
	assert.Equal(t, reply, ExtractHTML(reply))
}

func TestEnsureDocumentIsStable(t *testing.T) {
	once := EnsureDocument("<div>fragment</div>")
	assert.Equal(t, once, EnsureDocument(once))

	assert.Equal(t, 1, strings.Count(once, "<!DOCTYPE html>"))
	assert.Equal(t, 1, strings.Count(once, "<html>"))
	assert.Equal(t, 1, strings.Count(once, "</html>"))
	assert.Contains(t, once, "<div>fragment</div>")
}

func TestEnsureDocumentKeepsHeaderElement(t *testing.T) {
	doc := EnsureDocument("<!DOCTYPE html><html><header>Top</header></html>")

	// <header> is not mistaken for <head>
	assert.Equal(t, 1, strings.Count(doc, "<head>"))
	assert.Contains(t, doc, "<header>Top</header>")
}

func TestEnsureDocumentRespectsAttributesAndCase(t *testing.T) {
	doc := `<!doctype html><HTML lang="fr"><HEAD><title>x</title></HEAD><BODY class="a">y</BODY></HTML>`

	got := EnsureDocument(doc)

	assert.NotContains(t, got, "<head>")
	assert.NotContains(t, got, "<body>")
	assert.Contains(t, got, viewportMeta)
	assert.Equal(t, 1, strings.Count(strings.ToLower(got), "<html"))
}
