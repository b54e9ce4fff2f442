package scraper

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// link[rel~=icon], case-insensitive on the rel token list
const faviconXPath = `//link[contains(concat(' ', normalize-space(translate(@rel, 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz')), ' '), ' icon ')][@href]`

const styleXPath = `//style`

func favicon(root *html.Node, base string) (string, error) {
	node, err := htmlquery.Query(root, faviconXPath)
	if err != nil {
		return "", fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return "", nil
	}
	href, ok := design.Resolve(base, htmlquery.SelectAttr(node, "href"))
	if !ok {
		return "", nil
	}
	return href, nil
}

func inlineStyles(root *html.Node) (string, error) {
	nodes, err := htmlquery.QueryAll(root, styleXPath)
	if err != nil {
		return "", fmt.Errorf("xpath query failed: %w", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		css := strings.TrimSpace(htmlquery.InnerText(n))
		if css == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(css)
		if sb.Len() >= design.MaxInlineStylesLen {
			break
		}
	}
	return design.Truncate(sb.String(), design.MaxInlineStylesLen), nil
}
