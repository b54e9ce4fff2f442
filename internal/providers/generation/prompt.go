package generation

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/bytedance/sonic"
)

// MaxPromptBytes bounds the serialized context embedded in a prompt.
const MaxPromptBytes = 150_000

// markup samples are sent unescaped
var promptJSON = sonic.Config{SortMapKeys: true, ValidateString: true}.Froze()

// SystemPrompt instructs the model to produce a single self-contained page.
const SystemPrompt = `You are an expert web designer and developer who builds pixel-faithful copies of websites from a structured design context.

Guidelines:
1. Produce one complete HTML file with <!DOCTYPE html>, <html>, <head> and <body>.
2. Match the layout of the original, including spacing, alignment and component positions.
3. Use the exact colors, fonts, borders and shadows listed in the context.
4. Rebuild every UI component (navigation, buttons, cards, forms) to match the samples.
5. Reuse the original text content where it is available.
6. Reference the favicon when one is provided.
7. Put all CSS inline in <style> tags, following the patterns in css_rules.
8. Interactive elements must look identical to the original in their resting state.

Reply with the HTML document only, without introduction or explanation.`

const (
	promptLead = "Please clone the following website and create HTML code that closely resembles its design. Here's the design context extracted from the website:\n\n"

	screenshotNote = "\n\nA screenshot of the page is attached. Treat it as the primary reference and reproduce its layout, spacing, colors, fonts and components."
)

// PromptContext is the subset of a design.Context sent to a model.
type PromptContext struct {
	URL             string                                            `json:"url"`
	BaseDomain      string                                            `json:"base_domain"`
	Title           string                                            `json:"title"`
	Headings        design.Headings                                   `json:"headings"`
	Colors          []string                                          `json:"colors"`
	Fonts           []string                                          `json:"fonts"`
	Layout          *design.Layout                                    `json:"layout,omitempty"`
	MetaTags        []design.MetaTag                                  `json:"meta_tags"`
	NavigationLinks []design.Link                                     `json:"navigation_links"`
	UIComponents    map[design.ComponentKind][]design.ComponentSample `json:"ui_components,omitempty"`
	CSSRules        []design.CSSRule                                  `json:"css_rules"`
	InlineStyles    string                                            `json:"inline_styles,omitempty"`
	Favicon         string                                            `json:"favicon,omitempty"`
}

// Flatten projects c onto the prompt fields, capping colors and CSS rules.
// The screenshot travels separately and the HTML sample is left out.
func Flatten(c *design.Context) *PromptContext {
	return &PromptContext{
		URL:             c.URL,
		BaseDomain:      c.BaseDomain,
		Title:           c.Structure.Title,
		Headings:        c.Structure.Headings,
		Colors:          head(c.Colors, design.PromptColors),
		Fonts:           c.Fonts,
		Layout:          c.Layout,
		MetaTags:        c.MetaTags,
		NavigationLinks: c.NavigationLinks,
		UIComponents:    c.UIComponents,
		CSSRules:        head(c.CSSRules, design.PromptCSSRules),
		InlineStyles:    c.InlineStyles,
		Favicon:         c.FaviconURL,
	}
}

// BuildPrompt renders the user prompt. While the serialized context is
// larger than limit, the layout, the component samples and the inline
// styles are dropped in that order.
func BuildPrompt(pc *PromptContext, withScreenshot bool, limit int) (string, error) {
	shrink := []func(){
		func() { pc.Layout = nil },
		func() { pc.UIComponents = nil },
		func() { pc.InlineStyles = "" },
	}

	body, err := promptJSON.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt context: %w", err)
	}
	for _, drop := range shrink {
		if len(body) <= limit {
			break
		}
		drop()
		if body, err = promptJSON.MarshalIndent(pc, "", "  "); err != nil {
			return "", fmt.Errorf("encode prompt context: %w", err)
		}
	}

	var b strings.Builder
	b.WriteString(promptLead)
	b.Write(body)
	if withScreenshot {
		b.WriteString(screenshotNote)
	}
	return b.String(), nil
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
