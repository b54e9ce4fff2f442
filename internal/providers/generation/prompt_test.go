package generation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/GriffinCanCode/sitecloner/backend/internal/domain/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleContext() *design.Context {
	c := &design.Context{
		URL:          "https://example.com",
		BaseDomain:   "https://example.com",
		Screenshot:   "aGVsbG8=",
		Structure:    design.Structure{Title: "Example"},
		HTMLSample:   "<html>secret sample</html>",
		FaviconURL:   "https://example.com/favicon.ico",
		InlineStyles: "body{margin:0}",
		Layout:       &design.Layout{Width: 1280, Height: 800},
		UIComponents: map[design.ComponentKind][]design.ComponentSample{
			design.Buttons: {{HTML: "<button>Go</button>", Text: "Go"}},
		},
	}
	for i := 0; i < 60; i++ {
		c.Colors = append(c.Colors, fmt.Sprintf("rgb(%d, 0, 0)", i))
		c.CSSRules = append(c.CSSRules, design.CSSRule{Selector: fmt.Sprintf(".r%d", i), CSSText: "color: red"})
	}
	return c
}

func TestFlattenCaps(t *testing.T) {
	pc := Flatten(sampleContext())

	assert.Len(t, pc.Colors, design.PromptColors)
	assert.Len(t, pc.CSSRules, design.PromptCSSRules)
	assert.Equal(t, "Example", pc.Title)
	assert.Equal(t, "https://example.com/favicon.ico", pc.Favicon)
}

func TestBuildPromptOmitsSampleAndScreenshot(t *testing.T) {
	prompt, err := BuildPrompt(Flatten(sampleContext()), true, MaxPromptBytes)
	require.NoError(t, err)

	assert.NotContains(t, prompt, "secret sample")
	assert.NotContains(t, prompt, "aGVsbG8=")
	assert.Contains(t, prompt, `"inline_styles": "body{margin:0}"`)
	assert.Contains(t, prompt, screenshotNote)

	without, err := BuildPrompt(Flatten(sampleContext()), false, MaxPromptBytes)
	require.NoError(t, err)
	assert.NotContains(t, without, screenshotNote)
}

func TestBuildPromptDropsOversizedFieldsInOrder(t *testing.T) {
	c := sampleContext()
	c.InlineStyles = strings.Repeat("a", 2000)

	full, err := BuildPrompt(Flatten(c), false, MaxPromptBytes)
	require.NoError(t, err)
	require.Contains(t, full, `"layout"`)

	// just small enough to need the layout gone
	pc := Flatten(c)
	prompt, err := BuildPrompt(pc, false, len(full)-len(promptLead)-1)
	require.NoError(t, err)
	assert.Nil(t, pc.Layout)
	assert.NotNil(t, pc.UIComponents)
	assert.NotContains(t, prompt, `"layout"`)
	assert.Contains(t, prompt, "<button>Go</button>")

	// a tiny budget drops all three
	pc = Flatten(c)
	_, err = BuildPrompt(pc, false, 10)
	require.NoError(t, err)
	assert.Nil(t, pc.Layout)
	assert.Nil(t, pc.UIComponents)
	assert.Empty(t, pc.InlineStyles)
}
