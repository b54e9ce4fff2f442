package design

// Hard caps applied to every Context. Counts are element counts, lengths
// are in runes.
const (
	MaxImages           = 10
	MaxNavigationLinks  = 20
	MaxColors           = 100
	MaxFonts            = 30
	MaxCSSRules         = 200
	MaxCSSTextLen       = 500
	MaxMetaTags         = 50
	MaxHeadingsPerLevel = 20
	MaxStylesheets      = 30

	MaxComponentSamples = 3
	MaxComponentHTMLLen = 2000
	MaxComponentTextLen = 300

	// Attribute maps of style nodes and component samples
	MaxAttributes      = 20
	MaxAttributeKey    = 64
	MaxStyleProperties = 40

	// Computed-style tree
	MaxNodeTextLen         = 100
	MaxElementsPerSelector = 20
	MaxStyleDepth          = 3
	MaxStyleChildren       = 20

	// Layout tree
	MaxLayoutDepth    = 5
	MaxLayoutChildren = 50

	MaxInlineStylesLen = 20000
	MaxHTMLSampleLen   = 50000

	// Screenshot normalization
	MaxScreenshotHeight = 1200
	ScreenshotQuality   = 80

	// Applied when flattening for generation
	PromptColors   = 30
	PromptCSSRules = 50

	// In-memory job result preview
	ResultPreviewLen = 500
)
