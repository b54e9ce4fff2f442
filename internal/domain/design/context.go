package design

// Context is the compiled design context for one URL. Once stored in the
// context cache it is treated as immutable.
type Context struct {
	URL             string                              `json:"url"`
	BaseDomain      string                              `json:"base_domain"`
	Screenshot      string                              `json:"screenshot,omitempty"` // base64 JPEG
	Structure       Structure                           `json:"structure"`
	MetaTags        []MetaTag                           `json:"meta_tags"`
	Images          []Image                             `json:"images"`
	NavigationLinks []Link                              `json:"navigation_links"`
	Stylesheets     []string                            `json:"stylesheets"`
	Colors          []string                            `json:"colors"`
	Fonts           []string                            `json:"fonts"`
	CSSRules        []CSSRule                           `json:"css_rules"`
	ComputedStyles  map[string][]StyleNode              `json:"computed_styles"`
	Layout          *Layout                             `json:"layout,omitempty"`
	UIComponents    map[ComponentKind][]ComponentSample `json:"ui_components"`
	FaviconURL      string                              `json:"favicon,omitempty"`
	InlineStyles    string                              `json:"inline_styles,omitempty"`
	HTMLSample      string                              `json:"html_sample,omitempty"`
	Failures        []StepFailure                       `json:"extraction_failures,omitempty"`
}

type Structure struct {
	Title    string   `json:"title"`
	Headings Headings `json:"headings"`
}

type Headings struct {
	H1 []string `json:"h1"`
	H2 []string `json:"h2"`
	H3 []string `json:"h3"`
}

// MetaTag holds a meta element. Name falls back to the property attribute.
type MetaTag struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Image dimensions are kept as authored attribute values.
type Image struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

type CSSRule struct {
	Selector string `json:"selector"`
	CSSText  string `json:"css_text"`
}

type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// StyleNode is one element of the computed-style tree.
type StyleNode struct {
	Tag         string            `json:"tag"`
	ID          string            `json:"id,omitempty"`
	ClassName   string            `json:"class_name,omitempty"`
	Text        string            `json:"text,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Styles      map[string]string `json:"styles,omitempty"`
	BoundingBox Box               `json:"bounding_box"`
	Children    []StyleNode       `json:"children,omitempty"`
}

// Layout is the visible-geometry tree rooted at body.
type Layout struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Structure []LayoutNode `json:"structure"`
}

type LayoutNode struct {
	Tag       string       `json:"tag"`
	ID        string       `json:"id,omitempty"`
	ClassName string       `json:"class_name,omitempty"`
	Position  Box          `json:"position"`
	Children  []LayoutNode `json:"children,omitempty"`
}

// ComponentSample is a sanitized example of a UI component on the page.
type ComponentSample struct {
	HTML       string            `json:"html"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type ComponentKind string

const (
	Buttons    ComponentKind = "buttons"
	Forms      ComponentKind = "forms"
	Inputs     ComponentKind = "inputs"
	Navigation ComponentKind = "navigation"
	Cards      ComponentKind = "cards"
	Modals     ComponentKind = "modals"
	Headers    ComponentKind = "headers"
	Footers    ComponentKind = "footers"
	Sidebars   ComponentKind = "sidebars"
)

// ComponentKinds lists every kind in extraction order.
var ComponentKinds = []ComponentKind{
	Buttons, Forms, Inputs, Navigation, Cards, Modals, Headers, Footers, Sidebars,
}
