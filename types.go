package mdsite

import "fmt"

// FallbackErrorHTML is rendered in place of content that could not be loaded.
const FallbackErrorHTML = `<div class="error">Error loading content. Please check if the file exists.</div>`

// Engine selects the Markdown to HTML converter.
type Engine string

// Render engines.
const (
	// EngineLegacy applies the site's ordered regex rules.
	EngineLegacy Engine = "legacy"
	// EngineCommonMark converts with Goldmark (CommonMark + GFM).
	EngineCommonMark Engine = "commonmark"
)

// Validate returns ErrInvalidEngine for unknown engines.
// The empty engine is valid and means EngineLegacy.
func (e Engine) Validate() error {
	switch e {
	case "", EngineLegacy, EngineCommonMark:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidEngine, e, EngineLegacy, EngineCommonMark)
	}
}

// TOC depth constants.
const (
	MinTOCDepth        = 1
	MaxTOCDepth        = 6
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// TOC requests table of contents entries for headings whose level lies in
// [MinDepth, MaxDepth]. Zero fields take the renderer's defaults.
type TOC struct {
	MinDepth int
	MaxDepth int
}

// Validate checks depth bounds. Zero values are allowed (defaults apply).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	return validateTOCDepth(t.MinDepth, t.MaxDepth, true)
}

func validateTOCDepth(minDepth, maxDepth int, allowZero bool) error {
	check := func(name string, v int) error {
		if allowZero && v == 0 {
			return nil
		}
		if v < MinTOCDepth || v > MaxTOCDepth {
			return fmt.Errorf("%w: %s %d (must be %d-%d)", ErrInvalidTOCDepth, name, v, MinTOCDepth, MaxTOCDepth)
		}
		return nil
	}
	if err := check("minDepth", minDepth); err != nil {
		return err
	}
	if err := check("maxDepth", maxDepth); err != nil {
		return err
	}
	if minDepth != 0 && maxDepth != 0 && minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d greater than maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

// Input contains the data for one render.
type Input struct {
	Markdown string // Markdown content
	TOC      *TOC   // nil disables the table of contents
}

// Heading is a heading of the rendered content with its unique id.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// TOCEntry is one table of contents link.
type TOCEntry struct {
	Text  string
	Level int
	ID    string
}

// Result is the output of a render.
type Result struct {
	HTML     string     // content wrapped in <div class="markdown-content">
	Headings []Heading  // every heading, in document order
	TOC      []TOCEntry // entries within the requested depth range
	TOCHTML  string     // TOC as concatenated anchors

	// Highlights lists the highlighter chosen for each highlighted code
	// block, in document order.
	Highlights []string
}
