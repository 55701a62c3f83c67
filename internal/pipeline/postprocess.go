package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdsite/internal/highlight"
)

// ErrPostProcess indicates the fragment could not be parsed or re-rendered.
var ErrPostProcess = errors.New("post-processing failed")

// ContentClass is the class of the element wrapping rendered content.
const ContentClass = "markdown-content"

// TOCRange selects the heading levels that produce TOC entries.
type TOCRange struct {
	MinDepth int
	MaxDepth int
}

// Processed is the output of one post-processing pass.
type Processed struct {
	HTML       string
	Headings   []Heading
	TOC        []TOCEntry
	TOCHTML    string
	Highlights []string // route name per highlighted code block
}

// PostProcessor works on the DOM of a rendered fragment.
type PostProcessor struct {
	dispatcher *highlight.Dispatcher
}

// NewPostProcessor creates a PostProcessor. A nil dispatcher disables code
// highlighting.
func NewPostProcessor(d *highlight.Dispatcher) *PostProcessor {
	return &PostProcessor{dispatcher: d}
}

// Process parses fragment, highlights code blocks, assigns unique heading
// ids and, when toc is non-nil, builds TOC entries. The returned HTML is
// wrapped in <div class="markdown-content">.
func (p *PostProcessor) Process(ctx context.Context, fragment string, toc *TOCRange) (*Processed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := parseFragment(fragment)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing fragment: %v", ErrPostProcess, err)
	}

	out := &Processed{}
	// Highlighting flattens headings that the rules produced from '#'
	// comment lines inside code, so it must run before ids are assigned.
	out.Highlights = HighlightCodeBlocks(root, p.dispatcher)
	out.Headings = AssignHeadingIDs(root)

	if toc != nil {
		out.TOC = BuildTOC(out.Headings, toc.MinDepth, toc.MaxDepth)
		out.TOCHTML = RenderTOC(out.TOC, toc.MinDepth)
	}

	body, err := renderFragment(root)
	if err != nil {
		return nil, fmt.Errorf("%w: rendering fragment: %v", ErrPostProcess, err)
	}
	out.HTML = WrapContent(body)
	return out, nil
}

// WrapContent wraps an HTML fragment in the content container.
func WrapContent(fragment string) string {
	return `<div class="` + ContentClass + `">` + fragment + `</div>`
}
