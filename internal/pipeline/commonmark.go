package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates the CommonMark engine failed to convert.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// CommonMarkConverter converts Markdown with Goldmark (CommonMark + GFM).
// Fences that declare a language are highlighted by chroma at conversion
// time; fences without one are left for the post-processor's heuristics.
type CommonMarkConverter struct {
	md goldmark.Markdown
}

// NewCommonMarkConverter creates a CommonMarkConverter.
func NewCommonMarkConverter() *CommonMarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithGuessLanguage(false),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &CommonMarkConverter{md: md}
}

// ToHTML converts content to an HTML fragment.
// Goldmark has no context support, so the conversion runs in a goroutine and
// the caller stops waiting when ctx is done.
func (c *CommonMarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
