// Package importer converts existing HTML pages into Markdown page sources.
//
// The main content of the document is selected (the rendered page
// container, then article, then main, then the whole document), sanitized
// with bluemonday's UGC policy and converted to CommonMark.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/andybalholm/cascadia"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	mdsite "github.com/alnah/go-mdsite"
)

// Sentinel errors for import operations.
var (
	ErrConvert       = errors.New("failed to convert HTML")
	ErrEmptyDocument = errors.New("document has no convertible content")
)

// contentSelectors are tried in order; the first match is converted.
var contentSelectors = []cascadia.Selector{
	cascadia.MustCompile("#markdown-content"),
	cascadia.MustCompile("article"),
	cascadia.MustCompile("main"),
}

// Importer converts HTML documents to Markdown.
// An Importer is safe for concurrent use.
type Importer struct {
	conv   *converter.Converter
	policy *bluemonday.Policy
}

// New creates an Importer.
func New() *Importer {
	return &Importer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Import loads path with loader and converts it. domain resolves relative
// links and images; it may be empty.
func (i *Importer) Import(ctx context.Context, loader mdsite.Loader, path, domain string) (string, error) {
	doc, err := loader.Load(ctx, path)
	if err != nil {
		return "", err
	}
	return i.Convert(doc, domain)
}

// Convert returns the Markdown for the main content of doc, ending with a
// newline.
func (i *Importer) Convert(doc, domain string) (string, error) {
	clean := i.policy.Sanitize(selectContent(doc))

	var opts []converter.ConvertOptionFunc
	if domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}
	md, err := i.conv.ConvertString(clean, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConvert, err)
	}

	md = strings.TrimSpace(md)
	if md == "" {
		return "", ErrEmptyDocument
	}
	return md + "\n", nil
}

// selectContent returns the outer HTML of the first content container, or
// doc unchanged when none matches or doc does not parse.
func selectContent(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return doc
	}

	for _, sel := range contentSelectors {
		n := cascadia.Query(root, sel)
		if n == nil {
			continue
		}
		var b strings.Builder
		if err := html.Render(&b, n); err != nil {
			return doc
		}
		return b.String()
	}
	return doc
}
