package pipeline

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-mdsite/internal/highlight"
)

var (
	codeBlockSelector = cascadia.MustCompile("pre code")
	spanSelector      = cascadia.MustCompile("span")
)

// HighlightCodeBlocks tokenizes every pre/code block under root with the
// first matching route of d and replaces the block's children with text and
// span nodes. Blocks already carrying spans are left alone. Returns the
// route name chosen per highlighted block, in document order.
func HighlightCodeBlocks(root *html.Node, d *highlight.Dispatcher) []string {
	if d == nil {
		return nil
	}

	var routes []string
	for _, code := range codeBlockSelector.MatchAll(root) {
		if spanSelector.MatchFirst(code) != nil {
			continue
		}

		tokens, route, ok := d.Highlight(codeText(code))
		if !ok {
			continue
		}

		removeChildren(code)
		for _, t := range tokens {
			code.AppendChild(tokenNode(t))
		}
		routes = append(routes, route)
	}
	return routes
}

// codeText returns the text of a code element with <br> read as a newline.
func codeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}

func tokenNode(t highlight.Token) *html.Node {
	text := &html.Node{Type: html.TextNode, Data: t.Text}
	if t.Class == highlight.None {
		return text
	}
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: "class", Val: string(t.Class)}},
	}
	span.AppendChild(text)
	return span
}
