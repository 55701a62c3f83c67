// Package highlight classifies code block text into styled tokens.
//
// A Dispatcher holds an ordered list of routes. Each route pairs a cheap
// predicate over the raw text with a Tokenizer; the first route whose
// predicate matches tokenizes the block and no other route runs. When no
// route matches, the block is left alone.
package highlight

import (
	"html"
	"strings"
)

// Class is a token style class. The set is closed.
type Class string

// Token classes.
const (
	None     Class = ""
	Keyword  Class = "keyword"
	String   Class = "string"
	Number   Class = "number"
	Literal  Class = "literal"
	Comment  Class = "comment"
	Variable Class = "variable"
)

// Token is a classified substring of a code block.
type Token struct {
	Text  string
	Class Class
}

// Tokenizer splits code into tokens. Concatenating the Text of the returned
// tokens must reproduce the input.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// Route pairs a predicate with the tokenizer to use when it matches.
type Route struct {
	Name      string
	Match     func(text string) bool
	Tokenizer Tokenizer
}

// Route names.
const (
	RouteDocker = "docker"
	RouteShell  = "shell"
	RouteScript = "script"
)

// Dispatcher selects at most one route per block, in route order.
type Dispatcher struct {
	routes []Route
}

// NewDispatcher creates a Dispatcher evaluating routes in the given order.
func NewDispatcher(routes ...Route) *Dispatcher {
	return &Dispatcher{routes: routes}
}

// Select returns the first route whose predicate matches text.
func (d *Dispatcher) Select(text string) (Route, bool) {
	for _, r := range d.routes {
		if r.Match(text) {
			return r, true
		}
	}
	return Route{}, false
}

// Highlight tokenizes text with the selected route.
// Returns ok=false when no route matches.
func (d *Dispatcher) Highlight(text string) (tokens []Token, route string, ok bool) {
	r, ok := d.Select(text)
	if !ok {
		return nil, "", false
	}
	return r.Tokenizer.Tokenize(text), r.Name, true
}

// ContainsAny returns a predicate true when text contains any of words.
// Matching is case-sensitive.
func ContainsAny(words ...string) func(string) bool {
	return func(text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

// Sniffers used by both the rule-based and the chroma routes.
var (
	isDocker = ContainsAny("docker", "Dockerfile")
	isShell  = ContainsAny("brew", "curl")
	isScript = ContainsAny("npm", "node")
)

// DefaultDispatcher returns the rule-based dispatcher: docker, then shell,
// then script.
func DefaultDispatcher() *Dispatcher {
	return NewDispatcher(
		Route{Name: RouteDocker, Match: isDocker, Tokenizer: dockerTokenizer},
		Route{Name: RouteShell, Match: isShell, Tokenizer: shellTokenizer},
		Route{Name: RouteScript, Match: isScript, Tokenizer: scriptTokenizer},
	)
}

// RenderHTML renders tokens as escaped HTML, wrapping classified tokens in
// <span class="...">.
func RenderHTML(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Class == None {
			b.WriteString(html.EscapeString(t.Text))
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(string(t.Class))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(t.Text))
		b.WriteString(`</span>`)
	}
	return b.String()
}
