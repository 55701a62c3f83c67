package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Rule is one substitution step of the Transformer.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Rule names, in application order.
const (
	RuleHeadings       = "headings"
	RuleOrderedList    = "ordered-list"
	RuleUnorderedList  = "unordered-list"
	RuleFencedCode     = "fenced-code"
	RuleInlineCode     = "inline-code"
	RuleBlockquote     = "blockquote"
	RuleCalloutTip     = "callout-tip"
	RuleCalloutWarning = "callout-warning"
	RuleStep           = "step"
	RuleLink           = "link"
	RuleBold           = "bold"
	RuleItalic         = "italic"
	RuleParagraph      = "paragraph"
	RuleLineBreak      = "line-break"
)

var (
	h3Line = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Line = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Line = regexp.MustCompile(`(?m)^# (.*)$`)

	orderedItem   = regexp.MustCompile(`(?m)^\d+\. (.*)$`)
	unorderedItem = regexp.MustCompile(`(?m)^- (.*)$`)

	// Greedy and dot-all: spans from the first <li> to the last </li>.
	listItems = regexp.MustCompile(`(?s)(<li>.*</li>)`)

	fencedCode = regexp.MustCompile("(?s)```(.*?)```")
	inlineCode = regexp.MustCompile("`([^`]+)`")
	quoteLine  = regexp.MustCompile(`(?m)^> (.*)$`)
	link       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	bold       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italic     = regexp.MustCompile(`\*([^*]+)\*`)
	paragraph  = regexp.MustCompile(`\n\n([^\n]+)`)
)

// DefaultRules returns the substitution rules in the order they must run.
// Later rules operate on markup emitted by earlier ones.
func DefaultRules() []Rule {
	return []Rule{
		{Name: RuleHeadings, Apply: convertHeadings},
		{Name: RuleOrderedList, Apply: func(s string) string {
			s = orderedItem.ReplaceAllString(s, "<li>${1}</li>")
			return listItems.ReplaceAllString(s, "<ol>${1}</ol>")
		}},
		{Name: RuleUnorderedList, Apply: func(s string) string {
			s = unorderedItem.ReplaceAllString(s, "<li>${1}</li>")
			return listItems.ReplaceAllString(s, "<ul>${1}</ul>")
		}},
		replaceRule(RuleFencedCode, fencedCode, "<pre><code>${1}</code></pre>"),
		replaceRule(RuleInlineCode, inlineCode, "<code>${1}</code>"),
		replaceRule(RuleBlockquote, quoteLine, "<blockquote>${1}</blockquote>"),
		markedBlockRule(RuleCalloutTip, "[!TIP]", `<div class="callout tip">`),
		markedBlockRule(RuleCalloutWarning, "[!WARNING]", `<div class="callout warning">`),
		markedBlockRule(RuleStep, "[STEP]", `<div class="step">`),
		replaceRule(RuleLink, link, `<a href="${2}" target="_blank" rel="noopener">${1}</a>`),
		replaceRule(RuleBold, bold, "<strong>${1}</strong>"),
		replaceRule(RuleItalic, italic, "<em>${1}</em>"),
		replaceRule(RuleParagraph, paragraph, "<p>${1}</p>"),
		{Name: RuleLineBreak, Apply: func(s string) string {
			return strings.ReplaceAll(s, "\n", "<br>")
		}},
	}
}

// Transformer converts Markdown to an HTML fragment by applying an ordered
// list of rules to one buffer. It never fails on content: any input yields
// some HTML.
type Transformer struct {
	rules []Rule
}

// NewTransformer creates a Transformer with DefaultRules.
func NewTransformer() *Transformer {
	return &Transformer{rules: DefaultRules()}
}

// NewTransformerWithRules creates a Transformer applying rules in the given order.
func NewTransformerWithRules(rules []Rule) *Transformer {
	return &Transformer{rules: rules}
}

// Transform applies every rule in order and returns the resulting fragment.
func (t *Transformer) Transform(markdown string) string {
	out := markdown
	for _, r := range t.rules {
		out = r.Apply(out)
	}
	return out
}

// RuleNames returns rule names in application order.
func (t *Transformer) RuleNames() []string {
	names := make([]string, len(t.rules))
	for i, r := range t.rules {
		names[i] = r.Name
	}
	return names
}

// ToHTML implements HTMLConverter. The only error is context cancellation.
func (t *Transformer) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return t.Transform(content), nil
}

func replaceRule(name string, re *regexp.Regexp, repl string) Rule {
	return Rule{Name: name, Apply: func(s string) string {
		return re.ReplaceAllString(s, repl)
	}}
}

// convertHeadings emits h1-h3 with a provisional id derived from the title.
// The post-processor may overwrite these ids to make them unique.
func convertHeadings(s string) string {
	s = replaceSubmatchFunc(h3Line, s, func(m []string) string { return heading(3, m[1]) })
	s = replaceSubmatchFunc(h2Line, s, func(m []string) string { return heading(2, m[1]) })
	return replaceSubmatchFunc(h1Line, s, func(m []string) string { return heading(1, m[1]) })
}

func heading(level int, title string) string {
	tag := "h" + string(rune('0'+level))
	return "<" + tag + ` id="` + Slugify(title) + `">` + title + "</" + tag + ">"
}

// markedBlockRule wraps everything from a marker at the start of a line up to
// the next blank line (or end of input) in open...</div>. The marker itself
// is dropped.
func markedBlockRule(name, marker, open string) Rule {
	return Rule{Name: name, Apply: func(s string) string {
		var b strings.Builder
		for {
			i := indexAtLineStart(s, marker)
			if i < 0 {
				b.WriteString(s)
				return b.String()
			}
			b.WriteString(s[:i])
			rest := s[i+len(marker):]
			end := strings.Index(rest, "\n\n")
			if end < 0 {
				end = len(rest)
			}
			b.WriteString(open)
			b.WriteString(rest[:end])
			b.WriteString("</div>")
			s = rest[end:]
		}
	}}
}

// indexAtLineStart returns the index of the first occurrence of sub that
// starts a line, or -1.
func indexAtLineStart(s, sub string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 || s[i-1] == '\n' {
			return i
		}
		offset = i + 1
	}
}

// replaceSubmatchFunc is ReplaceAllStringFunc with access to capture groups.
// Unmatched groups are passed as "".
func replaceSubmatchFunc(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		b.WriteString(s[last:loc[0]])
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
