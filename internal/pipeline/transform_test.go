package pipeline

import (
	"context"
	"reflect"
	"testing"
)

func TestTransformer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "h1 title",
			input:    "# Title",
			expected: `<h1 id="title">Title</h1>`,
		},
		{
			name:     "h2 and h3 with slug ids",
			input:    "## Getting Started\n### Step One!",
			expected: `<h2 id="getting-started">Getting Started</h2><br><h3 id="step-one">Step One!</h3>`,
		},
		{
			name:     "bold and italic boundaries",
			input:    "**bold** and *italic*",
			expected: "<strong>bold</strong> and <em>italic</em>",
		},
		{
			name:     "unordered list",
			input:    "- a\n- b",
			expected: "<ul><li>a</li><br><li>b</li></ul>",
		},
		{
			name:     "ordered-only list is also wrapped by the unordered rule",
			input:    "1. a\n2. b",
			expected: "<ol><ul><li>a</li><br><li>b</li></ul></ol>",
		},
		{
			name:     "adjacent lists merge into one container",
			input:    "1. a\n\n- b",
			expected: "<ol><ul><li>a</li></ol><p><li>b</li></ul></p>",
		},
		{
			name:     "blockquote lines are never merged",
			input:    "> a\n> b",
			expected: "<blockquote>a</blockquote><br><blockquote>b</blockquote>",
		},
		{
			name:     "fenced code content untouched",
			input:    "```\ndocker run\n```",
			expected: "<pre><code><br>docker run<br></code></pre>",
		},
		{
			name:     "inline code",
			input:    "use `go test` now",
			expected: "use <code>go test</code> now",
		},
		{
			name:     "link opens in new tab",
			input:    "[Go](https://go.dev)",
			expected: `<a href="https://go.dev" target="_blank" rel="noopener">Go</a>`,
		},
		{
			name:     "tip callout runs to blank line",
			input:    "[!TIP] Use it\nsecond\n\nafter",
			expected: `<div class="callout tip"> Use it<br>second</div><p>after</p>`,
		},
		{
			name:     "warning callout runs to end of input",
			input:    "intro\n[!WARNING] Careful",
			expected: `intro<br><div class="callout warning"> Careful</div>`,
		},
		{
			name:     "callout marker mid-line is ignored",
			input:    "see [!TIP] here",
			expected: "see [!TIP] here",
		},
		{
			name:     "step block",
			input:    "[STEP] Install",
			expected: `<div class="step"> Install</div>`,
		},
		{
			name:     "paragraph consumes blank line",
			input:    "Hello\n\nWorld",
			expected: "Hello<p>World</p>",
		},
		{
			name:     "headings and paragraphs",
			input:    "# Intro\n\nHello\n\n## Intro\n\nAgain",
			expected: `<h1 id="intro">Intro</h1><p>Hello</p><p><h2 id="intro">Intro</h2></p><p>Again</p>`,
		},
	}

	tr := NewTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tr.Transform(tt.input)
			if got != tt.expected {
				t.Errorf("Transform(%q)\n got: %q\nwant: %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTransformer_RuleNames(t *testing.T) {
	t.Parallel()

	want := []string{
		RuleHeadings, RuleOrderedList, RuleUnorderedList, RuleFencedCode,
		RuleInlineCode, RuleBlockquote, RuleCalloutTip, RuleCalloutWarning,
		RuleStep, RuleLink, RuleBold, RuleItalic, RuleParagraph, RuleLineBreak,
	}
	if got := NewTransformer().RuleNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("RuleNames() = %v, want %v", got, want)
	}
}

func TestTransformer_CustomRules(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		{Name: "upper", Apply: func(s string) string { return s + "!" }},
		{Name: "wrap", Apply: func(s string) string { return "[" + s + "]" }},
	}
	if got := NewTransformerWithRules(rules).Transform("x"); got != "[x!]" {
		t.Errorf("Transform() = %q, want %q", got, "[x!]")
	}
}

func TestTransformer_ToHTML(t *testing.T) {
	t.Parallel()

	t.Run("converts", func(t *testing.T) {
		t.Parallel()

		got, err := NewTransformer().ToHTML(context.Background(), "# Hi")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `<h1 id="hi">Hi</h1>` {
			t.Errorf("ToHTML() = %q", got)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := NewTransformer().ToHTML(ctx, "# Hi"); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
