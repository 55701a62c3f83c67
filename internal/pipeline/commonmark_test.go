package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestCommonMarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading with auto id",
			input:    "# Title",
			contains: []string{`<h1 id="title">Title</h1>`},
		},
		{
			name:     "emphasis",
			input:    "**bold** and *italic*",
			contains: []string{"<strong>bold</strong>", "<em>italic</em>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "fence with language highlighted by chroma",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
		},
		{
			name:     "fence without language left plain",
			input:    "```\ndocker run\n```",
			contains: []string{"<pre><code>docker run"},
		},
		{
			name:     "raw html escaped",
			input:    "<script>x</script>",
			contains: []string{"<!-- raw HTML omitted -->"},
		},
	}

	c := NewCommonMarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q\ngot: %s", want, got)
				}
			}
		})
	}
}

func TestCommonMarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCommonMarkConverter().ToHTML(ctx, "# x"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
