package pipeline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/highlight"
)

func highlightFragment(t *testing.T, input string, d *highlight.Dispatcher) (string, []string) {
	t.Helper()

	root, err := parseFragment(input)
	if err != nil {
		t.Fatalf("parseFragment: %v", err)
	}
	routes := HighlightCodeBlocks(root, d)
	out, err := renderFragment(root)
	if err != nil {
		t.Fatalf("renderFragment: %v", err)
	}
	return out, routes
}

func TestHighlightCodeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		wantRoutes []string
		contains   []string
		excludes   []string
	}{
		{
			name:       "docker run gets a keyword span",
			input:      "<pre><code>docker run -p 80:80 nginx</code></pre>",
			wantRoutes: []string{highlight.RouteDocker},
			contains: []string{
				`docker <span class="keyword">run</span>`,
				`<span class="number">80</span>`,
				`<span class="string">nginx</span>`,
			},
		},
		{
			name:       "line breaks become newlines",
			input:      "<pre><code># Dockerfile<br>FROM alpine</code></pre>",
			wantRoutes: []string{highlight.RouteDocker},
			contains:   []string{"# Dockerfile\n", `<span class="keyword">FROM</span>`},
			excludes:   []string{"<br"},
		},
		{
			name:       "shell block",
			input:      "<pre><code>brew install \"git\"</code></pre>",
			wantRoutes: []string{highlight.RouteShell},
			contains:   []string{`<span class="keyword">brew</span>`, `<span class="string">&#34;git&#34;</span>`},
		},
		{
			name:       "text stays escaped",
			input:      "<pre><code>npm run build &lt;dist&gt;</code></pre>",
			wantRoutes: []string{highlight.RouteScript},
			contains:   []string{"&lt;dist&gt;"},
		},
		{
			name:     "no route leaves block alone",
			input:    "<pre><code>plain text</code></pre>",
			excludes: []string{"<span"},
		},
		{
			name:     "already highlighted block skipped",
			input:    `<pre><code><span class="k">docker</span> run</code></pre>`,
			contains: []string{`<span class="k">docker</span> run`},
			excludes: []string{`class="keyword"`},
		},
		{
			name:     "inline code outside pre ignored",
			input:    "<p><code>docker run</code></p>",
			excludes: []string{"<span"},
		},
		{
			name:       "one route per block in document order",
			input:      "<pre><code>node app.js</code></pre><pre><code>curl x</code></pre>",
			wantRoutes: []string{highlight.RouteScript, highlight.RouteShell},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, routes := highlightFragment(t, tt.input, highlight.DefaultDispatcher())
			if !reflect.DeepEqual(routes, tt.wantRoutes) {
				t.Errorf("routes = %v, want %v", routes, tt.wantRoutes)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q\ngot: %s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q\ngot: %s", s, got)
				}
			}
		})
	}
}

func TestHighlightCodeBlocks_NilDispatcher(t *testing.T) {
	t.Parallel()

	input := "<pre><code>docker run</code></pre>"
	got, routes := highlightFragment(t, input, nil)
	if routes != nil || got != input {
		t.Errorf("got %q, %v; want input unchanged and no routes", got, routes)
	}
}

func TestHighlightCodeBlocks_Chroma(t *testing.T) {
	t.Parallel()

	got, routes := highlightFragment(t, "<pre><code>curl -o out \"x\" # fetch</code></pre>", highlight.ChromaDispatcher())
	if !reflect.DeepEqual(routes, []string{highlight.RouteShell}) {
		t.Errorf("routes = %v", routes)
	}
	if !strings.Contains(got, `<span class="comment"># fetch</span>`) {
		t.Errorf("missing comment span: %s", got)
	}
}
