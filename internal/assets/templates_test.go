package assets

import (
	"errors"
	"html/template"
	"strings"
	"testing"
)

type testSite struct {
	Title       string
	Description string
}

type testLink struct {
	Href    string
	Label   string
	Current bool
}

type testPage struct {
	Site    testSite
	Title   string
	Theme   string
	Path    string
	Static  bool
	Nav     []testLink
	Content template.HTML
	TOC     template.HTML
}

func TestParseTemplate_Page(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate(NewEmbeddedLoader(), TemplatePage)
	if err != nil {
		t.Fatalf("ParseTemplate() error = %v", err)
	}

	tests := []struct {
		name        string
		data        testPage
		wantContain []string
		wantAbsent  []string
	}{
		{
			name: "system theme uses media query",
			data: testPage{
				Site:    testSite{Title: "Docs"},
				Title:   "Setup",
				Path:    "/setup-guide.html",
				Nav:     []testLink{{Href: "setup-guide.html", Label: "Setup", Current: true}},
				Content: `<div class="markdown-content"><h2 id="a">A</h2></div>`,
				TOC:     `<a href="#a">A</a>`,
			},
			wantContain: []string{
				"<title>Setup | Docs</title>",
				`media="(prefers-color-scheme: dark)"`,
				`<article id="markdown-content"><div class="markdown-content"><h2 id="a">A</h2></div></article>`,
				`<nav id="toc" class="toc"><a href="#a">A</a></nav>`,
				`aria-current="page"`,
				`name="return" value="/setup-guide.html"`,
			},
			wantAbsent: []string{`data-theme="dark"`},
		},
		{
			name:        "dark theme",
			data:        testPage{Site: testSite{Title: "Docs"}, Theme: "dark"},
			wantContain: []string{`<html lang="en" data-theme="dark">`, `href="static/dark.css" id="dark-theme">`, "Light mode"},
		},
		{
			name:       "light theme omits dark style",
			data:       testPage{Site: testSite{Title: "Docs"}, Theme: "light"},
			wantAbsent: []string{"static/dark.css"},
		},
		{
			name:       "static build has no toggle",
			data:       testPage{Site: testSite{Title: "Docs"}, Static: true},
			wantAbsent: []string{`id="theme-toggle"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			if err := tmpl.ExecuteTemplate(&b, TemplateLayout, tt.data); err != nil {
				t.Fatalf("ExecuteTemplate() error = %v", err)
			}
			got := b.String()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("output contains %q\n%s", absent, got)
				}
			}
		})
	}
}

func TestParseTemplate_Errors(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "templates", "broken.html", `{{define "content"}}{{.Oops`)
	writeAsset(t, tmpDir, "templates", "nocontent.html", `<p>static</p>`)

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		tmpl    string
		wantErr error
	}{
		{name: "missing template", tmpl: "cover", wantErr: ErrTemplateNotFound},
		{name: "syntax error", tmpl: "broken", wantErr: ErrTemplateParse},
		{name: "no content block", tmpl: "nocontent", wantErr: ErrTemplateParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseTemplate(resolver, tt.tmpl); !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseTemplate(%q) error = %v, want %v", tt.tmpl, err, tt.wantErr)
			}
		})
	}
}
