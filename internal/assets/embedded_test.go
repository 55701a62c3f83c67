package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestEmbeddedLoader_LoadStyle(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{name: "light style", styleName: StyleLight, wantContain: ".markdown-content pre"},
		{name: "dark style", styleName: StyleDark, wantContain: "color-scheme: dark"},
		{name: "nonexistent", styleName: "sepia", wantErr: ErrStyleNotFound},
		{name: "empty name", styleName: "", wantErr: ErrInvalidAssetName},
		{name: "traversal", styleName: "../secret", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadStyle(tt.styleName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		template    string
		wantErr     error
		wantContain string
	}{
		{name: "layout", template: TemplateLayout, wantContain: `{{template "content" .}}`},
		{name: "page", template: TemplatePage, wantContain: `id="markdown-content"`},
		{name: "index", template: TemplateIndex, wantContain: `class="link-card"`},
		{name: "gallery", template: TemplateGallery, wantContain: `class="modal"`},
		{name: "nonexistent", template: "cover", wantErr: ErrTemplateNotFound},
		{name: "invalid name", template: "page.html", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTemplate(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q) error = %v, want %v", tt.template, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q) unexpected error: %v", tt.template, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadTemplate(%q) content should contain %q", tt.template, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_AllStylesPresent(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	for _, name := range Styles {
		if _, err := loader.LoadStyle(name); err != nil {
			t.Errorf("LoadStyle(%q) error = %v", name, err)
		}
	}
}
