package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "built-in template", input: TemplateGallery},
		{name: "hyphen", input: "dark-contrast"},
		{name: "underscore", input: "my_page"},
		{name: "mixed case and digits", input: "Layout2"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "slash traversal", input: "../layout", wantErr: ErrInvalidAssetName},
		{name: "backslash traversal", input: "..\\layout", wantErr: ErrInvalidAssetName},
		{name: "absolute path", input: "/etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "light.css", wantErr: ErrInvalidAssetName},
		{name: "nested", input: "templates/page", wantErr: ErrInvalidAssetName},
		{name: "space", input: "dark mode", wantErr: ErrInvalidAssetName},
		{name: "too long", input: strings.Repeat("a", MaxAssetNameLength+1), wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateAssetName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
