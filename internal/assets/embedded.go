package assets

import (
	"embed"
	"fmt"
	"path"
)

// Asset directories and extensions, shared by the embedded and filesystem
// loaders.
const (
	stylesDir    = "styles"
	templatesDir = "templates"
	styleExt     = ".css"
	templateExt  = ".html"
)

//go:embed styles/*.css templates/*.html
var builtin embed.FS

// EmbeddedLoader serves the site's built-in templates and styles.
type EmbeddedLoader struct{}

var _ AssetLoader = (*EmbeddedLoader)(nil)

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in style name (e.g. StyleDark).
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readBuiltin(stylesDir, styleExt, name, ErrStyleNotFound)
}

// LoadTemplate returns the built-in template name (e.g. TemplatePage).
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readBuiltin(templatesDir, templateExt, name, ErrTemplateNotFound)
}

func readBuiltin(dir, ext, name string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := builtin.ReadFile(path.Join(dir, name+ext))
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}
