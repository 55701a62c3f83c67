package assets

// Page templates. Each one defines a "content" block rendered inside
// TemplateLayout.
const (
	TemplateLayout  = "layout"
	TemplatePage    = "page"
	TemplateIndex   = "index"
	TemplateGallery = "gallery"
)

// Theme styles, served as /static/<name>.css.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

// Styles lists the styles served under /static, in link order.
var Styles = []string{StyleLight, StyleDark}

// AssetLoader resolves site templates and styles by bare name: "page", not
// "templates/page.html". Unknown names return ErrTemplateNotFound or
// ErrStyleNotFound; names that fail ValidateAssetName return
// ErrInvalidAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}
