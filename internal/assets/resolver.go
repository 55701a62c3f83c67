package assets

import "errors"

// AssetResolver looks assets up in layers: the custom directory from
// assets.basePath when configured, then the embedded assets. Only a
// not-found error moves on to the next layer; invalid names and read errors
// are returned as is.
type AssetResolver struct {
	layers []AssetLoader
}

var _ AssetLoader = (*AssetResolver)(nil)

// NewAssetResolver creates a resolver. An empty customDir serves embedded
// assets only.
func NewAssetResolver(customDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customDir != "" {
		fsl, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, fsl)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadStyle(name) })
}

// LoadTemplate implements AssetLoader.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// HasCustomLoader reports whether a custom asset directory is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var s string
		if s, err = load(l); err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}
