package assets

import (
	"fmt"
	"html/template"
)

// ParseTemplate loads the layout and the named page template from loader and
// parses them into one set. Execute the result with ExecuteTemplate(w,
// TemplateLayout, data).
func ParseTemplate(loader AssetLoader, name string) (*template.Template, error) {
	layout, err := loader.LoadTemplate(TemplateLayout)
	if err != nil {
		return nil, err
	}
	content, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(TemplateLayout).Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, TemplateLayout, err)
	}
	if _, err := tmpl.New(name).Parse(content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
	}
	if tmpl.Lookup("content") == nil {
		return nil, fmt.Errorf("%w: %s: missing \"content\" block", ErrTemplateParse, name)
	}
	return tmpl, nil
}
