package site

import (
	"html/template"

	"github.com/alnah/go-mdsite/internal/gallery"
)

// siteView carries site-wide metadata into templates.
type siteView struct {
	Title       string
	Description string
}

// link is a navigation entry or a quick link card.
type link struct {
	Href    string
	Label   string
	Current bool
}

// view is the data every template executes with. Page-specific fields stay
// zero on other pages.
type view struct {
	Site   siteView
	Title  string
	Theme  string // "", "light" or "dark"
	Path   string // request path, used to return after a theme toggle
	Static bool   // true in built output: no theme toggle form
	Nav    []link

	// Markdown pages.
	Content template.HTML
	TOC     template.HTML

	// Index.
	QuickLinks []link
	Pages      []link

	// Gallery.
	Images     []gallery.Image
	Categories []string
	Sample     bool
}
