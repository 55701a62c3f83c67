// Package site serves and builds the documentation site.
//
// A Site ties the site config to a Renderer, a content Loader, the asset
// templates and the theme store. It renders three kinds of pages:
//
//   - the index, with quick link cards into page sections
//   - one page per configured Markdown source, with its table of contents
//   - the image gallery
//
// Handler serves them over HTTP at the same relative URLs Build writes them
// to, so links work identically in both modes:
//
//	/ and /index.html    index
//	/{name}.html         Markdown page
//	/gallery.html        gallery
//	/static/{style}.css  embedded or custom styles
//	POST /theme          toggle the theme preference
//
// A page whose source cannot be loaded is answered with 404 and the fallback
// error text in place of the content.
package site
