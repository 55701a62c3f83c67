// Package mdsite renders Markdown pages for a small personal website.
//
// # Quick Start
//
// Create a renderer, render markdown, and embed the result in a page:
//
//	r, err := mdsite.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, mdsite.Input{
//	    Markdown: "# Hello\n\n## World",
//	    TOC:      &mdsite.TOC{},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML, result.TOCHTML)
//
// # Rendering Pipeline
//
// One render pass runs these stages:
//
//  1. Markdown preprocessing (line ending normalization)
//  2. Markdown to HTML through an ordered list of regex rules, or through
//     Goldmark when the commonmark engine is selected
//  3. Optional sanitization (bluemonday)
//  4. Post-processing on the parsed fragment: unique heading ids, table of
//     contents entries and code block highlighting
//
// The legacy rule engine is not CommonMark. It reproduces the site's
// original markup, including its quirks: adjacent lists merge into one
// container and raw HTML passes through untouched. Enable WithSanitizer when
// content is not trusted.
//
// # Loading Pages
//
// RenderPage loads a resource through a Loader before rendering. When
// loading fails, the result holds FallbackErrorHTML and no headings, and the
// returned error wraps ErrLoadFailure:
//
//	res, err := r.RenderPage(ctx, mdsite.NewDirLoader("content"), "setup-guide.md", nil)
//	if errors.Is(err, mdsite.ErrLoadFailure) {
//	    w.WriteHeader(http.StatusNotFound)
//	}
//	io.WriteString(w, res.HTML)
//
// # Error Handling
//
// Errors wrap sentinel values and can be matched with errors.Is:
//
//   - ErrLoadFailure: the resource could not be loaded
//   - ErrRenderFault: post-processing failed; Render logs it and serves the
//     unprocessed fragment instead of failing
//   - ErrInvalidTOCDepth, ErrInvalidEngine: invalid options or input
package mdsite
