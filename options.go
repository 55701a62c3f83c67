package mdsite

import "log/slog"

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine selects the Markdown engine. Default: EngineLegacy.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		r.cfg.engine = e
	}
}

// WithTOCDepth sets the heading levels used when a TOC leaves its depth
// fields zero. Default: 2 to 3.
func WithTOCDepth(minDepth, maxDepth int) Option {
	return func(r *Renderer) {
		r.cfg.tocMinDepth = minDepth
		r.cfg.tocMaxDepth = maxDepth
	}
}

// WithSanitizer strips unsafe markup from converted HTML before
// post-processing.
func WithSanitizer() Option {
	return func(r *Renderer) {
		r.cfg.sanitize = true
	}
}

// WithChromaHighlighting tokenizes code blocks with chroma lexers instead of
// the built-in rule sets. Block selection is unchanged.
func WithChromaHighlighting() Option {
	return func(r *Renderer) {
		r.cfg.chroma = true
	}
}

// WithoutHighlighting disables code block highlighting.
func WithoutHighlighting() Option {
	return func(r *Renderer) {
		r.cfg.noHighlight = true
	}
}

// WithLogger sets the logger used for recoverable faults.
// Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}
