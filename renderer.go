package mdsite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-mdsite/internal/highlight"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.LineEndingPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.Transformer)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.CommonMarkConverter)(nil)
	_ Loader                        = (*FSLoader)(nil)
	_ Loader                        = (*HTTPLoader)(nil)
)

type rendererConfig struct {
	engine      Engine
	tocMinDepth int
	tocMaxDepth int
	sanitize    bool
	chroma      bool
	noHighlight bool
}

// Renderer runs the Markdown rendering pipeline.
// A Renderer holds no per-render state and is safe for concurrent use.
type Renderer struct {
	cfg          rendererConfig
	logger       *slog.Logger
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	sanitizer    *pipeline.Sanitizer
	post         *pipeline.PostProcessor
}

// NewRenderer creates a Renderer. Returns ErrInvalidEngine or
// ErrInvalidTOCDepth when options are invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			engine:      EngineLegacy,
			tocMinDepth: DefaultTOCMinDepth,
			tocMaxDepth: DefaultTOCMaxDepth,
		},
		logger:       slog.Default(),
		preprocessor: &pipeline.LineEndingPreprocessor{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.engine.Validate(); err != nil {
		return nil, err
	}
	if err := validateTOCDepth(r.cfg.tocMinDepth, r.cfg.tocMaxDepth, false); err != nil {
		return nil, err
	}

	switch r.cfg.engine {
	case EngineCommonMark:
		r.converter = pipeline.NewCommonMarkConverter()
	default:
		r.converter = pipeline.NewTransformer()
	}

	if r.cfg.sanitize {
		r.sanitizer = pipeline.NewSanitizer()
	}

	var dispatcher *highlight.Dispatcher
	switch {
	case r.cfg.noHighlight:
	case r.cfg.chroma:
		dispatcher = highlight.ChromaDispatcher()
	default:
		dispatcher = highlight.DefaultDispatcher()
	}
	r.post = pipeline.NewPostProcessor(dispatcher)

	return r, nil
}

// Render converts input.Markdown to HTML and post-processes it.
// Empty markdown renders an empty content container.
//
// A post-processing failure is logged and wrapped as ErrRenderFault, and the
// unprocessed fragment is returned without error. Recovers from internal
// panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: internal error: %v", ErrRenderFault, rec)
		}
	}()

	toc, err := r.tocRange(input.TOC)
	if err != nil {
		return nil, err
	}

	md := r.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fragment, err := r.converter.ToHTML(ctx, md)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if r.sanitizer != nil {
		fragment = r.sanitizer.Sanitize(fragment)
	}

	processed, err := r.post.Process(ctx, fragment, toc)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.logger.LogAttrs(ctx, slog.LevelWarn, "serving unprocessed content",
			slog.Any("error", fmt.Errorf("%w: %w", ErrRenderFault, err)))
		return &Result{HTML: pipeline.WrapContent(fragment)}, nil
	}

	return toResult(processed), nil
}

// RenderPage loads path with loader and renders it.
//
// When loading fails, RenderPage returns a Result holding FallbackErrorHTML
// with no headings and no TOC, together with the load error (which wraps
// ErrLoadFailure). Content is never partially rendered.
func (r *Renderer) RenderPage(ctx context.Context, loader Loader, path string, toc *TOC) (*Result, error) {
	markdown, err := loader.Load(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrLoadFailure) {
			err = fmt.Errorf("%w: %w", ErrLoadFailure, err)
		}
		r.logger.LogAttrs(ctx, slog.LevelWarn, "content load failed",
			slog.String("path", path), slog.Any("error", err))
		return &Result{HTML: FallbackErrorHTML}, err
	}
	return r.Render(ctx, Input{Markdown: markdown, TOC: toc})
}

// tocRange validates toc and fills zero depth fields from the renderer
// defaults. Returns nil when toc is nil.
func (r *Renderer) tocRange(toc *TOC) (*pipeline.TOCRange, error) {
	if toc == nil {
		return nil, nil
	}
	if err := toc.Validate(); err != nil {
		return nil, err
	}
	rng := &pipeline.TOCRange{MinDepth: toc.MinDepth, MaxDepth: toc.MaxDepth}
	if rng.MinDepth == 0 {
		rng.MinDepth = r.cfg.tocMinDepth
	}
	if rng.MaxDepth == 0 {
		rng.MaxDepth = r.cfg.tocMaxDepth
	}
	if err := validateTOCDepth(rng.MinDepth, rng.MaxDepth, false); err != nil {
		return nil, err
	}
	return rng, nil
}

func toResult(p *pipeline.Processed) *Result {
	res := &Result{
		HTML:       p.HTML,
		TOCHTML:    p.TOCHTML,
		Highlights: p.Highlights,
	}
	for _, h := range p.Headings {
		res.Headings = append(res.Headings, Heading(h))
	}
	for _, e := range p.TOC {
		res.TOC = append(res.TOC, TOCEntry(e))
	}
	return res
}
