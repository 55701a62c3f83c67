package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/gallery"
	"github.com/alnah/go-mdsite/internal/theme"
)

// Sentinel errors for site operations.
var (
	ErrSiteInit     = errors.New("failed to initialize site")
	ErrPageNotFound = errors.New("page not found")
	ErrTemplateExec = errors.New("failed to execute template")
)

// Page URL names that are not Markdown pages.
const (
	IndexName   = "index"
	GalleryName = "gallery"
)

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader overrides the content loader derived from the config.
func WithLoader(l mdsite.Loader) Option {
	return func(s *Site) {
		s.loader = l
	}
}

// WithAssets overrides the asset loader derived from the config.
func WithAssets(a assets.AssetLoader) Option {
	return func(s *Site) {
		s.assets = a
	}
}

// WithHTTPClient sets the client used for remote content.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Site) {
		s.client = c
	}
}

// Site renders the pages of one site configuration.
// A Site is safe for concurrent use.
type Site struct {
	cfg       *config.Config
	logger    *slog.Logger
	loader    mdsite.Loader
	client    *http.Client
	assets    assets.AssetLoader
	renderer  *mdsite.Renderer
	toc       *mdsite.TOC
	templates map[string]*template.Template
	themes    theme.CookieStore
	gallery   *gallery.Gallery
}

// New validates cfg and prepares the renderer, loader and templates.
func New(cfg *config.Config, opts ...Option) (*Site, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrSiteInit)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSiteInit, err)
	}

	s := &Site{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	toc, err := resolveTOC(cfg.TOC)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSiteInit, err)
	}
	s.toc = toc

	s.renderer, err = mdsite.NewRenderer(rendererOptions(cfg.Render, s.logger)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSiteInit, err)
	}

	if s.loader == nil {
		if cfg.Content.Remote != "" {
			s.loader = mdsite.NewHTTPLoader(cfg.Content.Remote, s.client)
		} else {
			s.loader = mdsite.NewDirLoader(contentDir(cfg))
		}
	}

	if s.assets == nil {
		resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSiteInit, err)
		}
		s.assets = resolver
	}

	s.templates = make(map[string]*template.Template, 3)
	for _, name := range []string{assets.TemplatePage, assets.TemplateIndex, assets.TemplateGallery} {
		tmpl, err := assets.ParseTemplate(s.assets, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSiteInit, err)
		}
		s.templates[name] = tmpl
	}

	images := make([]gallery.Image, len(cfg.Gallery.Images))
	for i, img := range cfg.Gallery.Images {
		images[i] = gallery.Image{
			Filename:    img.Filename,
			Title:       img.Title,
			Description: img.Description,
			Category:    img.Category,
			URL:         img.URL,
		}
	}
	s.gallery = gallery.New(cfg.Gallery.Title, images)

	return s, nil
}

// resolveTOC fills depth defaults. Returns nil when the TOC is disabled.
func resolveTOC(c config.TOCConfig) (*mdsite.TOC, error) {
	if !c.Enabled {
		return nil, nil
	}
	toc := &mdsite.TOC{MinDepth: c.MinDepth, MaxDepth: c.MaxDepth}
	if toc.MinDepth == 0 {
		toc.MinDepth = mdsite.DefaultTOCMinDepth
	}
	if toc.MaxDepth == 0 {
		toc.MaxDepth = mdsite.DefaultTOCMaxDepth
	}
	if err := toc.Validate(); err != nil {
		return nil, err
	}
	return toc, nil
}

func rendererOptions(c config.RenderConfig, logger *slog.Logger) []mdsite.Option {
	opts := []mdsite.Option{
		mdsite.WithEngine(mdsite.Engine(c.Engine)),
		mdsite.WithLogger(logger),
	}
	if c.Sanitize {
		opts = append(opts, mdsite.WithSanitizer())
	}
	switch c.Highlighter {
	case config.HighlighterChroma:
		opts = append(opts, mdsite.WithChromaHighlighting())
	case config.HighlighterNone:
		opts = append(opts, mdsite.WithoutHighlighting())
	}
	return opts
}

func contentDir(cfg *config.Config) string {
	if cfg.Content.Dir == "" {
		return config.DefaultContentDir
	}
	return cfg.Content.Dir
}

// Remote reports whether pages are fetched over HTTP.
func (s *Site) Remote() bool {
	return s.cfg.Content.Remote != ""
}

// Config returns the site configuration.
func (s *Site) Config() *config.Config {
	return s.cfg
}

// PageNames returns the configured page names in config order.
func (s *Site) PageNames() []string {
	names := make([]string, len(s.cfg.Pages))
	for i, p := range s.cfg.Pages {
		names[i] = p.Name
	}
	return names
}

// newView returns a view with the site-wide fields set for the page at href.
func (s *Site) newView(href string, pref theme.Theme, static bool) view {
	v := view{
		Site:   siteView{Title: s.cfg.Site.Title, Description: s.cfg.Site.Description},
		Theme:  string(pref),
		Path:   "/" + href,
		Static: static,
	}
	v.Nav = append(v.Nav, link{Href: pageHref(IndexName), Label: "Home"})
	for _, p := range s.cfg.Pages {
		v.Nav = append(v.Nav, link{Href: pageHref(p.Name), Label: p.DisplayTitle()})
	}
	v.Nav = append(v.Nav, link{Href: pageHref(GalleryName), Label: s.gallery.Title})
	for i := range v.Nav {
		v.Nav[i].Current = v.Nav[i].Href == href
	}
	return v
}

func pageHref(name string) string {
	return name + ".html"
}

// QuickLinkHref returns the relative href of a quick link card.
func QuickLinkHref(q config.QuickLink) string {
	href := pageHref(q.Page)
	if q.Anchor != "" {
		href += "#" + q.Anchor
	}
	return href
}

// RenderPage renders the configured page name into a full HTML document.
//
// A load failure yields the fallback document and an error wrapping
// mdsite.ErrLoadFailure. An unknown name yields the fallback document and
// ErrPageNotFound.
func (s *Site) RenderPage(ctx context.Context, name string, pref theme.Theme, static bool) ([]byte, error) {
	v := s.newView(pageHref(name), pref, static)

	page, ok := s.cfg.PageByName(name)
	if !ok {
		v.Title = "Not found"
		v.Content = template.HTML(mdsite.FallbackErrorHTML) // #nosec G203 -- constant markup
		doc, execErr := s.execute(assets.TemplatePage, v)
		if execErr != nil {
			return nil, execErr
		}
		return doc, fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	v.Title = page.DisplayTitle()
	res, loadErr := s.renderer.RenderPage(ctx, s.loader, page.SourceFile(), s.toc)
	if res == nil {
		return nil, loadErr
	}
	v.Content = template.HTML(res.HTML) // #nosec G203 -- rendered by the pipeline
	v.TOC = template.HTML(res.TOCHTML)  // #nosec G203 -- escaped by RenderTOC

	doc, err := s.execute(assets.TemplatePage, v)
	if err != nil {
		return nil, err
	}
	return doc, loadErr
}

// RenderIndex renders the index document.
func (s *Site) RenderIndex(pref theme.Theme, static bool) ([]byte, error) {
	v := s.newView(pageHref(IndexName), pref, static)
	for _, q := range s.cfg.Site.QuickLinks {
		v.QuickLinks = append(v.QuickLinks, link{Href: QuickLinkHref(q), Label: q.Label})
	}
	for _, p := range s.cfg.Pages {
		v.Pages = append(v.Pages, link{Href: pageHref(p.Name), Label: p.DisplayTitle()})
	}
	return s.execute(assets.TemplateIndex, v)
}

// RenderGallery renders the gallery document.
func (s *Site) RenderGallery(pref theme.Theme, static bool) ([]byte, error) {
	v := s.newView(pageHref(GalleryName), pref, static)
	v.Title = s.gallery.Title
	v.Images = s.gallery.Images
	v.Categories = s.gallery.Categories
	v.Sample = s.gallery.Sample
	return s.execute(assets.TemplateGallery, v)
}

// Style returns the stylesheet named name, without extension.
func (s *Site) Style(name string) (string, error) {
	return s.assets.LoadStyle(name)
}

func (s *Site) execute(name string, v view) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates[name].ExecuteTemplate(&buf, assets.TemplateLayout, v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateExec, name, err)
	}
	return buf.Bytes(), nil
}
