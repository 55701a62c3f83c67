// Package config loads and validates the site configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxPageNameLength    = 64
	MaxPathLength        = 4096
	MaxURLLength         = 2048 // Browser limit
	MaxCategoryLength    = 50
	MaxAddrLength        = 256
	MaxPages             = 500
	MaxGalleryImages     = 1000
)

// AppDirName is the directory searched under the user config dir.
const AppDirName = "go-mdsite"

// Render engine and highlighter values.
const (
	EngineLegacy       = "legacy"
	EngineCommonMark   = "commonmark"
	HighlighterRules   = "rules"
	HighlighterChroma  = "chroma"
	HighlighterNone    = "none"
	DefaultServerAddr  = ":8001"
	DefaultOutputDir   = "public"
	DefaultContentDir  = "content"
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// pageNamePattern restricts page names to URL- and file-safe slugs.
var pageNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Config holds the whole site configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Pages   []PageConfig  `yaml:"pages"`
	TOC     TOCConfig     `yaml:"toc"`
	Render  RenderConfig  `yaml:"render"`
	Gallery GalleryConfig `yaml:"gallery"`
	Server  ServerConfig  `yaml:"server"`
	Assets  AssetsConfig  `yaml:"assets"`
	Output  OutputConfig  `yaml:"output"`
}

// SiteConfig holds site-wide metadata.
type SiteConfig struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	QuickLinks  []QuickLink `yaml:"quickLinks"` // Cards on the index page
}

// QuickLink is an index page card pointing into a page section.
type QuickLink struct {
	Label  string `yaml:"label"`
	Page   string `yaml:"page"`   // Page name
	Anchor string `yaml:"anchor"` // Heading id, without '#'
	Expect string `yaml:"expect"` // Text the linked page must show (check command)
}

// ContentConfig defines where page sources are read from.
type ContentConfig struct {
	Dir    string `yaml:"dir"`    // Local directory (default: content)
	Remote string `yaml:"remote"` // Base URL; when set, pages are fetched over HTTP
}

// PageConfig declares one Markdown page.
type PageConfig struct {
	Name  string `yaml:"name"`  // URL slug: served as /<name>.html
	Title string `yaml:"title"` // Defaults to Name
	File  string `yaml:"file"`  // Source path relative to content (default: <name>.md)
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool `yaml:"enabled"`
	MinDepth int  `yaml:"minDepth"` // 1-6, default 2
	MaxDepth int  `yaml:"maxDepth"` // 1-6, default 3
}

// RenderConfig selects pipeline behavior.
type RenderConfig struct {
	Engine      string `yaml:"engine"`      // "legacy" (default) or "commonmark"
	Sanitize    bool   `yaml:"sanitize"`    // Strip unsafe HTML
	Highlighter string `yaml:"highlighter"` // "rules" (default), "chroma" or "none"
}

// GalleryConfig lists gallery images.
type GalleryConfig struct {
	Title  string        `yaml:"title"`
	Images []ImageConfig `yaml:"images"`
}

// ImageConfig describes one gallery image.
type ImageConfig struct {
	Filename    string `yaml:"filename"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	URL         string `yaml:"url"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Addr string `yaml:"addr"` // default :8001
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// OutputConfig defines static build options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // default public
}

// PageByName returns the page named name.
func (c *Config) PageByName(name string) (PageConfig, bool) {
	for _, p := range c.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return PageConfig{}, false
}

// SourceFile returns the page's source path, defaulting to <name>.md.
func (p PageConfig) SourceFile() string {
	if p.File != "" {
		return p.File
	}
	return p.Name + ".md"
}

// DisplayTitle returns the page title, defaulting to its name.
func (p PageConfig) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.description", c.Site.Description, MaxDescriptionLength); err != nil {
		return err
	}

	if err := validateFieldLength("content.dir", c.Content.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("content.remote", c.Content.Remote, MaxURLLength); err != nil {
		return err
	}
	if c.Content.Remote != "" && !fileutil.IsURL(c.Content.Remote) {
		return fmt.Errorf("%w: content.remote must be an http(s) URL, got %q", ErrInvalidValue, c.Content.Remote)
	}

	if err := c.validatePages(); err != nil {
		return err
	}
	if err := c.validateQuickLinks(); err != nil {
		return err
	}

	if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
		return err
	}
	if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
		return err
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) greater than toc.maxDepth (%d)", ErrInvalidValue, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	switch c.Render.Engine {
	case "", EngineLegacy, EngineCommonMark:
	default:
		return fmt.Errorf("%w: render.engine %q (must be %s or %s)", ErrInvalidValue, c.Render.Engine, EngineLegacy, EngineCommonMark)
	}
	switch c.Render.Highlighter {
	case "", HighlighterRules, HighlighterChroma, HighlighterNone:
	default:
		return fmt.Errorf("%w: render.highlighter %q (must be %s, %s or %s)",
			ErrInvalidValue, c.Render.Highlighter, HighlighterRules, HighlighterChroma, HighlighterNone)
	}

	if err := c.validateGallery(); err != nil {
		return err
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	return validateFieldLength("output.dir", c.Output.Dir, MaxPathLength)
}

func (c *Config) validatePages() error {
	if len(c.Pages) > MaxPages {
		return fmt.Errorf("%w: %d pages (max %d)", ErrInvalidValue, len(c.Pages), MaxPages)
	}

	seen := make(map[string]bool, len(c.Pages))
	for i, p := range c.Pages {
		field := fmt.Sprintf("pages[%d]", i)
		if err := validatePageName(field+".name", p.Name); err != nil {
			return err
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate page name %q", ErrInvalidValue, p.Name)
		}
		seen[p.Name] = true

		if err := validateFieldLength(field+".title", p.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".file", p.File, MaxPathLength); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateQuickLinks() error {
	for i, l := range c.Site.QuickLinks {
		field := fmt.Sprintf("site.quickLinks[%d]", i)
		if err := validateFieldLength(field+".label", l.Label, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".anchor", l.Anchor, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".expect", l.Expect, MaxTitleLength); err != nil {
			return err
		}
		if _, ok := c.PageByName(l.Page); !ok {
			return fmt.Errorf("%w: %s.page %q is not a configured page", ErrInvalidValue, field, l.Page)
		}
	}
	return nil
}

func (c *Config) validateGallery() error {
	if err := validateFieldLength("gallery.title", c.Gallery.Title, MaxTitleLength); err != nil {
		return err
	}
	if len(c.Gallery.Images) > MaxGalleryImages {
		return fmt.Errorf("%w: %d gallery images (max %d)", ErrInvalidValue, len(c.Gallery.Images), MaxGalleryImages)
	}
	for i, img := range c.Gallery.Images {
		field := fmt.Sprintf("gallery.images[%d]", i)
		if img.Filename == "" && img.Title == "" {
			return fmt.Errorf("%w: %s needs a filename or a title", ErrInvalidValue, field)
		}
		if err := validateFieldLength(field+".filename", img.Filename, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", img.Title, MaxTitleLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".description", img.Description, MaxDescriptionLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".category", img.Category, MaxCategoryLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".url", img.URL, MaxURLLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePageName checks that name can be used as a page name.
func ValidatePageName(name string) error {
	return validatePageName("page name", name)
}

func validatePageName(field, name string) error {
	if err := validateFieldLength(field, name, MaxPageNameLength); err != nil {
		return err
	}
	if !pageNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %s %q (lowercase letters, digits, '-' and '_' only)", ErrInvalidValue, field, name)
	}
	if reservedPageName(name) {
		return fmt.Errorf("%w: %s %q is reserved", ErrInvalidValue, field, name)
	}
	return nil
}

// reservedPageName reports names that collide with built-in routes.
func reservedPageName(name string) bool {
	switch name {
	case "index", "gallery", "theme", "static":
		return true
	}
	return false
}

func validateDepth(field string, v int) error {
	if v != 0 && (v < 1 || v > 6) {
		return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidValue, field, v)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// pages are read from ./content, served on :8001 and built into ./public.
func DefaultConfig() *Config {
	return &Config{
		Site:    SiteConfig{Title: "My Site"},
		Content: ContentConfig{Dir: DefaultContentDir},
		TOC: TOCConfig{
			Enabled:  true,
			MinDepth: DefaultTOCMinDepth,
			MaxDepth: DefaultTOCMaxDepth,
		},
		Render: RenderConfig{
			Engine:      EngineLegacy,
			Highlighter: HighlighterRules,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Output: OutputConfig{Dir: DefaultOutputDir},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the candidate files for config name, in lookup order:
// the current directory, then <user config dir>/go-mdsite/, each with the
// .yaml and .yml extensions.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
