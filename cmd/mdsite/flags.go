package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdsite/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	logJSON bool
}

// siteFlags holds flags overriding the site configuration.
type siteFlags struct {
	content     string
	remote      string
	assetPath   string
	engine      string
	highlighter string
	sanitize    bool
	noTOC       bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	site   siteFlags
	addr   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	site    siteFlags
	output  string
	workers int
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common  commonFlags
	site    siteFlags
	baseURL string
	timeout string
	stealth bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.BoolVar(&f.logJSON, "log-json", false, "log as JSON")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "local content directory")
	fs.StringVar(&f.remote, "remote", "", "remote content base URL")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.engine, "engine", "", "render engine: legacy, commonmark")
	fs.StringVar(&f.highlighter, "highlighter", "", "code highlighter: rules, chroma, none")
	fs.BoolVar(&f.sanitize, "sanitize", false, "strip unsafe HTML from rendered pages")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
}

// newFlagSet creates a FlagSet reporting errors and usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args and rejects positional arguments.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet(cmdServe, w, printServeUsage)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8001)")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseBuildFlags parses build command flags.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet(cmdBuild, w, printBuildUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default public)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseCheckFlags parses check command flags.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, error) {
	f := &checkFlags{}
	fs := newFlagSet(cmdCheck, w, printCheckUsage)
	fs.StringVarP(&f.baseURL, "base-url", "u", "", "site to check (default: serve locally)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.stealth, "stealth", false, "open pages with stealth evasions")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, *siteFlags, error) {
	c, s := &commonFlags{}, &siteFlags{}
	fs := newFlagSet(cmdConfig, w, printConfigUsage)
	addCommonFlags(fs, c)
	addSiteFlags(fs, s)

	if err := parseFlagSet(fs, args); err != nil {
		return nil, nil, err
	}
	return c, s, nil
}

// mergeSiteFlags applies set flags over cfg (CLI wins).
func mergeSiteFlags(f *siteFlags, cfg *config.Config) {
	if f.content != "" {
		cfg.Content.Dir = f.content
		cfg.Content.Remote = ""
	}
	if f.remote != "" {
		cfg.Content.Remote = f.remote
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.engine != "" {
		cfg.Render.Engine = f.engine
	}
	if f.highlighter != "" {
		cfg.Render.Highlighter = f.highlighter
	}
	if f.sanitize {
		cfg.Render.Sanitize = true
	}
	if f.noTOC {
		cfg.TOC.Enabled = false
	}
}
