package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/importer"
)

// ErrPageExists is returned when an import would overwrite a page source.
var ErrPageExists = errors.New("page source already exists")

// importFlags holds all flags for the import command.
type importFlags struct {
	common commonFlags
	site   siteFlags
	source string
	name   string
	domain string
	force  bool
}

// parseImportFlags parses import command flags and its single source argument.
func parseImportFlags(args []string, env *Environment) (*importFlags, error) {
	f := &importFlags{}
	fs := newFlagSet(cmdImport, env.Stderr, printImportUsage)
	fs.StringVarP(&f.name, "name", "n", "", "page name (default: source base name)")
	fs.StringVar(&f.domain, "domain", "", "base URL for relative links")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing page source")
	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	switch fs.NArg() {
	case 0:
		return nil, fmt.Errorf("%w: import needs a source file or URL", ErrUsage)
	case 1:
		f.source = fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(1))
	}
	return f, nil
}

// runImport converts an HTML page into a Markdown page source under the
// content directory.
func runImport(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseImportFlags(args, env)
	if err != nil {
		return err
	}

	logger := newLogger(&flags.common, env)

	cfg, _, err := loadSiteConfig(&flags.common, &flags.site, env)
	if err != nil {
		return err
	}

	loader, file, domain, err := importSource(flags.source)
	if err != nil {
		return err
	}
	if flags.domain != "" {
		domain = flags.domain
	}

	name := flags.name
	if name == "" {
		name = strings.TrimSuffix(file, path.Ext(file))
	}
	if err := config.ValidatePageName(name); err != nil {
		return fmt.Errorf("%w: %w (use --name)", ErrUsage, err)
	}

	dir := cfg.Content.Dir
	if dir == "" {
		dir = config.DefaultContentDir
	}
	out := filepath.Join(dir, name+".md")
	if !flags.force && fileutil.FileExists(out) {
		return fmt.Errorf("%w: %s (use --force)", ErrPageExists, out)
	}

	logger.Debug("importing page", "source", flags.source, "name", name, "domain", domain)

	md, err := importer.New().Import(ctx, loader, file, domain)
	if err != nil {
		return fmt.Errorf("importing %s: %w", flags.source, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating content directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(out, []byte(md), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", out)
		if !hasPage(cfg, name) {
			fmt.Fprintf(env.Stdout, "Add it to the config pages: - name: %s\n", name)
		}
	}
	return nil
}

// importSource returns a loader for source, the path to load with it, and
// the default domain for relative links.
func importSource(source string) (mdsite.Loader, string, string, error) {
	if !fileutil.IsURL(source) {
		return mdsite.NewDirLoader(filepath.Dir(source)), filepath.Base(source), "", nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: invalid source URL: %v", ErrUsage, err)
	}
	dir, file := path.Split(u.Path)
	if file == "" {
		return nil, "", "", fmt.Errorf("%w: source URL %q does not name a page", ErrUsage, source)
	}
	u.Path = dir
	u.RawQuery, u.Fragment = "", ""
	return mdsite.NewHTTPLoader(u.String(), nil), file, u.String(), nil
}

func hasPage(cfg *config.Config, name string) bool {
	for _, p := range cfg.Pages {
		if p.Name == name {
			return true
		}
	}
	return false
}
