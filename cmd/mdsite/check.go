package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-mdsite/internal/browsercheck"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/site"
)

// localCheckAddr serves the site for a check run without --base-url.
const localCheckAddr = "127.0.0.1:0"

// PageChecker verifies pages of a running site.
type PageChecker interface {
	CheckTOC(ctx context.Context, baseURL, name string) (*browsercheck.TOCReport, error)
	CheckQuickLink(ctx context.Context, baseURL, href, wantText string) error
}

// Compile-time interface implementation check.
var _ PageChecker = (*browsercheck.Checker)(nil)

// runCheck verifies every page and quick link in a headless browser.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	logger := newLogger(&flags.common, env)
	setMaxProcs(logger)

	cfg, ec, err := loadSiteConfig(&flags.common, &flags.site, env)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, ec.Timeout)
	if err != nil {
		return err
	}

	baseURL := flags.baseURL
	if baseURL == "" {
		stopServer, url, err := serveLocally(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer stopServer()
		baseURL = url
	}

	opts := []browsercheck.Option{
		browsercheck.WithTimeout(timeout),
		browsercheck.WithLogger(logger),
	}
	if flags.stealth {
		opts = append(opts, browsercheck.WithStealth())
	}
	checker := browsercheck.New(opts...)
	defer func() {
		if err := checker.Close(); err != nil {
			logger.Warn("closing browser", slog.Any("error", err))
		}
	}()

	err = runChecks(ctx, checker, cfg, baseURL, flags.common.quiet, env)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, browsercheck.ErrBrowserConnect):
		container, _ := isContainer(env.Getenv)
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(env.Getenv, container))
	case errors.Is(err, browsercheck.ErrPageLoad) && flags.baseURL != "":
		return fmt.Errorf("%w%s", err, hints.ForSiteUnreachable(baseURL))
	}
	return err
}

// serveLocally serves the site on a loopback port and returns a function
// stopping it, along with the site's base URL.
func serveLocally(ctx context.Context, cfg *config.Config, logger *slog.Logger) (func(), string, error) {
	s, err := site.New(cfg, site.WithLogger(logger))
	if err != nil {
		return nil, "", err
	}
	ln, err := listen(ctx, localCheckAddr)
	if err != nil {
		return nil, "", err
	}

	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.Serve(serveCtx, ln) }()

	stop := func() {
		cancel()
		if err := <-done; err != nil {
			logger.Warn("stopping local server", slog.Any("error", err))
		}
	}
	return stop, "http://" + ln.Addr().String() + "/", nil
}

// runChecks runs the TOC check of every page, then the check of every quick
// link. A browser launch failure stops the run; other failures are reported
// and joined.
func runChecks(ctx context.Context, checker PageChecker, cfg *config.Config, baseURL string, quiet bool, env *Environment) error {
	var errs []error

	if cfg.TOC.Enabled {
		for _, p := range cfg.Pages {
			report, err := checker.CheckTOC(ctx, baseURL, p.Name)
			if err != nil {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", p.Name, err)
				if errors.Is(err, browsercheck.ErrBrowserConnect) {
					return err
				}
				errs = append(errs, err)
				continue
			}
			if !quiet {
				fmt.Fprintf(env.Stdout, "ok %s -> #%s\n", p.Name, report.TargetID)
			}
		}
	} else if !quiet {
		fmt.Fprintln(env.Stdout, "skipped TOC checks (toc disabled)")
	}

	for _, q := range cfg.Site.QuickLinks {
		href := site.QuickLinkHref(q)
		if err := checker.CheckQuickLink(ctx, baseURL, href, q.Expect); err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", href, err)
			if errors.Is(err, browsercheck.ErrBrowserConnect) {
				return err
			}
			errs = append(errs, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(env.Stdout, "ok %s\n", href)
		}
	}

	return failures("check(s)", errs)
}

// resolveTimeout returns the flag duration, then the environment duration,
// then browsercheck.DefaultTimeout.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return browsercheck.DefaultTimeout, nil
}
