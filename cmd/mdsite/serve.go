package main

import (
	"context"
	"fmt"
	"net"

	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/site"
)

// runServe serves the site until ctx is done.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	logger := newLogger(&flags.common, env)
	setMaxProcs(logger)

	cfg, _, err := loadSiteConfig(&flags.common, &flags.site, env)
	if err != nil {
		return err
	}
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = config.DefaultServerAddr
	}

	s, err := site.New(cfg, site.WithLogger(logger))
	if err != nil {
		return err
	}

	ln, err := listen(ctx, cfg.Server.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// listen opens a TCP listener on addr.
func listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w%s", ErrListen, err, hints.ForAddressInUse(addr))
	}
	return ln, nil
}
