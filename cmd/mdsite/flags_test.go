package main

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdsite/internal/config"
)

func TestParseBuildFlags(t *testing.T) {
	t.Parallel()

	f, err := parseBuildFlags([]string{
		"-c", "site", "-o", "out", "-w", "4", "-v", "--log-json",
		"--content", "pages", "--engine", "commonmark", "--sanitize", "--no-toc",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseBuildFlags() error = %v", err)
	}

	if f.common.config != "site" || !f.common.verbose || !f.common.logJSON {
		t.Errorf("common = %+v", f.common)
	}
	if f.output != "out" || f.workers != 4 {
		t.Errorf("output = %q, workers = %d", f.output, f.workers)
	}
	if f.site.content != "pages" || f.site.engine != "commonmark" || !f.site.sanitize || !f.site.noTOC {
		t.Errorf("site = %+v", f.site)
	}
}

func TestParseServeAndCheckFlags(t *testing.T) {
	t.Parallel()

	s, err := parseServeFlags([]string{"--addr", "127.0.0.1:0", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("parseServeFlags() error = %v", err)
	}
	if s.addr != "127.0.0.1:0" || !s.common.quiet {
		t.Errorf("serve flags = %+v", s)
	}

	c, err := parseCheckFlags([]string{"-u", "http://localhost:8001/", "-t", "10s", "--stealth"}, io.Discard)
	if err != nil {
		t.Fatalf("parseCheckFlags() error = %v", err)
	}
	if c.baseURL != "http://localhost:8001/" || c.timeout != "10s" || !c.stealth {
		t.Errorf("check flags = %+v", c)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown flag", []string{"--bogus"}, ErrUsage},
		{"bad int", []string{"-w", "many"}, ErrUsage},
		{"positional", []string{"extra"}, ErrUsage},
		{"help", []string{"-h"}, flag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseBuildFlags(tt.args, io.Discard)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("parseBuildFlags(%v) error = %v, want %v", tt.args, err, tt.wantErr)
			}
		})
	}
}

func TestMergeSiteFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags siteFlags
		start func(*config.Config)
		check func(*testing.T, *config.Config)
	}{
		{
			name:  "empty flags keep config",
			flags: siteFlags{},
			check: func(t *testing.T, c *config.Config) {
				if c.Render.Engine != config.EngineLegacy || !c.TOC.Enabled {
					t.Errorf("config changed: %+v", c.Render)
				}
			},
		},
		{
			name:  "content clears remote",
			flags: siteFlags{content: "docs"},
			start: func(c *config.Config) { c.Content.Remote = "https://example.com/" },
			check: func(t *testing.T, c *config.Config) {
				if c.Content.Dir != "docs" || c.Content.Remote != "" {
					t.Errorf("content = %+v", c.Content)
				}
			},
		},
		{
			name:  "render overrides",
			flags: siteFlags{engine: "commonmark", highlighter: "none", sanitize: true, noTOC: true, assetPath: "theme"},
			check: func(t *testing.T, c *config.Config) {
				if c.Render.Engine != "commonmark" || c.Render.Highlighter != "none" || !c.Render.Sanitize {
					t.Errorf("render = %+v", c.Render)
				}
				if c.TOC.Enabled {
					t.Error("toc should be disabled")
				}
				if c.Assets.BasePath != "theme" {
					t.Errorf("assets = %+v", c.Assets)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			if tt.start != nil {
				tt.start(cfg)
			}
			mergeSiteFlags(&tt.flags, cfg)
			tt.check(t, cfg)
		})
	}
}
