package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-mdsite/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MDSITE_CONFIG":         "site",
		"MDSITE_ADDR":           ":9001",
		"MDSITE_CONTENT_DIR":    "docs",
		"MDSITE_CONTENT_REMOTE": "https://example.com/md/",
		"MDSITE_OUTPUT_DIR":     "dist",
		"MDSITE_ASSET_PATH":     "theme",
		"MDSITE_WORKERS":        "3",
		"MDSITE_TIMEOUT":        "45s",
	}
	ec := loadEnvConfig(func(k string) string { return vars[k] })

	if ec.ConfigPath != "site" || ec.Addr != ":9001" || ec.ContentDir != "docs" {
		t.Errorf("envConfig = %+v", ec)
	}
	if ec.ContentRemote != "https://example.com/md/" || ec.OutputDir != "dist" || ec.AssetPath != "theme" {
		t.Errorf("envConfig = %+v", ec)
	}
	if ec.Workers != 3 {
		t.Errorf("Workers = %d, want 3", ec.Workers)
	}
	if ec.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", ec.Timeout)
	}
}

func TestLoadEnvConfig_IgnoresMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad workers", "MDSITE_WORKERS", "lots"},
		{"zero workers", "MDSITE_WORKERS", "0"},
		{"bad timeout", "MDSITE_TIMEOUT", "soon"},
		{"negative timeout", "MDSITE_TIMEOUT", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ec := loadEnvConfig(func(k string) string {
				if k == tt.key {
					return tt.val
				}
				return ""
			})
			if ec.Workers != 0 || ec.Timeout != 0 {
				t.Errorf("envConfig = %+v, want zero workers and timeout", ec)
			}
		})
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"MDSITE_ADDR=:8001",
		"MDSITE_ADRR=:8001",
		"HOME=/root",
	})

	out := buf.String()
	if !strings.Contains(out, "MDSITE_ADRR") {
		t.Errorf("warning missing for typo, got %q", out)
	}
	if strings.Contains(out, "MDSITE_ADDR ") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warning, got %q", out)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	applyEnvConfig(&envConfig{Addr: ":9002", ContentRemote: "https://example.com/"}, cfg)

	if cfg.Server.Addr != ":9002" {
		t.Errorf("Server.Addr = %q, want :9002", cfg.Server.Addr)
	}
	if cfg.Content.Remote != "https://example.com/" {
		t.Errorf("Content.Remote = %q", cfg.Content.Remote)
	}
	if cfg.Output.Dir != config.DefaultOutputDir {
		t.Errorf("unset env var changed Output.Dir to %q", cfg.Output.Dir)
	}
}
