package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-mdsite/internal/browsercheck"
	"github.com/alnah/go-mdsite/internal/config"
)

// fakeChecker records calls and fails the names or hrefs listed in fail.
type fakeChecker struct {
	mu    sync.Mutex
	fail  map[string]error
	calls []string
}

func (f *fakeChecker) CheckTOC(_ context.Context, _, name string) (*browsercheck.TOCReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "toc:"+name)
	if err := f.fail[name]; err != nil {
		return nil, err
	}
	return &browsercheck.TOCReport{TargetID: "first"}, nil
}

func (f *fakeChecker) CheckQuickLink(_ context.Context, _, href, wantText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "link:"+href+"|"+wantText)
	return f.fail[href]
}

func checkConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Pages = []config.PageConfig{{Name: "setup-guide"}, {Name: "notes"}}
	cfg.Site.QuickLinks = []config.QuickLink{
		{Label: "Mac", Page: "setup-guide", Anchor: "my-mac-config", Expect: "MacBook Air (M4)"},
	}
	return cfg
}

func TestRunChecks(t *testing.T) {
	t.Parallel()

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()

		fc := &fakeChecker{}
		env, stdout, _ := newTestEnv(nil)
		if err := runChecks(context.Background(), fc, checkConfig(), "http://x/", false, env); err != nil {
			t.Fatalf("runChecks() error = %v", err)
		}

		want := []string{"toc:setup-guide", "toc:notes", "link:setup-guide.html#my-mac-config|MacBook Air (M4)"}
		if strings.Join(fc.calls, ",") != strings.Join(want, ",") {
			t.Errorf("calls = %v, want %v", fc.calls, want)
		}
		if !strings.Contains(stdout.String(), "ok setup-guide -> #first") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("failures are joined", func(t *testing.T) {
		t.Parallel()

		fc := &fakeChecker{fail: map[string]error{
			"notes":                          fmt.Errorf("%w: no TOC link", browsercheck.ErrCheckFailed),
			"setup-guide.html#my-mac-config": fmt.Errorf("%w: text not found", browsercheck.ErrCheckFailed),
		}}
		env, _, stderr := newTestEnv(nil)
		err := runChecks(context.Background(), fc, checkConfig(), "http://x/", true, env)
		if !errors.Is(err, browsercheck.ErrCheckFailed) {
			t.Fatalf("runChecks() error = %v, want ErrCheckFailed", err)
		}
		if err.Error() != "2 check(s) failed" {
			t.Errorf("error = %q", err.Error())
		}
		if len(fc.calls) != 3 {
			t.Errorf("every check should run, calls = %v", fc.calls)
		}
		if !strings.Contains(stderr.String(), "FAILED notes") {
			t.Errorf("stderr = %q", stderr.String())
		}
	})

	t.Run("browser connect stops the run", func(t *testing.T) {
		t.Parallel()

		fc := &fakeChecker{fail: map[string]error{"setup-guide": browsercheck.ErrBrowserConnect}}
		env, _, _ := newTestEnv(nil)
		err := runChecks(context.Background(), fc, checkConfig(), "http://x/", true, env)
		if !errors.Is(err, browsercheck.ErrBrowserConnect) {
			t.Fatalf("runChecks() error = %v, want ErrBrowserConnect", err)
		}
		if len(fc.calls) != 1 {
			t.Errorf("calls = %v, want one", fc.calls)
		}
	})

	t.Run("toc disabled skips page checks", func(t *testing.T) {
		t.Parallel()

		cfg := checkConfig()
		cfg.TOC.Enabled = false
		fc := &fakeChecker{}
		env, stdout, _ := newTestEnv(nil)
		if err := runChecks(context.Background(), fc, cfg, "http://x/", false, env); err != nil {
			t.Fatalf("runChecks() error = %v", err)
		}
		if len(fc.calls) != 1 || !strings.HasPrefix(fc.calls[0], "link:") {
			t.Errorf("calls = %v, want quick link only", fc.calls)
		}
		if !strings.Contains(stdout.String(), "skipped") {
			t.Errorf("stdout = %q", stdout.String())
		}
	})
}

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		env     time.Duration
		want    time.Duration
		wantErr bool
	}{
		{name: "default", want: browsercheck.DefaultTimeout},
		{name: "env", env: 45 * time.Second, want: 45 * time.Second},
		{name: "flag wins over env", flag: "2m", env: 45 * time.Second, want: 2 * time.Minute},
		{name: "invalid", flag: "soon", wantErr: true},
		{name: "zero", flag: "0s", wantErr: true},
		{name: "negative", flag: "-1s", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeout) {
					t.Errorf("resolveTimeout() error = %v, want ErrInvalidTimeout", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveTimeout() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
