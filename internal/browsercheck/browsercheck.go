// Package browsercheck drives a headless browser against a running site and
// verifies in-page navigation: the table of contents must scroll to its
// targets and index quick links must land on the right section.
package browsercheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/alnah/go-mdsite/internal/process"
)

// Sentinel errors for page checks.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("failed to load page")
	ErrCheckFailed    = errors.New("page check failed")
)

// DefaultTimeout bounds a single check when ctx has no deadline.
const DefaultTimeout = 30 * time.Second

// Selectors shared with the page templates.
const (
	ContentSelector  = "#markdown-content"
	TOCLinkSelector  = "#toc a"
	QuickLinkElement = "a.link-card"
)

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout sets the per-check timeout. Default: DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithStealth opens pages with stealth evasions applied.
func WithStealth() Option {
	return func(c *Checker) {
		c.stealth = true
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// Checker runs page checks in one lazily launched browser.
// Checks may run concurrently; each uses its own tab.
type Checker struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	stealth  bool
	logger   *slog.Logger
}

// New creates a Checker. The browser starts on the first check.
func New(opts ...Option) *Checker {
	c := &Checker{timeout: DefaultTimeout, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureBrowser lazily launches and connects to the browser.
func (c *Checker) ensureBrowser() (*rod.Browser, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.browser != nil {
		return c.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	c.logger.Debug("browser launched", slog.Int("pid", l.PID()), slog.Bool("stealth", c.stealth))
	c.browser = b
	c.launcher = l
	return b, nil
}

// Close releases the browser and kills its process tree.
func (c *Checker) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.browser != nil {
		err = c.browser.Close()
		c.browser = nil
	}
	if c.launcher != nil {
		process.KillProcessGroup(c.launcher.PID())
		c.launcher.Kill()
		c.launcher.Cleanup()
		c.launcher = nil
	}
	return err
}

// open creates a tab bound to ctx and the check timeout and navigates to
// pageURL. The caller must close the returned page.
func (c *Checker) open(ctx context.Context, pageURL string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := c.ensureBrowser()
	if err != nil {
		return nil, err
	}

	var page *rod.Page
	if c.stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: creating tab: %v", ErrBrowserConnect, err)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.Navigate(pageURL); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, pageURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, pageURL, err)
	}
	return page, nil
}

// TOCReport describes a successful table of contents check.
type TOCReport struct {
	URL      string
	Href     string
	TargetID string
}

// CheckTOC opens the page name under baseURL, waits for the content to be
// visible, clicks the first TOC link and verifies its target is visible.
func (c *Checker) CheckTOC(ctx context.Context, baseURL, name string) (*TOCReport, error) {
	pageURL, err := PageURL(baseURL, name+".html")
	if err != nil {
		return nil, err
	}

	page, err := c.open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := waitVisible(page, ContentSelector); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCheckFailed, pageURL, err)
	}

	first, err := page.Element(TOCLinkSelector)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: no TOC link: %v", ErrCheckFailed, pageURL, err)
	}
	href, err := first.Attribute("href")
	if err != nil || href == nil {
		return nil, fmt.Errorf("%w: %s: TOC link without href", ErrCheckFailed, pageURL)
	}
	id, ok := AnchorID(*href)
	if !ok {
		return nil, fmt.Errorf("%w: %s: TOC href %q has no fragment", ErrCheckFailed, pageURL, *href)
	}

	if err := first.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, fmt.Errorf("%w: %s: clicking TOC link: %v", ErrCheckFailed, pageURL, err)
	}
	if err := waitVisible(page, IDSelector(id)); err != nil {
		return nil, fmt.Errorf("%w: %s: target #%s: %v", ErrCheckFailed, pageURL, id, err)
	}

	c.logger.Debug("toc check passed", slog.String("url", pageURL), slog.String("target", id))
	return &TOCReport{URL: pageURL, Href: *href, TargetID: id}, nil
}

// CheckQuickLink opens the index under baseURL, clicks the quick link card
// with href, and verifies the linked section is visible. When wantText is
// set, an element inside the content showing that text must be visible too.
func (c *Checker) CheckQuickLink(ctx context.Context, baseURL, href, wantText string) error {
	indexURL, err := PageURL(baseURL, "index.html")
	if err != nil {
		return err
	}

	page, err := c.open(ctx, indexURL)
	if err != nil {
		return err
	}
	defer page.Close()

	card, err := page.Element(QuickLinkSelector(href))
	if err != nil {
		return fmt.Errorf("%w: quick link %q not found: %v", ErrCheckFailed, href, err)
	}

	wait := page.WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := card.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: clicking quick link %q: %v", ErrCheckFailed, href, err)
	}
	wait()

	if err := waitVisible(page, ContentSelector); err != nil {
		return fmt.Errorf("%w: quick link %q: %v", ErrCheckFailed, href, err)
	}
	if id, ok := AnchorID(href); ok {
		if err := waitVisible(page, IDSelector(id)); err != nil {
			return fmt.Errorf("%w: quick link %q: target #%s: %v", ErrCheckFailed, href, id, err)
		}
	}
	if wantText != "" {
		el, err := page.ElementR(ContentSelector+" *", regexp.QuoteMeta(wantText))
		if err != nil {
			return fmt.Errorf("%w: quick link %q: text %q not found: %v", ErrCheckFailed, href, wantText, err)
		}
		if err := el.WaitVisible(); err != nil {
			return fmt.Errorf("%w: quick link %q: text %q not visible: %v", ErrCheckFailed, href, wantText, err)
		}
	}

	c.logger.Debug("quick link check passed", slog.String("href", href))
	return nil
}

func waitVisible(page *rod.Page, selector string) error {
	el, err := page.Element(selector)
	if err != nil {
		return err
	}
	return el.WaitVisible()
}

// PageURL resolves the relative path ref against baseURL, treating baseURL
// as a directory.
func PageURL(baseURL, ref string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("%w: invalid base URL %q", ErrCheckFailed, baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("%w: invalid page reference %q", ErrCheckFailed, ref)
	}
	return base.ResolveReference(rel).String(), nil
}

// AnchorID returns the fragment of href.
func AnchorID(href string) (string, bool) {
	_, frag, ok := strings.Cut(href, "#")
	if !ok || frag == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(frag); err == nil {
		frag = unescaped
	}
	return frag, true
}

// IDSelector selects the element with id. Attribute form keeps ids starting
// with a digit valid.
func IDSelector(id string) string {
	return `[id="` + cssString(id) + `"]`
}

// QuickLinkSelector selects the quick link card pointing at href.
func QuickLinkSelector(href string) string {
	return QuickLinkElement + `[href="` + cssString(href) + `"]`
}

func cssString(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
