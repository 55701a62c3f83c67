package mdsite

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// MaxDocumentSize caps the size of a loaded document.
const MaxDocumentSize = 4 << 20 // 4 MiB

// DefaultHTTPTimeout is the request timeout of an HTTPLoader created without
// a client.
const DefaultHTTPTimeout = 10 * time.Second

// Loader fetches raw Markdown by resource path.
// Every failure wraps ErrLoadFailure.
type Loader interface {
	Load(ctx context.Context, path string) (string, error)
}

// FSLoader loads documents from a file system.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader reading from fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// NewDirLoader creates a loader reading from the directory dir.
func NewDirLoader(dir string) *FSLoader {
	return NewFSLoader(os.DirFS(dir))
}

// Load reads path relative to the loader root. A leading slash is ignored.
// Paths that are not valid fs paths (for example containing "..") are
// rejected.
func (l *FSLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}

	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, ErrEmptyPath)
	}
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %w: %q", ErrLoadFailure, ErrInvalidPath, path)
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %w: %q is a directory", ErrLoadFailure, ErrInvalidPath, path)
	}

	return readLimited(f, path)
}

// HTTPLoader loads documents over HTTP relative to a base URL.
type HTTPLoader struct {
	baseURL string
	client  *http.Client
}

// NewHTTPLoader creates a loader for baseURL. A nil client gets a default
// client with DefaultHTTPTimeout.
func NewHTTPLoader(baseURL string, client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &HTTPLoader{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// Load issues GET baseURL/path. Transport errors, timeouts and non-2xx
// statuses wrap ErrLoadFailure.
func (l *HTTPLoader) Load(ctx context.Context, path string) (string, error) {
	name := strings.TrimPrefix(path, "/")
	if name == "" {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, ErrEmptyPath)
	}

	url := l.baseURL + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w: %v", ErrLoadFailure, ErrInvalidPath, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoadFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: GET %s: %s", ErrLoadFailure, url, resp.Status)
	}

	return readLimited(resp.Body, path)
}

func readLimited(r io.Reader, path string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: reading %q: %w", ErrLoadFailure, path, err)
	}
	if len(data) > MaxDocumentSize {
		return "", fmt.Errorf("%w: %w: %q", ErrLoadFailure, ErrDocumentTooLarge, path)
	}
	return string(data), nil
}
