package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestValidateFileName - Output name validation
// ---------------------------------------------------------------------------

func TestValidateFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "html page", input: "setup-guide.html"},
		{name: "hidden file", input: ".nojekyll"},
		{name: "empty", input: "", wantErr: fileutil.ErrNameEmpty},
		{name: "forward slash", input: "../etc/passwd", wantErr: fileutil.ErrNamePathTraversal},
		{name: "backslash", input: "..\\windows", wantErr: fileutil.ErrNamePathTraversal},
		{name: "null byte", input: "a\x00.html", wantErr: fileutil.ErrNamePathTraversal},
		{name: "dot", input: ".", wantErr: fileutil.ErrNamePathTraversal},
		{name: "dot dot", input: "..", wantErr: fileutil.ErrNamePathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateFileName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFileName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - Atomic writes
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "index.html")
		if err := fileutil.WriteFileAtomic(path, []byte("<p>hi</p>"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading result: %v", err)
		}
		if string(got) != "<p>hi</p>" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if err := fileutil.WriteFileAtomic(path, []byte("new"), 0o644); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("applies permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("permission bits not supported on Windows")
		}

		path := filepath.Join(t.TempDir(), "style.css")
		if err := fileutil.WriteFileAtomic(path, []byte("body{}"), 0o640); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat: %v", err)
		}
		if info.Mode().Perm() != 0o640 {
			t.Errorf("mode = %v, want 0640", info.Mode().Perm())
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "page.html")
		if err := fileutil.WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
			t.Error("expected error for missing directory")
		}
	})

	t.Run("directory path rejected", func(t *testing.T) {
		t.Parallel()

		err := fileutil.WriteFileAtomic(t.TempDir()+string(filepath.Separator), []byte("x"), 0o644)
		if !errors.Is(err, fileutil.ErrNameEmpty) {
			t.Errorf("error = %v, want ErrNameEmpty", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Path helpers
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "nope"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "site", want: false},
		{input: "my-site", want: false},
		{input: "./site.yaml", want: true},
		{input: "/etc/mdsite/site.yaml", want: true},
		{input: `C:\sites\site.yaml`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.want {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{input: "https://example.com/content", want: true},
		{input: "http://localhost:8001", want: true},
		{input: "ftp://example.com", want: false},
		{input: "content/setup-guide.md", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
