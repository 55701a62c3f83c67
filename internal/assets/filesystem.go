package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads site assets from a custom directory laid out like
// the embedded one: styles/<name>.css and templates/<name>.html.
type FilesystemLoader struct {
	dir string // absolute, symlinks resolved
}

var _ AssetLoader = (*FilesystemLoader)(nil)

// NewFilesystemLoader returns ErrInvalidBasePath unless dir is a readable
// directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}
	// ReadDir fails for missing paths, plain files and unreadable directories.
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, abs, err)
	}
	return &FilesystemLoader{dir: abs}, nil
}

// LoadStyle reads styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return f.load(stylesDir, name, styleExt, ErrStyleNotFound)
}

// LoadTemplate reads templates/<name>.html.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return f.load(templatesDir, name, templateExt, ErrTemplateNotFound)
}

func (f *FilesystemLoader) load(sub, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	p := filepath.Join(f.dir, sub, name+ext)
	if err := f.within(p); err != nil {
		return "", err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- name validated, path contained
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", notFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(data), nil
}

// within rejects p when it, or the file a symlink at p points to, lies
// outside the asset directory.
func (f *FilesystemLoader) within(p string) error {
	if real, err := filepath.EvalSymlinks(p); err == nil {
		p = real
	}
	rel, err := filepath.Rel(f.dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, p)
	}
	return nil
}
