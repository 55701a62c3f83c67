package main

import (
	"errors"
	"os"

	mdsite "github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/browsercheck"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/importer"
	"github.com/alnah/go-mdsite/internal/site"
)

// Exit codes for the mdsite CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Content not loadable, output not writable
	ExitBrowser = 4 // Browser launch or page check errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, browsercheck.ErrBrowserConnect) ||
		errors.Is(err, browsercheck.ErrPageLoad) ||
		errors.Is(err, browsercheck.ErrCheckFailed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdsite.ErrLoadFailure) ||
		errors.Is(err, site.ErrWriteOutput) ||
		errors.Is(err, ErrListen) ||
		errors.Is(err, ErrPageExists) ||
		errors.Is(err, importer.ErrEmptyDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdsite.ErrInvalidTOCDepth) ||
		errors.Is(err, mdsite.ErrInvalidEngine) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrTemplateParse) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, site.ErrSiteInit) {
		return ExitUsage
	}

	return ExitGeneral
}
