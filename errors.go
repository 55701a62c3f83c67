package mdsite

import "errors"

// Sentinel errors for library operations.
var (
	ErrLoadFailure      = errors.New("failed to load content")
	ErrEmptyPath        = errors.New("resource path cannot be empty")
	ErrInvalidPath      = errors.New("invalid resource path")
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
	ErrRenderFault      = errors.New("render fault")

	// Option and input validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")
	ErrInvalidEngine   = errors.New("invalid render engine")
)
