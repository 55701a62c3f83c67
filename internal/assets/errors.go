package assets

import "errors"

// Lookup errors.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Custom asset directory errors (assets.basePath).
var (
	ErrInvalidBasePath = errors.New("invalid asset directory")
	ErrAssetRead       = errors.New("failed to read asset")
	ErrPathTraversal   = errors.New("asset path escapes asset directory")
)

// ErrTemplateParse indicates a template failed to parse or lacks a
// "content" block.
var ErrTemplateParse = errors.New("template parse error")
