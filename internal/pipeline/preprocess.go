package pipeline

import (
	"context"
	"regexp"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// LineEndingPreprocessor normalizes line endings so every rule can assume \n.
type LineEndingPreprocessor struct{}

// PreprocessMarkdown converts \r\n and \r to \n.
// Returns content unchanged if ctx is already done.
func (p *LineEndingPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}
