package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe markup from rendered HTML.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy, extended
// so the markup the Transformer emits survives: class and id on any element
// and target="_blank" on links.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "id").Globally()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return &Sanitizer{policy: p}
}

// Sanitize returns content with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(content string) string {
	return s.policy.Sanitize(content)
}
