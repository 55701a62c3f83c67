package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// space matches what browsers treat as whitespace in regular expressions:
// ASCII controls, every Unicode space separator, line and paragraph
// separators and the byte order mark. RE2's \s alone is ASCII only.
const space = `\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	nonSlugChars  = regexp.MustCompile(`[^\w` + space + `-]`)
	whitespaceRun = regexp.MustCompile(`[` + space + `]+`)
	hyphenRun     = regexp.MustCompile(`-+`)
)

// Slugify turns display text into a lowercase, hyphen-separated identifier.
// Characters outside [A-Za-z0-9_], whitespace and '-' are dropped.
// Non-breaking and other Unicode spaces separate words like a plain space.
// The result may be empty; callers pick their own fallback.
func Slugify(text string) string {
	s := strings.TrimFunc(strings.ToLower(text), isSpace)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, "-")
	return hyphenRun.ReplaceAllString(s, "-")
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
