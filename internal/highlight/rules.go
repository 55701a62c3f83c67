package highlight

import (
	"regexp"
	"sort"
)

// pattern classifies the text captured by group of re.
type pattern struct {
	class Class
	re    *regexp.Regexp
	group int
}

// RuleTokenizer tokenizes with an ordered list of regular expressions.
// The leftmost match wins; on equal start the earlier pattern wins, then the
// longer match. Matches overlapping an accepted token are dropped.
type RuleTokenizer struct {
	patterns []pattern
}

// Dockerfile instructions are case-insensitive, so `docker run` highlights
// "run" the same way as a RUN line.
var dockerTokenizer = &RuleTokenizer{patterns: []pattern{
	{Keyword, regexp.MustCompile(`(?i)\b(FROM|RUN|CMD|LABEL|EXPOSE|ENV|ADD|COPY|ENTRYPOINT|VOLUME|USER|WORKDIR|ARG|ONBUILD|STOPSIGNAL|HEALTHCHECK|SHELL)\b`), 1},
	{String, regexp.MustCompile(`\b(alpine|ubuntu|debian|node|nginx|python)\b`), 1},
	{Number, regexp.MustCompile(`\b(\d+)\b`), 1},
}}

var shellTokenizer = &RuleTokenizer{patterns: []pattern{
	{Comment, regexp.MustCompile(`(?m)^(#.*)`), 1},
	{Keyword, regexp.MustCompile(`\b(brew|curl|wget|git|docker|sudo|chmod|chown|mkdir|cd|ls|pwd)\b`), 1},
	{String, regexp.MustCompile(`"[^"]*"`), 0},
	{Variable, regexp.MustCompile(`\$[A-Z_]+`), 0},
}}

var scriptTokenizer = &RuleTokenizer{patterns: []pattern{
	{Keyword, regexp.MustCompile(`\b(const|let|var|function|return|if|else|for|while|import|from|export|default|class|extends|async|await|try|catch|finally)\b`), 1},
	{String, regexp.MustCompile(`("[^"]*"|'[^']*')`), 1},
	{Literal, regexp.MustCompile(`\b(true|false|null|undefined)\b`), 1},
	{Number, regexp.MustCompile(`\b(\d+)\b`), 1},
	{Comment, regexp.MustCompile(`(//.*)`), 1},
}}

type span struct {
	start, end int
	prio       int
	class      Class
}

// Tokenize implements Tokenizer.
func (t *RuleTokenizer) Tokenize(text string) []Token {
	var spans []span
	for prio, p := range t.patterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			start, end := loc[2*p.group], loc[2*p.group+1]
			if start < 0 || start == end {
				continue
			}
			spans = append(spans, span{start: start, end: end, prio: prio, class: p.class})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		a, b := spans[i], spans[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.prio != b.prio {
			return a.prio < b.prio
		}
		return a.end > b.end
	})

	var tokens []Token
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			continue
		}
		if s.start > pos {
			tokens = append(tokens, Token{Text: text[pos:s.start]})
		}
		tokens = append(tokens, Token{Text: text[s.start:s.end], Class: s.class})
		pos = s.end
	}
	if pos < len(text) {
		tokens = append(tokens, Token{Text: text[pos:]})
	}
	return tokens
}
