package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaTokenizer tokenizes with a chroma lexer and folds chroma's token
// types onto the closed Class set.
type ChromaTokenizer struct {
	lexer chroma.Lexer
}

// NewChromaTokenizer creates a tokenizer for the named chroma lexer.
// Unknown names fall back to chroma's plain-text lexer.
func NewChromaTokenizer(lexerName string) *ChromaTokenizer {
	l := lexers.Get(lexerName)
	if l == nil {
		l = lexers.Fallback
	}
	return &ChromaTokenizer{lexer: chroma.Coalesce(l)}
}

// Tokenize implements Tokenizer. On lexer failure the whole text is returned
// as a single unclassified token.
func (c *ChromaTokenizer) Tokenize(text string) []Token {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return []Token{{Text: text}}
	}

	var tokens []Token
	for _, t := range it.Tokens() {
		if t.Value == "" {
			continue
		}
		tokens = append(tokens, Token{Text: t.Value, Class: classify(t.Type)})
	}

	// Some lexers append a newline; keep output byte-identical to input.
	if !strings.HasSuffix(text, "\n") && len(tokens) > 0 {
		last := &tokens[len(tokens)-1]
		last.Text = strings.TrimSuffix(last.Text, "\n")
		if last.Text == "" {
			tokens = tokens[:len(tokens)-1]
		}
	}
	return tokens
}

func classify(tt chroma.TokenType) Class {
	switch {
	case tt == chroma.KeywordConstant:
		return Literal
	case tt.InCategory(chroma.Keyword):
		return Keyword
	case tt.InCategory(chroma.Comment):
		return Comment
	case tt.InSubCategory(chroma.LiteralString):
		return String
	case tt.InSubCategory(chroma.LiteralNumber):
		return Number
	case tt == chroma.NameVariable:
		return Variable
	default:
		return None
	}
}

// ChromaDispatcher returns a dispatcher with the same sniffing order as
// DefaultDispatcher, tokenizing with chroma's dockerfile, bash and
// javascript lexers.
func ChromaDispatcher() *Dispatcher {
	return NewDispatcher(
		Route{Name: RouteDocker, Match: isDocker, Tokenizer: NewChromaTokenizer("docker")},
		Route{Name: RouteShell, Match: isShell, Tokenizer: NewChromaTokenizer("bash")},
		Route{Name: RouteScript, Match: isScript, Tokenizer: NewChromaTokenizer("javascript")},
	)
}
