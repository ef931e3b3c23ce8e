package lexer

import (
	"testing"

	"github.com/saylorsolutions/tokstream/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consume(ch <-chan token.Token) []token.Token {
	var toks []token.Token
	for t := range ch {
		toks = append(toks, t)
	}
	return toks
}

func TestLexer_Lex(t *testing.T) {
	text := `handler = file.Tail("app.log"), 42, 3.14
`
	l := String(text)
	go l.Lex()
	tokens := consume(l.Tokens())

	expected := []token.Type{
		token.TIdent,
		token.TEq,
		token.TIdent,
		token.TDot,
		token.TIdent,
		token.TLpar,
		token.TString,
		token.TRpar,
		token.TComma,
		token.TInt,
		token.TComma,
		token.TNumber,
		token.TEol,
		token.EOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		if tok.Type() == token.TErr {
			t.Errorf("Error at position %d: '%v'", i, tok.Text())
		}
		assert.Equal(t, expected[i], tok.Type(), "Mismatched type at %d: %q", i, tok.Text())
	}
	assert.Equal(t, "handler", tokens[0].Text())
	assert.Equal(t, `"app.log"`, tokens[6].Text())
	assert.Equal(t, "42", tokens[9].Text())
	assert.Equal(t, "3.14", tokens[11].Text())
}

func TestLexer_MissingDecimal(t *testing.T) {
	l := String("3.\n")
	go l.Lex()
	tokens := consume(l.Tokens())
	require.NotEmpty(t, tokens)
	last := tokens[len(tokens)-1]
	assert.Equal(t, token.TErr, last.Type())
	assert.ErrorIs(t, l.err, ErrNoDigitAfterDecimal)
}

func TestLexer_Lines(t *testing.T) {
	l := String("a\nb\n")
	go l.Lex()
	tokens := consume(l.Tokens())
	require.Len(t, tokens, 5)
	assert.Equal(t, 1, tokens[0].(*token.Common).Line)
	assert.Equal(t, 2, tokens[2].(*token.Common).Line)
}

func TestLexer_Source(t *testing.T) {
	src := String("a b c\n").Source()
	var texts []string
	for {
		tok := src.NextToken()
		if tok.Type() == token.EOF {
			break
		}
		if tok.Type() == token.TIdent {
			texts = append(texts, tok.Text())
		}
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
	assert.Equal(t, token.EOF, src.NextToken().Type(), "A finished source should keep returning EOF")
}
