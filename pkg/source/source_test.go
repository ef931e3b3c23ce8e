package source

import (
	"testing"

	"github.com/saylorsolutions/tokstream/pkg/token"
	"github.com/stretchr/testify/assert"
)

func testTokens(texts ...string) []token.Token {
	toks := make([]token.Token, len(texts))
	for i, text := range texts {
		toks[i] = token.New(token.TIdent, text)
	}
	return toks
}

func collect(src token.Source) []string {
	var texts []string
	for {
		tok := src.NextToken()
		if tok.Type() == token.EOF {
			return texts
		}
		texts = append(texts, tok.Text())
	}
}

func TestFromSlice(t *testing.T) {
	src := FromSlice("slice", testTokens("a", "b", "c"))
	assert.Equal(t, "slice", src.SourceName())
	assert.Equal(t, []string{"a", "b", "c"}, collect(src))
	for i := 0; i < 3; i++ {
		assert.Equal(t, token.EOF, src.NextToken().Type())
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan token.Token, 3)
	for _, tok := range testTokens("a", "b", "c") {
		ch <- tok
	}
	close(ch)

	src := FromChannel("chan", ch)
	assert.Equal(t, []string{"a", "b", "c"}, collect(src))
	assert.Equal(t, token.EOF, src.NextToken().Type())
}

func TestFunc(t *testing.T) {
	count := 0
	src := Func("func", func() token.Token {
		if count >= 2 {
			return EOFToken()
		}
		count++
		return token.New(token.TInt, "1")
	})
	assert.Equal(t, []string{"1", "1"}, collect(src))
}

func TestDupe(t *testing.T) {
	a, b := Dupe(FromSlice("dupe", testTokens("a", "b", "c")))

	aOut := make(chan []string, 1)
	go func() {
		aOut <- collect(a)
	}()
	bTexts := collect(b)
	aTexts := <-aOut

	// deliveries to each branch are gated by a shared semaphore, so assert
	// on content rather than arrival order
	assert.ElementsMatch(t, []string{"a", "b", "c"}, aTexts, "Both branches should see the full stream")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, bTexts, "Both branches should see the full stream")
	assert.Equal(t, "dupe", a.SourceName())
}

func TestDrain(t *testing.T) {
	src := FromSlice("drain", testTokens("a", "b"))
	Drain(src)
	assert.Equal(t, token.EOF, src.NextToken().Type())
}
