// Package source provides constructors and combinators for token.Source,
// the producer side of the windowed stream.
package source

import (
	"github.com/saylorsolutions/tokstream/pkg/token"
)

const eofText = "<EOF>"

// EOFToken returns a fresh end-marker token. Sources hand one out for every
// call past the end of a finite stream.
func EOFToken() *token.Common {
	return token.New(token.EOF, eofText)
}

var _ token.Source = (*funcSource)(nil)

type funcSource struct {
	name string
	next func() token.Token
}

// Func adapts a function to a token.Source. The function must keep returning
// EOF tokens once it has returned the first one.
func Func(name string, next func() token.Token) token.Source {
	return &funcSource{name: name, next: next}
}

func (s *funcSource) NextToken() token.Token {
	return s.next()
}

func (s *funcSource) SourceName() string {
	return s.name
}

var _ token.Source = (*sliceSource)(nil)

type sliceSource struct {
	name   string
	tokens []token.Token
	next   int
}

// FromSlice produces each token of the slice in order, then EOF tokens
// forever. Useful for tests and replays.
func FromSlice(name string, tokens []token.Token) token.Source {
	return &sliceSource{name: name, tokens: tokens}
}

func (s *sliceSource) NextToken() token.Token {
	cur := s.next
	if cur < len(s.tokens) {
		s.next++
		return s.tokens[cur]
	}
	return EOFToken()
}

func (s *sliceSource) SourceName() string {
	return s.name
}

var _ token.Source = (*chanSource)(nil)

type chanSource struct {
	name string
	ch   <-chan token.Token
}

// FromChannel produces tokens received on ch. Once ch is closed, EOF tokens
// are produced forever.
func FromChannel(name string, ch <-chan token.Token) token.Source {
	return &chanSource{name: name, ch: ch}
}

func (s *chanSource) NextToken() token.Token {
	t, ok := <-s.ch
	if !ok {
		return EOFToken()
	}
	return t
}

func (s *chanSource) SourceName() string {
	return s.name
}

// Drain consumes src until its first EOF token, discarding everything. Used
// to unblock producer goroutines when a consumer stops early.
func Drain(src token.Source) {
	for src.NextToken().Type() != token.EOF {
	}
}
