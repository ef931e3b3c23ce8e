// Package lexer tokenizes text into the small lexical alphabet understood
// by the rest of the module: identifiers, numbers, quoted strings, and a
// handful of punctuation tokens. Tokens are posted to a channel so the lexer
// can run ahead of its consumer.
package lexer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/saylorsolutions/tokstream/pkg/source"
	"github.com/saylorsolutions/tokstream/pkg/token"
)

var (
	digitRegex             = regexp.MustCompile(`^\d$`)
	idRegex                = regexp.MustCompile(`^\w(\w|\d)*$`)
	ErrNoDigitAfterDecimal = errors.New("missing digit(s) after decimal")
	ErrUnknownToken        = errors.New("unknown token")
)

type Lexer struct {
	*lexBuf
	name   string
	tokens chan token.Token
	err    error
}

// File lexes the contents of filename.
func File(filename string) (*Lexer, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	l := String(string(text))
	l.name = filename
	return l, nil
}

func String(text string) *Lexer {
	r := strings.NewReader(text)
	return Reader("<string>", r)
}

func Reader(name string, r io.Reader) *Lexer {
	rr := bufio.NewReader(r)
	return &Lexer{name: name, tokens: make(chan token.Token), lexBuf: newLexBuf(rr)}
}

// Tokens is the output channel. It's closed after the EOF or Err token is
// posted.
func (l *Lexer) Tokens() <-chan token.Token {
	return l.tokens
}

// Source starts the lexer in a goroutine and returns it as a token.Source.
func (l *Lexer) Source() token.Source {
	go l.Lex()
	return source.FromChannel(l.name, l.tokens)
}

func (l *Lexer) postToken(tt token.Type) {
	text := l.consume()
	t := token.New(tt, text)
	t.Pos = l.pos - len(text)
	t.Line = l.line
	l.tokens <- t
}

func (l *Lexer) postErr(tt token.Type, text string) {
	t := token.New(tt, text)
	t.Pos = l.pos
	t.Line = l.line
	l.tokens <- t
}

func (l *Lexer) handleLexErr(err error) {
	l.err = err
	if err == io.EOF {
		l.postErr(token.EOF, "<EOF>")
		return
	}
	l.postErr(token.TErr, err.Error())
}

func (l *Lexer) isDigit(r rune) bool {
	return digitRegex.MatchString(string(r))
}

// Lex runs the scanner to completion, closing the token channel on the way
// out. Run it in its own goroutine, or use Source.
func (l *Lexer) Lex() {
	defer close(l.tokens)
	for {
		if l.err != nil {
			return
		}
		if err := l.skipWhitespace(); err != nil {
			l.handleLexErr(err)
			return
		}
		c, err := l.read()
		if err != nil {
			l.handleLexErr(err)
			return
		}
		switch {
		case c == '\n':
			l.postToken(token.TEol)
			l.line++
			l.pos = 1
		case c == '"':
			if err := l.readString(); err != nil {
				l.handleLexErr(err)
				return
			}
		case l.isDigit(c):
			if err := l.readInt(); err != nil {
				l.handleLexErr(err)
				return
			}
		case c == '(':
			l.postToken(token.TLpar)
		case c == ')':
			l.postToken(token.TRpar)
		case c == '=':
			l.postToken(token.TEq)
		case c == ',':
			l.postToken(token.TComma)
		case c == '.':
			l.postToken(token.TDot)
		default:
			if err := l.readIdent(); err != nil {
				l.handleLexErr(err)
				return
			}
		}
	}
}

func (l *Lexer) readString() error {
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		switch {
		case c == '\\':
			_, err := l.read()
			if err != nil {
				return err
			}
		case c == '"':
			l.postToken(token.TString)
			return nil
		}
	}
}

func (l *Lexer) readInt() error {
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		switch {
		case c == '.':
			return l.readDecimal()
		case l.isDigit(c):
			continue
		default:
			l.unread()
			l.postToken(token.TInt)
			return nil
		}
	}
}

func (l *Lexer) readDecimal() error {
	var hasRead bool
	for {
		c, err := l.read()
		if err != nil {
			return err
		}
		if l.isDigit(c) {
			hasRead = true
			continue
		}
		if !hasRead {
			return ErrNoDigitAfterDecimal
		}
		l.unread()
		l.postToken(token.TNumber)
		return nil
	}
}

func (l *Lexer) readIdent() error {
	if err := l.readUntilBreak(); err != nil {
		return err
	}
	s := l.preview()
	if idRegex.MatchString(s) {
		l.postToken(token.TIdent)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownToken, s)
}
